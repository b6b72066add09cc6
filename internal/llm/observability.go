package llm

import (
	"log/slog"
	"time"
)

type LLMCallEvent struct {
	Task      TaskType
	Model     string
	Attempts  int
	Latency   time.Duration
	Success   bool
	ErrorCode string
}

// Observer is told about every completed Generate call.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver reports calls as llm_call records on a slog logger.
type LogObserver struct {
	log *slog.Logger
}

func NewLogObserver(log *slog.Logger) *LogObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"task", event.Task,
		"model", event.Model,
		"attempts", event.Attempts,
		"latency_ms", event.Latency.Milliseconds(),
	}
	if event.Success {
		o.log.Info("llm_call", attrs...)
		return
	}
	o.log.Warn("llm_call", append(attrs, "error_code", event.ErrorCode)...)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
