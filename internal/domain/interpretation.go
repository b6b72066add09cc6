package domain

import "time"

type InterpretationChunk struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	InstrumentID string `json:"instrument_id"`
}

// Interpretation is the ordered narrative attached to one scored result.
type Interpretation struct {
	ResultID  string                `json:"result_id,omitempty"`
	Chunks    []InterpretationChunk `json:"chunks"`
	Summary   string                `json:"summary"`
	Fallback  bool                  `json:"fallback"`
	CreatedAt time.Time             `json:"created_at"`
}
