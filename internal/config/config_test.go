package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/llm"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty dir so no real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".psyche", "psyche.db"), cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, aggregate.DefaultThresholds(), cfg.Aggregation)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", `
db:
  path: /tmp/psyche-test.db
log:
  format: json
aggregation:
  severity_window: 3
  domain_cutoffs:
    anxiety:
      low: 0.1
      high: 0.9
llm:
  enabled: true
  timeout: 2s
  narrative_timeout: 1500ms
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/psyche-test.db", cfg.DB.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 3, cfg.Aggregation.SeverityWindow)
	assert.Equal(t, aggregate.RiskCutoffs{Low: 0.1, High: 0.9}, cfg.Aggregation.CutoffsFor("anxiety"))

	client := cfg.LLM.Client()
	assert.True(t, client.Enabled)
	assert.Equal(t, 2*time.Second, client.Timeout)
	assert.Equal(t, 1500*time.Millisecond, client.TaskTimeout(llm.TaskNarrative))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "psyche.yaml", "log:\n  level: warn\n")
	t.Setenv("PSYCHE_LOG_LEVEL", "debug")
	t.Setenv("PSYCHE_AGGREGATION_INACTIVE_BELOW", "2")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Aggregation.InactiveBelow)
}

func TestLoad_ChangedFlagWins(t *testing.T) {
	isolate(t)
	t.Setenv("PSYCHE_DB_PATH", "/from/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level, "unset flag must not clobber the default")
}

func TestLoad_NamedFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"PSYCHE_LOG_LEVEL": "loud"}, "Config.Log.Level"},
		{"log format", map[string]string{"PSYCHE_LOG_FORMAT": "xml"}, "Config.Log.Format"},
		{"window", map[string]string{"PSYCHE_AGGREGATION_SEVERITY_WINDOW": "0"}, "SeverityWindow"},
		{"retries", map[string]string{"PSYCHE_LLM_MAX_RETRIES": "9"}, "MaxRetries"},
		{"sharp drop below deadband", map[string]string{"PSYCHE_AGGREGATION_MOOD_SHARP_DROP": "0.2"}, "MoodSharpDrop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
