package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/llm"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PSYCHE_DB_PATH.
const EnvPrefix = "PSYCHE"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	DB          DBConfig             `mapstructure:"db"`
	Instruments InstrumentsConfig    `mapstructure:"instruments"`
	Log         LogConfig            `mapstructure:"log"`
	Aggregation aggregate.Thresholds `mapstructure:"aggregation"`
	LLM         LLMConfig            `mapstructure:"llm"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type InstrumentsConfig struct {
	// Dir holds extra instrument definitions. Missing is fine.
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type LLMConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	Endpoint         string        `mapstructure:"endpoint" validate:"required,url"`
	Model            string        `mapstructure:"model" validate:"required"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries       int           `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	NarrativeTimeout time.Duration `mapstructure:"narrative_timeout" validate:"gte=0"`
}

// Client converts the section into the llm package configuration.
func (c LLMConfig) Client() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.Enabled
	out.Endpoint = c.Endpoint
	out.Model = c.Model
	out.Timeout = c.Timeout
	out.MaxRetries = c.MaxRetries
	if c.NarrativeTimeout > 0 {
		task := out.Tasks[llm.TaskNarrative]
		task.Timeout = c.NarrativeTimeout
		out.Tasks[llm.TaskNarrative] = task
	}
	return out
}

// Load reads configuration from defaults, an optional config file,
// PSYCHE_* environment variables and, highest of all, flags that were set
// on the command line. An empty file searches ./psyche.yaml and
// ~/.psyche/psyche.yaml; a named file must exist.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("psyche")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := homeDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// flagKeys maps config keys to the root command flags that override them.
var flagKeys = map[string]string{
	"db.path":   "db",
	"log.level": "log-level",
}

// Validate runs the struct tag rules and the aggregation cross-field checks.
func (c *Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	if err := c.Aggregation.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	dbPath := filepath.Join(".psyche", "psyche.db")
	if dir := homeDir(); dir != "" {
		dbPath = filepath.Join(dir, "psyche.db")
	}
	v.SetDefault("db.path", dbPath)
	v.SetDefault("instruments.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	th := aggregate.DefaultThresholds()
	v.SetDefault("aggregation.severity_window", th.SeverityWindow)
	v.SetDefault("aggregation.default_cutoffs.low", th.DefaultCutoffs.Low)
	v.SetDefault("aggregation.default_cutoffs.high", th.DefaultCutoffs.High)
	domains := map[string]any{}
	for name, c := range th.DomainCutoffs {
		domains[name] = map[string]any{"low": c.Low, "high": c.High}
	}
	v.SetDefault("aggregation.domain_cutoffs", domains)
	v.SetDefault("aggregation.mood_window_days", th.MoodWindowDays)
	v.SetDefault("aggregation.mood_deadband", th.MoodDeadband)
	v.SetDefault("aggregation.mood_sharp_drop", th.MoodSharpDrop)
	v.SetDefault("aggregation.engagement_days", th.EngagementDays)
	v.SetDefault("aggregation.inactive_below", th.InactiveBelow)
	v.SetDefault("aggregation.active_at_least", th.ActiveAtLeast)
	v.SetDefault("aggregation.starter_test_id", th.StarterTestID)

	lc := llm.DefaultConfig()
	v.SetDefault("llm.enabled", lc.Enabled)
	v.SetDefault("llm.endpoint", lc.Endpoint)
	v.SetDefault("llm.model", lc.Model)
	v.SetDefault("llm.timeout", lc.Timeout)
	v.SetDefault("llm.max_retries", lc.MaxRetries)
	v.SetDefault("llm.narrative_timeout", lc.TaskTimeout(llm.TaskNarrative))
}

// homeDir is ~/.psyche, or empty when the home directory is unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".psyche")
}
