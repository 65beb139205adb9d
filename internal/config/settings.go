package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINPLAN_SIP_TIMING
const EnvPrefix = "FINPLAN"

// Settings are the engine and CLI preferences, independent of any household
type Settings struct {
	SIPTiming  string             `mapstructure:"sip_timing"`
	MonteCarlo MonteCarloSettings `mapstructure:"monte_carlo"`
	Logging    logging.Config     `mapstructure:"logging"`
	Output     OutputSettings     `mapstructure:"output"`
}

// MonteCarloSettings are defaults for simulations started from the CLI
type MonteCarloSettings struct {
	Trials       int   `mapstructure:"trials"`
	MonthlySteps bool  `mapstructure:"monthly_steps"`
	Lognormal    bool  `mapstructure:"lognormal"`
	Seed         int64 `mapstructure:"seed"`
	Workers      int   `mapstructure:"workers"`
}

// OutputSettings selects how results are rendered
type OutputSettings struct {
	Format string `mapstructure:"format"` // console, plain, json, csv, yaml
	Dir    string `mapstructure:"dir"`    // when set, reports are also saved here
}

// flagKeys maps CLI flag names onto settings keys
var flagKeys = map[string]string{
	"timing":        "sip_timing",
	"trials":        "monte_carlo.trials",
	"monthly-steps": "monte_carlo.monthly_steps",
	"lognormal":     "monte_carlo.lognormal",
	"seed":          "monte_carlo.seed",
	"workers":       "monte_carlo.workers",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"log-file":      "logging.output_file",
	"format":        "output.format",
	"output-dir":    "output.dir",
}

// NewViper returns a viper instance with defaults and FINPLAN_* environment binding
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("sip_timing", string(domain.DefaultTiming))
	v.SetDefault("monte_carlo.trials", 1000)
	v.SetDefault("monte_carlo.monthly_steps", true)
	v.SetDefault("monte_carlo.lognormal", true)
	v.SetDefault("monte_carlo.seed", 0)
	v.SetDefault("monte_carlo.workers", 0)
	v.SetDefault("logging.level", logging.DefaultLevel)
	v.SetDefault("logging.format", logging.DefaultFormat)
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.dir", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in flags to its settings key, so an
// explicitly set flag beats environment, file and defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadSettings reads configPath (or finplan.yaml from the working directory or
// ~/.config/finplan when empty) into v and decodes the merged settings.
func LoadSettings(v *viper.Viper, configPath string) (*Settings, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("finplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/finplan")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

// Validate rejects settings the engine cannot honor
func (s *Settings) Validate() error {
	if _, err := s.Timing(); err != nil {
		return err
	}
	if s.MonteCarlo.Trials < 0 {
		return fmt.Errorf("monte_carlo.trials cannot be negative")
	}
	if s.MonteCarlo.Workers < 0 {
		return fmt.Errorf("monte_carlo.workers cannot be negative")
	}
	switch s.Output.Format {
	case "", "console", "table", "plain", "text", "json", "csv", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported output format %q (valid: console, plain, json, csv, yaml)", s.Output.Format)
	}
	return nil
}

// Timing parses the configured SIP timing
func (s *Settings) Timing() (domain.Timing, error) {
	return domain.ParseTiming(s.SIPTiming)
}
