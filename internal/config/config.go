package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"erg-tsb/internal/analysis"
	"erg-tsb/internal/store"
	"erg-tsb/internal/workout"
)

// DateLayout is the format of every date setting
const DateLayout = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Logs      LogsConfig      `mapstructure:"logs"`
	Threshold ThresholdConfig `mapstructure:"threshold"`
	Model     ModelConfig     `mapstructure:"model"`
	Window    WindowConfig    `mapstructure:"window"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Workers   int             `mapstructure:"workers"`
}

// LogsConfig locates the workout logs
type LogsConfig struct {
	Dir        string `mapstructure:"dir"`
	DateOffset int    `mapstructure:"date_offset"` // where YYYY-MM-DD starts in a log file name
}

// ThresholdConfig locates the threshold power schedule
type ThresholdConfig struct {
	File string `mapstructure:"file"` // defaults to FTP.txt in the log directory
}

// ModelConfig holds the training-load model constants
type ModelConfig struct {
	ATLDecay    int     `mapstructure:"atl_decay"`
	CTLDecay    int     `mapstructure:"ctl_decay"`
	StartingATL float64 `mapstructure:"starting_atl"`
	StartingCTL float64 `mapstructure:"starting_ctl"`
}

// WindowConfig bounds the daily calendar and the charts
type WindowConfig struct {
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"` // empty means today
	PlotEnd   string `mapstructure:"plot_end"` // empty means the end date
}

// OutputConfig holds report settings
type OutputConfig struct {
	Dir     string   `mapstructure:"dir"`
	Periods []string `mapstructure:"periods"` // week, month and/or year charts
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Logs: LogsConfig{
			Dir:        "../boatcoach-logs",
			DateOffset: workout.DefaultDateOffset,
		},
		Model: ModelConfig{
			ATLDecay: analysis.DefaultATLDecay,
			CTLDecay: analysis.DefaultCTLDecay,
		},
		Window: WindowConfig{
			StartDate: "2019-01-01",
		},
		Output: OutputConfig{
			Dir:     ".",
			Periods: []string{"week", "month"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Workers: 4,
	}
}

// Load reads tsb.yaml (or .json/.toml) from path, or from the working
// directory and ~/.tsb when path is empty. A missing file is not an error;
// defaults and TSB_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TSB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tsb")
		v.AddConfigPath(".")
		if dir, err := GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Threshold.File == "" {
		cfg.Threshold.File = filepath.Join(cfg.Logs.Dir, "FTP.txt")
	}

	return &cfg, nil
}

// setDefaults mirrors DefaultConfig so env-only overrides still unmarshal
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("logs.dir", d.Logs.Dir)
	v.SetDefault("logs.date_offset", d.Logs.DateOffset)
	v.SetDefault("threshold.file", "")

	v.SetDefault("model.atl_decay", d.Model.ATLDecay)
	v.SetDefault("model.ctl_decay", d.Model.CTLDecay)
	v.SetDefault("model.starting_atl", d.Model.StartingATL)
	v.SetDefault("model.starting_ctl", d.Model.StartingCTL)

	v.SetDefault("window.start_date", d.Window.StartDate)
	v.SetDefault("window.end_date", "")
	v.SetDefault("window.plot_end", "")

	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.periods", d.Output.Periods)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", "")

	v.SetDefault("workers", d.Workers)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Logs.Dir == "" {
		return errors.New("logs.dir is required")
	}
	if c.Logs.DateOffset < 0 {
		return fmt.Errorf("logs.date_offset must not be negative, got %d", c.Logs.DateOffset)
	}

	if err := c.LoadModel().Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}

	start, err := time.Parse(DateLayout, c.Window.StartDate)
	if err != nil {
		return fmt.Errorf("window.start_date must be YYYY-MM-DD, got %q", c.Window.StartDate)
	}
	if c.Window.EndDate != "" {
		end, err := time.Parse(DateLayout, c.Window.EndDate)
		if err != nil {
			return fmt.Errorf("window.end_date must be YYYY-MM-DD, got %q", c.Window.EndDate)
		}
		if end.Before(start) {
			return fmt.Errorf("window.end_date (%s) is before window.start_date (%s)", c.Window.EndDate, c.Window.StartDate)
		}
	}
	if c.Window.PlotEnd != "" {
		if _, err := time.Parse(DateLayout, c.Window.PlotEnd); err != nil {
			return fmt.Errorf("window.plot_end must be YYYY-MM-DD, got %q", c.Window.PlotEnd)
		}
	}

	if _, err := c.Periods(); err != nil {
		return fmt.Errorf("output.periods: %w", err)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return errors.New("logging.level must be one of: debug, info, warn, error")
	}

	return nil
}

// LoadModel returns the recurrence constants
func (c *Config) LoadModel() analysis.LoadModel {
	return analysis.LoadModel{
		ATLDecay:    c.Model.ATLDecay,
		CTLDecay:    c.Model.CTLDecay,
		StartingATL: c.Model.StartingATL,
		StartingCTL: c.Model.StartingCTL,
	}
}

// Periods returns the resamplings to chart, in the order given, without
// duplicates
func (c *Config) Periods() ([]store.Period, error) {
	seen := make(map[store.Period]bool)
	var periods []store.Period
	for _, name := range c.Output.Periods {
		p, err := store.ParsePeriod(name)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	return periods, nil
}

// Range resolves the calendar bounds. An empty end date means today.
func (c *Config) Range(now time.Time) (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, c.Window.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("parsing window.start_date: %w", err)
	}
	if c.Window.EndDate == "" {
		return start, analysis.Day(now), nil
	}
	end, err = time.Parse(DateLayout, c.Window.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("parsing window.end_date: %w", err)
	}
	return start, end, nil
}

// PlotEnd returns the last date shown on charts
func (c *Config) PlotEnd(end time.Time) time.Time {
	if c.Window.PlotEnd == "" {
		return end
	}
	plotEnd, err := time.Parse(DateLayout, c.Window.PlotEnd)
	if err != nil {
		return end
	}
	return plotEnd
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tsb"), nil
}
