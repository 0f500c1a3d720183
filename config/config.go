package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brettbedarf/navcore/internal/util"
	"gopkg.in/yaml.v3"
)

// Log verbosity accepted by [ConfigOverride.LogLvl], from quietest to loudest.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultDebounceWindow is how long an interactive prompt waits for input to
	// settle before acting on the latest event
	DefaultDebounceWindow = 50 * time.Millisecond

	DefaultCdTitle = "Change directory:"

	DefaultShowHidden = false

	// DefaultWatch enables relisting visible directories when they change on disk
	DefaultWatch = true

	// DefaultInputBuffer is the capacity of an input session's event channel
	DefaultInputBuffer = 64
)

// Config contains runtime configuration values for the navigation core.
type Config struct {
	LogLvl         util.LogLevel // Internal log level (Default info)
	LogFile        string        // Log destination; the console when empty
	DebounceWindow time.Duration // Coalescing window of interactive prompts (Default 50ms)
	CdTitle        string        // Title of the interactive cd prompt
	ShowHidden     bool          // Offer dot-files as completions without a leading dot (Default false)
	Watch          bool          // Watch current and parent directories for changes (Default true)
	InputBuffer    int           // Capacity of input session channels (Default 64)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl      *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"` // 1 (error) to 5 (trace)
	LogFile     *string `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	DebounceMs  *int    `yaml:"debounce_ms,omitempty" json:"debounce_ms,omitempty"`
	CdTitle     *string `yaml:"cd_title,omitempty" json:"cd_title,omitempty"`
	ShowHidden  *bool   `yaml:"show_hidden,omitempty" json:"show_hidden,omitempty"`
	Watch       *bool   `yaml:"watch,omitempty" json:"watch,omitempty"`
	InputBuffer *int    `yaml:"input_buffer,omitempty" json:"input_buffer,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:         DefaultLogLvl,
		DebounceWindow: DefaultDebounceWindow,
		CdTitle:        DefaultCdTitle,
		ShowHidden:     DefaultShowHidden,
		Watch:          DefaultWatch,
		InputBuffer:    DefaultInputBuffer,
	}
}

// NewConfig creates a Config from defaults with override applied; override may be nil.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// VerboseToLogLevel converts a 1 (error) to 5 (trace) verbosity into a log level.
// Out of range values are clamped.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = util.Clamp(verbose, ErrorVerbose, TraceVerbose)
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.LogFile != nil {
		c.LogFile = *override.LogFile
	}
	if override.DebounceMs != nil && *override.DebounceMs >= 0 {
		c.DebounceWindow = time.Duration(*override.DebounceMs) * time.Millisecond
	}
	if override.CdTitle != nil {
		c.CdTitle = *override.CdTitle
	}
	if override.ShowHidden != nil {
		c.ShowHidden = *override.ShowHidden
	}
	if override.Watch != nil {
		c.Watch = *override.Watch
	}
	if override.InputBuffer != nil && *override.InputBuffer > 0 {
		c.InputBuffer = *override.InputBuffer
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
