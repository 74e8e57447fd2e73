package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"autosuggest/internal/eventbus"
	"autosuggest/internal/panel"
)

// FileName is the config file looked up in the working directory
const FileName = ".autosuggest.toml"

// Config represents the application configuration
type Config struct {
	Version      int                    `toml:"version"`
	Autocomplete AutocompleteSettings   `toml:"autocomplete"`
	Provider     ProviderSettings       `toml:"provider"`
	Log          LogSettings            `toml:"log"`
	Classes      map[string]ClassConfig `toml:"classes,omitempty"`
}

// AutocompleteSettings configures the dropdown controller
type AutocompleteSettings struct {
	MinLength      int    `toml:"min_length"`
	EmptyMsg       string `toml:"empty_msg,omitempty"`
	ClassName      string `toml:"class_name,omitempty"`
	BlurDelayMS    int    `toml:"blur_delay_ms"`
	FetchTimeoutMS int    `toml:"fetch_timeout_ms,omitempty"`
}

// BlurDelay returns the blur delay as a duration
func (a AutocompleteSettings) BlurDelay() time.Duration {
	return time.Duration(a.BlurDelayMS) * time.Millisecond
}

// FetchTimeout returns the fetch timeout as a duration; zero means none
func (a AutocompleteSettings) FetchTimeout() time.Duration {
	return time.Duration(a.FetchTimeoutMS) * time.Millisecond
}

// ProviderSettings selects where suggestions come from
type ProviderSettings struct {
	Kind      string `toml:"kind"` // words, files or both
	WordsFile string `toml:"words_file,omitempty"`
	Root      string `toml:"root,omitempty"`
	Pattern   string `toml:"pattern,omitempty"`
	Limit     int    `toml:"limit"`
	LatencyMS int    `toml:"latency_ms,omitempty"`
	Watch     bool   `toml:"watch"`
}

// Latency returns the artificial fetch delay
func (p ProviderSettings) Latency() time.Duration {
	return time.Duration(p.LatencyMS) * time.Millisecond
}

// LogSettings configures the log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// ClassConfig is a named panel style override
type ClassConfig struct {
	Border      string `toml:"border,omitempty"`
	BorderColor string `toml:"border_color,omitempty"`
	Foreground  string `toml:"foreground,omitempty"`
	Background  string `toml:"background,omitempty"`
}

// Class converts the config entry into a panel class
func (c ClassConfig) Class() (panel.Class, error) {
	var class panel.Class
	if c.Border != "" {
		b, ok := panel.BorderByName(c.Border)
		if !ok {
			return class, fmt.Errorf("unknown border %q", c.Border)
		}
		class.Border = &b
	}
	if c.BorderColor != "" {
		class.BorderColor = lipgloss.Color(c.BorderColor)
	}
	if c.Foreground != "" {
		class.Foreground = lipgloss.Color(c.Foreground)
	}
	if c.Background != "" {
		class.Background = lipgloss.Color(c.Background)
	}
	return class, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Provider.Kind {
	case "words", "files", "both":
	default:
		return fmt.Errorf("unknown provider kind %q", c.Provider.Kind)
	}
	if c.Autocomplete.MinLength < 1 {
		return fmt.Errorf("min_length must be at least 1, got %d", c.Autocomplete.MinLength)
	}
	for name, cc := range c.Classes {
		if _, err := cc.Class(); err != nil {
			return fmt.Errorf("class %s: %w", name, err)
		}
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config
// directory.
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return &configService{
		filePath: filepath.Join(configDir, "autosuggest", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default location, falling back to
// defaults when no file exists.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{})
		return cfg, nil
	}
	return cfg, err
}

// Save saves the configuration to the default location
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Classes == nil {
		cfg.Classes = make(map[string]ClassConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.publish(eventbus.ConfigLoadedEvent{Path: path})
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cs.publish(eventbus.ConfigSavedEvent{Path: path})
	return nil
}

func (cs *configService) publish(event eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Autocomplete: AutocompleteSettings{
			MinLength:   2,
			BlurDelayMS: 200,
		},
		Provider: ProviderSettings{
			Kind:    "words",
			Root:    ".",
			Pattern: "**/*",
			Limit:   50,
		},
		Log: LogSettings{
			File:  "autosuggest.log",
			Level: "info",
		},
		Classes: make(map[string]ClassConfig),
	}
}
