package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MOCKZORK"

// ServerConfig selects the frontend.
type ServerConfig struct {
	// Mode is one of "cli", "headless", "tui", "mcp-stdio" or "mcp-http".
	Mode string `mapstructure:"mode"`
}

// MCPConfig holds settings for the MCP tool server.
type MCPConfig struct {
	Addr         string   `mapstructure:"addr"`
	Path         string   `mapstructure:"path"`
	Token        string   `mapstructure:"token"`
	Origins      []string `mapstructure:"origins"`
	JSONResponse bool     `mapstructure:"json_response"`
	Stateless    bool     `mapstructure:"stateless"`

	// SessionIdle evicts HTTP session games unused for this long. Zero keeps them until DELETE.
	SessionIdle time.Duration `mapstructure:"session_idle"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds simulator settings.
type GameConfig struct {
	// WorldFile replaces the built-in world when non-empty.
	WorldFile string `mapstructure:"world_file"`
	// WrapWidth is the column at which terminal output is wrapped. 0 disables wrapping.
	WrapWidth int `mapstructure:"wrap_width"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

var validModes = []string{"cli", "headless", "tui", "mcp-stdio", "mcp-http"}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if !slices.Contains(validModes, c.Server.Mode) {
		errs = append(errs, fmt.Sprintf("server.mode must be one of [%s], got %q", strings.Join(validModes, ", "), c.Server.Mode))
	}
	if err := validateMCP(c.MCP); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Game.WrapWidth < 0 {
		errs = append(errs, fmt.Sprintf("game.wrap_width must be >= 0, got %d", c.Game.WrapWidth))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMCP(m MCPConfig) error {
	var errs []string
	if m.Addr == "" {
		errs = append(errs, "mcp.addr must not be empty")
	}
	if !strings.HasPrefix(m.Path, "/") {
		errs = append(errs, fmt.Sprintf("mcp.path must start with /, got %q", m.Path))
	}
	if m.SessionIdle < 0 {
		errs = append(errs, fmt.Sprintf("mcp.session_idle must not be negative, got %s", m.SessionIdle))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// LoadConfig builds the configuration from defaults, an optional config file,
// MOCKZORK_* environment variables and explicit overrides, in increasing precedence.
//
// Precondition: path may be empty; when set it must name a readable config file.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadConfig(path string, overrides map[string]any) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	for key, val := range overrides {
		v.Set(key, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "cli")

	v.SetDefault("mcp.addr", "127.0.0.1:8765")
	v.SetDefault("mcp.path", "/mcp")
	v.SetDefault("mcp.token", "")
	v.SetDefault("mcp.origins", []string{"http://localhost", "http://127.0.0.1"})
	v.SetDefault("mcp.json_response", false)
	v.SetDefault("mcp.stateless", false)
	v.SetDefault("mcp.session_idle", "30m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.world_file", "")
	v.SetDefault("game.wrap_width", 79)
}
