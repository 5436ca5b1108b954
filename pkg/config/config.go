/*
Package config manages TOML config for GlyphServe services.
*/
package config

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bastiangx/glyphserve/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	Symbols SymbolsConfig `toml:"symbols"`
}

// EngineConfig has autocomplete engine options.
type EngineConfig struct {
	Delimiter     string `toml:"delimiter"`
	DebounceMs    int    `toml:"debounce_ms"`
	GridColumns   int    `toml:"grid_columns"`
	MaxCandidates int    `toml:"max_candidates"`
}

// RenderConfig holds markup renderer options.
type RenderConfig struct {
	Placeholder string `toml:"placeholder"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxMarkup   int `toml:"max_markup"`
	MaxSessions int `toml:"max_sessions"`
}

// SymbolsConfig points at an optional symbol table file.
type SymbolsConfig struct {
	Path string `toml:"path"`
}

// DelimiterRune returns the first rune of the delimiter, or 0 when unset.
func (c EngineConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// GetConfigDir returns the config directory with fallback priority:
// 1. Platform config dir ($XDG_CONFIG_HOME, ~/.config or %APPDATA%)
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to init path resolver: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := pathResolver.GetConfigDir()
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
		if utils.WritableDir(macOSPath) {
			return macOSPath, nil
		}
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/glyphserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Delimiter:     ":",
			DebounceMs:    300,
			GridColumns:   8,
			MaxCandidates: 0,
		},
		Render: RenderConfig{
			Placeholder: "Nothing to preview yet.",
		},
		Server: ServerConfig{
			MaxMarkup:   64 * 1024,
			MaxSessions: 256,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.IsFile(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		log.Warnf("%v. Attempting partial recovery...", err)
		return tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse salvages the sections that still decode when the file as a
// whole does not match the schema.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.DecodeTOMLTables(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.TOMLTable(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.TOMLTable(tempConfig, "render"); ok {
		extractRenderConfig(section, &config.Render)
	}
	if section, ok := utils.TOMLTable(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.TOMLTable(tempConfig, "symbols"); ok {
		if val, ok := utils.TOMLString(section, "path"); ok {
			config.Symbols.Path = val
		}
	}
	config.normalize()
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.TOMLString(data, "delimiter"); ok {
		engine.Delimiter = val
	}
	if val, ok := utils.TOMLInt(data, "debounce_ms"); ok {
		engine.DebounceMs = val
	}
	if val, ok := utils.TOMLInt(data, "grid_columns"); ok {
		engine.GridColumns = val
	}
	if val, ok := utils.TOMLInt(data, "max_candidates"); ok {
		engine.MaxCandidates = val
	}
}

func extractRenderConfig(data map[string]any, render *RenderConfig) {
	if val, ok := utils.TOMLString(data, "placeholder"); ok {
		render.Placeholder = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.TOMLInt(data, "max_markup"); ok {
		server.MaxMarkup = val
	}
	if val, ok := utils.TOMLInt(data, "max_sessions"); ok {
		server.MaxSessions = val
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if utf8.RuneCountInString(c.Engine.Delimiter) != 1 {
		log.Warnf("Invalid delimiter %q, using %q", c.Engine.Delimiter, def.Engine.Delimiter)
		c.Engine.Delimiter = def.Engine.Delimiter
	}
	if c.Engine.DebounceMs < 0 {
		c.Engine.DebounceMs = def.Engine.DebounceMs
	}
	if c.Engine.GridColumns < 1 {
		c.Engine.GridColumns = def.Engine.GridColumns
	}
	if c.Engine.MaxCandidates < 0 {
		c.Engine.MaxCandidates = 0
	}
	if c.Server.MaxMarkup < 1 {
		c.Server.MaxMarkup = def.Server.MaxMarkup
	}
	if c.Server.MaxSessions < 1 {
		c.Server.MaxSessions = def.Server.MaxSessions
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOMLFile(config, configPath)
}

// Update changes the engine values and saves to file. c is left untouched
// when the save fails.
func (c *Config) Update(configPath string, debounceMs, gridColumns, maxCandidates *int) error {
	next := *c
	if debounceMs != nil {
		next.Engine.DebounceMs = *debounceMs
	}
	if gridColumns != nil {
		next.Engine.GridColumns = *gridColumns
	}
	if maxCandidates != nil {
		next.Engine.MaxCandidates = *maxCandidates
	}
	next.normalize()
	if err := SaveConfig(&next, configPath); err != nil {
		return err
	}
	*c = next
	return nil
}
