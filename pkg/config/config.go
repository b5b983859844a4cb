/*
Package config manages TOML config for WordTrie services.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "wordtrie"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	HTTP   HTTPConfig   `toml:"http"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has options shared by the IPC and HTTP front ends.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	SeedPath        string `toml:"seed_path"`
	DefaultLimit    int    `toml:"default_limit"`
	RankBy          string `toml:"rank_by"`
	HotCacheSize    int    `toml:"hot_cache_size"`
	ActivitySize    int    `toml:"activity_size"`
	SkipBuiltinSeed bool   `toml:"skip_builtin_seed"`
}

// HTTPConfig holds the HTTP listener options.
type HTTPConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Rank returns the configured ranking mode.
func (d DictConfig) Rank() dictionary.RankBy {
	return dictionary.ParseRankBy(d.RankBy)
}

// GetConfigDir returns the platform config dir when it is writable,
// otherwise the executable dir.
func GetConfigDir() (string, error) {
	resolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		return "", err
	}
	if status := utils.CheckDirStatus(resolver.ConfigDir()); status.Writable {
		return resolver.ConfigDir(), nil
	}
	log.Warnf("Config dir %s is not writable, falling back to executable dir", resolver.ConfigDir())
	return utils.ExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
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
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			SeedPath:     "",
			DefaultLimit: 5,
			RankBy:       string(dictionary.RankByFrequency),
			HotCacheSize: 256,
			ActivitySize: 50,
		},
		HTTP: HTTPConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
		},
		CLI: CliConfig{
			DefaultLimit:    5,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
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

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Invalid files fall back to whatever
// sections can still be read.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config.Validate(), nil
}

// tryPartialParse attempts to parse a TOML file section by section
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "http"); ok {
		extractHTTPConfig(section, &config.HTTP)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config.Validate(), nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "seed_path"); ok {
		dict.SeedPath = val
	}
	if val, ok := utils.ExtractString(data, "rank_by"); ok {
		dict.RankBy = val
	}
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		dict.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "hot_cache_size"); ok {
		dict.HotCacheSize = val
	}
	if val, ok := utils.ExtractInt(data, "activity_size"); ok {
		dict.ActivitySize = val
	}
	if val, ok := utils.ExtractBool(data, "skip_builtin_seed"); ok {
		dict.SkipBuiltinSeed = val
	}
}

func extractHTTPConfig(data map[string]any, h *HTTPConfig) {
	if val, ok := utils.ExtractString(data, "host"); ok {
		h.Host = val
	}
	if val, ok := utils.ExtractInt(data, "port"); ok {
		h.Port = val
	}
	if val, ok := utils.ExtractInt(data, "read_timeout_sec"); ok {
		h.ReadTimeoutSec = val
	}
	if val, ok := utils.ExtractInt(data, "write_timeout_sec"); ok {
		h.WriteTimeoutSec = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// Validate replaces out of range values with defaults.
func (c *Config) Validate() *Config {
	def := DefaultConfig()
	if c.Server.MaxLimit <= 0 {
		log.Warnf("Invalid max_limit %d, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MinPrefix < 1 {
		c.Server.MinPrefix = def.Server.MinPrefix
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("max_prefix %d below min_prefix %d, using %d", c.Server.MaxPrefix, c.Server.MinPrefix, def.Server.MaxPrefix)
		c.Server.MaxPrefix = def.Server.MaxPrefix
	}
	if c.Dict.DefaultLimit <= 0 || c.Dict.DefaultLimit > c.Server.MaxLimit {
		c.Dict.DefaultLimit = min(def.Dict.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Dict.ActivitySize <= 0 {
		c.Dict.ActivitySize = def.Dict.ActivitySize
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		log.Warnf("Invalid http port %d, using %d", c.HTTP.Port, def.HTTP.Port)
		c.HTTP.Port = def.HTTP.Port
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = def.HTTP.ReadTimeoutSec
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = def.HTTP.WriteTimeoutSec
	}
	return c
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	log.Infof("Rewriting %s with defaults", defaultPath)
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
