/*
Package config manages TOML config for the citycomplete services.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/bastiangx/citycomplete/pkg/suggest"
	"github.com/charmbracelet/log"
)

const appName = "citycomplete"

// Config holds the entire config structure
type Config struct {
	Suggest    SuggestConfig    `toml:"suggest"`
	Server     ServerConfig     `toml:"server"`
	Calculator CalculatorConfig `toml:"calculator"`
	CLI        CliConfig        `toml:"cli"`
}

// SuggestConfig has the lookup pipeline options shared by every field.
type SuggestConfig struct {
	MinSearchLength  int    `toml:"min_search_length"`
	MaxResults       int    `toml:"max_results"`
	DebounceDelayMs  int    `toml:"debounce_delay_ms"`
	RequestTimeoutMs int    `toml:"request_timeout_ms"`
	CacheTTLMs       int    `toml:"cache_ttl_ms"`
	UseRemoteSource  bool   `toml:"use_remote_source"`
	RemoteEndpoint   string `toml:"remote_endpoint"`
	SearchParam      string `toml:"search_param"`
	WrapNavigation   bool   `toml:"wrap_navigation"`
	FallbackFile     string `toml:"fallback_file"`
}

// ServerConfig holds the mock data source options.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	ResponseDelayMs int    `toml:"response_delay_ms"`
	MaxLimit        int    `toml:"max_limit"`
}

// CalculatorConfig holds the submission endpoint.
type CalculatorConfig struct {
	SubmitURL string `toml:"submit_url"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	Field      string `toml:"field"`
	ShowRegion bool   `toml:"show_region"`
}

// Options converts the [suggest] section to pipeline options.
func (s SuggestConfig) Options() suggest.Options {
	return suggest.Options{
		MinSearchLength: s.MinSearchLength,
		MaxResults:      s.MaxResults,
		DebounceDelay:   time.Duration(s.DebounceDelayMs) * time.Millisecond,
		RequestTimeout:  time.Duration(s.RequestTimeoutMs) * time.Millisecond,
		CacheTTL:        time.Duration(s.CacheTTLMs) * time.Millisecond,
		UseRemoteSource: s.UseRemoteSource,
		RemoteEndpoint:  s.RemoteEndpoint,
		SearchParam:     s.SearchParam,
		WrapNavigation:  s.WrapNavigation,
	}
}

// ResponseDelay returns the artificial mock latency.
func (s ServerConfig) ResponseDelay() time.Duration {
	return time.Duration(s.ResponseDelayMs) * time.Millisecond
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver(appName)
	if err != nil {
		log.Errorf("Failed to resolve config paths: %v", err)
		return "", err
	}
	return resolver.GetConfigPath("config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/citycomplete/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
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

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := suggest.DefaultOptions()
	return &Config{
		Suggest: SuggestConfig{
			MinSearchLength:  opts.MinSearchLength,
			MaxResults:       opts.MaxResults,
			DebounceDelayMs:  int(opts.DebounceDelay / time.Millisecond),
			RequestTimeoutMs: int(opts.RequestTimeout / time.Millisecond),
			CacheTTLMs:       int(opts.CacheTTL / time.Millisecond),
			UseRemoteSource:  opts.UseRemoteSource,
			RemoteEndpoint:   opts.RemoteEndpoint,
			SearchParam:      opts.SearchParam,
			WrapNavigation:   opts.WrapNavigation,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ResponseDelayMs: 500,
			MaxLimit:        50,
		},
		Calculator: CalculatorConfig{
			SubmitURL: "http://localhost:8080/api/calculator/submit",
		},
		CLI: CliConfig{
			Field:      "from",
			ShowRegion: true,
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values that cannot be used are replaced
// by their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Debugf("Strict parse of %s failed: %v", configPath, err)
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "calculator"); ok {
		if val, ok := utils.ExtractString(section, "submit_url"); ok {
			config.Calculator.SubmitURL = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

// extractSuggestConfig extracts pipeline configuration from a map
func extractSuggestConfig(data map[string]any, s *SuggestConfig) {
	ints := map[string]*int{
		"min_search_length":  &s.MinSearchLength,
		"max_results":        &s.MaxResults,
		"debounce_delay_ms":  &s.DebounceDelayMs,
		"request_timeout_ms": &s.RequestTimeoutMs,
		"cache_ttl_ms":       &s.CacheTTLMs,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractBool(data, "use_remote_source"); ok {
		s.UseRemoteSource = val
	}
	if val, ok := utils.ExtractBool(data, "wrap_navigation"); ok {
		s.WrapNavigation = val
	}
	if val, ok := utils.ExtractString(data, "remote_endpoint"); ok {
		s.RemoteEndpoint = val
	}
	if val, ok := utils.ExtractString(data, "search_param"); ok {
		s.SearchParam = val
	}
	if val, ok := utils.ExtractString(data, "fallback_file"); ok {
		s.FallbackFile = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		server.Addr = val
	}
	if val, ok := utils.ExtractInt64(data, "response_delay_ms"); ok {
		server.ResponseDelayMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "field"); ok {
		cli.Field = val
	}
	if val, ok := utils.ExtractBool(data, "show_region"); ok {
		cli.ShowRegion = val
	}
}

// sanitize puts back defaults for values that would break the pipeline.
func (c *Config) sanitize() {
	d := DefaultConfig()
	fix := func(name string, v *int, def int) {
		if *v <= 0 {
			log.Warnf("Invalid %s = %d, using %d", name, *v, def)
			*v = def
		}
	}
	fix("min_search_length", &c.Suggest.MinSearchLength, d.Suggest.MinSearchLength)
	fix("max_results", &c.Suggest.MaxResults, d.Suggest.MaxResults)
	fix("debounce_delay_ms", &c.Suggest.DebounceDelayMs, d.Suggest.DebounceDelayMs)
	fix("request_timeout_ms", &c.Suggest.RequestTimeoutMs, d.Suggest.RequestTimeoutMs)
	fix("cache_ttl_ms", &c.Suggest.CacheTTLMs, d.Suggest.CacheTTLMs)
	fix("max_limit", &c.Server.MaxLimit, d.Server.MaxLimit)
	if c.Server.ResponseDelayMs < 0 {
		c.Server.ResponseDelayMs = 0
	}
	if c.Suggest.SearchParam == "" {
		c.Suggest.SearchParam = d.Suggest.SearchParam
	}
	if c.CLI.Field != "from" && c.CLI.Field != "to" {
		c.CLI.Field = d.CLI.Field
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the pipeline values and saves to file
func (c *Config) Update(configPath string, minSearchLength, maxResults, debounceDelayMs *int, useRemote *bool) error {
	s := &c.Suggest
	if minSearchLength != nil {
		s.MinSearchLength = *minSearchLength
	}
	if maxResults != nil {
		s.MaxResults = *maxResults
	}
	if debounceDelayMs != nil {
		s.DebounceDelayMs = *debounceDelayMs
	}
	if useRemote != nil {
		s.UseRemoteSource = *useRemote
	}
	c.sanitize()
	return SaveConfig(c, configPath)
}
