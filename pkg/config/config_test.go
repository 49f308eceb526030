package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigOptions(t *testing.T) {
	opts := DefaultConfig().Suggest.Options()

	if opts.MinSearchLength != 2 || opts.MaxResults != 10 {
		t.Errorf("unexpected limits: %+v", opts)
	}
	if opts.DebounceDelay != 300*time.Millisecond || opts.RequestTimeout != 5*time.Second || opts.CacheTTL != time.Hour {
		t.Errorf("unexpected durations: %+v", opts)
	}
	if opts.UseRemoteSource {
		t.Error("remote source should be off by default")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[suggest]
min_search_length = 3
debounce_delay_ms = 150
use_remote_source = true
remote_endpoint = "http://example.test/api/cities"
wrap_navigation = true

[server]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	testCases := []struct {
		got         any
		expected    any
		description string
	}{
		{cfg.Suggest.MinSearchLength, 3, "min_search_length from file"},
		{cfg.Suggest.Options().DebounceDelay, 150 * time.Millisecond, "debounce converted to duration"},
		{cfg.Suggest.UseRemoteSource, true, "use_remote_source from file"},
		{cfg.Suggest.RemoteEndpoint, "http://example.test/api/cities", "remote_endpoint from file"},
		{cfg.Suggest.WrapNavigation, true, "wrap_navigation from file"},
		{cfg.Suggest.MaxResults, 10, "max_results keeps its default"},
		{cfg.Server.Addr, ":9090", "server addr from file"},
		{cfg.Server.ResponseDelayMs, 500, "response delay keeps its default"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// max_results has the wrong type, so the strict decode fails.
	path := writeConfig(t, `
[suggest]
max_results = "many"
min_search_length = 4

[cli]
field = "to"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Suggest.MinSearchLength != 4 {
		t.Errorf("min_search_length = %d, want 4", cfg.Suggest.MinSearchLength)
	}
	if cfg.Suggest.MaxResults != 10 {
		t.Errorf("max_results = %d, want default 10", cfg.Suggest.MaxResults)
	}
	if cfg.CLI.Field != "to" {
		t.Errorf("cli field = %q, want to", cfg.CLI.Field)
	}
}

func TestLoadConfigSanitizes(t *testing.T) {
	path := writeConfig(t, `
[suggest]
min_search_length = 0
max_results = -1
search_param = ""

[cli]
field = "via"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Suggest.MinSearchLength != 2 || cfg.Suggest.MaxResults != 10 {
		t.Errorf("invalid values not replaced: %+v", cfg.Suggest)
	}
	if cfg.Suggest.SearchParam != "query" {
		t.Errorf("search_param = %q", cfg.Suggest.SearchParam)
	}
	if cfg.CLI.Field != "from" {
		t.Errorf("cli field = %q", cfg.CLI.Field)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected defaults, got %+v", cfg.Server)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	limit := 20
	if err := cfg.Update(path, nil, &limit, nil, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if reloaded.Suggest.MaxResults != 20 {
		t.Errorf("max_results = %d after update, want 20", reloaded.Suggest.MaxResults)
	}
}
