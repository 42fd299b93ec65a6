package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Address string `koanf:"address"`
			Enabled bool   `koanf:"enabled"`
		} `koanf:"http"`
	} `koanf:"server"`
	Log struct {
		Level     string `koanf:"level"`
		MaxSizeMB int    `koanf:"max_size_mb"`
	} `koanf:"log"`
	Scopes []struct {
		Location string `koanf:"location"`
		Length   *int   `koanf:"length"`
		Tokens   []struct {
			Name string `koanf:"name"`
		} `koanf:"tokens"`
	} `koanf:"scopes"`
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)
	if l.envPrefix != "TEST_" || l.filePath != "/path/to/config.yaml" || len(l.overrides) != 1 {
		t.Errorf("loader = %+v", l)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeYAML(t, `
server:
  http:
    address: "0.0.0.0:5080"
    enabled: true
log:
  max_size_mb: 10
scopes:
  - location: /
    length: 32
    tokens:
      - name: CSRF
      - name: NONCE
  - location: /api
`)

	var cfg testConfig
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Address != "0.0.0.0:5080" || !cfg.Server.HTTP.Enabled {
		t.Errorf("http = %+v", cfg.Server.HTTP)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("MaxSizeMB = %d, want 10", cfg.Log.MaxSizeMB)
	}
	if len(cfg.Scopes) != 2 {
		t.Fatalf("len(Scopes) = %d, want 2", len(cfg.Scopes))
	}
	if cfg.Scopes[0].Length == nil || *cfg.Scopes[0].Length != 32 {
		t.Errorf("Scopes[0].Length = %v, want 32", cfg.Scopes[0].Length)
	}
	if cfg.Scopes[1].Length != nil {
		t.Error("Scopes[1].Length should stay unset")
	}
	if len(cfg.Scopes[0].Tokens) != 2 || cfg.Scopes[0].Tokens[1].Name != "NONCE" {
		t.Errorf("Scopes[0].Tokens = %+v", cfg.Scopes[0].Tokens)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	var cfg testConfig
	err := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))).Load(&cfg)
	if err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoader_KeepsUnsetFields(t *testing.T) {
	path := writeYAML(t, "log:\n  level: warn\n")

	var cfg testConfig
	cfg.Server.HTTP.Address = "default:5080"
	cfg.Log.MaxSizeMB = 100
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Server.HTTP.Address != "default:5080" || cfg.Log.MaxSizeMB != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoader_Env(t *testing.T) {
	t.Setenv("TOKMINT_SERVER__HTTP__ADDRESS", "127.0.0.1:8080")
	t.Setenv("TOKMINT_SERVER__HTTP__ENABLED", "true")
	t.Setenv("TOKMINT_LOG__MAX_SIZE_MB", "25")

	var cfg testConfig
	if err := NewLoader().Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Address != "127.0.0.1:8080" || !cfg.Server.HTTP.Enabled {
		t.Errorf("http = %+v", cfg.Server.HTTP)
	}
	// Single underscores stay inside the key name.
	if cfg.Log.MaxSizeMB != 25 {
		t.Errorf("MaxSizeMB = %d, want 25", cfg.Log.MaxSizeMB)
	}
}

func TestLoader_Env_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_LOG__LEVEL", "error")
	t.Setenv("TOKMINT_LOG__LEVEL", "debug")

	var cfg testConfig
	if err := NewLoader(WithEnvPrefix("MYAPP_")).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Level = %q, want error", cfg.Log.Level)
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeYAML(t, `
server:
  http:
    address: "from-file:5080"
log:
  level: info
  max_size_mb: 10
`)
	t.Setenv("TOKMINT_SERVER__HTTP__ADDRESS", "from-env:8080")
	t.Setenv("TOKMINT_LOG__LEVEL", "warn")

	l := NewLoader(
		WithConfigFile(path),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Address != "from-env:8080" {
		t.Errorf("Address = %q, want env to override file", cfg.Server.HTTP.Address)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want override to win over env", cfg.Log.Level)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("MaxSizeMB = %d, want file value kept next to override", cfg.Log.MaxSizeMB)
	}
}

func TestMapProvider(t *testing.T) {
	p := mapProvider{"server.http.address": "x:1", "log.level": "info"}

	if _, err := p.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v, want ErrReadBytesNotSupported", err)
	}

	m, err := p.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	server, ok := m["server"].(map[string]any)
	if !ok {
		t.Fatalf("Read() = %v, want nested server map", m)
	}
	http, ok := server["http"].(map[string]any)
	if !ok || http["address"] != "x:1" {
		t.Errorf("server.http = %v", server["http"])
	}
}
