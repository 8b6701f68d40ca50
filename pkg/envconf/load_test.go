package envconf

import (
	"errors"
	"testing"
	"time"
)

type nested struct {
	TTL time.Duration `env:"TEST_TTL" envDefault:"30s"`
}

type testConf struct {
	Name    string `env:"TEST_NAME"`
	Port    uint16 `env:"TEST_PORT" envDefault:"8080"`
	Optiona string `env:"TEST_OPTIONAL" envDefault:""`
	Nested  nested
}

func TestLoad_RequiredAndDefaults(t *testing.T) {
	t.Setenv("TEST_NAME", "api")

	cfg := new(testConf)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Name != "api" {
		t.Fatalf("name: want api, got %q", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port default: want 8080, got %d", cfg.Port)
	}
	if cfg.Optiona != "" {
		t.Fatalf("optional: want empty, got %q", cfg.Optiona)
	}
	if cfg.Nested.TTL != 30*time.Second {
		t.Fatalf("nested ttl default: want 30s, got %v", cfg.Nested.TTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	cfg := new(testConf)

	err := Load(cfg)
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TEST_NAME", "api")
	t.Setenv("TEST_PORT", "9001")
	t.Setenv("TEST_TTL", "2m")

	cfg := new(testConf)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 9001 {
		t.Fatalf("port: want 9001, got %d", cfg.Port)
	}
	if cfg.Nested.TTL != 2*time.Minute {
		t.Fatalf("ttl: want 2m, got %v", cfg.Nested.TTL)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("TEST_NAME", "api")
	t.Setenv("TEST_PORT", "not-a-port")

	err := Load(new(testConf))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
