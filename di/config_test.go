package di

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/dikit/config"
	apperrors "github.com/kbukum/dikit/errors"
	"github.com/kbukum/dikit/logger"
)

func quietLogging() logger.Config {
	return logger.Config{Level: "error", Format: "json", Output: "stderr"}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != "di" {
		t.Errorf("expected default name 'di', got %q", cfg.Name)
	}
	if !cfg.MetricsEnabled() {
		t.Error("expected metrics enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults, got %+v", cfg.Logging)
	}
	if cfg.StrictSingletonArgs {
		t.Error("expected lenient singleton arguments by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Name: "orders", Logging: quietLogging()}, ""},
		{"missing name", Config{Logging: quietLogging()}, "name: is required"},
		{"long name", Config{Name: strings.Repeat("x", 65), Logging: quietLogging()}, "name: must be at most 64 characters"},
		{"bad logging", Config{Name: "orders", Logging: logger.Config{Level: "loud", Format: "json"}}, "logging.level must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !stderrors.Is(err, apperrors.ErrInvalidConfig) {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestConfigValidateReportsFields(t *testing.T) {
	err := (&Config{Logging: logger.Config{Level: "loud", Format: "json"}}).Validate()
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	fields, ok := appErr.Details["fields"].(map[string]string)
	if !ok {
		t.Fatalf("expected fields detail, got %v", appErr.Details)
	}
	if _, ok := fields["name"]; !ok {
		t.Errorf("expected name in fields, got %v", fields)
	}
	if _, ok := fields["logging"]; !ok {
		t.Errorf("expected logging in fields, got %v", fields)
	}
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig(Config{Name: "orders", StrictSingletonArgs: true, Logging: quietLogging()})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if !c.strictSingletonArgs {
		t.Error("expected strict singleton arguments from config")
	}

	RegisterSingleton1(c, func(_ *Container, name string) (*Person, error) { return &Person{Name: name}, nil })
	MustResolve1[*Person](c, "Ada")
	if _, err := Resolve1[*Person](c, "Grace"); !stderrors.Is(err, apperrors.ErrSingletonArgumentsChanged) {
		t.Errorf("expected strict mode error, got %v", err)
	}
}

func TestNewFromConfigInvalid(t *testing.T) {
	c, err := NewFromConfig(Config{Name: "orders", Logging: logger.Config{Level: "loud"}})
	if err == nil {
		t.Fatal("expected invalid logging level to be rejected")
	}
	if c != nil {
		t.Error("expected no container on invalid config")
	}
}

func TestNewFromConfigExplicitOptionsWin(t *testing.T) {
	c, err := NewFromConfig(Config{Name: "orders", Logging: quietLogging()}, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if c.log == nil {
		t.Fatal("expected logger")
	}
}

func TestNewFromLoadedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "di.yml")
	content := `
name: orders
strict_singleton_args: true
metrics: false
logging:
  level: error
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("DILOADTEST_NAME", "billing")

	var cfg Config
	if err := config.LoadConfig("di", &cfg, config.WithConfigFile(path), config.WithEnvPrefix("DILOADTEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "billing" {
		t.Errorf("expected env override for name, got %q", cfg.Name)
	}
	if cfg.MetricsEnabled() {
		t.Error("expected metrics disabled from file")
	}

	c, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if !c.strictSingletonArgs {
		t.Error("expected strict singleton arguments from file")
	}
}
