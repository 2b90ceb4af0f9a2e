package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "svc", &buf)

	l.WithComponent("di").Debug("registration stored", Fields(FieldType, "app.Person", FieldArity, 2))

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "registration stored" {
		t.Errorf("expected message, got %v", line["message"])
	}
	if line[FieldComponent] != "di" {
		t.Errorf("expected component=di, got %v", line[FieldComponent])
	}
	if line[FieldType] != "app.Person" {
		t.Errorf("expected type=app.Person, got %v", line[FieldType])
	}
	if line[FieldArity] != float64(2) {
		t.Errorf("expected arity=2, got %v", line[FieldArity])
	}
}

func TestLevelIsPerLogger(t *testing.T) {
	var quiet, loud bytes.Buffer
	q := NewWithWriter(&Config{Level: "warn", Format: "json"}, "q", &quiet)
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "l", &loud)

	q.Debug("hidden")
	l.Debug("shown")

	if quiet.Len() != 0 {
		t.Errorf("expected warn-level logger to drop debug, got %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "shown") {
		t.Errorf("expected debug-level logger to write, got %q", loud.String())
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "container", &buf)
	l.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "[CON][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)

	l.WithFields(map[string]interface{}{"key": "value"}).WithError(errors.New("boom")).Warn("failed")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected key field, got %q", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected error field, got %q", out)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	// Must not panic.
	l.Debug("x")
	l.Error("y", Fields("a", 1))
}

func TestInit(t *testing.T) {
	// trace keeps the zerolog global level from filtering other tests.
	Init(Config{Level: "trace", Format: "json", Output: "stdout"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestRegistry(t *testing.T) {
	var buf bytes.Buffer
	named := NewWithWriter(&Config{Level: "debug", Format: "json"}, "svc", &buf)

	Register("registry-test", named)
	if Get("registry-test") != named {
		t.Error("expected Get to return the registered logger")
	}

	Unregister("registry-test")
	if Get("registry-test") == named {
		t.Error("expected Get to fall back after Unregister")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"disabled", Config{Level: "disabled", Format: "json"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("expected odd trailing key to be ignored, got %v", f)
	}

	ef := ErrorFields("resolve", errors.New("boom"))
	if ef[FieldOperation] != "resolve" || ef[FieldError] != "boom" {
		t.Errorf("unexpected error fields %v", ef)
	}

	m := MergeWithError(nil, errors.New("x"))
	if m[FieldError] != "x" {
		t.Errorf("expected error merged, got %v", m)
	}

	d := MergeWithDuration(map[string]interface{}{"k": "v"}, 1500*time.Millisecond)
	if d[FieldDuration] != int64(1500) || d["k"] != "v" {
		t.Errorf("unexpected duration fields %v", d)
	}
}

func TestOutputWriter(t *testing.T) {
	if outputWriter("stderr") != os.Stderr {
		t.Error("expected stderr")
	}
	if outputWriter("anything") != os.Stdout {
		t.Error("expected stdout fallback")
	}
}
