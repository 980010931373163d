package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kbukum/foldkit/errors"
	"github.com/kbukum/foldkit/validation"
)

// mockFS reports only the listed paths as existing.
type mockFS struct {
	files   map[string]bool
	envLoad []string
	envErr  error
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.envLoad = append(m.envLoad, path)
	return m.envErr
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("foldkit", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Inputs) != 1 || cfg.Inputs[0] != StdinInput {
		t.Errorf("Inputs = %v, want [-]", cfg.Inputs)
	}
	if cfg.Pipeline.Terminal.Kind != TerminalCopy {
		t.Errorf("Terminal.Kind = %q, want copy", cfg.Pipeline.Terminal.Kind)
	}
	if len(cfg.Pipeline.Stages) != 0 {
		t.Errorf("Stages = %v, want none", cfg.Pipeline.Stages)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" || cfg.Log.Output != "stderr" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, "foldkit.yml", `
log:
  level: debug
  format: json
inputs:
  - a.txt
  - b.txt
pipeline:
  stages:
    - kind: transform
      expr: x + 1
    - kind: filter
      expr: x > 10
  terminal:
    kind: all_of
    expr: x < 100
`)
	fs := &mockFS{files: map[string]bool{path: true}}
	cfg, err := Load(WithFileSystem(fs), WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[1] != "b.txt" {
		t.Errorf("Inputs = %v", cfg.Inputs)
	}
	want := []Stage{{Kind: StageTransform, Expr: "x + 1"}, {Kind: StageFilter, Expr: "x > 10"}}
	if len(cfg.Pipeline.Stages) != len(want) {
		t.Fatalf("Stages = %v, want %v", cfg.Pipeline.Stages, want)
	}
	for i := range want {
		if cfg.Pipeline.Stages[i] != want[i] {
			t.Errorf("Stages[%d] = %v, want %v", i, cfg.Pipeline.Stages[i], want[i])
		}
	}
	if cfg.Pipeline.Terminal != (Terminal{Kind: TerminalAllOf, Expr: "x < 100"}) {
		t.Errorf("Terminal = %+v", cfg.Pipeline.Terminal)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(WithFileSystem(&mockFS{}), WithConfigFile("/nope/foldkit.yml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "foldkit.yml", "pipeline:\n  terminal:\n    kind: count\n")
	t.Setenv("FOLDKIT_PIPELINE_TERMINAL_KIND", "sum")
	t.Setenv("FOLDKIT_LOG_LEVEL", "warn")

	fs := &mockFS{files: map[string]bool{path: true}}
	cfg, err := Load(WithFileSystem(fs), WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.Terminal.Kind != TerminalSum {
		t.Errorf("Terminal.Kind = %q, want sum", cfg.Pipeline.Terminal.Kind)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}}
	if _, err := Load(WithFileSystem(fs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.envLoad) != 1 || fs.envLoad[0] != "./.env" {
		t.Errorf("loaded env files = %v, want [./.env]", fs.envLoad)
	}

	fs = &mockFS{envErr: os.ErrPermission}
	_, err := Load(WithFileSystem(fs), WithEnvFile("custom.env"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "foldkit.yml", `
inputs: [file.txt]
pipeline:
  stages:
    - kind: filter
      expr: x > 0
  terminal:
    kind: count
`)
	flags := newFlags(t,
		"--config", path,
		"--input", "a.txt", "--input", "b.txt",
		"--stage", "transform:x * 2",
		"--stage", "take_while:x < 50",
		"--terminal", "any_of",
		"--predicate", "x == 4",
		"--log-level", "error",
	)
	fs := &mockFS{files: map[string]bool{path: true}}
	cfg, err := Load(WithFileSystem(fs), WithFlags(flags))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[0] != "a.txt" {
		t.Errorf("Inputs = %v", cfg.Inputs)
	}
	if len(cfg.Pipeline.Stages) != 2 ||
		cfg.Pipeline.Stages[0] != (Stage{Kind: StageTransform, Expr: "x * 2"}) ||
		cfg.Pipeline.Stages[1] != (Stage{Kind: StageTakeWhile, Expr: "x < 50"}) {
		t.Errorf("Stages = %v", cfg.Pipeline.Stages)
	}
	if cfg.Pipeline.Terminal != (Terminal{Kind: TerminalAnyOf, Expr: "x == 4"}) {
		t.Errorf("Terminal = %+v", cfg.Pipeline.Terminal)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadUnchangedFlagsKeepFile(t *testing.T) {
	path := writeFile(t, "foldkit.yml", "pipeline:\n  terminal:\n    kind: sum\n")
	fs := &mockFS{files: map[string]bool{path: true}}
	cfg, err := Load(WithFileSystem(fs), WithConfigFile(path), WithFlags(newFlags(t)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pipeline.Terminal.Kind != TerminalSum {
		t.Errorf("Terminal.Kind = %q, want sum", cfg.Pipeline.Terminal.Kind)
	}
}

func TestLoadRejectsMalformedStageFlag(t *testing.T) {
	_, err := Load(WithFileSystem(&mockFS{}), WithFlags(newFlags(t, "--stage", "x > 1")))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown stage kind", func(c *Config) {
			c.Pipeline.Stages = []Stage{{Kind: "flatten", Expr: "x"}}
		}, true},
		{"stage without expression", func(c *Config) {
			c.Pipeline.Stages = []Stage{{Kind: StageFilter}}
		}, true},
		{"unknown terminal", func(c *Config) { c.Pipeline.Terminal.Kind = "max" }, true},
		{"logical terminal without predicate", func(c *Config) { c.Pipeline.Terminal.Kind = TerminalNoneOf }, true},
		{"logical terminal with predicate", func(c *Config) {
			c.Pipeline.Terminal = Terminal{Kind: TerminalNoneOf, Expr: "x < 0"}
		}, false},
		{"empty input path", func(c *Config) { c.Inputs = []string{""} }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestValidateReportsLogFields(t *testing.T) {
	c := &Config{}
	c.ApplyDefaults()
	c.Log.Level = "loud"
	c.Log.Output = "file"

	appErr, ok := errors.AsAppError(c.Validate())
	if !ok {
		t.Fatal("expected an AppError")
	}
	fields, ok := appErr.Details["fields"].([]validation.FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("unexpected field details %v", appErr.Details["fields"])
	}
	if fields[0].Field != "log.level" || fields[1].Field != "log.output" {
		t.Errorf("unexpected fields %v", fields)
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage(" filter : x > 3 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (Stage{Kind: StageFilter, Expr: "x > 3"}) {
		t.Errorf("ParseStage = %+v", s)
	}
	if s.String() != "filter:x > 3" {
		t.Errorf("String() = %q", s.String())
	}
	if _, err := ParseStage("nocolon"); err == nil {
		t.Error("expected error for missing colon")
	}
	if _, err := ParseStage(":x"); err == nil {
		t.Error("expected error for empty kind")
	}
}
