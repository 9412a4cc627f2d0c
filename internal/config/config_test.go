package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/logterm/internal/route"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxLines != defaultMaxLines {
		t.Fatalf("MaxLines = %d, want %d", cfg.MaxLines, defaultMaxLines)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.Level != slog.LevelDebug {
		t.Fatalf("Level = %v, want DEBUG", cfg.Level)
	}
	if cfg.Route.Key != "component" || cfg.Route.SplitBy != route.SplitByAttr {
		t.Fatalf("Route = %+v, want attr split on component", cfg.Route)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
max_lines = 500
page_size = 25
level = " warn "
theme = "  Slate "
log_output = "  ~/logterm.log  "

[route]
split_by = "attr_prefix"
key = "target"
separator = "::"
deny = ["noisy"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxLines != 500 || cfg.PageSize != 25 {
		t.Fatalf("MaxLines/PageSize = %d/%d, want 500/25", cfg.MaxLines, cfg.PageSize)
	}
	if cfg.Level != slog.LevelWarn {
		t.Fatalf("Level = %v, want WARN", cfg.Level)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}
	if cfg.LogOutput != filepath.Join(home, "logterm.log") {
		t.Fatalf("LogOutput = %q, want under HOME %q", cfg.LogOutput, home)
	}
	if cfg.Route.SplitBy != route.SplitByAttrPrefix || cfg.Route.Key != "target" || cfg.Route.Separator != "::" {
		t.Fatalf("Route = %+v", cfg.Route)
	}
	if cfg.Route.Filter.Permits("noisy") || !cfg.Route.Filter.Permits("app") {
		t.Fatalf("Route.Filter does not deny noisy only")
	}
	if cfg.Route.Level != slog.LevelWarn {
		t.Fatalf("Route.Level = %v, want WARN", cfg.Route.Level)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"zero max lines", "max_lines = 0", "max_lines"},
		{"negative page size", "page_size = -1", "page_size"},
		{"unknown level", `level = "loud"`, "level"},
		{"unknown split", "[route]\nsplit_by = \"span\"", "route.split_by"},
		{"allow and deny", "[route]\nallow = [\"a\"]\ndeny = [\"b\"]", "route"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Load error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `max_lines = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_AllowList(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[route]\nallow = [\"db\"]"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Route.Filter.Permits("db") || cfg.Route.Filter.Permits("http") {
		t.Fatalf("Route.Filter does not allow db only")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
