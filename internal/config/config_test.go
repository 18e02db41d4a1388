package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inertia-go/inertia"
	ierrors "github.com/inertia-go/inertia/internal/errors"
	"github.com/inertia-go/inertia/pkg/ssr"
	"github.com/inertia-go/inertia/pkg/vite"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var ie *ierrors.InertiaError
	if !errors.As(err, &ie) {
		t.Fatalf("error is %T, want *ierrors.InertiaError: %v", err, err)
	}
	return ie.Code
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Entry != DefaultEntry {
		t.Errorf("Entry = %q, want %q", cfg.Entry, DefaultEntry)
	}
	if cfg.Template != DefaultTemplate {
		t.Errorf("Template = %q, want %q", cfg.Template, DefaultTemplate)
	}
	if cfg.ContainerID != inertia.DefaultContainerID {
		t.Errorf("ContainerID = %q, want %q", cfg.ContainerID, inertia.DefaultContainerID)
	}
	if cfg.Assets.Manifest != DefaultManifest {
		t.Errorf("Assets.Manifest = %q, want %q", cfg.Assets.Manifest, DefaultManifest)
	}
	if cfg.Assets.Base != "/" {
		t.Errorf("Assets.Base = %q, want %q", cfg.Assets.Base, "/")
	}
	if cfg.Dev.Server != vite.DefaultDevServerURL {
		t.Errorf("Dev.Server = %q, want %q", cfg.Dev.Server, vite.DefaultDevServerURL)
	}
	if !cfg.Dev.Reload {
		t.Error("Dev.Reload should default to true")
	}
	if cfg.SSR.Enabled {
		t.Error("SSR.Enabled should default to false")
	}
	if cfg.SSR.URL != ssr.DefaultBaseURL {
		t.Errorf("SSR.URL = %q, want %q", cfg.SSR.URL, ssr.DefaultBaseURL)
	}
	if got := cfg.SSRTimeout(); got != ssr.DefaultTimeout {
		t.Errorf("SSRTimeout() = %v, want %v", got, ssr.DefaultTimeout)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "name": "myapp",
  "entry": "src/app.ts",
  "ssr": {
    "enabled": true,
    "url": "http://127.0.0.1:14000"
  }
}`
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Name != "myapp" {
		t.Errorf("Name = %q, want %q", cfg.Name, "myapp")
	}
	if cfg.Entry != "src/app.ts" {
		t.Errorf("Entry = %q, want %q", cfg.Entry, "src/app.ts")
	}
	if !cfg.SSR.Enabled {
		t.Error("SSR.Enabled should be true")
	}
	if cfg.SSR.URL != "http://127.0.0.1:14000" {
		t.Errorf("SSR.URL = %q", cfg.SSR.URL)
	}

	// Missing fields fall back to defaults.
	if cfg.Template != DefaultTemplate {
		t.Errorf("Template = %q, want default %q", cfg.Template, DefaultTemplate)
	}
	if cfg.Dev.DebounceMs != DefaultDebounceMs {
		t.Errorf("Dev.DebounceMs = %d, want %d", cfg.Dev.DebounceMs, DefaultDebounceMs)
	}

	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := errorCode(t, err); code != "E100" {
		t.Errorf("code = %q, want E100", code)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := "{\n  \"entry\": ,\n}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected an error")
	}

	var ie *ierrors.InertiaError
	if !errors.As(err, &ie) {
		t.Fatalf("error is %T: %v", err, err)
	}
	if ie.Code != "E101" {
		t.Errorf("code = %q, want E101", ie.Code)
	}
	if ie.Location == nil {
		t.Fatal("Location is nil")
	}
	if ie.Location.Line != 2 {
		t.Errorf("Line = %d, want 2", ie.Location.Line)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Name = "myapp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved file should end with a newline")
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}

	// Save goes back to the same path once one is set.
	cfg.Name = "renamed"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	reloaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Name != "renamed" {
		t.Errorf("Name = %q, want %q", reloaded.Name, "renamed")
	}
}

func TestSave_NoPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestApplyDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	t.Run("explicit false survives", func(t *testing.T) {
		content := `{"dev": {"reload": false}}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Dev.Reload {
			t.Error("Dev.Reload = true, want false")
		}
	})

	t.Run("omitted keeps default", func(t *testing.T) {
		content := `{"entry": "src/app.ts"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !cfg.Dev.Reload {
			t.Error("Dev.Reload = false, want default true")
		}
		if cfg.SSR.Runtime != DefaultSSRRuntime {
			t.Errorf("SSR.Runtime = %q, want %q", cfg.SSR.Runtime, DefaultSSRRuntime)
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}

	cfg.Dev.DebounceMs = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for negative debounce")
	}
	if code := errorCode(t, err); code != "E102" {
		t.Errorf("code = %q, want E102", code)
	}

	cfg = New()
	cfg.SSR.TimeoutMs = -100
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for negative timeout")
	}
}

func TestDurations(t *testing.T) {
	cfg := New()
	if got := cfg.DevDebounce(); got != 100*time.Millisecond {
		t.Errorf("DevDebounce() = %v, want 100ms", got)
	}

	cfg.SSR.TimeoutMs = 2500
	if got := cfg.SSRTimeout(); got != 2500*time.Millisecond {
		t.Errorf("SSRTimeout() = %v, want 2.5s", got)
	}
}

func TestPathHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := cfg.ManifestPath(), filepath.Join(dir, DefaultManifest); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
	if got, want := cfg.TemplatePath(), filepath.Join(dir, DefaultTemplate); got != want {
		t.Errorf("TemplatePath() = %q, want %q", got, want)
	}
	if got, want := cfg.DistPath(), filepath.Join(dir, DefaultDist); got != want {
		t.Errorf("DistPath() = %q, want %q", got, want)
	}
	if got, want := cfg.SSRBundlePath(), filepath.Join(dir, DefaultSSRBundle); got != want {
		t.Errorf("SSRBundlePath() = %q, want %q", got, want)
	}

	// Absolute paths pass through untouched.
	cfg.Assets.Manifest = "/srv/assets/manifest.json"
	if got := cfg.ManifestPath(); got != "/srv/assets/manifest.json" {
		t.Errorf("ManifestPath() = %q, want absolute passthrough", got)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists() = true for empty directory")
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Error("Exists() = false after writing config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "internal", "handlers")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error: %v", err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}

	// No config anywhere up the tree.
	_, err = FindProjectRoot(t.TempDir())
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := errorCode(t, err); code != "E100" {
		t.Errorf("code = %q, want E100", code)
	}
}
