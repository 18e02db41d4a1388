package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/inertia-go/inertia"
	"github.com/inertia-go/inertia/internal/errors"
	"github.com/inertia-go/inertia/pkg/ssr"
	"github.com/inertia-go/inertia/pkg/vite"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "inertia.json"

	// DefaultEntry is the default Vite entry chunk.
	DefaultEntry = "src/main.tsx"

	// DefaultTemplate is the default root template path.
	DefaultTemplate = "web/root.html"

	// DefaultManifest is where Vite writes the build manifest.
	DefaultManifest = "dist/.vite/manifest.json"

	// DefaultDist is the default build output directory.
	DefaultDist = "dist"

	// DefaultSSRBundle is the default server-side render bundle path.
	DefaultSSRBundle = "dist/ssr/ssr.js"

	// DefaultSSRRuntime is the default JavaScript runtime for the renderer.
	DefaultSSRRuntime = "node"

	// DefaultDebounceMs is the default manifest watch debounce.
	DefaultDebounceMs = 100
)

// configExample is shown when no inertia.json exists.
const configExample = `{
  "entry": "src/main.tsx",
  "template": "web/root.html",
  "assets": {
    "manifest": "dist/.vite/manifest.json"
  }
}`

// Config represents the complete inertia.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Entry is the Vite entry chunk, as keyed in the build manifest.
	Entry string `json:"entry,omitempty"`

	// Template is the path to the root HTML template.
	Template string `json:"template,omitempty"`

	// ContainerID is the id of the element the client app mounts into.
	ContainerID string `json:"containerId,omitempty"`

	// Assets contains build output configuration.
	Assets AssetsConfig `json:"assets,omitempty"`

	// Dev contains development-mode configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// SSR contains server-side rendering configuration.
	SSR SSRConfig `json:"ssr,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AssetsConfig contains build output configuration.
type AssetsConfig struct {
	// Manifest is the path to the Vite build manifest.
	Manifest string `json:"manifest,omitempty"`

	// Dist is the build output directory served to browsers.
	Dist string `json:"dist,omitempty"`

	// Base is the URL prefix assets are served under.
	Base string `json:"base,omitempty"`
}

// DevConfig contains development-mode settings.
type DevConfig struct {
	// Server is the Vite dev server origin.
	Server string `json:"server,omitempty"`

	// Reload enables browser refresh when the manifest changes.
	Reload bool `json:"reload,omitempty"`

	// DebounceMs coalesces bursts of manifest writes into one refresh.
	DebounceMs int `json:"debounceMs,omitempty"`
}

// SSRConfig contains server-side rendering settings.
type SSRConfig struct {
	// Enabled turns on SSR for full page loads.
	Enabled bool `json:"enabled,omitempty"`

	// URL is the address of the renderer process.
	URL string `json:"url,omitempty"`

	// Bundle is the path to the renderer's JavaScript bundle.
	Bundle string `json:"bundle,omitempty"`

	// Runtime is the JavaScript runtime binary used to run the bundle.
	Runtime string `json:"runtime,omitempty"`

	// TimeoutMs bounds a single render exchange.
	TimeoutMs int `json:"timeoutMs,omitempty"`
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		Entry:       DefaultEntry,
		Template:    DefaultTemplate,
		ContainerID: inertia.DefaultContainerID,
		Assets: AssetsConfig{
			Manifest: DefaultManifest,
			Dist:     DefaultDist,
			Base:     "/",
		},
		Dev: DevConfig{
			Server:     vite.DefaultDevServerURL,
			Reload:     true,
			DebounceMs: DefaultDebounceMs,
		},
		SSR: SSRConfig{
			Enabled:   false,
			URL:       ssr.DefaultBaseURL,
			Bundle:    DefaultSSRBundle,
			Runtime:   DefaultSSRRuntime,
			TimeoutMs: int(ssr.DefaultTimeout / time.Millisecond),
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for inertia.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No inertia.json found in " + filepath.Dir(path)).
				WithSuggestion("Create inertia.json at the project root").
				WithExample(configExample)
		}
		return nil, errors.New("E103").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.FromJSONError("E101", path, data, err).
			WithSuggestion("Check that inertia.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E103").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E103").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Entry == "" {
		c.Entry = DefaultEntry
	}
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.ContainerID == "" {
		c.ContainerID = inertia.DefaultContainerID
	}

	// Assets
	if c.Assets.Manifest == "" {
		c.Assets.Manifest = DefaultManifest
	}
	if c.Assets.Dist == "" {
		c.Assets.Dist = DefaultDist
	}
	if c.Assets.Base == "" {
		c.Assets.Base = "/"
	}

	// Dev
	if c.Dev.Server == "" {
		c.Dev.Server = vite.DefaultDevServerURL
	}
	if c.Dev.DebounceMs == 0 {
		c.Dev.DebounceMs = DefaultDebounceMs
	}

	// SSR
	if c.SSR.URL == "" {
		c.SSR.URL = ssr.DefaultBaseURL
	}
	if c.SSR.Bundle == "" {
		c.SSR.Bundle = DefaultSSRBundle
	}
	if c.SSR.Runtime == "" {
		c.SSR.Runtime = DefaultSSRRuntime
	}
	if c.SSR.TimeoutMs == 0 {
		c.SSR.TimeoutMs = int(ssr.DefaultTimeout / time.Millisecond)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.DebounceMs < 0 {
		return errors.New("E102").
			WithDetail("dev.debounceMs must not be negative")
	}
	if c.SSR.TimeoutMs < 0 {
		return errors.New("E102").
			WithDetail("ssr.timeoutMs must not be negative")
	}
	return nil
}

// DevDebounce returns the manifest watch debounce as a duration.
func (c *Config) DevDebounce() time.Duration {
	return time.Duration(c.Dev.DebounceMs) * time.Millisecond
}

// SSRTimeout returns the render timeout as a duration.
func (c *Config) SSRTimeout() time.Duration {
	return time.Duration(c.SSR.TimeoutMs) * time.Millisecond
}

// ManifestPath returns the absolute path to the build manifest.
func (c *Config) ManifestPath() string {
	return c.abs(c.Assets.Manifest, DefaultManifest)
}

// TemplatePath returns the absolute path to the root template.
func (c *Config) TemplatePath() string {
	return c.abs(c.Template, DefaultTemplate)
}

// DistPath returns the absolute path to the build output directory.
func (c *Config) DistPath() string {
	return c.abs(c.Assets.Dist, DefaultDist)
}

// SSRBundlePath returns the absolute path to the renderer bundle.
func (c *Config) SSRBundlePath() string {
	return c.abs(c.SSR.Bundle, DefaultSSRBundle)
}

// abs resolves a config path against the config file's directory.
func (c *Config) abs(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing inertia.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No inertia.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create inertia.json at the project root").
				WithExample(configExample)
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
