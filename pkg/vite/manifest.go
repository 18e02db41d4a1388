package vite

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Chunk is one record of Vite's build manifest: the fingerprinted output
// file for a source module, plus the static imports and stylesheets it
// pulls in.
type Chunk struct {
	File    string   `json:"file"`
	Src     string   `json:"src,omitempty"`
	IsEntry bool     `json:"isEntry,omitempty"`
	CSS     []string `json:"css,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

// Manifest is a parsed Vite manifest.json. Immutable after parsing and
// safe for concurrent use.
type Manifest struct {
	chunks map[string]Chunk
	sum    string
}

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vite: read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses raw manifest JSON. The manifest fingerprint is the SHA-256
// of the raw bytes, so any rebuild that touches the manifest moves the
// asset version.
func Parse(data []byte) (*Manifest, error) {
	var chunks map[string]Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("vite: parse manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return &Manifest{chunks: chunks, sum: hex.EncodeToString(sum[:])}, nil
}

// Version returns the manifest fingerprint used in asset version
// negotiation.
func (m *Manifest) Version() string { return m.sum }

// Chunk returns the chunk built from the named source module.
func (m *Manifest) Chunk(name string) (Chunk, bool) {
	c, ok := m.chunks[name]
	return c, ok
}

// Len returns the number of chunks in the manifest.
func (m *Manifest) Len() int { return len(m.chunks) }

// VersionFile returns a version source that re-reads the manifest at path
// on every call. Paired with per-request version resolution it picks up
// rebuilds without a server restart.
func VersionFile(path string) func() (string, error) {
	return func() (string, error) {
		m, err := Load(path)
		if err != nil {
			return "", err
		}
		return m.Version(), nil
	}
}
