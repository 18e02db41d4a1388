package vite

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultDevServerURL is where `vite dev` listens by default.
const DefaultDevServerURL = "http://localhost:5173"

// DevVersion is the asset version reported against a dev server.
const DevVersion = "dev"

// ErrEntry reports a tag request for a module the manifest does not
// contain.
var ErrEntry = errors.New("vite: entry not in manifest")

// Tags renders the HTML that loads entry in production: stylesheet links
// first, then the entry module script, then modulepreload links for its
// static imports. base prefixes every asset path; empty means "/".
func (m *Manifest) Tags(entry, base string) (string, error) {
	root, ok := m.chunks[entry]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrEntry, entry)
	}

	var css, preload []string
	seen := map[string]bool{entry: true}
	m.walk(root, seen, &css, &preload)

	var tags []string
	for _, f := range css {
		tags = append(tags, `<link rel="stylesheet" href="`+assetURL(base, f)+`">`)
	}
	tags = append(tags, `<script type="module" src="`+assetURL(base, root.File)+`"></script>`)
	for _, f := range preload {
		tags = append(tags, `<link rel="modulepreload" href="`+assetURL(base, f)+`">`)
	}
	return strings.Join(tags, "\n"), nil
}

// walk gathers the stylesheets and preload targets reachable from c
// through static imports, depth first, deduplicated.
func (m *Manifest) walk(c Chunk, seen map[string]bool, css, preload *[]string) {
	for _, f := range c.CSS {
		if !seen["css:"+f] {
			seen["css:"+f] = true
			*css = append(*css, f)
		}
	}
	for _, name := range c.Imports {
		if seen[name] {
			continue
		}
		seen[name] = true
		imp, ok := m.chunks[name]
		if !ok {
			continue
		}
		*preload = append(*preload, imp.File)
		m.walk(imp, seen, css, preload)
	}
}

// DevTags renders the tags that load entry from a running Vite dev
// server: the HMR client first, then the entry module itself.
func DevTags(serverURL, entry string) string {
	if serverURL == "" {
		serverURL = DefaultDevServerURL
	}
	base := strings.TrimSuffix(serverURL, "/")
	return `<script type="module" src="` + base + `/@vite/client"></script>` + "\n" +
		`<script type="module" src="` + base + `/` + entry + `"></script>`
}

func assetURL(base, file string) string {
	if base == "" {
		base = "/"
	}
	return strings.TrimSuffix(base, "/") + "/" + file
}
