package inertia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"html/template"

	"github.com/inertia-go/inertia/pkg/protocol"
)

// =============================================================================
// Template Contract
// =============================================================================

// ViewData is everything the template layer needs to produce the full HTML
// document for a plain navigation.
type ViewData struct {
	// Page is the assembled page object.
	Page protocol.Page

	// SSR holds the renderer's output, or nil when rendering falls back
	// to client-side hydration.
	SSR *protocol.SSRPage

	// View carries Config.ViewData through to the template.
	View map[string]any
}

// TemplateResolver produces the complete HTML document for a view. The
// controller treats any returned error as fatal to the request.
//
// pkg/vite ships a manifest-aware resolver; HTMLTemplateResolver adapts a
// plain html/template document.
type TemplateResolver func(ctx context.Context, data ViewData) (string, error)

// BodyHTML returns the document body fragment for the view: the renderer's
// markup when SSR ran, the hydration container otherwise.
func (v ViewData) BodyHTML(containerID string) (string, error) {
	if v.SSR != nil {
		return v.SSR.Body, nil
	}
	return ContainerHTML(containerID, v.Page)
}

// HeadHTML returns the document head fragment for the view. It is empty
// without SSR.
func (v ViewData) HeadHTML() string {
	if v.SSR != nil {
		return v.SSR.HeadHTML()
	}
	return ""
}

// ContainerHTML renders the hydration mount point for page: a div whose
// data-page attribute carries the serialized page object the client
// runtime boots from.
func ContainerHTML(id string, page protocol.Page) (string, error) {
	data, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	if id == "" {
		id = DefaultContainerID
	}
	return `<div id="` + html.EscapeString(id) + `" data-page="` + html.EscapeString(string(data)) + `"></div>`, nil
}

// =============================================================================
// html/template Adapter
// =============================================================================

// TemplateData is the dot value HTMLTemplateResolver executes the root
// template with. InertiaHead and InertiaBody are pre-rendered fragments
// and must be emitted unescaped ({{.InertiaHead}} / {{.InertiaBody}}).
type TemplateData struct {
	InertiaHead template.HTML
	InertiaBody template.HTML
	View        map[string]any
}

// HTMLTemplateResolver adapts the html/template document at path into a
// TemplateResolver. The file is re-read on every render so template edits
// show up without a restart.
func HTMLTemplateResolver(path, containerID string) TemplateResolver {
	return func(ctx context.Context, data ViewData) (string, error) {
		tmpl, err := template.ParseFiles(path)
		if err != nil {
			return "", fmt.Errorf("%w: parse %s: %v", ErrTemplate, path, err)
		}

		body, err := data.BodyHTML(containerID)
		if err != nil {
			return "", err
		}

		var buf bytes.Buffer
		err = tmpl.Execute(&buf, TemplateData{
			InertiaHead: template.HTML(data.HeadHTML()),
			InertiaBody: template.HTML(body),
			View:        data.View,
		})
		if err != nil {
			return "", fmt.Errorf("%w: execute %s: %v", ErrTemplate, path, err)
		}
		return buf.String(), nil
	}
}
