package inertiatest

import (
	"encoding/json"
	"html"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/inertia-go/inertia/pkg/protocol"
)

// Page wraps a decoded page object with assertion helpers. Assertions
// chain and report failures through the test they were parsed with.
type Page struct {
	t *testing.T
	protocol.Page
}

// ParsePage extracts the page object from a recorded response. It
// understands both response forms: the JSON body of a hydrated response
// and the data-page attribute of a full HTML document.
func ParsePage(t *testing.T, rr *httptest.ResponseRecorder) *Page {
	t.Helper()

	body := rr.Body.String()
	raw := body
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		attr, ok := extractDataPage(body)
		if !ok {
			t.Fatalf("response has no data-page attribute:\n%s", truncate(body, 500))
		}
		raw = html.UnescapeString(attr)
	}

	var pg protocol.Page
	if err := json.Unmarshal([]byte(raw), &pg); err != nil {
		t.Fatalf("page object is not valid JSON: %v\n%s", err, truncate(raw, 500))
	}
	return &Page{t: t, Page: pg}
}

// AssertComponent asserts the page names the given component.
func (p *Page) AssertComponent(want string) *Page {
	p.t.Helper()
	if p.Component != want {
		p.t.Errorf("component = %q, want %q", p.Component, want)
	}
	return p
}

// AssertURL asserts the page carries the given URL.
func (p *Page) AssertURL(want string) *Page {
	p.t.Helper()
	if p.URL != want {
		p.t.Errorf("url = %q, want %q", p.URL, want)
	}
	return p
}

// AssertVersion asserts the page carries the given asset version.
func (p *Page) AssertVersion(want string) *Page {
	p.t.Helper()
	if p.Version != want {
		p.t.Errorf("version = %q, want %q", p.Version, want)
	}
	return p
}

// AssertProp asserts a prop is present with the given value. The wanted
// value is compared after a JSON round trip, so numeric types do not
// need to match exactly.
//
// Example:
//
//	page.AssertProp("page", 2).AssertProp("user", map[string]any{"name": "ada"})
func (p *Page) AssertProp(key string, want any) *Page {
	p.t.Helper()
	got, ok := p.Props[key]
	if !ok {
		p.t.Errorf("prop %q missing, have %v", key, p.propKeys())
		return p
	}
	if norm := normalize(want); !reflect.DeepEqual(got, norm) {
		p.t.Errorf("prop %q = %#v, want %#v", key, got, norm)
	}
	return p
}

// AssertPropMissing asserts a prop was filtered out of the page.
func (p *Page) AssertPropMissing(key string) *Page {
	p.t.Helper()
	if v, ok := p.Props[key]; ok {
		p.t.Errorf("prop %q = %#v, want absent", key, v)
	}
	return p
}

// AssertPropKeys asserts the page carries exactly the given prop keys.
// Useful for pinning down what a partial reload returned.
func (p *Page) AssertPropKeys(keys ...string) *Page {
	p.t.Helper()
	got := p.propKeys()
	want := append([]string(nil), keys...)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		p.t.Errorf("prop keys = %v, want %v", got, want)
	}
	return p
}

// Prop returns a prop value for custom assertions, or nil when absent.
func (p *Page) Prop(key string) any {
	return p.Props[key]
}

func (p *Page) propKeys() []string {
	keys := make([]string, 0, len(p.Props))
	for k := range p.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize round-trips a value through JSON, matching how props come
// back out of a response.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// extractDataPage pulls the raw data-page attribute from an HTML document.
func extractDataPage(doc string) (string, bool) {
	const marker = `data-page="`
	i := strings.Index(doc, marker)
	if i < 0 {
		return "", false
	}
	rest := doc[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
