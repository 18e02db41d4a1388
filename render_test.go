package inertia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/inertia-go/inertia/pkg/flash"
	"github.com/inertia-go/inertia/pkg/props"
	"github.com/inertia-go/inertia/pkg/protocol"
)

// testResolver renders a deterministic document without touching the
// filesystem.
func testResolver() TemplateResolver {
	return func(ctx context.Context, data ViewData) (string, error) {
		body, err := data.BodyHTML(DefaultContainerID)
		if err != nil {
			return "", err
		}
		return "<html><head>" + data.HeadHTML() + "</head><body>" + body + "</body></html>", nil
	}
}

func newTestInertia(t *testing.T, cfg Config) *Inertia {
	t.Helper()
	if cfg.TemplateResolver == nil && cfg.RootTemplate == "" {
		cfg.TemplateResolver = testResolver()
	}
	in, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return in
}

func hydratedRequest(target, version string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(protocol.HeaderInertia, "true")
	if version != "" {
		req.Header.Set(protocol.HeaderVersion, version)
	}
	return req
}

func decodePage(t *testing.T, rr *httptest.ResponseRecorder) protocol.Page {
	t.Helper()
	var page protocol.Page
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page body: %v", err)
	}
	return page
}

func TestRender_HydratedDataResponse(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	rr := httptest.NewRecorder()
	err := in.RenderWithProps(rr, hydratedRequest("http://example.com/events?page=2", "v1"), "Events/Index", props.Map{
		"events": props.Data([]any{"expo"}),
	})
	if err != nil {
		t.Fatalf("RenderWithProps() error = %v", err)
	}

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get(protocol.HeaderInertia); got != "true" {
		t.Errorf("X-Inertia = %q, want %q", got, "true")
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want %q", got, "application/json")
	}

	page := decodePage(t, rr)
	if page.Component != "Events/Index" {
		t.Errorf("component = %q, want %q", page.Component, "Events/Index")
	}
	if page.URL != "/events?page=2" {
		t.Errorf("url = %q, want %q", page.URL, "/events?page=2")
	}
	if page.Version != "v1" {
		t.Errorf("version = %q, want %q", page.Version, "v1")
	}
	if !reflect.DeepEqual(page.Props["events"], []any{"expo"}) {
		t.Errorf("events prop = %v, want %v", page.Props["events"], []any{"expo"})
	}
}

func TestRender_PlainNavigationHTML(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/events", nil)
	rr := httptest.NewRecorder()
	if err := in.Render(rr, req, "Events/Index"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want html", got)
	}
	if rr.Header().Get(protocol.HeaderInertia) != "" {
		t.Errorf("X-Inertia set on an HTML response")
	}

	body := rr.Body.String()
	if !strings.Contains(body, `<div id="app" data-page="`) {
		t.Errorf("body missing hydration container: %q", body)
	}
	if !strings.Contains(body, "Events/Index") {
		t.Errorf("body missing component name: %q", body)
	}
}

func TestRender_VersionNegotiation(t *testing.T) {
	t.Run("equal version proceeds", func(t *testing.T) {
		in := newTestInertia(t, Config{Version: "v1"})
		rr := httptest.NewRecorder()
		in.Render(rr, hydratedRequest("http://example.com/events", "v1"), "Events/Index")
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
	})

	t.Run("absent version proceeds", func(t *testing.T) {
		in := newTestInertia(t, Config{Version: "v1"})
		rr := httptest.NewRecorder()
		in.Render(rr, hydratedRequest("http://example.com/events", ""), "Events/Index")
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
	})

	t.Run("stale hydrated client conflicts", func(t *testing.T) {
		in := newTestInertia(t, Config{Version: "v2"})
		rr := httptest.NewRecorder()
		in.Render(rr, hydratedRequest("http://example.com/events?page=3", "v1"), "Events/Index")
		if rr.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
		}
		if got := rr.Header().Get(protocol.HeaderLocation); got != "/events?page=3" {
			t.Errorf("X-Inertia-Location = %q, want %q", got, "/events?page=3")
		}
	})

	t.Run("stale plain navigation redirects", func(t *testing.T) {
		in := newTestInertia(t, Config{Version: "v2"})
		req := httptest.NewRequest(http.MethodGet, "http://example.com/events", nil)
		req.Header.Set(protocol.HeaderVersion, "v1")
		rr := httptest.NewRecorder()
		in.Render(rr, req, "Events/Index")
		if rr.Code != http.StatusFound {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != "/events" {
			t.Errorf("Location = %q, want %q", got, "/events")
		}
	})
}

func TestRender_ForcedRefreshReflash(t *testing.T) {
	var got *flash.Flash
	in := newTestInertia(t, Config{
		Version: "v2",
		Reflash: func(w http.ResponseWriter, r *http.Request, f *flash.Flash) error {
			got = f
			return nil
		},
	})

	f := &flash.Flash{Errors: map[string]any{"name": "required"}}
	req := hydratedRequest("http://example.com/submit", "v1")
	req = req.WithContext(flash.NewContext(req.Context(), f))

	rr := httptest.NewRecorder()
	in.Render(rr, req, "Form")

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	if got == nil || !reflect.DeepEqual(got.Errors, f.Errors) {
		t.Errorf("reflash received %+v, want %+v", got, f)
	}
}

func TestRender_ReflashFailureStillRefreshes(t *testing.T) {
	in := newTestInertia(t, Config{
		Version: "v2",
		Reflash: func(w http.ResponseWriter, r *http.Request, f *flash.Flash) error {
			return errors.New("store down")
		},
	})

	req := hydratedRequest("http://example.com/submit", "v1")
	req = req.WithContext(flash.NewContext(req.Context(), &flash.Flash{PrevURL: "/form"}))

	rr := httptest.NewRecorder()
	in.Render(rr, req, "Form")

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestRender_PartialOnly(t *testing.T) {
	categoriesCalls, eventsCalls := 0, 0
	in := newTestInertia(t, Config{Version: "v1"})

	req := hydratedRequest("http://example.com/events", "v1")
	req.Header.Set(protocol.HeaderPartialComponent, "Events/Index")
	req.Header.Set(protocol.HeaderPartialData, "events")

	rr := httptest.NewRecorder()
	err := in.RenderWithProps(rr, req, "Events/Index", props.Map{
		"auth":       props.Always("user-1"),
		"categories": props.Lazy(func() (any, error) { categoriesCalls++; return "cats", nil }),
		"events":     props.Lazy(func() (any, error) { eventsCalls++; return "evts", nil }),
	})
	if err != nil {
		t.Fatalf("RenderWithProps() error = %v", err)
	}

	page := decodePage(t, rr)
	if _, ok := page.Props["categories"]; ok {
		t.Errorf("categories included despite only filter")
	}
	if page.Props["events"] != "evts" {
		t.Errorf("events = %v, want %q", page.Props["events"], "evts")
	}
	if page.Props["auth"] != "user-1" {
		t.Errorf("auth = %v, want Always prop to bypass the filter", page.Props["auth"])
	}
	if categoriesCalls != 0 || eventsCalls != 1 {
		t.Errorf("thunk calls = (%d, %d), want (0, 1)", categoriesCalls, eventsCalls)
	}
}

func TestRender_PartialExcept(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	req := hydratedRequest("http://example.com/events", "v1")
	req.Header.Set(protocol.HeaderPartialComponent, "Events/Index")
	req.Header.Set(protocol.HeaderPartialExcept, "categories")

	rr := httptest.NewRecorder()
	in.RenderWithProps(rr, req, "Events/Index", props.Map{
		"categories": props.Data("cats"),
		"events":     props.Data("evts"),
	})

	page := decodePage(t, rr)
	if _, ok := page.Props["categories"]; ok {
		t.Errorf("categories included despite except filter")
	}
	if page.Props["events"] != "evts" {
		t.Errorf("events = %v, want %q", page.Props["events"], "evts")
	}
}

func TestRender_StandardSkipsOnDemand(t *testing.T) {
	calls := 0
	in := newTestInertia(t, Config{Version: "v1"})

	rr := httptest.NewRecorder()
	in.RenderWithProps(rr, hydratedRequest("http://example.com/radio", "v1"), "Radio", props.Map{
		"radioStatus": props.OnDemand(func() (any, error) { calls++; return "on-air", nil }),
		"categories":  props.Data("cats"),
	})

	page := decodePage(t, rr)
	if _, ok := page.Props["radioStatus"]; ok {
		t.Errorf("radioStatus included on a standard visit")
	}
	if page.Props["categories"] != "cats" {
		t.Errorf("categories = %v, want %q", page.Props["categories"], "cats")
	}
	if calls != 0 {
		t.Errorf("radioStatus thunk called %d times, want 0", calls)
	}
}

func TestRender_SharedPropsRoutePrecedence(t *testing.T) {
	in := newTestInertia(t, Config{
		Version: "v1",
		SharedProps: func(r *http.Request) props.Map {
			return props.Map{
				"auth": props.Data("user-1"),
				"dup":  props.Data("shared"),
			}
		},
	})

	rr := httptest.NewRecorder()
	in.RenderWithProps(rr, hydratedRequest("http://example.com/x", "v1"), "X", props.Map{
		"dup": props.Data("route"),
	})

	page := decodePage(t, rr)
	if page.Props["auth"] != "user-1" {
		t.Errorf("auth = %v, want shared prop present", page.Props["auth"])
	}
	if page.Props["dup"] != "route" {
		t.Errorf("dup = %v, want route props to win", page.Props["dup"])
	}
}

func TestRender_ContextProps(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	req := hydratedRequest("http://example.com/x", "v1")
	req.Header.Set(protocol.HeaderPartialComponent, "X")
	req.Header.Set(protocol.HeaderPartialData, "events")
	ctx := WithProps(req.Context(), props.Map{"errors": props.Always(map[string]any{"name": "required"})})
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	in.RenderWithProps(rr, req, "X", props.Map{
		"events": props.Data("evts"),
	})

	page := decodePage(t, rr)
	want := map[string]any{"name": "required"}
	if !reflect.DeepEqual(page.Props["errors"], want) {
		t.Errorf("errors = %v, want Always context prop to survive the partial filter", page.Props["errors"])
	}
}

func TestRender_ThunkErrorFailsRequest(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	rr := httptest.NewRecorder()
	err := in.RenderWithProps(rr, hydratedRequest("http://example.com/x", "v1"), "X", props.Map{
		"boom": props.Lazy(func() (any, error) { return nil, errors.New("db down") }),
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	var re *props.ResolveError
	if !errors.As(err, &re) || re.Key != "boom" {
		t.Errorf("error = %v, want ResolveError for key %q", err, "boom")
	}
}

func TestRender_MalformedHeaderRejected(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	req := hydratedRequest("http://example.com/x", "v1")
	req.Header.Set(protocol.HeaderPartialComponent, "X")
	req.Header.Set(protocol.HeaderPartialData, "ev\x01ents")

	rr := httptest.NewRecorder()
	err := in.Render(rr, req, "X")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !errors.Is(err, protocol.ErrHeader) {
		t.Errorf("error = %v, want ErrHeader", err)
	}
}

func TestRender_SSRDocument(t *testing.T) {
	renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/render" {
			t.Errorf("renderer path = %s, want /render", r.URL.Path)
		}
		json.NewEncoder(w).Encode(protocol.SSRPage{
			Head: []string{"<title>Events</title>"},
			Body: "<div data-server-rendered>ok</div>",
		})
	}))
	defer renderer.Close()

	in := newTestInertia(t, Config{
		Version: "v1",
		SSR:     &SSRConfig{BaseURL: renderer.URL},
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/events", nil)
	rr := httptest.NewRecorder()
	if err := in.Render(rr, req, "Events/Index"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "<div data-server-rendered>ok</div>") {
		t.Errorf("body missing SSR markup: %q", body)
	}
	if !strings.Contains(body, "<title>Events</title>") {
		t.Errorf("body missing SSR head fragment: %q", body)
	}
	if strings.Contains(body, "data-page=") {
		t.Errorf("hydration container emitted despite SSR: %q", body)
	}
}

func TestRender_SSRTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	renderer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		renderer.Close()
	}()

	var fellBack string
	in := newTestInertia(t, Config{
		Version:       "v1",
		SSR:           &SSRConfig{BaseURL: renderer.URL, Timeout: 50 * time.Millisecond},
		OnSSRFallback: func(component string) { fellBack = component },
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/events", nil)
	rr := httptest.NewRecorder()

	start := time.Now()
	err := in.Render(rr, req, "Events/Index")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Render() error = %v, want fallback to succeed", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `data-page="`) {
		t.Errorf("body missing hydration container after fallback")
	}
	if fellBack != "Events/Index" {
		t.Errorf("OnSSRFallback component = %q, want %q", fellBack, "Events/Index")
	}
	if elapsed > 2*time.Second {
		t.Errorf("Render() blocked %v, want bounded by the SSR timeout", elapsed)
	}
}

func TestRender_TemplateFailure(t *testing.T) {
	in := newTestInertia(t, Config{
		Version: "v1",
		TemplateResolver: func(ctx context.Context, data ViewData) (string, error) {
			return "", errors.New("disk gone")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/events", nil)
	rr := httptest.NewRecorder()
	err := in.Render(rr, req, "Events/Index")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !errors.Is(err, ErrTemplate) {
		t.Errorf("error = %v, want ErrTemplate", err)
	}
}

func TestVersionPerRequest(t *testing.T) {
	current := "v1"
	in := newTestInertia(t, Config{
		VersionFunc:       func() (string, error) { return current, nil },
		VersionPerRequest: true,
	})

	rr := httptest.NewRecorder()
	in.Render(rr, hydratedRequest("http://example.com/x", "v1"), "X")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d before the version moves", rr.Code, http.StatusOK)
	}

	current = "v2"
	rr = httptest.NewRecorder()
	in.Render(rr, hydratedRequest("http://example.com/x", "v1"), "X")
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d after the version moves", rr.Code, http.StatusConflict)
	}
}

func TestVersionOneShotByDefault(t *testing.T) {
	current := "v1"
	in := newTestInertia(t, Config{
		VersionFunc: func() (string, error) { return current, nil },
	})

	current = "v2"
	rr := httptest.NewRecorder()
	in.Render(rr, hydratedRequest("http://example.com/x", "v1"), "X")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want construction-time version to hold", rr.Code)
	}
	if in.Version() != "v1" {
		t.Errorf("Version() = %q, want %q", in.Version(), "v1")
	}
}

func TestNew_VersionFuncError(t *testing.T) {
	_, err := New(Config{
		TemplateResolver: testResolver(),
		VersionFunc:      func() (string, error) { return "", errors.New("manifest missing") },
	})
	if err == nil {
		t.Fatal("New() error = nil, want version resolution failure")
	}
}

func TestNew_RequiresTemplate(t *testing.T) {
	_, err := New(Config{Version: "v1"})
	if err == nil {
		t.Fatal("New() error = nil, want missing template configuration to fail")
	}
}

func TestHandler(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	h := in.Handler("Events/Index", func(r *http.Request) (props.Map, error) {
		return props.Map{"events": props.Data("evts")}, nil
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, hydratedRequest("http://example.com/events", "v1"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if page := decodePage(t, rr); page.Props["events"] != "evts" {
		t.Errorf("events = %v, want %q", page.Props["events"], "evts")
	}
}

func TestHandler_PropsError(t *testing.T) {
	in := newTestInertia(t, Config{Version: "v1"})

	h := in.Handler("Events/Index", func(r *http.Request) (props.Map, error) {
		return nil, errors.New("db down")
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, hydratedRequest("http://example.com/events", "v1"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
