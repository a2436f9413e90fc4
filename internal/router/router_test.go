package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/filesubmit/internal/config"
	"github.com/deppfellow/filesubmit/internal/handler"
	"github.com/deppfellow/filesubmit/internal/middleware"
	"github.com/deppfellow/filesubmit/internal/router"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.DefaultConfig()
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	return router.NewRouter(s, handler.NewHandlers(s))
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return do(e, req)
}

func TestIndexRendersForm(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Errorf("content type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"<form", `method="post"`, `name="file_name"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestPostRedirects(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name         string
		form         url.Values
		wantLocation string
	}{
		{name: "plain name", form: url.Values{"file_name": {"report.txt"}}, wantLocation: "/submit/report.txt"},
		{name: "missing field", form: url.Values{}, wantLocation: "/submit/"},
		{name: "empty field", form: url.Values{"file_name": {""}}, wantLocation: "/submit/"},
		{name: "space", form: url.Values{"file_name": {"a b.txt"}}, wantLocation: "/submit/a%20b.txt"},
		{name: "slash stays one segment", form: url.Values{"file_name": {"dir/a.txt"}}, wantLocation: "/submit/dir%2Fa.txt"},
		{name: "query chars", form: url.Values{"file_name": {"a?b#c.txt"}}, wantLocation: "/submit/a%3Fb%23c.txt"},
		{name: "other fields ignored", form: url.Values{"file_name": {"x.log"}, "other": {"y"}}, wantLocation: "/submit/x.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(e, tt.form)

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tt.wantLocation {
				t.Errorf("location = %q, want %q", got, tt.wantLocation)
			}
		})
	}
}

func TestPostIgnoresQueryString(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/?file_name=fromquery", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := do(e, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/submit/" {
		t.Errorf("location = %q, want /submit/", got)
	}
}

func TestPostWithoutFormBodyStillRedirects(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not a form"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)

	rec := do(e, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/submit/" {
		t.Errorf("location = %q, want /submit/", got)
	}
}

func TestSubmitShowsFileName(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name     string
		path     string
		want     string
		dontWant string
	}{
		{name: "plain", path: "/submit/report.txt", want: "report.txt"},
		{name: "escaped space", path: "/submit/a%20b.txt", want: "a b.txt"},
		{name: "escaped slash", path: "/submit/dir%2Fa.txt", want: "dir/a.txt"},
		{name: "markup is escaped", path: "/submit/%3Cb%3Ex%3C%2Fb%3E", want: "&lt;b&gt;x&lt;/b&gt;", dontWant: "<b>x</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q:\n%s", tt.want, rec.Body.String())
			}
			if tt.dontWant != "" && strings.Contains(rec.Body.String(), tt.dontWant) {
				t.Errorf("body contains unescaped %q", tt.dontWant)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	e := newTestRouter(t)

	for _, name := range []string{"report.txt", "a b.txt", "", "ünïcode.md"} {
		t.Run(name, func(t *testing.T) {
			rec := postForm(e, url.Values{"file_name": {name}})
			if rec.Code != http.StatusFound {
				t.Fatalf("post status = %d, want 302", rec.Code)
			}

			location := rec.Header().Get(echo.HeaderLocation)
			page := do(e, httptest.NewRequest(http.MethodGet, location, nil))

			if page.Code != http.StatusOK {
				t.Fatalf("GET %s status = %d, want 200", location, page.Code)
			}
			want := `<strong id="file_name">` + name + `</strong>`
			if !strings.Contains(page.Body.String(), want) {
				t.Errorf("GET %s body missing %q", location, want)
			}
		})
	}
}

func TestUnknownRouteRendersErrorPage(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Route not found") {
		t.Errorf("body missing error message:\n%s", rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("error responses must carry a request id")
	}
}

func TestPagesAnswerHead(t *testing.T) {
	e := newTestRouter(t)

	for _, path := range []string{"/", "/submit/report.txt", "/submit/"} {
		t.Run(path, func(t *testing.T) {
			rec := do(e, httptest.NewRequest(http.MethodHead, path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("HEAD %s status = %d, want 200", path, rec.Code)
			}
		})
	}
}

func TestSubmitRejectsPost(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, httptest.NewRequest(http.MethodPost, "/submit/report.txt", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Status      string                            `json:"status"`
		Environment string                            `json:"environment"`
		Checks      map[string]map[string]interface{} `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.Environment != "development" {
		t.Errorf("environment = %q, want development", body.Environment)
	}
	if body.Checks["templates"]["status"] != "healthy" {
		t.Errorf("templates check = %v", body.Checks["templates"])
	}
}
