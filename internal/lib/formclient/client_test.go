package formclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/filesubmit/internal/config"
	"github.com/deppfellow/filesubmit/internal/handler"
	"github.com/deppfellow/filesubmit/internal/lib/formclient"
	"github.com/deppfellow/filesubmit/internal/router"
	"github.com/deppfellow/filesubmit/internal/server"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
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

	ts := httptest.NewServer(router.NewRouter(s, handler.NewHandlers(s)))
	t.Cleanup(ts.Close)
	return ts
}

func TestSubmit(t *testing.T) {
	ts := newTestServer(t)
	client := formclient.New(ts.URL+"/", 5*time.Second)

	tests := []struct {
		fileName string
		wantPath string
	}{
		{fileName: "report.txt", wantPath: "/submit/report.txt"},
		{fileName: "a b.txt", wantPath: "/submit/a%20b.txt"},
		{fileName: "", wantPath: "/submit/"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			got, err := client.Submit(context.Background(), tt.fileName)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if want := ts.URL + tt.wantPath; got != want {
				t.Errorf("location = %q, want %q", got, want)
			}

			resp, err := http.Get(got)
			if err != nil {
				t.Fatalf("GET %s: %v", got, err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("GET %s status = %d, want 200", got, resp.StatusCode)
			}
		})
	}
}

func TestSubmitRejectsNonRedirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	if _, err := formclient.New(ts.URL, time.Second).Submit(context.Background(), "x"); err == nil {
		t.Fatal("expected an error when the server does not redirect")
	}
}
