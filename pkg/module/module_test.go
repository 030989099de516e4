package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmallard/countersign/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.URL.Path)
	})
}

func TestRouterDispatchesByPrefix(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/documents", echoPath()))
	router.HandleNative("GET /health", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "healthy")
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"module gets prefix-stripped path", "/documents/doc-1", "/doc-1"},
		{"trailing slash routes identically", "/documents/doc-1/", "/doc-1"},
		{"bare prefix becomes root", "/documents", "/"},
		{"unmatched prefix falls back", "/health", "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestNewRejectsBadPrefix(t *testing.T) {
	tests := []string{"", "documents", "/api/v1"}

	for _, prefix := range tests {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, echoPath())
		})
	}
}

func TestModuleMiddlewareApplies(t *testing.T) {
	m := module.New("/documents", echoPath())
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Trace", "t-1")
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(m)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/doc-1", nil))

	if rec.Header().Get("X-Trace") != "t-1" {
		t.Error("module middleware did not run")
	}
}
