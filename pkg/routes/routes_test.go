package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmallard/countersign/pkg/routes"
)

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()

	var hit string
	routes.Register(mux, routes.Group{
		Prefix: "/widgets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: func(w http.ResponseWriter, r *http.Request) {
				hit = "list"
			}},
			{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
				hit = "find:" + r.PathValue("id")
			}},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/widgets", nil))
	if hit != "list" {
		t.Errorf("hit = %q, want list", hit)
	}

	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/widgets/abc", nil))
	if hit != "find:abc" {
		t.Errorf("hit = %q, want find:abc", hit)
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	var hit bool
	routes.Register(mux, routes.Group{
		Prefix: "/evidence",
		Children: []routes.Group{
			{
				Prefix: "/orders",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
						hit = true
					}},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/evidence/orders/42", nil))
	if !hit {
		t.Error("nested route not registered")
	}
}

func TestRegisterMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/widgets",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/search", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/widgets/search", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
