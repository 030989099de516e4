package module

import (
	"net/http"
	"strings"
)

// Router routes requests to mounted modules keyed by the first path segment.
// Requests whose leading segment matches no module fall through to a plain
// ServeMux, which carries the non-modular endpoints such as health probes.
type Router struct {
	modules  map[string]*Module
	fallback *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		modules:  make(map[string]*Module),
		fallback: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.fallback.HandleFunc(pattern, handler)
}

// Mount attaches a module under its prefix. Mounting a second module with the
// same prefix replaces the first.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := canonicalPath(req)

	if m, ok := r.modules[leadingSegment(path)]; ok {
		m.Serve(w, req)
		return
	}

	r.fallback.ServeHTTP(w, req)
}

// leadingSegment returns the first path segment with its leading slash, the
// key modules are mounted under.
func leadingSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}

// canonicalPath drops a trailing slash so "/documents/" and "/documents"
// route identically. The request URL is rewritten in place since modules
// slice the prefix off the same path.
func canonicalPath(req *http.Request) string {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req.URL.Path = path
	}
	return path
}
