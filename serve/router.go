package serve

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// route binds a method and a path prefix to a handler.
type route struct {
	method  string
	prefix  string
	handler http.HandlerFunc
}

// router dispatches requests to the handler registered under the longest
// matching path prefix. The table is fixed after startup and dispatch
// holds no mutable state, so concurrent requests need no locking.
type router struct {
	routes []route
}

func (rt *router) add(method, prefix string, handler http.HandlerFunc) {
	rt.routes = append(rt.routes, route{method: method, prefix: prefix, handler: handler})
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var best *route
	for i := range rt.routes {
		candidate := &rt.routes[i]
		if candidate.method != r.Method {
			continue
		}
		if !matchesPrefix(r.URL.Path, candidate.prefix) {
			continue
		}
		if best == nil || len(candidate.prefix) > len(best.prefix) {
			best = candidate
		}
	}
	if best == nil {
		http.NotFound(w, r)
		return
	}
	best.handler(w, r)
}

// matchesPrefix reports whether path falls under prefix on a path-segment
// boundary.
func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// logRequests wraps a handler with request debug logging.
func logRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("uri", r.RequestURI).Msg("Request received")
		next(w, r)
	}
}
