package endpoint

import (
	"net/http"
	"strings"

	"github.com/birkland/servefs"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
)

// ChiWildcard is the ParamFunc for chi routes ending in /*
func ChiWildcard(r *http.Request) string {
	return chi.URLParam(r, "*")
}

// Mount serves res under prefix on a chi router, for GET and HEAD.  Both
// the wildcard route and the bare prefix are registered, so that the prefix
// itself resolves the empty segment.
func Mount(r chi.Router, prefix string, res servefs.Resolver, opts ...Option) *Handler {
	h := New(res, ChiWildcard, opts...)

	prefix = strings.TrimRight(prefix, "/")
	patterns := []string{prefix + "/*", prefix + "/"}
	if prefix != "" {
		patterns = append(patterns, prefix)
	}

	for _, pattern := range patterns {
		r.Method(http.MethodGet, pattern, h)
		r.Method(http.MethodHead, pattern, h)
	}

	return h
}

// Gin adapts res to a gin handler, resolving the named path parameter.
// Register it on a wildcard route, e.g.
//
//	engine.GET("/static/*path", endpoint.Gin(res, "path"))
//
// gin keeps the leading solidus of wildcard values, which resolvers ignore.
func Gin(res servefs.Resolver, param string, opts ...Option) gin.HandlerFunc {
	h := New(res, nil, opts...)
	return func(c *gin.Context) {
		h.serve(c.Writer, c.Request, c.Param(param))
	}
}
