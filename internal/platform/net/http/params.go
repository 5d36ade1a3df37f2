package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
)

// Param returns the named URL parameter bound by the router
func Param(r *stdhttp.Request, key string) string { return chi.URLParam(r, key) }
