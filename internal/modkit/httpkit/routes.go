package httpkit

import "net/http"

// MountUnder mounts a module subtree at prefix with its middlewares applied
// before any of its routes; modules call this from MountRoutes
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
