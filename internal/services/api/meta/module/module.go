// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "notifygate/internal/modkit"
	"notifygate/internal/modkit/httpkit"
	str "notifygate/internal/platform/strings"

	metahttp "notifygate/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
	httpDeps  metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	m.httpDeps = metahttp.Deps{
		ServiceName: "notifygate-api",
		StartedAt:   m.startedAt,
		PG:          deps.PG,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, m.httpDeps)
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
// the liveness alias lives at the root so probes need no prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	metahttp.RegisterRoot(r, m.httpDeps)
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		if m.subrouter != nil {
			sub = m.subrouter(sub)
		}
		if m.register != nil {
			m.register(sub)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
