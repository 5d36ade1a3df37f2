// Package module wires event decisions into the API using modkit
package module

import (
	"net/http"

	modkit "notifygate/internal/modkit"
	"notifygate/internal/modkit/httpkit"
	str "notifygate/internal/platform/strings"

	eventshttp "notifygate/internal/services/api/events/http"
	eventssvc "notifygate/internal/services/api/events/service"
)

// Module implements the events module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc eventssvc.Service
}

// New constructs the events module
// the preferences reader must be injected through WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("events"), modkit.WithPrefix("/events")},
		opts...,
	)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Prefs == nil {
		panic("events module requires a preferences reader port")
	}
	svc := eventssvc.New(ports.Prefs)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     b.Ports,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		eventshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		if m.subrouter != nil {
			sub = m.subrouter(sub)
		}
		if m.register != nil {
			m.register(sub)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
