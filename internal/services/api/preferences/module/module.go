// Package module wires preferences into the API using modkit
package module

import (
	"net/http"

	modkit "notifygate/internal/modkit"
	"notifygate/internal/modkit/httpkit"
	"notifygate/internal/modkit/repokit"
	str "notifygate/internal/platform/strings"

	prefhttp "notifygate/internal/services/api/preferences/http"
	prefrepo "notifygate/internal/services/api/preferences/repo"
	prefsvc "notifygate/internal/services/api/preferences/service"
)

// Module implements the preferences module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc prefsvc.Service
}

// New constructs the preferences module
// it binds the postgres repo when a TxRunner is present, otherwise the
// in-memory repo serves as the default store
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("preferences"), modkit.WithPrefix("/preferences")},
		opts...,
	)...)

	var r prefrepo.Repo
	if deps.PG != nil {
		r = repokit.MustBind(prefrepo.NewPG(), deps.PG)
	} else {
		r = prefrepo.NewMemory()
	}
	svc := prefsvc.New(r)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		prefhttp.Register(r, m.svc)
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
