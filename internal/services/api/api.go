// Package api provides the HTTP API for the application
package api

import (
	"notifygate/internal/platform/config"
	"notifygate/internal/platform/logger"
	phttp "notifygate/internal/platform/net/http"
	"notifygate/internal/platform/store"

	"notifygate/internal/modkit"
	"notifygate/internal/modkit/httpkit"
	"notifygate/internal/modkit/module"

	eventsmod "notifygate/internal/services/api/events/module"
	metamod "notifygate/internal/services/api/meta/module"
	prefmod "notifygate/internal/services/api/preferences/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	// Construct preferences first and extract its Reader port,
	// the events module decides against it
	preferences := prefmod.New(deps)
	reader := module.MustPortsOf[prefmod.Ports](preferences).Reader

	events := eventsmod.New(
		deps,
		modkit.WithPorts(eventsmod.Ports{
			Prefs: reader,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		preferences,
		events,
	}

	phttp.MountSwagger(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	r.NotFound(phttp.NotFoundHandler)

	r.Group(func(g phttp.Router) {
		g.Use(httpkit.CommonStack()...)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(g)
		}
	})
}
