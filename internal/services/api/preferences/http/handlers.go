// Package http provides http transport for preferences
package http

import (
	stdhttp "net/http"

	"notifygate/internal/modkit/httpkit"
	"notifygate/internal/services/api/preferences/domain"
	svc "notifygate/internal/services/api/preferences/service"
)

// Register mounts preference endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// read the stored record
	httpkit.Get(r, "/{userId}", h.get)

	// full replace, no partial merge
	httpkit.PostJSON[domain.UpdateInput](r, "/{userId}", h.replace)
}

type handlers struct{ svc svc.Service }

// @Summary Read stored preferences
// @Tags Preferences
// @Produce json
// @Param userId path string true "User identifier"
// @Success 200 {object} domain.Preference "stored record"
// @Failure 404 {object} errors.Wire "no record for user"
// @Router /preferences/{userId} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "userId"))
}

// @Summary Replace preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param userId path string true "User identifier"
// @Param payload body domain.UpdateInput true "Preference record"
// @Success 200 {object} domain.Ack "acknowledgement"
// @Failure 400 {object} errors.Wire "validation error"
// @Router /preferences/{userId} [post]
func (h *handlers) replace(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Replace(r.Context(), httpkit.Param(r, "userId"), in)
}
