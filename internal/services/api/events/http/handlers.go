// Package http provides http transport for event decisions
package http

import (
	stdhttp "net/http"

	"notifygate/internal/modkit/httpkit"
	"notifygate/internal/services/api/events/domain"
	svc "notifygate/internal/services/api/events/service"
)

// Register mounts event endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.EventPayload](r, "/", h.submit)
}

type handlers struct{ svc svc.Service }

// @Summary Submit an event for a notify or suppress decision
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.EventPayload true "Event"
// @Success 202 {object} domain.DecisionResponse "will process"
// @Success 200 {object} domain.DecisionResponse "suppressed, reason attached"
// @Failure 400 {object} errors.Wire "validation error or invalid timestamp"
// @Router /events [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.EventPayload) (any, error) {
	out, err := h.svc.Decide(r.Context(), in)
	if err != nil {
		return nil, err
	}
	// 202 says accepted for processing, 200 says decided and suppressed
	if out.Decision == domain.DecisionProcess {
		return httpkit.Accepted(out), nil
	}
	return httpkit.OK(out), nil
}
