package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	Decide(ctx context.Context, in EventPayload) (DecisionResponse, error)
}
