package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	Get(ctx context.Context, userID string) (Preference, error)
	Replace(ctx context.Context, userID string, in UpdateInput) (Ack, error)
}

// ReaderPort is the read-only view other modules consume
// a missing record surfaces as a not-found error, never as a zero record
type ReaderPort interface {
	Read(ctx context.Context, userID string) (Preference, error)
}
