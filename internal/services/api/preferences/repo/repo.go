// Package repo provides storage for preference records
package repo

import (
	"context"

	"notifygate/internal/services/api/preferences/domain"
)

// Repo is the minimal persistence surface for preferences
// Get returns a not-found error for absent users so callers can tell
// absence apart from a backend failure
type Repo interface {
	Get(ctx context.Context, userID string) (domain.Preference, error)
	Put(ctx context.Context, userID string, p domain.Preference) error
}
