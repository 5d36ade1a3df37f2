// Package service contains preference workflows
package service

import (
	"context"

	"notifygate/internal/services/api/preferences/domain"
	"notifygate/internal/services/api/preferences/repo"
)

// Service defines the preferences service contract
type Service interface {
	domain.ServicePort
	domain.ReaderPort
}

// Svc implements the preferences service
type Svc struct {
	Repo repo.Repo
}

// New constructs a preferences service over the given repo
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("preferences.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// Get returns the stored record or a not-found error
func (s *Svc) Get(ctx context.Context, userID string) (domain.Preference, error) {
	return s.Repo.Get(ctx, userID)
}

// Read is the cross-module read view, identical to Get
func (s *Svc) Read(ctx context.Context, userID string) (domain.Preference, error) {
	return s.Repo.Get(ctx, userID)
}

// Replace normalizes the payload and fully replaces the record for userID
// there is no partial merge
func (s *Svc) Replace(ctx context.Context, userID string, in domain.UpdateInput) (domain.Ack, error) {
	p, err := domain.Normalize(in)
	if err != nil {
		return domain.Ack{}, err
	}
	if err := s.Repo.Put(ctx, userID, p); err != nil {
		return domain.Ack{}, err
	}
	return domain.Ack{OK: true, UserID: userID}, nil
}
