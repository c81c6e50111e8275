package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
)

// ApplicationReader is the owner-scoped application lookup.
type ApplicationReader interface {
	GetApplicationForUser(ctx context.Context, userID, id string) (*model.Application, error)
}

// OwnershipResolver answers whether an application belongs to a user.
type OwnershipResolver struct {
	apps ApplicationReader
}

// NewOwnershipResolver creates a new OwnershipResolver.
func NewOwnershipResolver(apps ApplicationReader) *OwnershipResolver {
	return &OwnershipResolver{apps: apps}
}

// ResolveApplication returns the application only if userID owns it.
// A missing application and one owned by someone else both yield ErrNotFound.
func (r *OwnershipResolver) ResolveApplication(ctx context.Context, userID, applicationID string) (*model.Application, error) {
	app, err := r.apps.GetApplicationForUser(ctx, userID, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve application: %w", err)
	}
	return app, nil
}
