package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aisboost/aisboost/internal/metrics"
	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
)

// ApplicationService handles application business logic.
type ApplicationService struct {
	store    ApplicationStore
	resolver *OwnershipResolver
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(store ApplicationStore, recorder metrics.Recorder) *ApplicationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ApplicationService{
		store:    store,
		resolver: NewOwnershipResolver(store),
		metrics:  recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns every application owned by userID.
func (s *ApplicationService) List(ctx context.Context, userID string) ([]*model.Application, error) {
	apps, err := s.store.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Create validates input and stores a new application owned by userID.
func (s *ApplicationService) Create(ctx context.Context, userID string, input ApplicationInput) (*model.Application, error) {
	fields, err := validateApplication(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	app := &model.Application{
		ID:        ulid.Make().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	app.Apply(fields)

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.metrics.IncApplicationCreated()

	return app, nil
}

// Get returns one application owned by userID.
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*model.Application, error) {
	return s.resolver.ResolveApplication(ctx, userID, id)
}

// Update replaces every mutable field of an owned application.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, input ApplicationInput) (*model.Application, error) {
	fields, err := validateApplication(input)
	if err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:        id,
		UserID:    userID,
		UpdatedAt: s.now(),
	}
	app.Apply(fields)

	updated, err := s.store.UpdateApplicationForUser(ctx, app)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.metrics.IncApplicationUpdated()

	return updated, nil
}

// Delete removes an owned application together with its templates.
func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteApplicationForUser(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.metrics.IncApplicationDeleted()

	return nil
}
