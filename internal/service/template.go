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

// KeySealer encrypts template API keys at rest. *auth.Sealer implements it.
type KeySealer interface {
	Seal(plaintext, additional string) (string, error)
	Open(value, additional string) (string, error)
}

// TemplateService handles template business logic. Input is validated
// first; every operation then checks ownership of the parent application
// before touching templates.
type TemplateService struct {
	store    TemplateStore
	resolver *OwnershipResolver
	sealer   KeySealer
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(store TemplateStore, resolver *OwnershipResolver, sealer KeySealer, recorder metrics.Recorder) *TemplateService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TemplateService{
		store:    store,
		resolver: resolver,
		sealer:   sealer,
		metrics:  recorder,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns the templates of an owned application.
func (s *TemplateService) List(ctx context.Context, userID, applicationID string) ([]*model.Template, error) {
	if _, err := s.resolver.ResolveApplication(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	templates, err := s.store.ListTemplatesForUser(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}

	for _, tpl := range templates {
		if err := s.open(tpl); err != nil {
			return nil, err
		}
	}

	return templates, nil
}

// Create adds a template to an owned application.
func (s *TemplateService) Create(ctx context.Context, userID, applicationID string, input TemplateInput) (*model.Template, error) {
	fields, err := validateTemplate(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolver.ResolveApplication(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	now := s.now()
	tpl := &model.Template{
		ID:            ulid.Make().String(),
		ApplicationID: applicationID,
		Type:          fields.Type,
		APIURL:        fields.APIURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	sealed, err := s.sealer.Seal(fields.APIKey, tpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seal api key: %w", err)
	}
	tpl.APIKey = sealed

	// Zero rows means the parent vanished or changed hands after the check.
	if err := s.store.CreateTemplateForUser(ctx, userID, tpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.metrics.IncTemplateCreated()

	tpl.APIKey = fields.APIKey
	return tpl, nil
}

// Get returns one template of an owned application.
func (s *TemplateService) Get(ctx context.Context, userID, applicationID, id string) (*model.Template, error) {
	if _, err := s.resolver.ResolveApplication(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	tpl, err := s.store.GetTemplateForUser(ctx, userID, applicationID, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.open(tpl); err != nil {
		return nil, err
	}

	return tpl, nil
}

// Update replaces every mutable field of a template.
func (s *TemplateService) Update(ctx context.Context, userID, applicationID, id string, input TemplateInput) (*model.Template, error) {
	fields, err := validateTemplate(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolver.ResolveApplication(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	sealed, err := s.sealer.Seal(fields.APIKey, id)
	if err != nil {
		return nil, fmt.Errorf("failed to seal api key: %w", err)
	}

	tpl := &model.Template{
		ID:            id,
		ApplicationID: applicationID,
		Type:          fields.Type,
		APIKey:        sealed,
		APIURL:        fields.APIURL,
		UpdatedAt:     s.now(),
	}

	updated, err := s.store.UpdateTemplateForUser(ctx, userID, tpl)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.metrics.IncTemplateUpdated()

	updated.APIKey = fields.APIKey
	return updated, nil
}

// Delete removes a template of an owned application.
func (s *TemplateService) Delete(ctx context.Context, userID, applicationID, id string) error {
	if _, err := s.resolver.ResolveApplication(ctx, userID, applicationID); err != nil {
		return err
	}

	if err := s.store.DeleteTemplateForUser(ctx, userID, applicationID, id); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.metrics.IncTemplateDeleted()

	return nil
}

// open replaces the stored api key with its plaintext.
func (s *TemplateService) open(tpl *model.Template) error {
	plain, err := s.sealer.Open(tpl.APIKey, tpl.ID)
	if err != nil {
		return fmt.Errorf("failed to open api key of template %s: %w", tpl.ID, err)
	}
	tpl.APIKey = plain
	return nil
}
