package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/repository"
)

var errStoreDown = errors.New("connection refused")

// --- session fakes ---

type fakeSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*model.SessionWithUser
	err       error
	deleteErr error
	gets      int
	deletes   []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.SessionWithUser)}
}

func (f *fakeSessionStore) put(id, userID string, expiresAt time.Time) {
	f.sessions[id] = &model.SessionWithUser{
		SessionID: id,
		ExpiresAt: expiresAt,
		User:      model.User{ID: userID, Email: userID + "@example.com"},
	}
}

func (f *fakeSessionStore) GetSessionWithUser(_ context.Context, id string) (*model.SessionWithUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, id)
	return nil
}

type fakeSessionCache struct {
	entries map[string]*model.SessionWithUser
	getErr  error
	sets    int
	evicted []string
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{entries: make(map[string]*model.SessionWithUser)}
}

func (f *fakeSessionCache) GetSession(_ context.Context, id string) (*model.SessionWithUser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionCache) SetSession(_ context.Context, s *model.SessionWithUser, _ time.Duration) error {
	f.sets++
	cp := *s
	f.entries[s.SessionID] = &cp
	return nil
}

func (f *fakeSessionCache) DeleteSession(_ context.Context, id string) error {
	f.evicted = append(f.evicted, id)
	delete(f.entries, id)
	return nil
}

// --- application fakes ---

type fakeApplicationStore struct {
	apps      map[string]*model.Application
	err       error
	createErr error
	gets      int
}

func newFakeApplicationStore(apps ...*model.Application) *fakeApplicationStore {
	f := &fakeApplicationStore{apps: make(map[string]*model.Application)}
	for _, a := range apps {
		f.apps[a.ID] = a
	}
	return f
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *model.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationStore) ListApplicationsByUser(_ context.Context, userID string) ([]*model.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*model.Application{}
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) GetApplicationForUser(_ context.Context, userID, id string) (*model.Application, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationStore) UpdateApplicationForUser(_ context.Context, app *model.Application) (*model.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	existing, ok := f.apps[app.ID]
	if !ok || existing.UserID != app.UserID {
		return nil, repository.ErrApplicationNotFound
	}
	updated := *app
	updated.CreatedAt = existing.CreatedAt
	f.apps[app.ID] = &updated
	cp := updated
	return &cp, nil
}

func (f *fakeApplicationStore) DeleteApplicationForUser(_ context.Context, userID, id string) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return repository.ErrApplicationNotFound
	}
	delete(f.apps, id)
	return nil
}

// --- template fakes ---

// fakeTemplateStore counts every call so tests can assert it was never reached.
type fakeTemplateStore struct {
	templates map[string]*model.Template
	owners    map[string]string // application id -> user id
	createErr error
	calls     int
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{
		templates: make(map[string]*model.Template),
		owners:    make(map[string]string),
	}
}

func (f *fakeTemplateStore) owned(userID, applicationID string) bool {
	return f.owners[applicationID] == userID
}

func (f *fakeTemplateStore) CreateTemplateForUser(_ context.Context, userID string, tpl *model.Template) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	if !f.owned(userID, tpl.ApplicationID) {
		return repository.ErrNoRowsAffected
	}
	cp := *tpl
	f.templates[tpl.ID] = &cp
	return nil
}

func (f *fakeTemplateStore) ListTemplatesForUser(_ context.Context, userID, applicationID string) ([]*model.Template, error) {
	f.calls++
	out := []*model.Template{}
	if !f.owned(userID, applicationID) {
		return out, nil
	}
	for _, t := range f.templates {
		if t.ApplicationID == applicationID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) GetTemplateForUser(_ context.Context, userID, applicationID, id string) (*model.Template, error) {
	f.calls++
	t, ok := f.templates[id]
	if !ok || t.ApplicationID != applicationID || !f.owned(userID, applicationID) {
		return nil, repository.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTemplateStore) UpdateTemplateForUser(_ context.Context, userID string, tpl *model.Template) (*model.Template, error) {
	f.calls++
	existing, ok := f.templates[tpl.ID]
	if !ok || existing.ApplicationID != tpl.ApplicationID || !f.owned(userID, tpl.ApplicationID) {
		return nil, repository.ErrTemplateNotFound
	}
	updated := *tpl
	updated.CreatedAt = existing.CreatedAt
	f.templates[tpl.ID] = &updated
	cp := updated
	return &cp, nil
}

func (f *fakeTemplateStore) DeleteTemplateForUser(_ context.Context, userID, applicationID, id string) error {
	f.calls++
	t, ok := f.templates[id]
	if !ok || t.ApplicationID != applicationID || !f.owned(userID, applicationID) {
		return repository.ErrTemplateNotFound
	}
	delete(f.templates, id)
	return nil
}
