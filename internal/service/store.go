package service

import (
	"context"
	"time"

	"github.com/aisboost/aisboost/internal/model"
)

// SessionStore is the durable session lookup. *repository.Repository implements it.
type SessionStore interface {
	GetSessionWithUser(ctx context.Context, sessionID string) (*model.SessionWithUser, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionCache is an optional read-through cache in front of SessionStore.
// *cache.Cache implements it. GetSession returns nil, nil on a miss.
type SessionCache interface {
	GetSession(ctx context.Context, sessionID string) (*model.SessionWithUser, error)
	SetSession(ctx context.Context, session *model.SessionWithUser, ttl time.Duration) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// ApplicationStore persists applications. Every method except Create is
// scoped by owner.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	ListApplicationsByUser(ctx context.Context, userID string) ([]*model.Application, error)
	GetApplicationForUser(ctx context.Context, userID, id string) (*model.Application, error)
	UpdateApplicationForUser(ctx context.Context, app *model.Application) (*model.Application, error)
	DeleteApplicationForUser(ctx context.Context, userID, id string) error
}

// TemplateStore persists templates. Every method is scoped by owner and
// parent application.
type TemplateStore interface {
	CreateTemplateForUser(ctx context.Context, userID string, tpl *model.Template) error
	ListTemplatesForUser(ctx context.Context, userID, applicationID string) ([]*model.Template, error)
	GetTemplateForUser(ctx context.Context, userID, applicationID, id string) (*model.Template, error)
	UpdateTemplateForUser(ctx context.Context, userID string, tpl *model.Template) (*model.Template, error)
	DeleteTemplateForUser(ctx context.Context, userID, applicationID, id string) error
}
