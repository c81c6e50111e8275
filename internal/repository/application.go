package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/jackc/pgx/v5"
)

// ErrApplicationNotFound is returned when no application matches both the
// id and the owner. The two cases are deliberately not distinguished.
var ErrApplicationNotFound = errors.New("application not found")

const applicationColumns = `id, user_id, name, duration, checkpoints, prefix, length, webhook, webhook_content, created_at, updated_at`

// CreateApplication inserts a new application owned by app.UserID.
func (r *Repository) CreateApplication(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (id, user_id, name, duration, checkpoints, prefix, length, webhook, webhook_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	result, err := r.pool.Exec(ctx, query,
		app.ID,
		app.UserID,
		app.Name,
		int16(app.Duration),
		int16(app.Checkpoints),
		app.Prefix,
		int16(app.Length),
		app.Webhook,
		app.WebhookContent,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

// ListApplicationsByUser returns every application owned by userID.
func (r *Repository) ListApplicationsByUser(ctx context.Context, userID string) ([]*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*model.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

// GetApplicationForUser returns the application only if userID owns it.
func (r *Repository) GetApplicationForUser(ctx context.Context, userID, id string) (*model.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1 AND user_id = $2
	`

	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// UpdateApplicationForUser replaces the mutable fields of an owned application
// in one scoped statement and returns the updated row.
func (r *Repository) UpdateApplicationForUser(ctx context.Context, app *model.Application) (*model.Application, error) {
	query := `
		UPDATE applications
		SET name = $1, duration = $2, checkpoints = $3, prefix = $4, length = $5,
		    webhook = $6, webhook_content = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
		RETURNING ` + applicationColumns

	updated, err := scanApplication(r.pool.QueryRow(ctx, query,
		app.Name,
		int16(app.Duration),
		int16(app.Checkpoints),
		app.Prefix,
		int16(app.Length),
		app.Webhook,
		app.WebhookContent,
		app.UpdatedAt,
		app.ID,
		app.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return updated, nil
}

// DeleteApplicationForUser removes an owned application. Its templates go
// with it through the foreign key cascade.
func (r *Repository) DeleteApplicationForUser(ctx context.Context, userID, id string) error {
	query := `DELETE FROM applications WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// scanApplication scans one row in applicationColumns order.
func scanApplication(row pgx.Row) (*model.Application, error) {
	var (
		app                           model.Application
		duration, checkpoints, length int16
	)

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Name,
		&duration,
		&checkpoints,
		&app.Prefix,
		&length,
		&app.Webhook,
		&app.WebhookContent,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Duration = uint8(duration)
	app.Checkpoints = uint8(checkpoints)
	app.Length = uint8(length)

	return &app, nil
}
