package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/jackc/pgx/v5"
)

// ErrTemplateNotFound is returned when no template matches the full
// ownership chain (template id, application id, owning user).
var ErrTemplateNotFound = errors.New("template not found")

// ErrMalformedTemplate indicates a stored row violates the type enumeration.
var ErrMalformedTemplate = errors.New("malformed template row")

const templateColumns = `t.id, t.application_id, t.type, t.api_key, t.api_url, t.created_at, t.updated_at`

// CreateTemplateForUser inserts a template under an application owned by
// userID. The insert selects the parent row, so a parent that is missing or
// owned by someone else inserts nothing and yields ErrNoRowsAffected.
func (r *Repository) CreateTemplateForUser(ctx context.Context, userID string, tpl *model.Template) error {
	query := `
		INSERT INTO templates (id, application_id, type, api_key, api_url, created_at, updated_at)
		SELECT $1::text, a.id, $3::text, $4::text, $5::text, $6::timestamptz, $6::timestamptz
		FROM applications a
		WHERE a.id = $2 AND a.user_id = $7
	`

	result, err := r.pool.Exec(ctx, query,
		tpl.ID,
		tpl.ApplicationID,
		tpl.Type.String(),
		tpl.APIKey,
		tpl.APIURL,
		tpl.CreatedAt,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

// ListTemplatesForUser returns the templates of an application owned by userID.
func (r *Repository) ListTemplatesForUser(ctx context.Context, userID, applicationID string) ([]*model.Template, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM templates t
		JOIN applications a ON a.id = t.application_id
		WHERE t.application_id = $1 AND a.user_id = $2
		ORDER BY t.created_at, t.id
	`

	rows, err := r.pool.Query(ctx, query, applicationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*model.Template, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// GetTemplateForUser fetches one template through the full ownership chain.
func (r *Repository) GetTemplateForUser(ctx context.Context, userID, applicationID, id string) (*model.Template, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM templates t
		JOIN applications a ON a.id = t.application_id
		WHERE t.id = $1 AND t.application_id = $2 AND a.user_id = $3
	`

	tpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id, applicationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return tpl, nil
}

// UpdateTemplateForUser replaces the mutable fields of a template in one
// statement scoped by template id, application id and owner.
func (r *Repository) UpdateTemplateForUser(ctx context.Context, userID string, tpl *model.Template) (*model.Template, error) {
	query := `
		UPDATE templates t
		SET type = $1, api_key = $2, api_url = $3, updated_at = $4
		FROM applications a
		WHERE t.id = $5 AND t.application_id = $6
		  AND a.id = t.application_id AND a.user_id = $7
		RETURNING ` + templateColumns

	updated, err := scanTemplate(r.pool.QueryRow(ctx, query,
		tpl.Type.String(),
		tpl.APIKey,
		tpl.APIURL,
		tpl.UpdatedAt,
		tpl.ID,
		tpl.ApplicationID,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return updated, nil
}

// DeleteTemplateForUser removes a template through the full ownership chain.
func (r *Repository) DeleteTemplateForUser(ctx context.Context, userID, applicationID, id string) error {
	query := `
		DELETE FROM templates t
		USING applications a
		WHERE t.id = $1 AND t.application_id = $2
		  AND a.id = t.application_id AND a.user_id = $3
	`

	result, err := r.pool.Exec(ctx, query, id, applicationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// scanTemplate scans one row in templateColumns order.
func scanTemplate(row pgx.Row) (*model.Template, error) {
	var (
		tpl      model.Template
		typeName string
	)

	err := row.Scan(
		&tpl.ID,
		&tpl.ApplicationID,
		&typeName,
		&tpl.APIKey,
		&tpl.APIURL,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tpl.Type, err = model.ParseTemplateType(typeName)
	if err != nil {
		return nil, fmt.Errorf("%w: type %q", ErrMalformedTemplate, typeName)
	}

	return &tpl, nil
}
