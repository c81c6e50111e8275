package dto

import (
	"time"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/service"
)

// ApplicationRequest is the body of application create and update.
// Update replaces every field.
type ApplicationRequest struct {
	Name           string  `json:"name"`
	Duration       int     `json:"duration"`
	Checkpoints    int     `json:"checkpoints"`
	Prefix         string  `json:"prefix"`
	Length         int     `json:"length"`
	Webhook        *string `json:"webhook,omitempty"`
	WebhookContent *string `json:"webhook_content,omitempty"`
}

// ToInput converts the request to service input.
func (r ApplicationRequest) ToInput() service.ApplicationInput {
	return service.ApplicationInput{
		Name:           r.Name,
		Duration:       r.Duration,
		Checkpoints:    r.Checkpoints,
		Prefix:         r.Prefix,
		Length:         r.Length,
		Webhook:        r.Webhook,
		WebhookContent: r.WebhookContent,
	}
}

// ApplicationSummary is one entry of the application list.
type ApplicationSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Duration    uint8     `json:"duration"`
	Checkpoints uint8     `json:"checkpoints"`
	Prefix      string    `json:"prefix"`
	Length      uint8     `json:"length"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationResponse is a single application including webhook settings.
type ApplicationResponse struct {
	ApplicationSummary
	Webhook        *string `json:"webhook"`
	WebhookContent *string `json:"webhook_content"`
}

// ToApplicationSummary converts a model.Application to ApplicationSummary.
func ToApplicationSummary(a *model.Application) ApplicationSummary {
	return ApplicationSummary{
		ID:          a.ID,
		Name:        a.Name,
		Duration:    a.Duration,
		Checkpoints: a.Checkpoints,
		Prefix:      a.Prefix,
		Length:      a.Length,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToApplicationResponse converts a model.Application to ApplicationResponse.
func ToApplicationResponse(a *model.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationSummary: ToApplicationSummary(a),
		Webhook:            a.Webhook,
		WebhookContent:     a.WebhookContent,
	}
}

// ToApplicationList converts applications to their list form.
func ToApplicationList(apps []*model.Application) []ApplicationSummary {
	out := make([]ApplicationSummary, len(apps))
	for i, a := range apps {
		out[i] = ToApplicationSummary(a)
	}
	return out
}
