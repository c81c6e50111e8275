package dto

import (
	"time"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/service"
)

// TemplateRequest is the body of template create and update.
type TemplateRequest struct {
	Type   string `json:"type"`
	APIKey string `json:"api_key"`
	APIURL string `json:"api_url"`
}

// ToInput converts the request to service input.
func (r TemplateRequest) ToInput() service.TemplateInput {
	return service.TemplateInput{
		Type:   r.Type,
		APIKey: r.APIKey,
		APIURL: r.APIURL,
	}
}

// TemplateResponse represents a template in API responses.
type TemplateResponse struct {
	ID            string             `json:"id"`
	ApplicationID string             `json:"application_id"`
	Type          model.TemplateType `json:"type"`
	APIKey        string             `json:"api_key"`
	APIURL        string             `json:"api_url"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToTemplateResponse converts a model.Template to TemplateResponse.
func ToTemplateResponse(t *model.Template) TemplateResponse {
	return TemplateResponse{
		ID:            t.ID,
		ApplicationID: t.ApplicationID,
		Type:          t.Type,
		APIKey:        t.APIKey,
		APIURL:        t.APIURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTemplateList converts templates to responses.
func ToTemplateList(templates []*model.Template) []TemplateResponse {
	out := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = ToTemplateResponse(t)
	}
	return out
}
