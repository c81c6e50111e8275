package model

import "time"

// Application is owned by exactly one user.
type Application struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Duration       uint8     `json:"duration"`
	Checkpoints    uint8     `json:"checkpoints"`
	Prefix         string    `json:"prefix"`
	Length         uint8     `json:"length"`
	Webhook        *string   `json:"webhook"`
	WebhookContent *string   `json:"webhook_content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ApplicationFields is the mutable field set of an application.
// Updates replace all of it.
type ApplicationFields struct {
	Name           string
	Duration       uint8
	Checkpoints    uint8
	Prefix         string
	Length         uint8
	Webhook        *string
	WebhookContent *string
}

// Apply copies the mutable fields onto the application.
func (a *Application) Apply(f ApplicationFields) {
	a.Name = f.Name
	a.Duration = f.Duration
	a.Checkpoints = f.Checkpoints
	a.Prefix = f.Prefix
	a.Length = f.Length
	a.Webhook = f.Webhook
	a.WebhookContent = f.WebhookContent
}
