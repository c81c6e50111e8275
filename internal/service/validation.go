package service

import (
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/aisboost/aisboost/internal/model"
	"github.com/aisboost/aisboost/internal/webhook"
)

// Validation limits.
const (
	MinNameLength       = 2
	MaxNameLength       = 32
	MinDuration         = 1
	MinCheckpoints      = 1
	MaxCheckpoints      = 5
	MinPrefixLength     = 1
	MaxPrefixLength     = 6
	MinLength           = 8
	MaxLength           = 24
	MaxWebhookURLLength = 1024
	MaxWebhookContent   = 4096
	MaxAPIKeyLength     = 256
	MaxAPIURLLength     = 2048

	// maxByte is the upper bound of every numeric application field.
	maxByte = 255
)

// ApplicationInput is the client-supplied field set of an application.
type ApplicationInput struct {
	Name           string
	Duration       int
	Checkpoints    int
	Prefix         string
	Length         int
	Webhook        *string
	WebhookContent *string
}

// TemplateInput is the client-supplied field set of a template.
type TemplateInput struct {
	Type   string
	APIKey string
	APIURL string
}

// validateApplication checks input and returns the normalized field set.
func validateApplication(in ApplicationInput) (model.ApplicationFields, error) {
	var fields model.ApplicationFields

	if err := checkLength("name", in.Name, MinNameLength, MaxNameLength); err != nil {
		return fields, err
	}
	if err := checkRange("duration", in.Duration, MinDuration, maxByte); err != nil {
		return fields, err
	}
	if err := checkRange("checkpoints", in.Checkpoints, MinCheckpoints, MaxCheckpoints); err != nil {
		return fields, err
	}
	if err := checkLength("prefix", in.Prefix, MinPrefixLength, MaxPrefixLength); err != nil {
		return fields, err
	}
	if err := checkRange("length", in.Length, MinLength, MaxLength); err != nil {
		return fields, err
	}

	hook := emptyToNil(in.Webhook)
	if hook != nil {
		if len(*hook) > MaxWebhookURLLength {
			return fields, invalid("webhook", fmt.Sprintf("must be at most %d characters", MaxWebhookURLLength))
		}
		if err := webhook.ValidateTargetURL(*hook); err != nil {
			return fields, invalid("webhook", err.Error())
		}
	}

	content := emptyToNil(in.WebhookContent)
	if content != nil && utf8.RuneCountInString(*content) > MaxWebhookContent {
		return fields, invalid("webhook_content", fmt.Sprintf("must be at most %d characters", MaxWebhookContent))
	}

	return model.ApplicationFields{
		Name:           in.Name,
		Duration:       uint8(in.Duration),
		Checkpoints:    uint8(in.Checkpoints),
		Prefix:         in.Prefix,
		Length:         uint8(in.Length),
		Webhook:        hook,
		WebhookContent: content,
	}, nil
}

// validateTemplate checks input and returns the normalized field set.
// An unknown type yields ErrInvalidTemplateType.
func validateTemplate(in TemplateInput) (model.TemplateFields, error) {
	var fields model.TemplateFields

	kind, err := model.ParseTemplateType(in.Type)
	if err != nil {
		return fields, fmt.Errorf("%w: %q", ErrInvalidTemplateType, in.Type)
	}

	if err := checkLength("api_key", in.APIKey, 1, MaxAPIKeyLength); err != nil {
		return fields, err
	}
	if err := validateAPIURL(in.APIURL); err != nil {
		return fields, err
	}

	return model.TemplateFields{
		Type:   kind,
		APIKey: in.APIKey,
		APIURL: in.APIURL,
	}, nil
}

func validateAPIURL(raw string) error {
	if raw == "" {
		return invalid("api_url", "is required")
	}
	if len(raw) > MaxAPIURLLength {
		return invalid("api_url", fmt.Sprintf("must be at most %d characters", MaxAPIURLLength))
	}

	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return invalid("api_url", "must be an absolute http or https URL")
	}

	return nil
}

func checkLength(field, value string, lo, hi int) error {
	n := utf8.RuneCountInString(value)
	if n < lo || n > hi {
		return invalid(field, fmt.Sprintf("must be between %d and %d characters", lo, hi))
	}
	return nil
}

func checkRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return invalid(field, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
