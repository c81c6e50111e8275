package model

import (
	"errors"
	"strings"
	"time"
)

// TemplateType is the closed set of link provider kinds.
type TemplateType int

const (
	TemplateLinkvertise TemplateType = iota + 1
	TemplateLootlabs
	TemplateWorkink
	TemplateShrtfly
)

// ErrUnknownTemplateType is returned for provider names outside the enumeration.
var ErrUnknownTemplateType = errors.New("unknown template type")

// TemplateTypes lists every recognized provider kind.
var TemplateTypes = []TemplateType{
	TemplateLinkvertise,
	TemplateLootlabs,
	TemplateWorkink,
	TemplateShrtfly,
}

// String returns the stored form of the type.
func (t TemplateType) String() string {
	switch t {
	case TemplateLinkvertise:
		return "linkvertise"
	case TemplateLootlabs:
		return "lootlabs"
	case TemplateWorkink:
		return "workink"
	case TemplateShrtfly:
		return "shrtfly"
	default:
		return ""
	}
}

// IsValid reports whether t is one of the recognized kinds.
func (t TemplateType) IsValid() bool {
	return t.String() != ""
}

// ParseTemplateType maps a provider name to its TemplateType.
// Matching ignores case and surrounding whitespace.
func ParseTemplateType(s string) (TemplateType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range TemplateTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, ErrUnknownTemplateType
}

// MarshalText implements encoding.TextMarshaler.
func (t TemplateType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrUnknownTemplateType
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TemplateType) UnmarshalText(text []byte) error {
	parsed, err := ParseTemplateType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Template belongs to exactly one application.
type Template struct {
	ID            string       `json:"id"`
	ApplicationID string       `json:"-"`
	Type          TemplateType `json:"type"`
	APIKey        string       `json:"api_key"`
	APIURL        string       `json:"api_url"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TemplateFields is the mutable field set of a template.
type TemplateFields struct {
	Type   TemplateType
	APIKey string
	APIURL string
}
