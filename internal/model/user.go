// Package model defines domain entities for the application.
package model

import "time"

// User is the identity attached to an authenticated request.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
