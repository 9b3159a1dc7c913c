package models

import "github.com/google/uuid"

// User is the authenticated identity carried through a request.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
}

// Session is what the hosted auth service hands back on sign-in or refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}
