package models

import "time"

// AdminUser is an account allowed into the admin dashboard
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Info represents the response from 'GET /info'
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Error represents any erroneous JSON response
type Error struct {
	Error string `json:"error"`
}
