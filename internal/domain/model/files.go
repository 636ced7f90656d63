package model

import (
	"time"
)

// SavedFile is a student's saved editor file, fetched per student by the
// student-files view.
type SavedFile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
