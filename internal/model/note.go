package model

import "time"

// Note is the single persisted entity of the application.
// Title and Content may be stored as NULL; they are always read back as empty strings.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
