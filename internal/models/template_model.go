package models

import "time"

// ContentTemplate is a named generation prompt. Templates are managed through
// the admin API and only read by the content generator.
type ContentTemplate struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Prompt      string    `db:"prompt" json:"prompt"`
	ContentType string    `db:"content_type" json:"content_type"` // caption, hashtags
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ContentTypeCaption  = "caption"
	ContentTypeHashtags = "hashtags"
)
