package models

import "time"

type Post struct {
	ID            int64      `db:"id" json:"id"`
	Caption       string     `db:"caption" json:"caption"`
	ImagePath     string     `db:"image_path" json:"image_path"`
	ImageURL      string     `db:"image_url" json:"image_url"`
	CreationID    string     `db:"creation_id" json:"creation_id"`
	InstagramID   string     `db:"instagram_id" json:"instagram_id"`
	Status        string     `db:"status" json:"status"` // draft, pending, published, failed
	ScheduledTime time.Time  `db:"scheduled_time" json:"scheduled_time"`
	PublishedTime *time.Time `db:"published_time" json:"published_time"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)
