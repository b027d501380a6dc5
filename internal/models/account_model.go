package models

import "time"

type InstagramAccount struct {
	ID              int64     `db:"id" json:"id"`
	AccountName     string    `db:"account_name" json:"account_name"`
	InstagramUserID string    `db:"instagram_user_id" json:"instagram_user_id"`
	AccessToken     string    `db:"access_token" json:"-"`
	TokenExpiresAt  time.Time `db:"token_expires_at" json:"token_expires_at"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// IsTokenValid reports whether the stored access token can still be used.
// A missing expiry means invalid, never "never expires".
func (a *InstagramAccount) IsTokenValid() bool {
	if a.TokenExpiresAt.IsZero() {
		return false
	}
	return time.Now().Before(a.TokenExpiresAt)
}
