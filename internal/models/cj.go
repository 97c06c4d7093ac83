// internal/models/cj.go
package models

import "time"

// CJAccessToken caches the most recently issued CJ bearer token. The
// table holds at most one live row: issuance clears it before inserting.
type CJAccessToken struct {
	OverlayModel
	AccessToken string    `json:"-" gorm:"type:text;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null;index"`
}

func (t *CJAccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
