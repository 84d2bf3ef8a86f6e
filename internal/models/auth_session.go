package models

import "time"

// AuthSession is a server-issued login token for a customer. Tokens are
// opaque UUIDs; the browser presents them instead of keeping credentials
// in local storage.
type AuthSession struct {
	Token      string    `gorm:"primaryKey;type:varchar(36)" json:"token"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Expired reports whether the session is past its expiry at time now.
func (s *AuthSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
