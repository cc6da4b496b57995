package models

import "time"

// TokenClaims are the session claims the auth middleware extracts from the
// session cookie.
type TokenClaims struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"exp"`
	IssuedAt  time.Time `json:"iat"`
}
