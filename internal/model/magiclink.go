package model

import "time"

// MagicLinkPurpose tells what a magic link was issued for.
type MagicLinkPurpose string

const (
	MagicLinkLogin MagicLinkPurpose = "login"
	MagicLinkSetup MagicLinkPurpose = "setup"
)

// MagicLink is a single-use emailed credential. It carries both a URL token and a short
// numeric code; only their SHA-256 hashes are stored.
type MagicLink struct {
	ID        string
	UserID    string
	Email     string
	TokenHash string
	CodeHash  string
	Purpose   MagicLinkPurpose
	Attempts  int
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the link can still be redeemed at now.
func (m *MagicLink) Usable(now time.Time, maxAttempts int) bool {
	return m.UsedAt == nil && now.Before(m.ExpiresAt) && m.Attempts < maxAttempts
}
