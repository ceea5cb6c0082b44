package models

import "time"

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a transient panel message. Success and error are mutually
// exclusive by construction: a panel holds at most one Flash at a time
// and it expires on its own instead of requiring a dismiss action.
type Flash struct {
	Kind      string    `json:"type"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewFlash builds a message that stays visible for ttl.
func NewFlash(kind, message string, ttl time.Duration) *Flash {
	return &Flash{Kind: kind, Message: message, ExpiresAt: time.Now().Add(ttl)}
}

// Expired reports whether the message should no longer be shown.
func (f *Flash) Expired(now time.Time) bool {
	return f == nil || now.After(f.ExpiresAt)
}
