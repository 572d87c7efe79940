package models

import "time"

// ResetTicket is returned by the password reset request step.
//
// Secret is the only copy of the plaintext reset secret; the store keeps its
// fingerprint only. The ticket must be handed to the delivery channel and
// then discarded.
type ResetTicket struct {
	Email     string
	Secret    string
	ExpiresAt time.Time
}

// ResetNotification is the message handed over to the reset delivery channel.
type ResetNotification struct {
	Email     string    `json:"email"`
	ResetURL  string    `json:"reset_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
