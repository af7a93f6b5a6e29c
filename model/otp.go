package model

// Otp holds the one-time verification code issued to a user.
// ExpiresAt is a unix timestamp in milliseconds.
type Otp struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Value     string `json:"-"`
	ExpiresAt int64  `json:"expires_at"`
}
