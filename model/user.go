package model

import "time"

// User represents a registered player.
type User struct {
	ID              int64     `json:"-"`
	UserID          string    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	AccountVerified bool      `json:"account_verified"`
	TotalPoints     int       `json:"total_points"`
	FavouriteTeam   string    `json:"favourite_team"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
