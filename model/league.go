package model

import "time"

// Publicity governs how a league can be joined: by UUID (PUBLIC) or by code (PRIVATE).
type Publicity string

const (
	PublicityPublic  Publicity = "PUBLIC"
	PublicityPrivate Publicity = "PRIVATE"
)

// League is a prediction league. LeagueCode is empty for public leagues.
type League struct {
	ID         int64     `json:"-"`
	UUID       string    `json:"uuid"`
	Name       string    `json:"name"`
	LeagueCode string    `json:"league_code,omitempty"`
	Publicity  Publicity `json:"publicity"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeagueSummary is the projection returned from league listing and creation.
type LeagueSummary struct {
	UUID            string    `json:"uuid"`
	Name            string    `json:"name"`
	Publicity       Publicity `json:"publicity"`
	NumberOfMembers int       `json:"number_of_members"`
}

// LeagueStanding maps member first names to their stored point totals.
type LeagueStanding struct {
	LeagueName     string         `json:"league_name"`
	UsersAndPoints map[string]int `json:"users_and_points"`
}

// MemberPoints is a single standings row as read from the database.
type MemberPoints struct {
	FirstName   string
	TotalPoints int
}
