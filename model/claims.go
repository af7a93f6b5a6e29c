package model

import "github.com/golang-jwt/jwt/v5"

// TokenClass distinguishes short-lived access tokens from long-lived refresh tokens.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

// AppClaims are the signed claims carried by every issued token.
// Subject holds the user's email.
type AppClaims struct {
	Class TokenClass `json:"class"`
	jwt.RegisteredClaims
}
