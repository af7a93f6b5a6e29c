package service

import (
	"net/http"
	"predictions-api/logger"
	"predictions-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 5 * time.Minute
	RefreshTokenTTL = 14 * 24 * time.Hour

	AccessCookieName  = "access"
	RefreshCookieName = "refresh"
)

// TokenService issues and parses signed identity tokens. It holds no state
// beyond the signing key; all methods are safe for concurrent use.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Generate issues a signed token for the given subject. Access tokens live
// 5 minutes, refresh tokens 14 days.
func (s *TokenService) Generate(email string, class model.TokenClass) (string, error) {
	return s.generateAt(email, class, time.Now())
}

func (s *TokenService) generateAt(email string, class model.TokenClass, now time.Time) (string, error) {
	ttl := AccessTokenTTL
	if class == model.TokenClassRefresh {
		ttl = RefreshTokenTTL
	}

	claims := &model.AppClaims{
		Class: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to sign JWT")
		return "", err
	}
	return tokenString, nil
}

// Parse verifies the signature and returns the claims. It fails closed: a
// token that does not verify yields ErrTokenInvalid and no claims. Expiry is
// deliberately not validated here so callers can tell an expired token apart
// from a forged one; use IsExpired on the returned claims.
func (s *TokenService) Parse(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// IsExpired reports whether the claim's expiration has passed. Callers must
// have obtained the claims from Parse, which already verified the signature.
func (s *TokenService) IsExpired(claims *model.AppClaims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}

// AccessCookie wraps an access token in its transport cookie.
func AccessCookie(token string) *http.Cookie {
	return sessionCookie(AccessCookieName, token, int(AccessTokenTTL.Seconds()))
}

// RefreshCookie wraps a refresh token in its transport cookie.
func RefreshCookie(token string) *http.Cookie {
	return sessionCookie(RefreshCookieName, token, int(RefreshTokenTTL.Seconds()))
}

// ExpiredCookie produces the zero-lifetime replacement sent on logout.
func ExpiredCookie(name string) *http.Cookie {
	return sessionCookie(name, "", -1)
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}
