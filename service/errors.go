package service

import "errors"

// Domain failures raised by the service layer and translated once at the
// HTTP boundary. Unknown email and wrong password both map to
// ErrBadCredentials so callers cannot probe for account existence.
var (
	ErrBadCredentials     = errors.New("email or password incorrect")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrOtpNotFound  = errors.New("otp not found for user")
	ErrOtpExpired   = errors.New("otp expired")
	ErrOtpIncorrect = errors.New("otp incorrect")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrLeagueNotFound      = errors.New("league not found")
	ErrIncorrectLeagueCode = errors.New("incorrect league code")
	ErrPublicityMismatch   = errors.New("publicity mismatch")
	ErrLeagueAlreadyJoined = errors.New("league already joined")
	ErrLeagueCodeExhausted = errors.New("could not allocate a unique league code")

	ErrPasswordMismatch = errors.New("password is incorrect")
)
