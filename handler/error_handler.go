package handler

import (
	"errors"
	"net/http"
	"predictions-api/common"
	"predictions-api/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// toAppError translates service-layer failures into the response envelope.
// Anything unrecognized becomes a generic 500 with the cause logged only.
func toAppError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrBadCredentials):
		return common.NewAppError(http.StatusBadRequest, "Email or password incorrect", nil)
	case errors.Is(err, service.ErrAccountNotVerified):
		return common.NewAppError(http.StatusBadRequest, "Account not verified", nil)
	case errors.Is(err, service.ErrEmailExists):
		return common.NewAppError(http.StatusConflict, "Email already exists", nil)
	case errors.Is(err, service.ErrUserNotFound):
		return common.NewAppError(http.StatusNotFound, "User not found", nil)
	case errors.Is(err, service.ErrOtpNotFound):
		return common.NewAppError(http.StatusNotFound, "OTP not found for user", nil)
	case errors.Is(err, service.ErrOtpExpired):
		return common.NewAppError(http.StatusBadRequest, "OTP expired", nil)
	case errors.Is(err, service.ErrOtpIncorrect):
		return common.NewAppError(http.StatusBadRequest, "OTP incorrect", nil)
	case errors.Is(err, service.ErrTokenInvalid):
		return common.NewAppError(http.StatusUnauthorized, "Invalid token", nil)
	case errors.Is(err, service.ErrTokenExpired):
		return common.NewAppError(http.StatusUnauthorized, "Token expired", nil)
	case errors.Is(err, service.ErrLeagueNotFound):
		return common.NewAppError(http.StatusNotFound, "League not found", nil)
	case errors.Is(err, service.ErrIncorrectLeagueCode):
		return common.NewAppError(http.StatusBadRequest, "Incorrect league code", nil)
	case errors.Is(err, service.ErrPublicityMismatch):
		return common.NewAppError(http.StatusBadRequest, "Publicity mismatch", nil)
	case errors.Is(err, service.ErrLeagueAlreadyJoined):
		return common.NewAppError(http.StatusConflict, "League already joined", nil)
	case errors.Is(err, service.ErrPasswordMismatch):
		return common.NewAppError(http.StatusBadRequest, "Password is incorrect", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "An unexpected error occurred", err)
	}
}
