package handler

import (
	"encoding/json"
	"net/http"
	"predictions-api/common"
	"predictions-api/logger"
	"predictions-api/model"
	"predictions-api/service"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      *service.TokenService
}

func NewAuthHandler(authService *service.AuthService, tokens *service.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// Register creates a new unverified account.
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegistrationRequest true "Registration details"
// @Success      201 {object} model.RegistrationResponse
// @Failure      409 {object} common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegistrationRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithField("email", req.Email).Info("Registration request received")

	response, err := h.authService.Register(&req)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusCreated, response)
	return nil
}

// Login verifies credentials and issues the session cookie pair.
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Credentials"
// @Success      200 {object} model.MessageResponse
// @Failure      400 {object} common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.authService.Login(req.Email, req.Password); err != nil {
		return toAppError(err)
	}

	if appErr := h.setSessionCookies(w, req.Email); appErr != nil {
		return appErr
	}

	logger.Log.WithField("email", req.Email).Info("Login successful")
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Login successful"})
	return nil
}

// Refresh exchanges a valid refresh cookie for a fresh session pair.
// @Summary      Refresh the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} model.MessageResponse
// @Failure      401 {object} common.AppError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(service.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusUnauthorized, "No refresh token found", nil)
	}

	email, err := h.authService.Refresh(cookie.Value)
	if err != nil {
		return toAppError(err)
	}

	if appErr := h.setSessionCookies(w, email); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Refresh successful"})
	return nil
}

// Logout replaces both session cookies with zero-lifetime ones. Tokens issued
// earlier stay valid until their natural expiry; there is no server-side
// revocation list.
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200 {object} model.MessageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	http.SetCookie(w, service.ExpiredCookie(service.AccessCookieName))
	http.SetCookie(w, service.ExpiredCookie(service.RefreshCookieName))
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Logout successful"})
	return nil
}

// SendVerifyOtp emails a fresh verification code to the user.
// @Summary      Send a verification OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.SendOtpRequest true "Target account"
// @Success      200 {object} model.MessageResponse
// @Failure      404 {object} common.AppError
// @Router       /auth/send-verify-otp [post]
func (h *AuthHandler) SendVerifyOtp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SendOtpRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.authService.SendVerifyOtp(req.Email); err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "VerifyOTP sent successfully"})
	return nil
}

// VerifyOtp checks the submitted code and marks the account verified.
// @Summary      Verify an account with an OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.VerifyOtpRequest true "Code to check"
// @Success      200 {object} model.MessageResponse
// @Failure      400 {object} common.AppError
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.VerifyOtpRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.authService.VerifyOtp(req.Email, req.Otp); err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Account verified successfully"})
	return nil
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, email string) *common.AppError {
	accessToken, err := h.tokens.Generate(email, model.TokenClassAccess)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not issue session", err)
	}
	refreshToken, err := h.tokens.Generate(email, model.TokenClassRefresh)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not issue session", err)
	}

	http.SetCookie(w, service.AccessCookie(accessToken))
	http.SetCookie(w, service.RefreshCookie(refreshToken))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
