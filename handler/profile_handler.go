package handler

import (
	"fmt"
	"net/http"
	"predictions-api/common"
	"predictions-api/model"
	"predictions-api/service"
)

type ProfileHandler struct {
	service *service.ProfileService
}

func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Home echoes the authenticated identity.
// @Summary      View the caller's homepage
// @Tags         profile
// @Produce      json
// @Success      200 {object} model.MessageResponse
// @Security     BearerAuth
// @Router       /profile/home [get]
func (h *ProfileHandler) Home(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())
	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Viewing the HomePage of %s", email),
	})
	return nil
}

// ResetPassword sends the reset-password email to the caller.
// @Summary      Request a password reset
// @Tags         profile
// @Produce      json
// @Success      200 {object} model.MessageResponse
// @Security     BearerAuth
// @Router       /profile/reset-password [post]
func (h *ProfileHandler) ResetPassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())

	if err := h.service.ResetPassword(email); err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "ResetPassword email sent successfully"})
	return nil
}

// ChangePassword replaces the caller's password after checking the old one.
// @Summary      Change the caller's password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body model.ChangePasswordRequest true "Old and new passwords"
// @Success      200 {object} model.MessageResponse
// @Failure      400 {object} common.AppError
// @Security     BearerAuth
// @Router       /profile/change-password [post]
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())

	var req model.ChangePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.ChangePassword(email, req.OldPassword, req.NewPassword); err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Password changed successfully"})
	return nil
}
