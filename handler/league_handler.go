package handler

import (
	"fmt"
	"net/http"
	"predictions-api/common"
	"predictions-api/logger"
	"predictions-api/model"
	"predictions-api/service"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type LeagueHandler struct {
	service *service.LeagueService
}

func NewLeagueHandler(service *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{service: service}
}

// GetStandings returns the standings for a league.
// @Summary      Get league standings
// @Tags         leagues
// @Produce      json
// @Param        uuid path string true "League UUID"
// @Success      200 {object} model.LeagueStanding
// @Failure      404 {object} common.AppError
// @Security     BearerAuth
// @Router       /leagues/{uuid} [get]
func (h *LeagueHandler) GetStandings(w http.ResponseWriter, r *http.Request) *common.AppError {
	leagueUUID := chi.URLParam(r, "uuid")

	standings, err := h.service.GetLeagueStandings(leagueUUID)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, standings)
	return nil
}

// GetLeaguesForUser lists every league the caller belongs to.
// @Summary      List the caller's leagues
// @Tags         leagues
// @Produce      json
// @Success      200 {array} model.LeagueSummary
// @Security     BearerAuth
// @Router       /leagues [get]
func (h *LeagueHandler) GetLeaguesForUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())

	leagues, err := h.service.GetLeaguesForUser(email)
	if err != nil {
		return toAppError(err)
	}
	if leagues == nil {
		leagues = []model.LeagueSummary{}
	}

	writeJSON(w, http.StatusOK, leagues)
	return nil
}

// CreateLeague creates a league owned by the caller.
// @Summary      Create a league
// @Tags         leagues
// @Accept       json
// @Produce      json
// @Param        request body model.CreateLeagueRequest true "League details"
// @Success      201 {object} model.LeagueSummary
// @Security     BearerAuth
// @Router       /leagues [post]
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())

	var req model.CreateLeagueRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"email":     email,
		"league":    req.Name,
		"publicity": req.Publicity,
	})
	log.Info("Create league request received")

	summary, err := h.service.CreateLeague(email, req.Name, model.Publicity(req.Publicity))
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusCreated, summary)
	return nil
}

// JoinPublicLeague joins a public league by UUID.
// @Summary      Join a public league
// @Tags         leagues
// @Produce      json
// @Param        uuid path string true "League UUID"
// @Success      200 {object} model.MessageResponse
// @Failure      409 {object} common.AppError
// @Security     BearerAuth
// @Router       /leagues/public/{uuid}/join [post]
func (h *LeagueHandler) JoinPublicLeague(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())
	leagueUUID := chi.URLParam(r, "uuid")

	leagueName, err := h.service.JoinPublicLeague(email, leagueUUID)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Successfully joined %s league", leagueName),
	})
	return nil
}

// JoinPrivateLeague joins a private league by code.
// @Summary      Join a private league
// @Tags         leagues
// @Produce      json
// @Param        code path string true "League join code"
// @Success      200 {object} model.MessageResponse
// @Failure      409 {object} common.AppError
// @Security     BearerAuth
// @Router       /leagues/private/{code}/join [post]
func (h *LeagueHandler) JoinPrivateLeague(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := CurrentEmail(r.Context())
	code := chi.URLParam(r, "code")

	leagueName, err := h.service.JoinPrivateLeague(email, code)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{
		Message: fmt.Sprintf("Successfully joined %s league", leagueName),
	})
	return nil
}
