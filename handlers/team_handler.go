package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arenahub/team-registry/services"
)

// Response messages are part of the public contract of the registration API
// and must not change between releases.
const (
	msgTeamValidation  = "Team name & 4 players required"
	msgSaveTeamFailed  = "Failed to save team"
	msgFetchTeamsFail  = "Failed to fetch teams"
	msgFetchTeamFailed = "Failed to fetch team"
	msgNotFound        = "Not found"
)

type TeamHandler struct {
	teamService services.TeamService
	logger      *slog.Logger
}

func NewTeamHandler(ts services.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: ts,
		logger:      logger,
	}
}

func (h *TeamHandler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterTeamInput
	if err := readJSON(w, r, &input); err != nil {
		h.logger.Warn("rejected team registration body", slog.Any("error", err))
		errorResponse(w, http.StatusBadRequest, msgTeamValidation)
		return
	}

	teamID, err := h.teamService.RegisterTeam(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTeamNameRequired),
			errors.Is(err, services.ErrRosterSizeInvalid):
			errorResponse(w, http.StatusBadRequest, msgTeamValidation)
		default:
			h.logger.Error("failed to register team", slog.Any("error", err))
			errorResponse(w, http.StatusInternalServerError, msgSaveTeamFailed)
		}
		return
	}

	response := jsonResponse{
		"success": true,
		"team_id": teamID,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.logger.Error("failed to write registration response", slog.Any("error", err))
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		h.logger.Error("failed to list teams", slog.Any("error", err))
		errorResponse(w, http.StatusInternalServerError, msgFetchTeamsFail)
		return
	}

	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		h.logger.Error("failed to write teams response", slog.Any("error", err))
	}
}

func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		// A malformed id can never match a team.
		errorResponse(w, http.StatusNotFound, msgNotFound)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			errorResponse(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logger.Error("failed to fetch team", slog.Int("team_id", teamID), slog.Any("error", err))
		errorResponse(w, http.StatusInternalServerError, msgFetchTeamFailed)
		return
	}

	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		h.logger.Error("failed to write team response", slog.Any("error", err))
	}
}
