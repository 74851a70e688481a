package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/score"
)

// ScoreHandler handles prep score endpoints
type ScoreHandler struct {
	scores *score.Controller
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scores *score.Controller) *ScoreHandler {
	return &ScoreHandler{
		scores: scores,
	}
}

// Update handles PUT /api/v1/admin/campaigns/{id}/days/{day}/score
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	day := model.DayID(vars["day"])

	var req request.UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SelfPoints < 0 || req.OpponentPoints < 0 {
		WriteError(w, NewInvalidRequestError("points must be non-negative"))
		return
	}

	actor := middleware.ActorFor(r.Context())
	if err := h.scores.Update(r.Context(), actor, campaignID, day, req.SelfPoints, req.OpponentPoints); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Totals handles GET /api/v1/campaigns/{id}/score
func (h *ScoreHandler) Totals(w http.ResponseWriter, r *http.Request) {
	campaignID := model.CampaignID(mux.Vars(r)["id"])

	totals, err := h.scores.Totals(r.Context(), campaignID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, totals)
}
