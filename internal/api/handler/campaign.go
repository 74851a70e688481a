package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/campaign"
)

// CampaignHandler handles campaign lifecycle and schedule endpoints
type CampaignHandler struct {
	campaigns *campaign.Controller
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaigns *campaign.Controller) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
	}
}

// Create handles POST /api/v1/admin/campaigns
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.OpponentState == "" {
		WriteError(w, NewInvalidRequestError("opponent_state is required"))
		return
	}
	battleDate, err := time.Parse("2006-01-02", req.BattleDate)
	if err != nil {
		WriteError(w, NewInvalidRequestError("battle_date must be YYYY-MM-DD"))
		return
	}

	created, err := h.campaigns.Create(r.Context(), middleware.ActorFor(r.Context()), req.OpponentState, battleDate)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CampaignFromModel(created))
}

// Active handles GET /api/v1/campaigns/active
func (h *CampaignHandler) Active(w http.ResponseWriter, r *http.Request) {
	active, err := h.campaigns.Active(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if active == nil {
		WriteError(w, model.ErrCampaignNotActive)
		return
	}

	response.JSON(w, http.StatusOK, response.CampaignFromModel(active))
}

// Get handles GET /api/v1/campaigns/{id}
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.CampaignID(mux.Vars(r)["id"])

	c, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CampaignFromModel(c))
}

// History handles GET /api/v1/campaigns/history
func (h *CampaignHandler) History(w http.ResponseWriter, r *http.Request) {
	completed, err := h.campaigns.CompletedHistory(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CampaignsFromModel(completed))
}

// SetVictor handles PUT /api/v1/admin/campaigns/{id}/victor
func (h *CampaignHandler) SetVictor(w http.ResponseWriter, r *http.Request) {
	id := model.CampaignID(mux.Vars(r)["id"])

	var req request.SetVictorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.campaigns.SetVictor(r.Context(), middleware.ActorFor(r.Context()), id, req.Victor); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Complete handles POST /api/v1/admin/campaigns/{id}/complete
func (h *CampaignHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := model.CampaignID(mux.Vars(r)["id"])

	if err := h.campaigns.Complete(r.Context(), middleware.ActorFor(r.Context()), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// PrepDays handles GET /api/v1/campaigns/{id}/prep-days
func (h *CampaignHandler) PrepDays(w http.ResponseWriter, r *http.Request) {
	id := model.CampaignID(mux.Vars(r)["id"])

	scores, err := h.campaigns.PrepDays(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	days := make([]response.PrepDay, len(scores))
	for i, s := range scores {
		days[i] = response.PrepDayFromModel(s, campaign.RoleForWeekday(s.Weekday))
	}

	response.JSON(w, http.StatusOK, days)
}

// Slots handles GET /api/v1/campaigns/{id}/slots
func (h *CampaignHandler) Slots(w http.ResponseWriter, r *http.Request) {
	id := model.CampaignID(mux.Vars(r)["id"])

	slots, err := h.campaigns.Slots(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SlotsFromModel(slots))
}

// SlotsForDay handles GET /api/v1/campaigns/{id}/days/{day}/slots
func (h *CampaignHandler) SlotsForDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.CampaignID(vars["id"])
	day := model.DayID(vars["day"])

	slots, err := h.campaigns.SlotsForDay(r.Context(), id, day)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SlotsFromModel(slots))
}
