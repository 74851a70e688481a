package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/booking"
)

// BookingHandler handles slot reservation endpoints
type BookingHandler struct {
	bookings *booking.Controller
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *booking.Controller) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
	}
}

// Book handles POST /api/v1/campaigns/{id}/slots/{slot_id}/book
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	slotID := model.SlotID(vars["slot_id"])

	user := middleware.MustGetUser(r.Context())
	if err := h.bookings.Book(r.Context(), campaignID, slotID, user.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Cancel handles POST /api/v1/campaigns/{id}/slots/{slot_id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	slotID := model.SlotID(vars["slot_id"])

	user := middleware.MustGetUser(r.Context())
	if err := h.bookings.Cancel(r.Context(), campaignID, slotID, user.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Rebook handles POST /api/v1/campaigns/{id}/slots/{slot_id}/rebook
func (h *BookingHandler) Rebook(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	fromID := model.SlotID(vars["slot_id"])

	var req request.RebookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ToSlotID == "" {
		WriteError(w, NewInvalidRequestError("to_slot_id is required"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.bookings.Rebook(r.Context(), campaignID, fromID, model.SlotID(req.ToSlotID), user.Email); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AdminReserve handles POST /api/v1/admin/campaigns/{id}/slots/{slot_id}/reserve
func (h *BookingHandler) AdminReserve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	slotID := model.SlotID(vars["slot_id"])

	var req request.AdminReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	actor := middleware.ActorFor(r.Context())
	if err := h.bookings.AdminReserve(r.Context(), actor, campaignID, slotID, model.PlayerID(req.PlayerID), req.IngameName, req.Alliance); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AdminCancel handles POST /api/v1/admin/campaigns/{id}/slots/{slot_id}/cancel
func (h *BookingHandler) AdminCancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	campaignID := model.CampaignID(vars["id"])
	slotID := model.SlotID(vars["slot_id"])

	actor := middleware.ActorFor(r.Context())
	if err := h.bookings.AdminCancel(r.Context(), actor, campaignID, slotID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
