package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frostgate/svscoord/internal/api/middleware"
	"github.com/frostgate/svscoord/internal/api/request"
	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/services/alliance"
)

// AllianceHandler handles alliance registry endpoints
type AllianceHandler struct {
	alliances *alliance.Controller
}

// NewAllianceHandler creates a new alliance handler
func NewAllianceHandler(alliances *alliance.Controller) *AllianceHandler {
	return &AllianceHandler{
		alliances: alliances,
	}
}

// Save handles PUT /api/v1/admin/alliances
func (h *AllianceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveAllianceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Tag == "" {
		WriteError(w, NewInvalidRequestError("tag is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	actor := middleware.ActorFor(r.Context())
	if err := h.alliances.Save(r.Context(), actor, req.Tag, req.Name, req.Status); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// List handles GET /api/v1/alliances
func (h *AllianceHandler) List(w http.ResponseWriter, r *http.Request) {
	alliances, err := h.alliances.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AlliancesFromModel(alliances))
}
