package handler

import (
	"net/http"
	"strconv"

	"github.com/frostgate/svscoord/internal/api/response"
	"github.com/frostgate/svscoord/internal/services/audit"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{
		recorder: recorder,
	}
}

// List handles GET /api/v1/admin/audit?offset=0&limit=50
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 500 {
		WriteError(w, NewInvalidRequestError("limit must be between 1 and 500"))
		return
	}
	if offset < 0 {
		WriteError(w, NewInvalidRequestError("offset must be non-negative"))
		return
	}

	entries, err := h.recorder.Page(r.Context(), offset, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuditEntriesFromModel(entries))
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
