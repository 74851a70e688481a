package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body with the given status. A nil
// payload writes the status and headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent acknowledges a mutation that returns no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
