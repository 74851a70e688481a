package model

// Alliance statuses
const (
	AllianceActive   = "active"
	AllianceInactive = "inactive"
)

// Alliance is keyed by its short tag.
type Alliance struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
