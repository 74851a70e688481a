package model

import "time"

// Audit severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Audit entity types
const (
	EntityUser        = "user"
	EntityInvite      = "invite"
	EntityAlliance    = "alliance"
	EntityCampaign    = "svs"
	EntityPrepScore   = "prep_points"
	EntityReservation = "svs_reservation"
)

// Audit actions
const (
	ActionInviteCreated   = "invite_created"
	ActionInviteCancelled = "invite_cancelled"
	ActionInviteAccepted  = "invite_accepted"
	ActionUserApproved    = "user_approved"
	ActionUserUpdated     = "user_updated"
	ActionUserDeleted     = "user_deleted"
	ActionUserPromoted    = "user_promoted"
	ActionAllianceSaved   = "alliance_saved"
	ActionCampaignCreated = "svs_created"
	ActionVictorSet       = "victor_set"
	ActionCompleted       = "svs_completed"
	ActionPrepUpdated     = "prep_updated"
	ActionMemberReserve   = "member_reserve"
	ActionMemberCancel    = "member_cancel"
	ActionMemberRebook    = "member_rebook"
	ActionAdminReserve    = "admin_reserve"
	ActionAdminCancel     = "admin_cancel"
)

// Actor identifies who performed an operation, for audit purposes.
type Actor struct {
	Email Email  `json:"email"`
	Role  string `json:"role"`
}

// AuditEntry is an append-only record of who did what to which entity.
// Entries are written best-effort after the transaction they describe has
// committed and are never mutated or deleted.
type AuditEntry struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"`
	Action     string `json:"action"`

	// Profile snapshot of the affected player, where applicable.
	PlayerID   PlayerID `json:"player_id,omitempty"`
	IngameName string   `json:"ingame_name,omitempty"`
	Alliance   string   `json:"alliance,omitempty"`

	PerformedBy Email  `json:"performed_by,omitempty"`
	Role        string `json:"role,omitempty"`
	Severity    string `json:"severity"`

	Details map[string]string `json:"details,omitempty"`

	PerformedAt time.Time `json:"performed_at"`
}
