package request

// SignupRequest is the request body for creating a player-ID account
type SignupRequest struct {
	PlayerID string `json:"player_id"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in.
// Identifier accepts either a player ID or the account email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// CreateInviteRequest is the request body for creating an invite
type CreateInviteRequest struct {
	Email      string `json:"email"`
	PlayerID   string `json:"player_id"`
	IngameName string `json:"ingame_name"`
	Alliance   string `json:"alliance"`
}

// CompleteProfileRequest is the request body for filling in a profile
type CompleteProfileRequest struct {
	IngameName string `json:"ingame_name"`
	Alliance   string `json:"alliance"`
}

// PromoteRequest is the request body for submitting a profile for approval
type PromoteRequest struct {
	PlayerID   string `json:"player_id"`
	IngameName string `json:"ingame_name"`
	Alliance   string `json:"alliance"`
}

// UpdateUserRequest is the request body for admin profile edits.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	PlayerID   *string `json:"player_id,omitempty"`
	IngameName *string `json:"ingame_name,omitempty"`
	Alliance   *string `json:"alliance,omitempty"`
	Role       *string `json:"role,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// CreateCampaignRequest is the request body for opening a campaign
type CreateCampaignRequest struct {
	OpponentState string `json:"opponent_state"`
	BattleDate    string `json:"battle_date"` // YYYY-MM-DD
}

// SetVictorRequest is the request body for recording the battle outcome
type SetVictorRequest struct {
	Victor string `json:"victor"`
}

// UpdateScoreRequest is the request body for updating a prep day's tallies
type UpdateScoreRequest struct {
	SelfPoints     int64 `json:"self_points"`
	OpponentPoints int64 `json:"opponent_points"`
}

// RebookRequest is the request body for moving a reservation
type RebookRequest struct {
	ToSlotID string `json:"to_slot_id"`
}

// AdminReserveRequest is the request body for reserving a slot on behalf
// of a player
type AdminReserveRequest struct {
	PlayerID   string `json:"player_id"`
	IngameName string `json:"ingame_name,omitempty"`
	Alliance   string `json:"alliance,omitempty"`
}

// SaveAllianceRequest is the request body for upserting an alliance
type SaveAllianceRequest struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
