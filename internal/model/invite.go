package model

import "time"

// Invite is an admission invitation keyed by the target email.
// At most one invite per player ID may be active (unused and uncancelled)
// at any time.
type Invite struct {
	Email      Email    `json:"email"`
	PlayerID   PlayerID `json:"player_id"`
	IngameName string   `json:"ingame_name"`
	Alliance   string   `json:"alliance"`
	InvitedBy  Email    `json:"invited_by,omitempty"`

	Used      bool      `json:"used"`
	Cancelled bool      `json:"cancelled"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the invite can still be accepted.
func (i *Invite) Active() bool {
	return !i.Used && !i.Cancelled
}
