package model

import "time"

// Email is the document key for a user. Placeholder accounts use a synthetic
// address of the form "<playerID>@placeholder.local".
type Email string

// PlayerID is the numeric in-game identifier. Globally unique among
// non-deleted users; see the identity guard for the claim rules.
type PlayerID string

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User statuses
const (
	StatusIncomplete = "incomplete"
	StatusPending    = "pending"
	StatusApproved   = "approved"
)

// PlaceholderDomain is the synthetic email domain for accounts created
// before their owner has authenticated.
const PlaceholderDomain = "placeholder.local"

// User is a member record keyed by email.
type User struct {
	Email      Email    `json:"email"`
	Role       string   `json:"role"`
	Status     string   `json:"status"`
	PlayerID   PlayerID `json:"player_id,omitempty"`
	IngameName string   `json:"ingame_name,omitempty"`
	Alliance   string   `json:"alliance,omitempty"`

	// IsPlaceholder marks an account created by an admin on behalf of a
	// player who has not yet authenticated. A placeholder is converted in
	// place when its owner signs up, never duplicated.
	IsPlaceholder  bool `json:"is_placeholder"`
	AuthLinked     bool `json:"auth_linked"`
	CreatedByAdmin bool `json:"created_by_admin,omitempty"`

	PasswordHash []byte `json:"password_hash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasProfile reports whether any profile fields have been filled in.
func (u *User) HasProfile() bool {
	return u.PlayerID != "" || u.IngameName != "" || u.Alliance != ""
}

// SyntheticEmail builds the placeholder-domain email for a player ID.
func SyntheticEmail(playerID PlayerID) Email {
	return Email(string(playerID) + "@" + PlaceholderDomain)
}
