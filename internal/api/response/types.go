package response

import (
	"time"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/auth"
)

// User represents a directory member in API responses.
// Password hashes never leave the service layer.
type User struct {
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	PlayerID       string `json:"player_id,omitempty"`
	IngameName     string `json:"ingame_name,omitempty"`
	Alliance       string `json:"alliance,omitempty"`
	IsPlaceholder  bool   `json:"is_placeholder"`
	AuthLinked     bool   `json:"auth_linked"`
	CreatedByAdmin bool   `json:"created_by_admin,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Email:          string(u.Email),
		Role:           u.Role,
		Status:         u.Status,
		PlayerID:       string(u.PlayerID),
		IngameName:     u.IngameName,
		Alliance:       u.Alliance,
		IsPlaceholder:  u.IsPlaceholder,
		AuthLinked:     u.AuthLinked,
		CreatedByAdmin: u.CreatedByAdmin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UsersFromModel converts a slice of users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// Invite represents a pending invite
type Invite struct {
	Email      string    `json:"email"`
	PlayerID   string    `json:"player_id"`
	IngameName string    `json:"ingame_name"`
	Alliance   string    `json:"alliance"`
	InvitedBy  string    `json:"invited_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// InviteFromModel converts model.Invite
func InviteFromModel(i *model.Invite) Invite {
	return Invite{
		Email:      string(i.Email),
		PlayerID:   string(i.PlayerID),
		IngameName: i.IngameName,
		Alliance:   i.Alliance,
		InvitedBy:  string(i.InvitedBy),
		CreatedAt:  i.CreatedAt,
	}
}

// InvitesFromModel converts a slice of invites
func InvitesFromModel(invites []*model.Invite) []Invite {
	out := make([]Invite, len(invites))
	for i, inv := range invites {
		out[i] = InviteFromModel(inv)
	}
	return out
}

// Campaign represents a campaign in API responses
type Campaign struct {
	ID            string     `json:"id"`
	OpponentState string     `json:"opponent_state"`
	BattleDate    time.Time  `json:"battle_date"`
	Status        string     `json:"status"`
	Victor        string     `json:"victor,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// CampaignFromModel converts model.Campaign
func CampaignFromModel(c *model.Campaign) Campaign {
	out := Campaign{
		ID:            string(c.ID),
		OpponentState: c.OpponentState,
		BattleDate:    c.BattleDate,
		Status:        c.Status,
		Victor:        c.Victor,
		CreatedAt:     c.CreatedAt,
	}
	if !c.CompletedAt.IsZero() {
		t := c.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// CampaignsFromModel converts a slice of campaigns
func CampaignsFromModel(campaigns []*model.Campaign) []Campaign {
	out := make([]Campaign, len(campaigns))
	for i, c := range campaigns {
		out[i] = CampaignFromModel(c)
	}
	return out
}

// PrepDay represents one prep day's score entry
type PrepDay struct {
	Day            string     `json:"day"`
	Weekday        string     `json:"weekday"`
	Role           string     `json:"role,omitempty"`
	SelfPoints     int64      `json:"self_points"`
	OpponentPoints int64      `json:"opponent_points"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// PrepDayFromModel converts model.PrepScore. Role is the ministry
// bookable on that weekday, empty on non-role days.
func PrepDayFromModel(p *model.PrepScore, role string) PrepDay {
	out := PrepDay{
		Day:            string(p.Day),
		Weekday:        p.Weekday.String(),
		Role:           role,
		SelfPoints:     p.SelfPoints,
		OpponentPoints: p.OpponentPoints,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// Slot represents a bookable appointment slot
type Slot struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Role      string    `json:"role"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reserved  bool      `json:"reserved"`

	ReservedBy string `json:"reserved_by,omitempty"`
	PlayerID   string `json:"player_id,omitempty"`
	IngameName string `json:"ingame_name,omitempty"`
	Alliance   string `json:"alliance,omitempty"`
}

// SlotFromModel converts model.Slot
func SlotFromModel(s *model.Slot) Slot {
	return Slot{
		ID:         string(s.ID),
		Day:        string(s.Day),
		Role:       s.Role,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Reserved:   !s.Free(),
		ReservedBy: string(s.ReservedBy),
		PlayerID:   string(s.PlayerID),
		IngameName: s.IngameName,
		Alliance:   s.Alliance,
	}
}

// SlotsFromModel converts a slice of slots
func SlotsFromModel(slots []*model.Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = SlotFromModel(s)
	}
	return out
}

// Alliance represents an alliance registry entry
type Alliance struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// AllianceFromModel converts model.Alliance
func AllianceFromModel(a *model.Alliance) Alliance {
	return Alliance{
		Tag:    a.Tag,
		Name:   a.Name,
		Status: a.Status,
	}
}

// AlliancesFromModel converts a slice of alliances
func AlliancesFromModel(alliances []*model.Alliance) []Alliance {
	out := make([]Alliance, len(alliances))
	for i, a := range alliances {
		out[i] = AllianceFromModel(a)
	}
	return out
}

// AuditEntry represents one audit log record
type AuditEntry struct {
	EntityType  string            `json:"entity_type"`
	EntityID    string            `json:"entity_id,omitempty"`
	Action      string            `json:"action"`
	PlayerID    string            `json:"player_id,omitempty"`
	IngameName  string            `json:"ingame_name,omitempty"`
	Alliance    string            `json:"alliance,omitempty"`
	PerformedBy string            `json:"performed_by,omitempty"`
	Role        string            `json:"role,omitempty"`
	Severity    string            `json:"severity"`
	Details     map[string]string `json:"details,omitempty"`
	PerformedAt time.Time         `json:"performed_at"`
}

// AuditEntryFromModel converts model.AuditEntry
func AuditEntryFromModel(e *model.AuditEntry) AuditEntry {
	return AuditEntry{
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		PlayerID:    string(e.PlayerID),
		IngameName:  e.IngameName,
		Alliance:    e.Alliance,
		PerformedBy: string(e.PerformedBy),
		Role:        e.Role,
		Severity:    e.Severity,
		Details:     e.Details,
		PerformedAt: e.PerformedAt,
	}
}

// AuditEntriesFromModel converts a slice of audit entries
func AuditEntriesFromModel(entries []*model.AuditEntry) []AuditEntry {
	out := make([]AuditEntry, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryFromModel(e)
	}
	return out
}
