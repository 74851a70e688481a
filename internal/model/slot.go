package model

import (
	"fmt"
	"time"
)

// SlotID identifies one reservation slot within a campaign:
// "<day>_<role>_<HH:MM>".
type SlotID string

// Slot role labels, derived from the prep-day weekday.
const (
	RoleVicePresident       = "vice_president"
	RoleMinisterOfEducation = "minister_of_education"
)

// Slot is one fixed thirty-minute bookable window within a prep day.
// ReservedBy is empty while the slot is free. The player ID, name and
// alliance are a point-in-time snapshot of the holder's profile taken at
// booking; they are intentionally not kept in sync afterwards so that
// historical reservations stay readable.
type Slot struct {
	ID        SlotID    `json:"id"`
	Day       DayID     `json:"day"`
	Role      string    `json:"role"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	ReservedBy Email    `json:"reserved_by,omitempty"`
	PlayerID   PlayerID `json:"player_id,omitempty"`
	IngameName string   `json:"ingame_name,omitempty"`
	Alliance   string   `json:"alliance,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Free reports whether the slot is unreserved.
func (s *Slot) Free() bool {
	return s.ReservedBy == ""
}

// ClearReservation resets the slot to its free state, dropping the holder
// and the profile snapshot.
func (s *Slot) ClearReservation(now time.Time) {
	s.ReservedBy = ""
	s.PlayerID = ""
	s.IngameName = ""
	s.Alliance = ""
	s.UpdatedAt = now
}

// NewSlotID builds the composite slot key.
func NewSlotID(day DayID, role string, start time.Time) SlotID {
	return SlotID(fmt.Sprintf("%s_%s_%s", day, role, start.UTC().Format("15:04")))
}
