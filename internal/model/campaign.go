package model

import (
	"fmt"
	"time"
)

// CampaignID identifies one SVS event, derived from its battle date.
type CampaignID string

// Campaign statuses
const (
	CampaignActive    = "active"
	CampaignCompleted = "completed"
)

// Victor values
const (
	VictorSelf     = "self"
	VictorOpponent = "opponent"
)

// Campaign is one scheduled SVS event. Once completed it is frozen: no
// further mutation of scores, slots or victor is permitted.
type Campaign struct {
	ID            CampaignID `json:"id"`
	OpponentState string     `json:"opponent_state"`
	BattleDate    time.Time  `json:"battle_date"`
	Status        string     `json:"status"`
	Victor        string     `json:"victor,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   time.Time  `json:"completed_at,omitzero"`
}

// NewCampaignID derives the campaign key from a battle date.
func NewCampaignID(battleDate time.Time) CampaignID {
	return CampaignID(fmt.Sprintf("svs_%s", battleDate.UTC().Format("2006_01_02")))
}

// Control statuses
const (
	ControlNone   = "none"
	ControlActive = "active"
)

// Control is the singleton tracking which campaign, if any, is active.
// It is only ever updated inside the same transaction that flips a
// campaign's status, which is what enforces "at most one active campaign".
type Control struct {
	ActiveCampaignID CampaignID `json:"active_campaign_id,omitempty"`
	Status           string     `json:"status"`
}

// DayID is a prep-day key in YYYY-MM-DD form.
type DayID string

// FormatDayID renders a date as a prep-day key.
func FormatDayID(t time.Time) DayID {
	return DayID(t.UTC().Format("2006-01-02"))
}

// PrepScore holds one prep day's point tallies for a campaign.
type PrepScore struct {
	Day            DayID        `json:"day"`
	Weekday        time.Weekday `json:"weekday"`
	SelfPoints     int64        `json:"self_points"`
	OpponentPoints int64        `json:"opponent_points"`
	UpdatedAt      time.Time    `json:"updated_at,omitzero"`
}
