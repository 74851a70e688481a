package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileIncomplete  = errors.New("user profile incomplete")
	ErrProfileNotApproved = errors.New("user profile not approved")

	// Player ID errors
	ErrPlayerIDNotNumeric = errors.New("player ID must be numeric")
	ErrPlayerIDClaimed    = errors.New("player ID already claimed")
	ErrPlayerIDReserved   = errors.New("player ID reserved by a placeholder account")
	// ErrDuplicatePlayerID indicates a broken uniqueness invariant. It is
	// surfaced as fatal and never retried or silently repaired.
	ErrDuplicatePlayerID = errors.New("data integrity error: duplicate player ID owners")

	// Invite errors
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExists       = errors.New("active invite already exists for this email")
	ErrInviteForPlayerID  = errors.New("active invite already exists for this player ID")
	ErrEmailAlreadyMember = errors.New("a user with this email already has a profile")

	// Campaign errors
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrCampaignExists        = errors.New("active campaign already exists")
	ErrCampaignNotActive     = errors.New("campaign is not active")
	ErrCampaignCompleted     = errors.New("campaign already completed")
	ErrBeforeBattleDate      = errors.New("battle date has not passed yet")
	ErrBattleDateNotSaturday = errors.New("battle date must fall on a Saturday")
	ErrVictorNotSet          = errors.New("victor must be set before completion")
	ErrInvalidVictor         = errors.New("invalid victor")
	ErrNoPrepScores          = errors.New("prep score entries missing")

	// Slot errors
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotReserved     = errors.New("slot already reserved")
	ErrSlotFree         = errors.New("slot already free")
	ErrNotSlotOwner     = errors.New("reservation belongs to another user")
	ErrDayAlreadyBooked = errors.New("user already has a reservation for this day")

	// Prep score errors
	ErrPrepDayNotFound = errors.New("prep day not found")
)
