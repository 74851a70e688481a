package redis

import (
	"fmt"

	"github.com/frostgate/svscoord/internal/model"
)

// Key prefix for all coordinator data
const keyPrefix = "svs"

// Key generation functions for each record family. Secondary index keys
// are maintained inside the same MULTI/EXEC as the documents they index.

func userKey(email model.Email) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, email)
}

// playerIndexKey returns the key for the player_id -> user emails SET
func playerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player:%s", keyPrefix, playerID)
}

// statusIndexKey returns the key for the status -> user emails SET
func statusIndexKey(status string) string {
	return fmt.Sprintf("%s:idx:user_status:%s", keyPrefix, status)
}

// placeholderIndexKey returns the key for the SET of placeholder accounts
func placeholderIndexKey() string {
	return fmt.Sprintf("%s:idx:placeholders", keyPrefix)
}

func inviteKey(email model.Email) string {
	return fmt.Sprintf("%s:invite:%s", keyPrefix, email)
}

// activeInviteIndexKey returns the key holding the email of the active
// invite for a player ID, if any
func activeInviteIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:invite_player:%s", keyPrefix, playerID)
}

// activeInvitesKey returns the key for the SET of active invite emails
func activeInvitesKey() string {
	return fmt.Sprintf("%s:idx:invites_active", keyPrefix)
}

func allianceKey(tag string) string {
	return fmt.Sprintf("%s:alliance:%s", keyPrefix, tag)
}

func alliancesKey() string {
	return fmt.Sprintf("%s:alliances", keyPrefix)
}

func controlKey() string {
	return fmt.Sprintf("%s:control", keyPrefix)
}

func campaignKey(id model.CampaignID) string {
	return fmt.Sprintf("%s:campaign:%s", keyPrefix, id)
}

// completedCampaignsKey returns the key for the SET of completed campaigns
func completedCampaignsKey() string {
	return fmt.Sprintf("%s:campaigns:completed", keyPrefix)
}

func slotKey(campaignID model.CampaignID, slotID model.SlotID) string {
	return fmt.Sprintf("%s:campaign:%s:slot:%s", keyPrefix, campaignID, slotID)
}

// slotsIndexKey returns the key for the SET of slot IDs in a campaign
func slotsIndexKey(campaignID model.CampaignID) string {
	return fmt.Sprintf("%s:campaign:%s:slots", keyPrefix, campaignID)
}

// holderIndexKey returns the key for the SET of slot IDs held by a user
// within a campaign
func holderIndexKey(campaignID model.CampaignID, email model.Email) string {
	return fmt.Sprintf("%s:campaign:%s:idx:holder:%s", keyPrefix, campaignID, email)
}

func prepScoreKey(campaignID model.CampaignID, day model.DayID) string {
	return fmt.Sprintf("%s:campaign:%s:prep:%s", keyPrefix, campaignID, day)
}

// prepDaysIndexKey returns the key for the SET of prep days in a campaign
func prepDaysIndexKey(campaignID model.CampaignID) string {
	return fmt.Sprintf("%s:campaign:%s:prepdays", keyPrefix, campaignID)
}

// auditLogKey returns the key for the audit log LIST (newest first)
func auditLogKey() string {
	return fmt.Sprintf("%s:audit", keyPrefix)
}
