package storage

import (
	"context"

	"github.com/frostgate/svscoord/internal/model"
)

// Txn is the view of the store inside one serializable transaction. All
// reads observe a consistent snapshot together with the transaction's own
// staged writes; writes are applied atomically on commit or not at all.
//
// Lookups that back uniqueness invariants (player ID ownership, the active
// invite per player ID, the one-booking-per-day rule) are exposed here so
// callers can re-check them in the same transaction as the write that
// depends on them. Checking outside the transaction leaves a race window.
type Txn interface {
	// User operations
	GetUser(email model.Email) (*model.User, error)
	UsersByPlayerID(playerID model.PlayerID) ([]*model.User, error)
	PutUser(user *model.User) error
	DeleteUser(email model.Email) error

	// Invite operations
	GetInvite(email model.Email) (*model.Invite, error)
	ActiveInviteByPlayerID(playerID model.PlayerID) (*model.Invite, error)
	PutInvite(invite *model.Invite) error

	// Control singleton
	GetControl() (*model.Control, error)
	PutControl(control *model.Control) error

	// Campaign operations
	GetCampaign(id model.CampaignID) (*model.Campaign, error)
	PutCampaign(campaign *model.Campaign) error

	// Slot operations
	GetSlot(campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error)
	PutSlot(campaignID model.CampaignID, slot *model.Slot) error
	SlotHeldOn(campaignID model.CampaignID, day model.DayID, email model.Email) (*model.Slot, error)
	SlotsHeldBy(campaignID model.CampaignID, email model.Email) ([]*model.Slot, error)

	// Prep score operations
	GetPrepScore(campaignID model.CampaignID, day model.DayID) (*model.PrepScore, error)
	PutPrepScore(campaignID model.CampaignID, score *model.PrepScore) error
	PrepScoreCount(campaignID model.CampaignID) (int, error)
}

// Store defines the interface for data persistence.
//
// RunTransaction executes fn inside a serializable transaction and retries
// it on write-write conflict. Any error returned by fn aborts the
// transaction with no partial write and is returned unchanged.
//
// The remaining methods are non-transactional: bulk schedule seeding (run
// once per campaign, right after creation), read-side snapshot queries for
// collaborators, and the append-only audit log. Audit appends are
// deliberately outside the transaction boundary.
type Store interface {
	RunTransaction(ctx context.Context, fn func(tx Txn) error) error

	// SeedCampaign writes a campaign's generated prep-score entries and
	// slot grid in one batch.
	SeedCampaign(ctx context.Context, campaignID model.CampaignID, scores []*model.PrepScore, slots []*model.Slot) error

	// User reads
	GetUser(ctx context.Context, email model.Email) (*model.User, error)
	UsersByStatus(ctx context.Context, status string) ([]*model.User, error)
	Placeholders(ctx context.Context) ([]*model.User, error)

	// Invite reads
	GetInvite(ctx context.Context, email model.Email) (*model.Invite, error)
	ActiveInvites(ctx context.Context) ([]*model.Invite, error)

	// Alliance operations
	PutAlliance(ctx context.Context, alliance *model.Alliance) error
	Alliances(ctx context.Context) ([]*model.Alliance, error)

	// Campaign reads
	GetControl(ctx context.Context) (*model.Control, error)
	GetCampaign(ctx context.Context, id model.CampaignID) (*model.Campaign, error)
	CompletedCampaigns(ctx context.Context) ([]*model.Campaign, error)
	PrepScores(ctx context.Context, campaignID model.CampaignID) ([]*model.PrepScore, error)
	GetSlot(ctx context.Context, campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error)
	Slots(ctx context.Context, campaignID model.CampaignID) ([]*model.Slot, error)
	SlotsForDay(ctx context.Context, campaignID model.CampaignID, day model.DayID) ([]*model.Slot, error)

	// Audit log
	AppendAudit(ctx context.Context, entry *model.AuditEntry) error
	AuditPage(ctx context.Context, offset, limit int) ([]*model.AuditEntry, error)

	Close() error
}
