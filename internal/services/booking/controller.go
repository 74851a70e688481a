package booking

import (
	"context"
	"log/slog"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/idguard"
	"github.com/frostgate/svscoord/internal/storage"
)

// Controller manages reservation slots. Every mutation runs in a single
// transaction over the slot (and, where needed, user) records, so two
// concurrent attempts on the same free slot resolve to exactly one winner;
// the loser observes ErrSlotReserved, never a lost update. Audit entries
// are appended after the transaction commits and never roll it back.
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new booking Controller
func NewController(store storage.Store, recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// activeCampaign rejects any mutation against a non-active campaign.
func activeCampaign(tx storage.Txn, id model.CampaignID) (*model.Campaign, error) {
	camp, err := tx.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if camp.Status != model.CampaignActive {
		return nil, model.ErrCampaignCompleted
	}
	return camp, nil
}

// Book reserves a free slot for an approved member. The one-booking-per-
// day check runs inside the same transaction as the stamp.
func (c *Controller) Book(ctx context.Context, campaignID model.CampaignID, slotID model.SlotID, email model.Email) error {
	var booked model.Slot

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		if _, err := activeCampaign(tx, campaignID); err != nil {
			return err
		}

		slot, err := tx.GetSlot(campaignID, slotID)
		if err != nil {
			return err
		}
		if !slot.Free() {
			return model.ErrSlotReserved
		}

		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}
		if user.Status != model.StatusApproved {
			return model.ErrProfileNotApproved
		}

		held, err := tx.SlotHeldOn(campaignID, slot.Day, email)
		if err != nil {
			return err
		}
		if held != nil {
			return model.ErrDayAlreadyBooked
		}

		now := c.clock.Now()
		slot.ReservedBy = email
		slot.PlayerID = user.PlayerID
		slot.IngameName = user.IngameName
		slot.Alliance = user.Alliance
		slot.CreatedAt = now
		slot.UpdatedAt = now
		booked = *slot
		return tx.PutSlot(campaignID, slot)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityReservation,
		EntityID:    string(campaignID),
		Action:      model.ActionMemberReserve,
		PlayerID:    booked.PlayerID,
		IngameName:  booked.IngameName,
		Alliance:    booked.Alliance,
		PerformedBy: email,
		Role:        model.RoleMember,
		Details:     map[string]string{"slot_id": string(slotID)},
	})
	return nil
}

// Cancel releases a reservation owned by email.
func (c *Controller) Cancel(ctx context.Context, campaignID model.CampaignID, slotID model.SlotID, email model.Email) error {
	var released model.Slot

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		if _, err := activeCampaign(tx, campaignID); err != nil {
			return err
		}

		slot, err := tx.GetSlot(campaignID, slotID)
		if err != nil {
			return err
		}
		if slot.Free() {
			return model.ErrSlotFree
		}
		if slot.ReservedBy != email {
			return model.ErrNotSlotOwner
		}

		released = *slot
		slot.ClearReservation(c.clock.Now())
		return tx.PutSlot(campaignID, slot)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityReservation,
		EntityID:    string(campaignID),
		Action:      model.ActionMemberCancel,
		PlayerID:    released.PlayerID,
		IngameName:  released.IngameName,
		Alliance:    released.Alliance,
		PerformedBy: email,
		Role:        model.RoleMember,
		Severity:    model.SeverityWarning,
		Details:     map[string]string{"slot_id": string(slotID)},
	})
	return nil
}

// Rebook moves a member's reservation to another slot in one atomic swap.
// If the target slot was taken between the client's read and the
// transaction, the swap fails and neither slot changes.
func (c *Controller) Rebook(ctx context.Context, campaignID model.CampaignID, fromID, toID model.SlotID, email model.Email) error {
	var booked model.Slot

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		if _, err := activeCampaign(tx, campaignID); err != nil {
			return err
		}

		from, err := tx.GetSlot(campaignID, fromID)
		if err != nil {
			return err
		}
		to, err := tx.GetSlot(campaignID, toID)
		if err != nil {
			return err
		}

		if from.ReservedBy != email {
			return model.ErrNotSlotOwner
		}
		if !to.Free() {
			return model.ErrSlotReserved
		}

		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		from.ClearReservation(now)
		if err := tx.PutSlot(campaignID, from); err != nil {
			return err
		}

		// The source is already cleared in this transaction's view, so a
		// same-day move does not trip the one-per-day rule against itself.
		held, err := tx.SlotHeldOn(campaignID, to.Day, email)
		if err != nil {
			return err
		}
		if held != nil {
			return model.ErrDayAlreadyBooked
		}

		to.ReservedBy = email
		to.PlayerID = user.PlayerID
		to.IngameName = user.IngameName
		to.Alliance = user.Alliance
		to.CreatedAt = now
		to.UpdatedAt = now
		booked = *to
		return tx.PutSlot(campaignID, to)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityReservation,
		EntityID:    string(campaignID),
		Action:      model.ActionMemberRebook,
		PlayerID:    booked.PlayerID,
		IngameName:  booked.IngameName,
		Alliance:    booked.Alliance,
		PerformedBy: email,
		Role:        model.RoleMember,
		Details: map[string]string{
			"from_slot_id": string(fromID),
			"to_slot_id":   string(toID),
		},
	})
	return nil
}

// AdminReserve books a slot on behalf of a player ID. When no account owns
// the ID, a placeholder account is created in the same transaction; more
// than one owner is a broken uniqueness invariant and fails hard.
func (c *Controller) AdminReserve(ctx context.Context, actor model.Actor, campaignID model.CampaignID, slotID model.SlotID, playerID model.PlayerID, ingameName, alliance string) error {
	if !idguard.ValidID(playerID) {
		return model.ErrPlayerIDNotNumeric
	}

	var booked model.Slot

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		if _, err := activeCampaign(tx, campaignID); err != nil {
			return err
		}

		slot, err := tx.GetSlot(campaignID, slotID)
		if err != nil {
			return err
		}
		if !slot.Free() {
			return model.ErrSlotReserved
		}

		owners, err := tx.UsersByPlayerID(playerID)
		if err != nil {
			return err
		}

		var email model.Email
		var name, tag string

		switch len(owners) {
		case 0:
			if ingameName == "" || alliance == "" {
				return model.ErrProfileIncomplete
			}
			email = model.SyntheticEmail(playerID)
			name, tag = ingameName, alliance

			now := c.clock.Now()
			if err := tx.PutUser(&model.User{
				Email:          email,
				Role:           model.RoleMember,
				Status:         model.StatusApproved,
				PlayerID:       playerID,
				IngameName:     name,
				Alliance:       tag,
				IsPlaceholder:  true,
				AuthLinked:     false,
				CreatedByAdmin: true,
				CreatedAt:      now,
				UpdatedAt:      now,
			}); err != nil {
				return err
			}
		case 1:
			owner := owners[0]
			if owner.IngameName == "" || owner.Alliance == "" {
				return model.ErrProfileIncomplete
			}
			email = owner.Email
			name = owner.IngameName
			tag = owner.Alliance
			if alliance != "" {
				tag = alliance
			}
		default:
			return model.ErrDuplicatePlayerID
		}

		held, err := tx.SlotHeldOn(campaignID, slot.Day, email)
		if err != nil {
			return err
		}
		if held != nil {
			return model.ErrDayAlreadyBooked
		}

		now := c.clock.Now()
		slot.ReservedBy = email
		slot.PlayerID = playerID
		slot.IngameName = name
		slot.Alliance = tag
		slot.CreatedAt = now
		slot.UpdatedAt = now
		booked = *slot
		return tx.PutSlot(campaignID, slot)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityReservation,
		EntityID:    string(campaignID),
		Action:      model.ActionAdminReserve,
		PlayerID:    booked.PlayerID,
		IngameName:  booked.IngameName,
		Alliance:    booked.Alliance,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Details:     map[string]string{"slot_id": string(slotID)},
	})
	return nil
}

// AdminCancel releases any held slot without an ownership check. A free
// slot is rejected rather than silently accepted.
func (c *Controller) AdminCancel(ctx context.Context, actor model.Actor, campaignID model.CampaignID, slotID model.SlotID) error {
	var released model.Slot

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		if _, err := activeCampaign(tx, campaignID); err != nil {
			return err
		}

		slot, err := tx.GetSlot(campaignID, slotID)
		if err != nil {
			return err
		}
		if slot.Free() {
			return model.ErrSlotFree
		}

		released = *slot
		slot.ClearReservation(c.clock.Now())
		return tx.PutSlot(campaignID, slot)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityReservation,
		EntityID:    string(campaignID),
		Action:      model.ActionAdminCancel,
		PlayerID:    released.PlayerID,
		IngameName:  released.IngameName,
		Alliance:    released.Alliance,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Severity:    model.SeverityWarning,
		Details:     map[string]string{"slot_id": string(slotID)},
	})
	return nil
}
