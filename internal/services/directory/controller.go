package directory

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/idguard"
	"github.com/frostgate/svscoord/internal/storage"
)

// Controller manages member records
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new directory Controller
func NewController(store storage.Store, recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// GetByEmail loads a single user.
func (c *Controller) GetByEmail(ctx context.Context, email model.Email) (*model.User, error) {
	return c.storage.GetUser(ctx, email)
}

// UsersByStatus lists users with the given status.
func (c *Controller) UsersByStatus(ctx context.Context, status string) ([]*model.User, error) {
	return c.storage.UsersByStatus(ctx, status)
}

// Placeholders lists admin-created accounts whose owner has not yet
// authenticated.
func (c *Controller) Placeholders(ctx context.Context) ([]*model.User, error) {
	return c.storage.Placeholders(ctx)
}

// Approve moves a user to approved status.
func (c *Controller) Approve(ctx context.Context, actor model.Actor, email model.Email) error {
	var before, after model.User

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}
		before = *user
		user.Status = model.StatusApproved
		user.UpdatedAt = c.clock.Now()
		after = *user
		return tx.PutUser(user)
	})
	if err != nil {
		return err
	}

	c.record(actor, model.ActionUserApproved, model.SeverityInfo, &before, &after, nil)
	return nil
}

// Update holds the optional field changes for a user. Nil fields are left
// untouched.
type Update struct {
	PlayerID   *model.PlayerID
	IngameName *string
	Alliance   *string
	Role       *string
	Status     *string
}

// UpdateUser applies a field-level patch. A player ID change re-checks
// ownership inside the same transaction so the uniqueness invariant holds.
func (c *Controller) UpdateUser(ctx context.Context, actor model.Actor, email model.Email, upd Update) error {
	if upd.PlayerID != nil && !idguard.ValidID(*upd.PlayerID) {
		return model.ErrPlayerIDNotNumeric
	}

	var before, after model.User

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}
		before = *user

		if upd.PlayerID != nil && *upd.PlayerID != user.PlayerID {
			owners, err := tx.UsersByPlayerID(*upd.PlayerID)
			if err != nil {
				return err
			}
			for _, owner := range owners {
				if owner.Email != email {
					return model.ErrPlayerIDClaimed
				}
			}
			user.PlayerID = *upd.PlayerID
		}
		if upd.IngameName != nil {
			user.IngameName = *upd.IngameName
		}
		if upd.Alliance != nil {
			user.Alliance = *upd.Alliance
		}
		if upd.Role != nil {
			user.Role = *upd.Role
		}
		if upd.Status != nil {
			user.Status = *upd.Status
		}
		user.UpdatedAt = c.clock.Now()
		after = *user
		return tx.PutUser(user)
	})
	if err != nil {
		return err
	}

	c.record(actor, model.ActionUserUpdated, model.SeverityInfo, &before, &after, nil)
	return nil
}

// CompleteProfile fills in the in-game name and alliance a member supplies
// once their account is approved.
func (c *Controller) CompleteProfile(ctx context.Context, actor model.Actor, email model.Email, ingameName, alliance string) error {
	return c.UpdateUser(ctx, actor, email, Update{IngameName: &ingameName, Alliance: &alliance})
}

// PromoteToPending writes a user's self-submitted profile and moves them
// to pending. The identity guard runs again inside the writing transaction
// so a concurrent claim of the same player ID cannot slip through.
func (c *Controller) PromoteToPending(ctx context.Context, email model.Email, playerID model.PlayerID, ingameName, alliance string) error {
	if !idguard.ValidID(playerID) {
		return model.ErrPlayerIDNotNumeric
	}

	var before, after model.User

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		decision, err := idguard.Validate(tx, playerID, idguard.ContextExternalSignup)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return decision.Err()
		}

		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}
		before = *user
		user.PlayerID = playerID
		user.IngameName = ingameName
		user.Alliance = alliance
		user.Status = model.StatusPending
		user.UpdatedAt = c.clock.Now()
		after = *user
		return tx.PutUser(user)
	})
	if err != nil {
		return err
	}

	c.record(model.Actor{Email: email, Role: model.RoleMember}, model.ActionUserPromoted, model.SeverityInfo, &before, &after, nil)
	return nil
}

// Delete removes a user. When a campaign is active, every slot the user
// holds in it is cleared in the same transaction, so no ghost bookings
// survive the delete.
func (c *Controller) Delete(ctx context.Context, actor model.Actor, email model.Email) error {
	var before model.User
	cleared := 0

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		cleared = 0

		user, err := tx.GetUser(email)
		if err != nil {
			return err
		}
		before = *user

		control, err := tx.GetControl()
		if err != nil {
			return err
		}
		if control.Status == model.ControlActive {
			held, err := tx.SlotsHeldBy(control.ActiveCampaignID, email)
			if err != nil {
				return err
			}
			now := c.clock.Now()
			for _, slot := range held {
				slot.ClearReservation(now)
				if err := tx.PutSlot(control.ActiveCampaignID, slot); err != nil {
					return err
				}
				cleared++
			}
		}

		return tx.DeleteUser(email)
	})
	if err != nil {
		return err
	}

	details := map[string]string{}
	if cleared > 0 {
		details["cleared_reservations"] = strconv.Itoa(cleared)
	}
	c.record(actor, model.ActionUserDeleted, model.SeverityWarning, &before, nil, details)
	return nil
}

func (c *Controller) record(actor model.Actor, action, severity string, before, after *model.User, details map[string]string) {
	snapshot := before
	if after != nil {
		snapshot = after
	}
	if details == nil {
		details = map[string]string{}
	}
	if before != nil {
		details["before_status"] = before.Status
	}
	if after != nil {
		details["after_status"] = after.Status
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityUser,
		EntityID:    string(snapshot.Email),
		Action:      action,
		PlayerID:    snapshot.PlayerID,
		IngameName:  snapshot.IngameName,
		Alliance:    snapshot.Alliance,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Severity:    severity,
		Details:     details,
	})
}

