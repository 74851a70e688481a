package invite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/idguard"
	"github.com/frostgate/svscoord/internal/storage"
)

// Controller manages admission invitations
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new invite Controller
func NewController(store storage.Store, recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// Create writes a new invite for email, claiming playerID.
//
// All uniqueness checks and the write happen in one transaction: the
// identity guard must allow the claim, the email must not already belong
// to a member with a profile, and no other active invite may reference
// the same player ID or the same email.
func (c *Controller) Create(ctx context.Context, actor model.Actor, email model.Email, playerID model.PlayerID, ingameName, alliance string) (*model.Invite, error) {
	if !idguard.ValidID(playerID) {
		return nil, model.ErrPlayerIDNotNumeric
	}

	inv := &model.Invite{
		Email:      email,
		PlayerID:   playerID,
		IngameName: ingameName,
		Alliance:   alliance,
		InvitedBy:  actor.Email,
		CreatedAt:  c.clock.Now(),
	}

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		decision, err := idguard.Validate(tx, playerID, idguard.ContextInviteCreate)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return decision.Err()
		}

		existing, err := tx.GetUser(email)
		if err != nil && !errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		if existing != nil {
			if existing.Status == model.StatusApproved || existing.Status == model.StatusPending || existing.HasProfile() {
				return model.ErrEmailAlreadyMember
			}
		}

		active, err := tx.ActiveInviteByPlayerID(playerID)
		if err != nil {
			return err
		}
		if active != nil {
			return model.ErrInviteForPlayerID
		}

		prior, err := tx.GetInvite(email)
		if err != nil && !errors.Is(err, model.ErrInviteNotFound) {
			return err
		}
		if prior != nil && prior.Active() {
			return model.ErrInviteExists
		}

		return tx.PutInvite(inv)
	})
	if err != nil {
		return nil, err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityInvite,
		EntityID:    string(email),
		Action:      model.ActionInviteCreated,
		PlayerID:    playerID,
		IngameName:  ingameName,
		Alliance:    alliance,
		PerformedBy: actor.Email,
		Role:        actor.Role,
	})

	return inv, nil
}

// Cancel marks the invite for email as cancelled.
func (c *Controller) Cancel(ctx context.Context, actor model.Actor, email model.Email) error {
	var cancelled model.Invite

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		inv, err := tx.GetInvite(email)
		if err != nil {
			return err
		}
		inv.Cancelled = true
		cancelled = *inv
		return tx.PutInvite(inv)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityInvite,
		EntityID:    string(email),
		Action:      model.ActionInviteCancelled,
		PlayerID:    cancelled.PlayerID,
		IngameName:  cancelled.IngameName,
		Alliance:    cancelled.Alliance,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Severity:    model.SeverityWarning,
	})
	return nil
}

// AcceptIfExists consumes an active invite for identifier, if one exists,
// in a single transaction. A placeholder account is converted in place, a
// real account is merged and approved, and a missing account is created
// fresh. Returns true only when the invite was actually consumed.
func (c *Controller) AcceptIfExists(ctx context.Context, identifier model.Email) (bool, error) {
	accepted := false
	var consumed model.Invite

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		accepted = false

		inv, err := tx.GetInvite(identifier)
		if errors.Is(err, model.ErrInviteNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !inv.Active() {
			return nil
		}

		now := c.clock.Now()

		user, err := tx.GetUser(identifier)
		if err != nil && !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		switch {
		case user != nil && user.IsPlaceholder:
			// Convert, never duplicate.
			user.IsPlaceholder = false
			user.AuthLinked = true
			user.PlayerID = inv.PlayerID
			user.IngameName = inv.IngameName
			user.Alliance = inv.Alliance
			user.Status = model.StatusApproved
			user.UpdatedAt = now
		case user != nil:
			user.PlayerID = inv.PlayerID
			user.IngameName = inv.IngameName
			user.Alliance = inv.Alliance
			user.Status = model.StatusApproved
			user.UpdatedAt = now
		default:
			user = &model.User{
				Email:      identifier,
				Role:       model.RoleMember,
				Status:     model.StatusApproved,
				PlayerID:   inv.PlayerID,
				IngameName: inv.IngameName,
				Alliance:   inv.Alliance,
				AuthLinked: true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		}
		if err := tx.PutUser(user); err != nil {
			return err
		}

		inv.Used = true
		if err := tx.PutInvite(inv); err != nil {
			return err
		}

		consumed = *inv
		accepted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if accepted {
		c.recorder.Record(model.AuditEntry{
			EntityType:  model.EntityInvite,
			EntityID:    string(identifier),
			Action:      model.ActionInviteAccepted,
			PlayerID:    consumed.PlayerID,
			IngameName:  consumed.IngameName,
			Alliance:    consumed.Alliance,
			PerformedBy: identifier,
			Role:        model.RoleMember,
		})
	}
	return accepted, nil
}

// ListActive returns all invites that are still unused and uncancelled.
func (c *Controller) ListActive(ctx context.Context) ([]*model.Invite, error) {
	return c.storage.ActiveInvites(ctx)
}
