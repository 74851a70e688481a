package campaign

import (
	"context"
	"log/slog"
	"time"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage"
)

// Controller manages the campaign state machine: none -> active ->
// completed, with completed terminal.
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new campaign Controller
func NewController(store storage.Store, recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// Create starts a new campaign for a Saturday battle date and seeds its
// prep schedule. The campaign write and the control-singleton flip share
// one transaction, which is what enforces "at most one active campaign".
func (c *Controller) Create(ctx context.Context, actor model.Actor, opponentState string, battleDate time.Time) (*model.Campaign, error) {
	battleDate = battleDate.UTC().Truncate(24 * time.Hour)
	if battleDate.Weekday() != time.Saturday {
		return nil, model.ErrBattleDateNotSaturday
	}

	camp := &model.Campaign{
		ID:            model.NewCampaignID(battleDate),
		OpponentState: opponentState,
		BattleDate:    battleDate,
		Status:        model.CampaignActive,
		CreatedAt:     c.clock.Now(),
	}

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		control, err := tx.GetControl()
		if err != nil {
			return err
		}
		if control.Status != model.ControlNone {
			return model.ErrCampaignExists
		}

		if err := tx.PutCampaign(camp); err != nil {
			return err
		}
		return tx.PutControl(&model.Control{
			ActiveCampaignID: camp.ID,
			Status:           model.ControlActive,
		})
	})
	if err != nil {
		return nil, err
	}

	scores, slots := buildSchedule(battleDate)
	if err := c.storage.SeedCampaign(ctx, camp.ID, scores, slots); err != nil {
		return nil, err
	}

	c.logger.Info("campaign created",
		slog.String("campaign_id", string(camp.ID)),
		slog.String("battle_date", battleDate.Format("2006-01-02")),
		slog.Int("prep_days", len(scores)),
		slog.Int("slots", len(slots)))

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityCampaign,
		EntityID:    string(camp.ID),
		Action:      model.ActionCampaignCreated,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Details: map[string]string{
			"opponent_state": opponentState,
			"battle_date":    battleDate.Format("2006-01-02"),
		},
	})

	return camp, nil
}

// SetVictor records the campaign outcome. Allowed only while the campaign
// is active and only once the battle date has passed.
func (c *Controller) SetVictor(ctx context.Context, actor model.Actor, id model.CampaignID, victor string) error {
	if victor != model.VictorSelf && victor != model.VictorOpponent {
		return model.ErrInvalidVictor
	}

	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		camp, err := tx.GetCampaign(id)
		if err != nil {
			return err
		}
		if camp.Status != model.CampaignActive {
			return model.ErrCampaignCompleted
		}
		if c.clock.Now().Before(camp.BattleDate) {
			return model.ErrBeforeBattleDate
		}

		camp.Victor = victor
		return tx.PutCampaign(camp)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityCampaign,
		EntityID:    string(id),
		Action:      model.ActionVictorSet,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Details:     map[string]string{"victor": victor},
	})
	return nil
}

// Complete freezes the campaign: it must be active, past its battle date,
// with a victor set and at least one prep-score entry. The completion
// stamp and the control reset to none share one transaction. Completion is
// terminal; a second call fails with ErrCampaignCompleted.
func (c *Controller) Complete(ctx context.Context, actor model.Actor, id model.CampaignID) error {
	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		camp, err := tx.GetCampaign(id)
		if err != nil {
			return err
		}
		if camp.Status != model.CampaignActive {
			return model.ErrCampaignCompleted
		}
		if c.clock.Now().Before(camp.BattleDate) {
			return model.ErrBeforeBattleDate
		}
		if camp.Victor == "" {
			return model.ErrVictorNotSet
		}

		count, err := tx.PrepScoreCount(id)
		if err != nil {
			return err
		}
		if count == 0 {
			return model.ErrNoPrepScores
		}

		camp.Status = model.CampaignCompleted
		camp.CompletedAt = c.clock.Now()
		if err := tx.PutCampaign(camp); err != nil {
			return err
		}
		return tx.PutControl(&model.Control{Status: model.ControlNone})
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityCampaign,
		EntityID:    string(id),
		Action:      model.ActionCompleted,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Severity:    model.SeverityCritical,
	})
	return nil
}

// Active returns the currently active campaign, or nil when none is.
func (c *Controller) Active(ctx context.Context) (*model.Campaign, error) {
	control, err := c.storage.GetControl(ctx)
	if err != nil {
		return nil, err
	}
	if control.Status != model.ControlActive {
		return nil, nil
	}
	return c.storage.GetCampaign(ctx, control.ActiveCampaignID)
}

// Get loads a campaign by ID.
func (c *Controller) Get(ctx context.Context, id model.CampaignID) (*model.Campaign, error) {
	return c.storage.GetCampaign(ctx, id)
}

// CompletedHistory lists completed campaigns, most recent first.
func (c *Controller) CompletedHistory(ctx context.Context) ([]*model.Campaign, error) {
	return c.storage.CompletedCampaigns(ctx)
}

// PrepDays lists a campaign's prep-score entries in day order.
func (c *Controller) PrepDays(ctx context.Context, id model.CampaignID) ([]*model.PrepScore, error) {
	return c.storage.PrepScores(ctx, id)
}

// Slots lists a campaign's reservation slots.
func (c *Controller) Slots(ctx context.Context, id model.CampaignID) ([]*model.Slot, error) {
	return c.storage.Slots(ctx, id)
}

// SlotsForDay lists one prep day's reservation slots.
func (c *Controller) SlotsForDay(ctx context.Context, id model.CampaignID, day model.DayID) ([]*model.Slot, error) {
	return c.storage.SlotsForDay(ctx, id, day)
}
