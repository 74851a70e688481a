package score

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage"
)

// Controller records daily prep-point tallies
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// NewController creates a new score Controller
func NewController(store storage.Store, recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:  store,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// Update overwrites both tallies for one prep day. Rejected once the
// campaign is no longer active.
func (c *Controller) Update(ctx context.Context, actor model.Actor, campaignID model.CampaignID, day model.DayID, selfPoints, opponentPoints int64) error {
	err := c.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		camp, err := tx.GetCampaign(campaignID)
		if err != nil {
			return err
		}
		if camp.Status != model.CampaignActive {
			return model.ErrCampaignCompleted
		}

		entry, err := tx.GetPrepScore(campaignID, day)
		if err != nil {
			return err
		}
		entry.SelfPoints = selfPoints
		entry.OpponentPoints = opponentPoints
		entry.UpdatedAt = c.clock.Now()
		return tx.PutPrepScore(campaignID, entry)
	})
	if err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityPrepScore,
		EntityID:    string(campaignID),
		Action:      model.ActionPrepUpdated,
		PerformedBy: actor.Email,
		Role:        actor.Role,
		Details: map[string]string{
			"day":             string(day),
			"self_points":     strconv.FormatInt(selfPoints, 10),
			"opponent_points": strconv.FormatInt(opponentPoints, 10),
		},
	})
	return nil
}

// Totals is the read-side aggregation over a campaign's prep days. It is
// computed on demand, never stored.
type Totals struct {
	SelfPoints     int64 `json:"self_points"`
	OpponentPoints int64 `json:"opponent_points"`
	Differential   int64 `json:"differential"`
}

// Totals sums both tallies across all prep days.
func (c *Controller) Totals(ctx context.Context, campaignID model.CampaignID) (Totals, error) {
	entries, err := c.storage.PrepScores(ctx, campaignID)
	if err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, e := range entries {
		t.SelfPoints += e.SelfPoints
		t.OpponentPoints += e.OpponentPoints
	}
	t.Differential = t.SelfPoints - t.OpponentPoints
	return t, nil
}
