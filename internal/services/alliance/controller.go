package alliance

import (
	"context"
	"errors"
	"strings"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage"
)

var (
	ErrBadStatus = errors.New(`alliance status must be "active" or "inactive"`)
	ErrEmptyTag  = errors.New("alliance tag and name must not be empty")
)

// Controller manages alliance records
type Controller struct {
	storage  storage.Store
	recorder *audit.Recorder
}

// NewController creates a new alliance Controller
func NewController(store storage.Store, recorder *audit.Recorder) *Controller {
	return &Controller{storage: store, recorder: recorder}
}

// Save creates or updates an alliance.
func (c *Controller) Save(ctx context.Context, actor model.Actor, tag, name, status string) error {
	tag = strings.TrimSpace(tag)
	name = strings.TrimSpace(name)
	if tag == "" || name == "" {
		return ErrEmptyTag
	}
	if status != model.AllianceActive && status != model.AllianceInactive {
		return ErrBadStatus
	}

	if err := c.storage.PutAlliance(ctx, &model.Alliance{
		Tag:    tag,
		Name:   name,
		Status: status,
	}); err != nil {
		return err
	}

	c.recorder.Record(model.AuditEntry{
		EntityType:  model.EntityAlliance,
		EntityID:    tag,
		Action:      model.ActionAllianceSaved,
		Alliance:    tag,
		PerformedBy: actor.Email,
		Role:        actor.Role,
	})
	return nil
}

// List returns all alliances.
func (c *Controller) List(ctx context.Context) ([]*model.Alliance, error) {
	return c.storage.Alliances(ctx)
}
