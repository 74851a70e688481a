package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// Transactions hold a single storage-wide mutex for their whole duration,
// which makes them trivially serializable; writes are staged in an overlay
// and applied only when the transaction callback returns nil, so an
// aborted transaction never partially applies.
type Storage struct {
	mu sync.Mutex

	users     map[model.Email]*model.User
	invites   map[model.Email]*model.Invite
	alliances map[string]*model.Alliance
	campaigns map[model.CampaignID]*model.Campaign
	slots     map[model.CampaignID]map[model.SlotID]*model.Slot
	preps     map[model.CampaignID]map[model.DayID]*model.PrepScore
	control   model.Control
	audit     []*model.AuditEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:     make(map[model.Email]*model.User),
		invites:   make(map[model.Email]*model.Invite),
		alliances: make(map[string]*model.Alliance),
		campaigns: make(map[model.CampaignID]*model.Campaign),
		slots:     make(map[model.CampaignID]map[model.SlotID]*model.Slot),
		preps:     make(map[model.CampaignID]map[model.DayID]*model.PrepScore),
		control:   model.Control{Status: model.ControlNone},
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

type slotKey struct {
	campaignID model.CampaignID
	slotID     model.SlotID
}

type prepKey struct {
	campaignID model.CampaignID
	day        model.DayID
}

// txn stages writes in overlay maps consulted before the base maps. A nil
// overlay value is a tombstone for a deleted record.
type txn struct {
	s *Storage

	users     map[model.Email]*model.User
	invites   map[model.Email]*model.Invite
	campaigns map[model.CampaignID]*model.Campaign
	slots     map[slotKey]*model.Slot
	preps     map[prepKey]*model.PrepScore
	control   *model.Control
}

var _ storage.Txn = (*txn)(nil)

// RunTransaction executes fn under the storage lock and applies its staged
// writes atomically if fn succeeds.
func (s *Storage) RunTransaction(ctx context.Context, fn func(tx storage.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &txn{
		s:         s,
		users:     make(map[model.Email]*model.User),
		invites:   make(map[model.Email]*model.Invite),
		campaigns: make(map[model.CampaignID]*model.Campaign),
		slots:     make(map[slotKey]*model.Slot),
		preps:     make(map[prepKey]*model.PrepScore),
	}

	if err := fn(t); err != nil {
		return err
	}

	t.apply()
	return nil
}

func (t *txn) apply() {
	for email, u := range t.users {
		if u == nil {
			delete(t.s.users, email)
		} else {
			t.s.users[email] = u
		}
	}
	for email, inv := range t.invites {
		t.s.invites[email] = inv
	}
	for id, c := range t.campaigns {
		t.s.campaigns[id] = c
	}
	for k, sl := range t.slots {
		if t.s.slots[k.campaignID] == nil {
			t.s.slots[k.campaignID] = make(map[model.SlotID]*model.Slot)
		}
		t.s.slots[k.campaignID][k.slotID] = sl
	}
	for k, p := range t.preps {
		if t.s.preps[k.campaignID] == nil {
			t.s.preps[k.campaignID] = make(map[model.DayID]*model.PrepScore)
		}
		t.s.preps[k.campaignID][k.day] = p
	}
	if t.control != nil {
		t.s.control = *t.control
	}
}

// User operations

func (t *txn) GetUser(email model.Email) (*model.User, error) {
	if u, staged := t.users[email]; staged {
		if u == nil {
			return nil, model.ErrUserNotFound
		}
		cp := *u
		return &cp, nil
	}
	u, ok := t.s.users[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (t *txn) UsersByPlayerID(playerID model.PlayerID) ([]*model.User, error) {
	if playerID == "" {
		return nil, nil
	}
	var out []*model.User
	for email, u := range t.s.users {
		if _, staged := t.users[email]; staged {
			continue
		}
		if u.PlayerID == playerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	for _, u := range t.users {
		if u != nil && u.PlayerID == playerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (t *txn) PutUser(user *model.User) error {
	cp := *user
	t.users[user.Email] = &cp
	return nil
}

func (t *txn) DeleteUser(email model.Email) error {
	t.users[email] = nil
	return nil
}

// Invite operations

func (t *txn) GetInvite(email model.Email) (*model.Invite, error) {
	if inv, staged := t.invites[email]; staged {
		cp := *inv
		return &cp, nil
	}
	inv, ok := t.s.invites[email]
	if !ok {
		return nil, model.ErrInviteNotFound
	}
	cp := *inv
	return &cp, nil
}

func (t *txn) ActiveInviteByPlayerID(playerID model.PlayerID) (*model.Invite, error) {
	var found *model.Invite
	check := func(inv *model.Invite) {
		if inv.PlayerID == playerID && inv.Active() {
			cp := *inv
			found = &cp
		}
	}
	for email, inv := range t.s.invites {
		if _, staged := t.invites[email]; staged {
			continue
		}
		check(inv)
	}
	for _, inv := range t.invites {
		check(inv)
	}
	return found, nil
}

func (t *txn) PutInvite(invite *model.Invite) error {
	cp := *invite
	t.invites[invite.Email] = &cp
	return nil
}

// Control singleton

func (t *txn) GetControl() (*model.Control, error) {
	if t.control != nil {
		cp := *t.control
		return &cp, nil
	}
	cp := t.s.control
	return &cp, nil
}

func (t *txn) PutControl(control *model.Control) error {
	cp := *control
	t.control = &cp
	return nil
}

// Campaign operations

func (t *txn) GetCampaign(id model.CampaignID) (*model.Campaign, error) {
	if c, staged := t.campaigns[id]; staged {
		cp := *c
		return &cp, nil
	}
	c, ok := t.s.campaigns[id]
	if !ok {
		return nil, model.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (t *txn) PutCampaign(campaign *model.Campaign) error {
	cp := *campaign
	t.campaigns[campaign.ID] = &cp
	return nil
}

// Slot operations

func (t *txn) GetSlot(campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error) {
	if sl, staged := t.slots[slotKey{campaignID, slotID}]; staged {
		cp := *sl
		return &cp, nil
	}
	sl, ok := t.s.slots[campaignID][slotID]
	if !ok {
		return nil, model.ErrSlotNotFound
	}
	cp := *sl
	return &cp, nil
}

func (t *txn) PutSlot(campaignID model.CampaignID, slot *model.Slot) error {
	cp := *slot
	t.slots[slotKey{campaignID, slot.ID}] = &cp
	return nil
}

func (t *txn) SlotHeldOn(campaignID model.CampaignID, day model.DayID, email model.Email) (*model.Slot, error) {
	slots, err := t.SlotsHeldBy(campaignID, email)
	if err != nil {
		return nil, err
	}
	for _, sl := range slots {
		if sl.Day == day {
			return sl, nil
		}
	}
	return nil, nil
}

func (t *txn) SlotsHeldBy(campaignID model.CampaignID, email model.Email) ([]*model.Slot, error) {
	var out []*model.Slot
	for slotID, sl := range t.s.slots[campaignID] {
		if _, staged := t.slots[slotKey{campaignID, slotID}]; staged {
			continue
		}
		if sl.ReservedBy == email {
			cp := *sl
			out = append(out, &cp)
		}
	}
	for k, sl := range t.slots {
		if k.campaignID == campaignID && sl.ReservedBy == email {
			cp := *sl
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Prep score operations

func (t *txn) GetPrepScore(campaignID model.CampaignID, day model.DayID) (*model.PrepScore, error) {
	if p, staged := t.preps[prepKey{campaignID, day}]; staged {
		cp := *p
		return &cp, nil
	}
	p, ok := t.s.preps[campaignID][day]
	if !ok {
		return nil, model.ErrPrepDayNotFound
	}
	cp := *p
	return &cp, nil
}

func (t *txn) PutPrepScore(campaignID model.CampaignID, score *model.PrepScore) error {
	cp := *score
	t.preps[prepKey{campaignID, score.Day}] = &cp
	return nil
}

func (t *txn) PrepScoreCount(campaignID model.CampaignID) (int, error) {
	count := len(t.s.preps[campaignID])
	for k := range t.preps {
		if k.campaignID == campaignID {
			if _, exists := t.s.preps[campaignID][k.day]; !exists {
				count++
			}
		}
	}
	return count, nil
}
