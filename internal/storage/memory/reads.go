package memory

import (
	"context"
	"sort"

	"github.com/frostgate/svscoord/internal/model"
)

// Non-transactional reads, bulk seeding and the audit log. Each call takes
// the storage lock so it observes a consistent snapshot.

func (s *Storage) SeedCampaign(ctx context.Context, campaignID model.CampaignID, scores []*model.PrepScore, slots []*model.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.preps[campaignID] == nil {
		s.preps[campaignID] = make(map[model.DayID]*model.PrepScore)
	}
	for _, p := range scores {
		cp := *p
		s.preps[campaignID][p.Day] = &cp
	}

	if s.slots[campaignID] == nil {
		s.slots[campaignID] = make(map[model.SlotID]*model.Slot)
	}
	for _, sl := range slots {
		cp := *sl
		s.slots[campaignID][sl.ID] = &cp
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, email model.Email) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Storage) UsersByStatus(ctx context.Context, status string) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.User
	for _, u := range s.users {
		if u.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortUsers(out)
	return out, nil
}

func (s *Storage) Placeholders(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.User
	for _, u := range s.users {
		if u.IsPlaceholder {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortUsers(out)
	return out, nil
}

func (s *Storage) GetInvite(ctx context.Context, email model.Email) (*model.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invites[email]
	if !ok {
		return nil, model.ErrInviteNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *Storage) ActiveInvites(ctx context.Context) ([]*model.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Invite
	for _, inv := range s.invites {
		if inv.Active() {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Storage) PutAlliance(ctx context.Context, alliance *model.Alliance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *alliance
	s.alliances[alliance.Tag] = &cp
	return nil
}

func (s *Storage) Alliances(ctx context.Context) ([]*model.Alliance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Alliance, 0, len(s.alliances))
	for _, a := range s.alliances {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

func (s *Storage) GetControl(ctx context.Context) (*model.Control, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.control
	return &cp, nil
}

func (s *Storage) GetCampaign(ctx context.Context, id model.CampaignID) (*model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, model.ErrCampaignNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Storage) CompletedCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Campaign
	for _, c := range s.campaigns {
		if c.Status == model.CampaignCompleted {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (s *Storage) PrepScores(ctx context.Context, campaignID model.CampaignID) ([]*model.PrepScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.PrepScore, 0, len(s.preps[campaignID]))
	for _, p := range s.preps[campaignID] {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (s *Storage) Slots(ctx context.Context, campaignID model.CampaignID) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Slot, 0, len(s.slots[campaignID]))
	for _, sl := range s.slots[campaignID] {
		cp := *sl
		out = append(out, &cp)
	}
	sortSlots(out)
	return out, nil
}

func (s *Storage) GetSlot(ctx context.Context, campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[campaignID][slotID]
	if !ok {
		return nil, model.ErrSlotNotFound
	}
	cp := *sl
	return &cp, nil
}

func (s *Storage) SlotsForDay(ctx context.Context, campaignID model.CampaignID, day model.DayID) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Slot
	for _, sl := range s.slots[campaignID] {
		if sl.Day == day {
			cp := *sl
			out = append(out, &cp)
		}
	}
	sortSlots(out)
	return out, nil
}

func (s *Storage) AppendAudit(ctx context.Context, entry *model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.audit = append(s.audit, &cp)
	return nil
}

// AuditPage returns entries newest-first. Out-of-range paging yields an
// empty page, never an error.
func (s *Storage) AuditPage(ctx context.Context, offset, limit int) ([]*model.AuditEntry, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.AuditEntry
	for i := len(s.audit) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		cp := *s.audit[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Storage) Close() error {
	return nil
}

func sortUsers(users []*model.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
}

func sortSlots(slots []*model.Slot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
}
