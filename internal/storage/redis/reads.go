package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/frostgate/svscoord/internal/model"
)

// Non-transactional reads, bulk seeding and the audit log.

func (s *Storage) SeedCampaign(ctx context.Context, campaignID model.CampaignID, scores []*model.PrepScore, slots []*model.Slot) error {
	pipe := s.client.Pipeline()

	for _, p := range scores {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode prep score %s: %w", p.Day, err)
		}
		pipe.Set(ctx, prepScoreKey(campaignID, p.Day), data, 0)
		pipe.SAdd(ctx, prepDaysIndexKey(campaignID), string(p.Day))
	}

	for _, sl := range slots {
		data, err := json.Marshal(sl)
		if err != nil {
			return fmt.Errorf("encode slot %s: %w", sl.ID, err)
		}
		pipe.Set(ctx, slotKey(campaignID, sl.ID), data, 0)
		pipe.SAdd(ctx, slotsIndexKey(campaignID), string(sl.ID))
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Storage) GetUser(ctx context.Context, email model.Email) (*model.User, error) {
	var u model.User
	found, err := s.getJSON(ctx, userKey(email), &u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (s *Storage) usersFromSet(ctx context.Context, setKey string) ([]*model.User, error) {
	emails, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(emails)
	var out []*model.User
	for _, email := range emails {
		var u model.User
		found, err := s.getJSON(ctx, userKey(model.Email(email)), &u)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (s *Storage) UsersByStatus(ctx context.Context, status string) ([]*model.User, error) {
	return s.usersFromSet(ctx, statusIndexKey(status))
}

func (s *Storage) Placeholders(ctx context.Context) ([]*model.User, error) {
	return s.usersFromSet(ctx, placeholderIndexKey())
}

func (s *Storage) GetInvite(ctx context.Context, email model.Email) (*model.Invite, error) {
	var inv model.Invite
	found, err := s.getJSON(ctx, inviteKey(email), &inv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrInviteNotFound
	}
	return &inv, nil
}

func (s *Storage) ActiveInvites(ctx context.Context) ([]*model.Invite, error) {
	emails, err := s.client.SMembers(ctx, activeInvitesKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(emails)
	var out []*model.Invite
	for _, email := range emails {
		var inv model.Invite
		found, err := s.getJSON(ctx, inviteKey(model.Email(email)), &inv)
		if err != nil {
			return nil, err
		}
		if found && inv.Active() {
			out = append(out, &inv)
		}
	}
	return out, nil
}

func (s *Storage) PutAlliance(ctx context.Context, alliance *model.Alliance) error {
	data, err := json.Marshal(alliance)
	if err != nil {
		return fmt.Errorf("encode alliance %s: %w", alliance.Tag, err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, allianceKey(alliance.Tag), data, 0)
	pipe.SAdd(ctx, alliancesKey(), alliance.Tag)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) Alliances(ctx context.Context) ([]*model.Alliance, error) {
	tags, err := s.client.SMembers(ctx, alliancesKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)
	var out []*model.Alliance
	for _, tag := range tags {
		var a model.Alliance
		found, err := s.getJSON(ctx, allianceKey(tag), &a)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s *Storage) GetControl(ctx context.Context) (*model.Control, error) {
	var c model.Control
	found, err := s.getJSON(ctx, controlKey(), &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return &model.Control{Status: model.ControlNone}, nil
	}
	return &c, nil
}

func (s *Storage) GetCampaign(ctx context.Context, id model.CampaignID) (*model.Campaign, error) {
	var c model.Campaign
	found, err := s.getJSON(ctx, campaignKey(id), &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrCampaignNotFound
	}
	return &c, nil
}

func (s *Storage) CompletedCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	ids, err := s.client.SMembers(ctx, completedCampaignsKey()).Result()
	if err != nil {
		return nil, err
	}
	var out []*model.Campaign
	for _, id := range ids {
		var c model.Campaign
		found, err := s.getJSON(ctx, campaignKey(model.CampaignID(id)), &c)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (s *Storage) PrepScores(ctx context.Context, campaignID model.CampaignID) ([]*model.PrepScore, error) {
	days, err := s.client.SMembers(ctx, prepDaysIndexKey(campaignID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(days)
	var out []*model.PrepScore
	for _, day := range days {
		var p model.PrepScore
		found, err := s.getJSON(ctx, prepScoreKey(campaignID, model.DayID(day)), &p)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (s *Storage) GetSlot(ctx context.Context, campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error) {
	var sl model.Slot
	found, err := s.getJSON(ctx, slotKey(campaignID, slotID), &sl)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrSlotNotFound
	}
	return &sl, nil
}

func (s *Storage) Slots(ctx context.Context, campaignID model.CampaignID) ([]*model.Slot, error) {
	ids, err := s.client.SMembers(ctx, slotsIndexKey(campaignID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	var out []*model.Slot
	for _, id := range ids {
		var sl model.Slot
		found, err := s.getJSON(ctx, slotKey(campaignID, model.SlotID(id)), &sl)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &sl)
		}
	}
	return out, nil
}

func (s *Storage) SlotsForDay(ctx context.Context, campaignID model.CampaignID, day model.DayID) ([]*model.Slot, error) {
	all, err := s.Slots(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	var out []*model.Slot
	for _, sl := range all {
		if sl.Day == day {
			out = append(out, sl)
		}
	}
	return out, nil
}

func (s *Storage) AppendAudit(ctx context.Context, entry *model.AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	return s.client.LPush(ctx, auditLogKey(), data).Err()
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
	rows, err := s.client.LRange(ctx, auditLogKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}
	var out []*model.AuditEntry
	for _, row := range rows {
		var e model.AuditEntry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, nil
}
