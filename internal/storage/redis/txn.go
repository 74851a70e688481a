package redis

import (
	"sort"

	"github.com/frostgate/svscoord/internal/model"
)

// Typed Txn operations. Every Put computes the secondary-index deltas from
// the record's previous value and stages them alongside the document, so
// index and document always change in the same MULTI/EXEC.

// User operations

func (t *txn) GetUser(email model.Email) (*model.User, error) {
	u, err := t.lookupUser(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (t *txn) UsersByPlayerID(playerID model.PlayerID) ([]*model.User, error) {
	if playerID == "" {
		return nil, nil
	}
	emails, err := t.smembers(playerIndexKey(playerID))
	if err != nil {
		return nil, err
	}
	sort.Strings(emails)
	var out []*model.User
	for _, email := range emails {
		u, err := t.lookupUser(model.Email(email))
		if err != nil {
			return nil, err
		}
		if u != nil && u.PlayerID == playerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (t *txn) PutUser(user *model.User) error {
	old, err := t.lookupUser(user.Email)
	if err != nil {
		return err
	}
	email := string(user.Email)

	if old != nil {
		if old.PlayerID != "" && old.PlayerID != user.PlayerID {
			t.stageSRem(playerIndexKey(old.PlayerID), email)
		}
		if old.Status != user.Status {
			t.stageSRem(statusIndexKey(old.Status), email)
		}
		if old.IsPlaceholder && !user.IsPlaceholder {
			t.stageSRem(placeholderIndexKey(), email)
		}
	}
	if user.PlayerID != "" && (old == nil || old.PlayerID != user.PlayerID) {
		t.stageSAdd(playerIndexKey(user.PlayerID), email)
	}
	if old == nil || old.Status != user.Status {
		t.stageSAdd(statusIndexKey(user.Status), email)
	}
	if user.IsPlaceholder && (old == nil || !old.IsPlaceholder) {
		t.stageSAdd(placeholderIndexKey(), email)
	}

	return t.stageSetJSON(userKey(user.Email), user)
}

func (t *txn) DeleteUser(email model.Email) error {
	old, err := t.lookupUser(email)
	if err != nil {
		return err
	}
	if old == nil {
		return model.ErrUserNotFound
	}
	if old.PlayerID != "" {
		t.stageSRem(playerIndexKey(old.PlayerID), string(email))
	}
	t.stageSRem(statusIndexKey(old.Status), string(email))
	if old.IsPlaceholder {
		t.stageSRem(placeholderIndexKey(), string(email))
	}
	t.stageDel(userKey(email))
	return nil
}

// Invite operations

func (t *txn) GetInvite(email model.Email) (*model.Invite, error) {
	inv, err := t.lookupInvite(email)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, model.ErrInviteNotFound
	}
	return inv, nil
}

func (t *txn) ActiveInviteByPlayerID(playerID model.PlayerID) (*model.Invite, error) {
	data, err := t.get(activeInviteIndexKey(playerID))
	if err != nil {
		if isNil(err) {
			return nil, nil
		}
		return nil, err
	}
	inv, err := t.lookupInvite(model.Email(data))
	if err != nil {
		return nil, err
	}
	if inv == nil || !inv.Active() || inv.PlayerID != playerID {
		return nil, nil
	}
	return inv, nil
}

func (t *txn) PutInvite(invite *model.Invite) error {
	old, err := t.lookupInvite(invite.Email)
	if err != nil {
		return err
	}
	email := string(invite.Email)

	if invite.Active() {
		if err := t.stageSetString(activeInviteIndexKey(invite.PlayerID), email); err != nil {
			return err
		}
		t.stageSAdd(activeInvitesKey(), email)
	} else {
		if old != nil && old.Active() {
			t.stageDel(activeInviteIndexKey(old.PlayerID))
			t.stageSRem(activeInvitesKey(), email)
		}
	}

	return t.stageSetJSON(inviteKey(invite.Email), invite)
}

// Control singleton

func (t *txn) GetControl() (*model.Control, error) {
	var c model.Control
	found, err := t.getJSON(controlKey(), &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return &model.Control{Status: model.ControlNone}, nil
	}
	return &c, nil
}

func (t *txn) PutControl(control *model.Control) error {
	return t.stageSetJSON(controlKey(), control)
}

// Campaign operations

func (t *txn) GetCampaign(id model.CampaignID) (*model.Campaign, error) {
	var c model.Campaign
	found, err := t.getJSON(campaignKey(id), &c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrCampaignNotFound
	}
	return &c, nil
}

func (t *txn) PutCampaign(campaign *model.Campaign) error {
	if campaign.Status == model.CampaignCompleted {
		t.stageSAdd(completedCampaignsKey(), string(campaign.ID))
	}
	return t.stageSetJSON(campaignKey(campaign.ID), campaign)
}

// Slot operations

func (t *txn) GetSlot(campaignID model.CampaignID, slotID model.SlotID) (*model.Slot, error) {
	sl, err := t.lookupSlot(campaignID, slotID)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, model.ErrSlotNotFound
	}
	return sl, nil
}

func (t *txn) PutSlot(campaignID model.CampaignID, slot *model.Slot) error {
	old, err := t.lookupSlot(campaignID, slot.ID)
	if err != nil {
		return err
	}

	if old != nil && old.ReservedBy != "" && old.ReservedBy != slot.ReservedBy {
		t.stageSRem(holderIndexKey(campaignID, old.ReservedBy), string(slot.ID))
	}
	if slot.ReservedBy != "" && (old == nil || old.ReservedBy != slot.ReservedBy) {
		t.stageSAdd(holderIndexKey(campaignID, slot.ReservedBy), string(slot.ID))
	}

	return t.stageSetJSON(slotKey(campaignID, slot.ID), slot)
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
	ids, err := t.smembers(holderIndexKey(campaignID, email))
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	var out []*model.Slot
	for _, id := range ids {
		sl, err := t.lookupSlot(campaignID, model.SlotID(id))
		if err != nil {
			return nil, err
		}
		if sl != nil && sl.ReservedBy == email {
			out = append(out, sl)
		}
	}
	return out, nil
}

// Prep score operations

func (t *txn) GetPrepScore(campaignID model.CampaignID, day model.DayID) (*model.PrepScore, error) {
	var p model.PrepScore
	found, err := t.getJSON(prepScoreKey(campaignID, day), &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrPrepDayNotFound
	}
	return &p, nil
}

func (t *txn) PutPrepScore(campaignID model.CampaignID, score *model.PrepScore) error {
	t.stageSAdd(prepDaysIndexKey(campaignID), string(score.Day))
	return t.stageSetJSON(prepScoreKey(campaignID, score.Day), score)
}

func (t *txn) PrepScoreCount(campaignID model.CampaignID) (int, error) {
	days, err := t.smembers(prepDaysIndexKey(campaignID))
	if err != nil {
		return 0, err
	}
	return len(days), nil
}
