package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) putUser(u *model.User) {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		return tx.PutUser(u)
	})
	s.Require().NoError(err)
}

// User tests

func (s *StorageSuite) TestPutAndGetUser() {
	user := &model.User{
		Email:      "alice@example.com",
		Role:       model.RoleMember,
		Status:     model.StatusApproved,
		PlayerID:   "12345",
		IngameName: "Alice",
		Alliance:   "FRG",
		CreatedAt:  time.Now(),
	}
	s.putUser(user)

	got, err := s.storage.GetUser(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(user.Email, got.Email)
	s.Equal(user.PlayerID, got.PlayerID)
	s.Equal(user.IngameName, got.IngameName)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUsersByPlayerID() {
	s.putUser(&model.User{Email: "a@example.com", PlayerID: "111"})
	s.putUser(&model.User{Email: "b@example.com", PlayerID: "222"})

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		owners, err := tx.UsersByPlayerID("111")
		s.Require().NoError(err)
		s.Require().Len(owners, 1)
		s.Equal(model.Email("a@example.com"), owners[0].Email)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestDeleteUser() {
	s.putUser(&model.User{Email: "a@example.com", PlayerID: "111"})

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		return tx.DeleteUser("a@example.com")
	})
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "a@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUsersByStatusSorted() {
	s.putUser(&model.User{Email: "zoe@example.com", Status: model.StatusPending})
	s.putUser(&model.User{Email: "adam@example.com", Status: model.StatusPending})
	s.putUser(&model.User{Email: "mia@example.com", Status: model.StatusApproved})

	pending, err := s.storage.UsersByStatus(s.ctx, model.StatusPending)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(model.Email("adam@example.com"), pending[0].Email)
	s.Equal(model.Email("zoe@example.com"), pending[1].Email)
}

func (s *StorageSuite) TestPlaceholders() {
	s.putUser(&model.User{Email: "ph@placeholder.local", IsPlaceholder: true})
	s.putUser(&model.User{Email: "real@example.com"})

	placeholders, err := s.storage.Placeholders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(placeholders, 1)
	s.Equal(model.Email("ph@placeholder.local"), placeholders[0].Email)
}

// Transaction semantics

func (s *StorageSuite) TestTransactionRollbackOnError() {
	boom := errors.New("boom")
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.PutUser(&model.User{Email: "a@example.com"}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.storage.GetUser(s.ctx, "a@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestTransactionReadsOwnWrites() {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.PutUser(&model.User{Email: "a@example.com", PlayerID: "111"}); err != nil {
			return err
		}
		got, err := tx.GetUser("a@example.com")
		if err != nil {
			return err
		}
		s.Equal(model.PlayerID("111"), got.PlayerID)

		owners, err := tx.UsersByPlayerID("111")
		if err != nil {
			return err
		}
		s.Len(owners, 1)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestTransactionDeleteVisibleInOverlay() {
	s.putUser(&model.User{Email: "a@example.com", PlayerID: "111"})

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.DeleteUser("a@example.com"); err != nil {
			return err
		}
		_, err := tx.GetUser("a@example.com")
		s.ErrorIs(err, model.ErrUserNotFound)

		owners, err := tx.UsersByPlayerID("111")
		if err != nil {
			return err
		}
		s.Empty(owners)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestTransactionCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err := s.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		return tx.PutUser(&model.User{Email: "a@example.com"})
	})
	s.ErrorIs(err, context.Canceled)
}

// Control tests

func (s *StorageSuite) TestControlDefaultsToNone() {
	control, err := s.storage.GetControl(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ControlNone, control.Status)
	s.Empty(control.ActiveCampaignID)
}

func (s *StorageSuite) TestControlRoundTrip() {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		return tx.PutControl(&model.Control{
			ActiveCampaignID: "svs_2026_03_07",
			Status:           model.ControlActive,
		})
	})
	s.Require().NoError(err)

	control, err := s.storage.GetControl(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ControlActive, control.Status)
	s.Equal(model.CampaignID("svs_2026_03_07"), control.ActiveCampaignID)
}

// Invite tests

func (s *StorageSuite) TestActiveInvites() {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.PutInvite(&model.Invite{Email: "a@example.com", PlayerID: "111"}); err != nil {
			return err
		}
		return tx.PutInvite(&model.Invite{Email: "b@example.com", PlayerID: "222", Used: true})
	})
	s.Require().NoError(err)

	active, err := s.storage.ActiveInvites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal(model.Email("a@example.com"), active[0].Email)
}

func (s *StorageSuite) TestActiveInviteByPlayerID() {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.PutInvite(&model.Invite{Email: "a@example.com", PlayerID: "111", Cancelled: true}); err != nil {
			return err
		}
		if err := tx.PutInvite(&model.Invite{Email: "b@example.com", PlayerID: "222"}); err != nil {
			return err
		}

		inv, err := tx.ActiveInviteByPlayerID("222")
		if err != nil {
			return err
		}
		s.Require().NotNil(inv)
		s.Equal(model.Email("b@example.com"), inv.Email)

		inv, err = tx.ActiveInviteByPlayerID("111")
		if err != nil {
			return err
		}
		s.Nil(inv)
		return nil
	})
	s.Require().NoError(err)
}

// Campaign and slot tests

func (s *StorageSuite) seedCampaign() model.CampaignID {
	id := model.CampaignID("svs_2026_03_07")
	day := model.DayID("2026-03-02")
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	scores := []*model.PrepScore{{Day: day, Weekday: time.Monday}}
	slots := []*model.Slot{
		{ID: model.NewSlotID(day, model.RoleVicePresident, start), Day: day, Role: model.RoleVicePresident, StartTime: start, EndTime: start.Add(30 * time.Minute)},
		{ID: model.NewSlotID(day, model.RoleVicePresident, start.Add(30*time.Minute)), Day: day, Role: model.RoleVicePresident, StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour)},
	}

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		return tx.PutCampaign(&model.Campaign{ID: id, Status: model.CampaignActive, BattleDate: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)})
	})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SeedCampaign(s.ctx, id, scores, slots))
	return id
}

func (s *StorageSuite) TestSeedCampaignAndRead() {
	id := s.seedCampaign()

	slots, err := s.storage.Slots(s.ctx, id)
	s.Require().NoError(err)
	s.Len(slots, 2)

	preps, err := s.storage.PrepScores(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(preps, 1)
	s.Equal(model.DayID("2026-03-02"), preps[0].Day)
}

func (s *StorageSuite) TestGetSlotReadSide() {
	id := s.seedCampaign()
	slotID := model.SlotID("2026-03-02_vice_president_00:00")

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		slot, err := tx.GetSlot(id, slotID)
		if err != nil {
			return err
		}
		slot.ReservedBy = "a@example.com"
		return tx.PutSlot(id, slot)
	})
	s.Require().NoError(err)

	slot, err := s.storage.GetSlot(s.ctx, id, slotID)
	s.Require().NoError(err)
	s.Equal(model.Email("a@example.com"), slot.ReservedBy)

	_, err = s.storage.GetSlot(s.ctx, id, "2026-03-02_vice_president_23:30")
	s.ErrorIs(err, model.ErrSlotNotFound)
}

func (s *StorageSuite) TestSlotHeldOn() {
	id := s.seedCampaign()
	slotID := model.SlotID("2026-03-02_vice_president_00:00")

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		slot, err := tx.GetSlot(id, slotID)
		if err != nil {
			return err
		}
		slot.ReservedBy = "a@example.com"
		return tx.PutSlot(id, slot)
	})
	s.Require().NoError(err)

	err = s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		held, err := tx.SlotHeldOn(id, "2026-03-02", "a@example.com")
		if err != nil {
			return err
		}
		s.Require().NotNil(held)
		s.Equal(slotID, held.ID)

		held, err = tx.SlotHeldOn(id, "2026-03-02", "other@example.com")
		if err != nil {
			return err
		}
		s.Nil(held)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestSlotsHeldBy() {
	id := s.seedCampaign()

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		for _, slotID := range []model.SlotID{"2026-03-02_vice_president_00:00", "2026-03-02_vice_president_00:30"} {
			slot, err := tx.GetSlot(id, slotID)
			if err != nil {
				return err
			}
			slot.ReservedBy = "a@example.com"
			if err := tx.PutSlot(id, slot); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)

	err = s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		held, err := tx.SlotsHeldBy(id, "a@example.com")
		if err != nil {
			return err
		}
		s.Len(held, 2)
		return nil
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestGetSlotNotFound() {
	id := s.seedCampaign()

	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		_, err := tx.GetSlot(id, "2026-03-02_vice_president_23:30")
		return err
	})
	s.ErrorIs(err, model.ErrSlotNotFound)
}

func (s *StorageSuite) TestCompletedCampaignsNewestFirst() {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		if err := tx.PutCampaign(&model.Campaign{ID: "svs_2026_02_28", Status: model.CampaignCompleted, CompletedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
			return err
		}
		return tx.PutCampaign(&model.Campaign{ID: "svs_2026_03_07", Status: model.CampaignCompleted, CompletedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)})
	})
	s.Require().NoError(err)

	completed, err := s.storage.CompletedCampaigns(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(completed, 2)
	s.Equal(model.CampaignID("svs_2026_03_07"), completed[0].ID)
}

// Concurrency

func (s *StorageSuite) TestConcurrentReservationExactlyOneWins() {
	id := s.seedCampaign()
	slotID := model.SlotID("2026-03-02_vice_president_00:00")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		email := model.Email(string(rune('a'+i)) + "@example.com")
		go func() {
			defer wg.Done()
			results <- s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
				slot, err := tx.GetSlot(id, slotID)
				if err != nil {
					return err
				}
				if !slot.Free() {
					return model.ErrSlotReserved
				}
				slot.ReservedBy = email
				return tx.PutSlot(id, slot)
			})
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
		} else {
			s.ErrorIs(err, model.ErrSlotReserved)
		}
	}
	s.Equal(1, won)
}

// Audit log

func (s *StorageSuite) TestAuditAppendAndPage() {
	for i := 0; i < 3; i++ {
		err := s.storage.AppendAudit(s.ctx, &model.AuditEntry{
			EntityType:  model.EntityCampaign,
			Action:      model.ActionCampaignCreated,
			PerformedAt: time.Date(2026, 3, 2, 12, i, 0, 0, time.UTC),
		})
		s.Require().NoError(err)
	}

	page, err := s.storage.AuditPage(s.ctx, 0, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	// Newest first
	s.Equal(2, page[0].PerformedAt.Minute())
	s.Equal(1, page[1].PerformedAt.Minute())

	rest, err := s.storage.AuditPage(s.ctx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(0, rest[0].PerformedAt.Minute())
}

func (s *StorageSuite) TestAuditPageOutOfRange() {
	err := s.storage.AppendAudit(s.ctx, &model.AuditEntry{
		EntityType: model.EntityCampaign,
		Action:     model.ActionCampaignCreated,
	})
	s.Require().NoError(err)

	page, err := s.storage.AuditPage(s.ctx, -5, 2)
	s.Require().NoError(err)
	s.Len(page, 1)

	page, err = s.storage.AuditPage(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Empty(page)

	page, err = s.storage.AuditPage(s.ctx, 10, 2)
	s.Require().NoError(err)
	s.Empty(page)
}

// Alliances

func (s *StorageSuite) TestAlliancesSortedByTag() {
	s.Require().NoError(s.storage.PutAlliance(s.ctx, &model.Alliance{Tag: "ZZZ", Name: "Last", Status: model.AllianceActive}))
	s.Require().NoError(s.storage.PutAlliance(s.ctx, &model.Alliance{Tag: "AAA", Name: "First", Status: model.AllianceActive}))

	alliances, err := s.storage.Alliances(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(alliances, 2)
	s.Equal("AAA", alliances[0].Tag)
}
