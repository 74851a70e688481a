package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/booking"
	"github.com/frostgate/svscoord/internal/services/campaign"
	"github.com/frostgate/svscoord/internal/storage"
	"github.com/frostgate/svscoord/internal/storage/memory"
	"github.com/frostgate/svscoord/internal/testutil"
)

const (
	memberEmail = model.Email("member@example.com")
	mondayVP    = model.SlotID("2026-03-02_vice_president_08:00")
	mondayVP2   = model.SlotID("2026-03-02_vice_president_08:30")
	tuesdayVP   = model.SlotID("2026-03-03_vice_president_08:00")
)

var admin = model.Actor{Email: "admin@example.com", Role: model.RoleAdmin}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	recorder   *audit.Recorder
	controller *booking.Controller

	campaignID model.CampaignID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(s.storage, s.clock, testutil.NopLogger())
	s.controller = booking.NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())

	campaigns := campaign.NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())
	camp, err := campaigns.Create(context.Background(), admin,
		"State 512", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.campaignID = camp.ID

	s.putMember(memberEmail, "1001", model.StatusApproved)
}

func (s *ControllerSuite) TearDownTest() {
	s.recorder.Close()
}

func (s *ControllerSuite) putMember(email model.Email, playerID model.PlayerID, status string) {
	err := s.storage.RunTransaction(context.Background(), func(tx storage.Txn) error {
		return tx.PutUser(&model.User{
			Email:      email,
			Role:       model.RoleMember,
			Status:     status,
			PlayerID:   playerID,
			IngameName: "Kestrel",
			Alliance:   "FRG",
			AuthLinked: true,
		})
	})
	s.Require().NoError(err)
}

func (s *ControllerSuite) getSlot(id model.SlotID) *model.Slot {
	slot, err := s.storage.GetSlot(context.Background(), s.campaignID, id)
	s.Require().NoError(err)
	return slot
}

func (s *ControllerSuite) TestBook() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))

	slot := s.getSlot(mondayVP)
	s.Equal(memberEmail, slot.ReservedBy)
	s.Equal(model.PlayerID("1001"), slot.PlayerID)
	s.Equal("Kestrel", slot.IngameName)
	s.Equal("FRG", slot.Alliance)
	s.False(slot.Free())
}

func (s *ControllerSuite) TestBookReservedSlot() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))

	s.putMember("other@example.com", "1002", model.StatusApproved)
	err := s.controller.Book(context.Background(), s.campaignID, mondayVP, "other@example.com")
	s.Require().ErrorIs(err, model.ErrSlotReserved)
}

func (s *ControllerSuite) TestBookRequiresApproval() {
	s.putMember("pending@example.com", "1003", model.StatusPending)
	err := s.controller.Book(context.Background(), s.campaignID, mondayVP, "pending@example.com")
	s.Require().ErrorIs(err, model.ErrProfileNotApproved)
}

func (s *ControllerSuite) TestBookOnePerDay() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))

	err := s.controller.Book(context.Background(), s.campaignID, mondayVP2, memberEmail)
	s.Require().ErrorIs(err, model.ErrDayAlreadyBooked)

	// A different prep day is still bookable.
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, tuesdayVP, memberEmail))
}

func (s *ControllerSuite) TestBookUnknownSlot() {
	err := s.controller.Book(context.Background(), s.campaignID, "2026-03-02_vice_president_99:99", memberEmail)
	s.Require().ErrorIs(err, model.ErrSlotNotFound)
}

func (s *ControllerSuite) TestCancel() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))
	s.Require().NoError(s.controller.Cancel(context.Background(), s.campaignID, mondayVP, memberEmail))

	slot := s.getSlot(mondayVP)
	s.True(slot.Free())
	s.Empty(slot.PlayerID)
	s.Empty(slot.IngameName)
}

func (s *ControllerSuite) TestCancelNotOwner() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))

	s.putMember("other@example.com", "1002", model.StatusApproved)
	err := s.controller.Cancel(context.Background(), s.campaignID, mondayVP, "other@example.com")
	s.Require().ErrorIs(err, model.ErrNotSlotOwner)
	s.False(s.getSlot(mondayVP).Free())
}

func (s *ControllerSuite) TestCancelFreeSlot() {
	err := s.controller.Cancel(context.Background(), s.campaignID, mondayVP, memberEmail)
	s.Require().ErrorIs(err, model.ErrSlotFree)
}

func (s *ControllerSuite) TestRebook() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))
	s.Require().NoError(s.controller.Rebook(context.Background(), s.campaignID, mondayVP, tuesdayVP, memberEmail))

	s.True(s.getSlot(mondayVP).Free())
	s.Equal(memberEmail, s.getSlot(tuesdayVP).ReservedBy)
}

func (s *ControllerSuite) TestRebookSameDay() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))
	s.Require().NoError(s.controller.Rebook(context.Background(), s.campaignID, mondayVP, mondayVP2, memberEmail))

	s.True(s.getSlot(mondayVP).Free())
	s.Equal(memberEmail, s.getSlot(mondayVP2).ReservedBy)
}

func (s *ControllerSuite) TestRebookTakenTargetLeavesSourceHeld() {
	s.putMember("other@example.com", "1002", model.StatusApproved)
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, tuesdayVP, "other@example.com"))

	err := s.controller.Rebook(context.Background(), s.campaignID, mondayVP, tuesdayVP, memberEmail)
	s.Require().ErrorIs(err, model.ErrSlotReserved)

	// The failed swap rolls back both sides.
	s.Equal(memberEmail, s.getSlot(mondayVP).ReservedBy)
	s.Equal(model.Email("other@example.com"), s.getSlot(tuesdayVP).ReservedBy)
}

func (s *ControllerSuite) TestRebookNotOwner() {
	s.putMember("other@example.com", "1002", model.StatusApproved)
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))

	err := s.controller.Rebook(context.Background(), s.campaignID, mondayVP, tuesdayVP, "other@example.com")
	s.Require().ErrorIs(err, model.ErrNotSlotOwner)
}

func (s *ControllerSuite) TestAdminReserveCreatesPlaceholder() {
	err := s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "2002", "Harrier", "FRG")
	s.Require().NoError(err)

	slot := s.getSlot(mondayVP)
	s.Equal(model.PlayerID("2002"), slot.PlayerID)
	s.Equal("Harrier", slot.IngameName)

	user, err := s.storage.GetUser(context.Background(), model.SyntheticEmail("2002"))
	s.Require().NoError(err)
	s.True(user.IsPlaceholder)
	s.True(user.CreatedByAdmin)
	s.False(user.AuthLinked)
	s.Equal(model.StatusApproved, user.Status)
}

func (s *ControllerSuite) TestAdminReservePlaceholderNeedsNameAndAlliance() {
	err := s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "2002", "", "FRG")
	s.Require().ErrorIs(err, model.ErrProfileIncomplete)

	err = s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "2002", "Harrier", "")
	s.Require().ErrorIs(err, model.ErrProfileIncomplete)
}

func (s *ControllerSuite) TestAdminReserveKnownPlayer() {
	err := s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "1001", "", "")
	s.Require().NoError(err)

	slot := s.getSlot(mondayVP)
	s.Equal(memberEmail, slot.ReservedBy)
	s.Equal("Kestrel", slot.IngameName)
	s.Equal("FRG", slot.Alliance)
}

func (s *ControllerSuite) TestAdminReserveNonNumericID() {
	err := s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "12ab", "Harrier", "FRG")
	s.Require().ErrorIs(err, model.ErrPlayerIDNotNumeric)
}

func (s *ControllerSuite) TestAdminReserveDuplicateOwners() {
	s.putMember("dupe@example.com", "1001", model.StatusApproved)
	err := s.controller.AdminReserve(context.Background(), admin, s.campaignID, mondayVP, "1001", "", "")
	s.Require().ErrorIs(err, model.ErrDuplicatePlayerID)
}

func (s *ControllerSuite) TestAdminCancel() {
	s.Require().NoError(s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail))
	s.Require().NoError(s.controller.AdminCancel(context.Background(), admin, s.campaignID, mondayVP))
	s.True(s.getSlot(mondayVP).Free())
}

func (s *ControllerSuite) TestAdminCancelFreeSlot() {
	err := s.controller.AdminCancel(context.Background(), admin, s.campaignID, mondayVP)
	s.Require().ErrorIs(err, model.ErrSlotFree)
}

func (s *ControllerSuite) TestMutationsRejectedAfterCompletion() {
	err := s.storage.RunTransaction(context.Background(), func(tx storage.Txn) error {
		camp, err := tx.GetCampaign(s.campaignID)
		if err != nil {
			return err
		}
		camp.Status = model.CampaignCompleted
		return tx.PutCampaign(camp)
	})
	s.Require().NoError(err)

	err = s.controller.Book(context.Background(), s.campaignID, mondayVP, memberEmail)
	s.Require().ErrorIs(err, model.ErrCampaignCompleted)
}
