package invite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage"
	"github.com/frostgate/svscoord/internal/storage/memory"
	"github.com/frostgate/svscoord/internal/testutil"
)

var admin = model.Actor{Email: "admin@example.com", Role: model.RoleAdmin}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	recorder   *audit.Recorder
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(s.storage, s.clock, testutil.NopLogger())
	s.controller = NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) TearDownTest() {
	s.recorder.Close()
}

func (s *ControllerSuite) putUser(u *model.User) {
	err := s.storage.RunTransaction(s.ctx, func(tx storage.Txn) error {
		return tx.PutUser(u)
	})
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestCreateSucceeds() {
	inv, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	s.Equal(model.Email("alice@example.com"), inv.Email)
	s.Equal(model.PlayerID("111"), inv.PlayerID)
	s.Equal(admin.Email, inv.InvitedBy)
	s.True(inv.Active())

	active, err := s.controller.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 1)
}

func (s *ControllerSuite) TestCreateRejectsNonNumericID() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "12a45", "Alice", "FRG")
	s.ErrorIs(err, model.ErrPlayerIDNotNumeric)
}

func (s *ControllerSuite) TestCreateRejectsClaimedPlayerID() {
	s.putUser(&model.User{Email: "taken@example.com", PlayerID: "111", AuthLinked: true})

	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.ErrorIs(err, model.ErrPlayerIDClaimed)
}

func (s *ControllerSuite) TestCreateRejectsPlaceholderReservedID() {
	s.putUser(&model.User{Email: model.SyntheticEmail("111"), PlayerID: "111", IsPlaceholder: true})

	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.ErrorIs(err, model.ErrPlayerIDReserved)
}

func (s *ControllerSuite) TestCreateRejectsExistingMemberEmail() {
	s.putUser(&model.User{Email: "alice@example.com", Status: model.StatusApproved})

	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.ErrorIs(err, model.ErrEmailAlreadyMember)
}

func (s *ControllerSuite) TestCreateRejectsSecondInviteForEmail() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	_, err = s.controller.Create(s.ctx, admin, "alice@example.com", "222", "Alicia", "FRG")
	s.ErrorIs(err, model.ErrInviteExists)
}

func (s *ControllerSuite) TestCreateRejectsSecondInviteForPlayerID() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	_, err = s.controller.Create(s.ctx, admin, "bob@example.com", "111", "Bob", "FRG")
	s.ErrorIs(err, model.ErrInviteForPlayerID)
}

func (s *ControllerSuite) TestCancelledInviteFreesEmail() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Cancel(s.ctx, admin, "alice@example.com"))

	active, err := s.controller.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)

	// Both the email and the player ID can be re-invited
	_, err = s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestCancelMissingInvite() {
	err := s.controller.Cancel(s.ctx, admin, "nobody@example.com")
	s.ErrorIs(err, model.ErrInviteNotFound)
}

func (s *ControllerSuite) TestAcceptCreatesApprovedUser() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	accepted, err := s.controller.AcceptIfExists(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.True(accepted)

	user, err := s.storage.GetUser(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.StatusApproved, user.Status)
	s.Equal(model.PlayerID("111"), user.PlayerID)
	s.Equal("Alice", user.IngameName)

	// Consumed invite is no longer active
	active, err := s.controller.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *ControllerSuite) TestAcceptMergesExistingProfile() {
	s.putUser(&model.User{Email: "alice@example.com", Status: model.StatusIncomplete, AuthLinked: true})

	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	accepted, err := s.controller.AcceptIfExists(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.True(accepted)

	user, err := s.storage.GetUser(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.StatusApproved, user.Status)
	s.True(user.AuthLinked)
}

func (s *ControllerSuite) TestAcceptNoInviteIsNoop() {
	accepted, err := s.controller.AcceptIfExists(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.False(accepted)
}

func (s *ControllerSuite) TestAcceptSecondTimeIsNoop() {
	_, err := s.controller.Create(s.ctx, admin, "alice@example.com", "111", "Alice", "FRG")
	s.Require().NoError(err)

	accepted, err := s.controller.AcceptIfExists(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.True(accepted)

	accepted, err = s.controller.AcceptIfExists(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.False(accepted)
}
