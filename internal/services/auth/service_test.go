package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/auth"
	"github.com/frostgate/svscoord/internal/services/invite"
	"github.com/frostgate/svscoord/internal/storage"
	"github.com/frostgate/svscoord/internal/storage/memory"
	"github.com/frostgate/svscoord/internal/testutil"
)

var admin = model.Actor{Email: "admin@example.com", Role: model.RoleAdmin}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	recorder *audit.Recorder
	invites  *invite.Controller
	service  *auth.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(s.storage, s.clock, testutil.NopLogger())
	s.invites = invite.NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())
	s.service = auth.New(s.storage, s.invites, s.clock, testutil.NopLogger(), auth.Config{SessionDuration: time.Hour})
}

func (s *ServiceSuite) TearDownTest() {
	s.recorder.Close()
}

func (s *ServiceSuite) TestSignupCreatesIncompleteAccount() {
	session, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)
	s.Equal(model.SyntheticEmail("1001"), session.Email)

	user, err := s.storage.GetUser(context.Background(), session.Email)
	s.Require().NoError(err)
	s.Equal(model.StatusIncomplete, user.Status)
	s.Equal(model.RoleMember, user.Role)
	s.Equal(model.PlayerID("1001"), user.PlayerID)
	s.True(user.AuthLinked)
	s.NotEmpty(user.PasswordHash)
}

func (s *ServiceSuite) TestSignupNonNumericID() {
	_, err := s.service.Signup(context.Background(), "12ab", "hunter22")
	s.Require().ErrorIs(err, model.ErrPlayerIDNotNumeric)
}

func (s *ServiceSuite) TestSignupTwiceFails() {
	_, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	_, err = s.service.Signup(context.Background(), "1001", "different")
	s.Require().ErrorIs(err, auth.ErrAccountExists)
}

func (s *ServiceSuite) TestSignupRejectsClaimedID() {
	err := s.storage.RunTransaction(context.Background(), func(tx storage.Txn) error {
		return tx.PutUser(&model.User{
			Email:    "member@example.com",
			Status:   model.StatusApproved,
			PlayerID: "1001",
		})
	})
	s.Require().NoError(err)

	_, err = s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().ErrorIs(err, model.ErrPlayerIDClaimed)
}

func (s *ServiceSuite) TestSignupLinksPlaceholder() {
	err := s.storage.RunTransaction(context.Background(), func(tx storage.Txn) error {
		return tx.PutUser(&model.User{
			Email:          model.SyntheticEmail("2002"),
			Role:           model.RoleMember,
			Status:         model.StatusApproved,
			PlayerID:       "2002",
			IngameName:     "Harrier",
			Alliance:       "FRG",
			IsPlaceholder:  true,
			CreatedByAdmin: true,
		})
	})
	s.Require().NoError(err)

	session, err := s.service.Signup(context.Background(), "2002", "hunter22")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(context.Background(), session.Email)
	s.Require().NoError(err)
	s.False(user.IsPlaceholder)
	s.True(user.AuthLinked)
	// The admin-entered profile survives the link.
	s.Equal("Harrier", user.IngameName)
	s.Equal(model.StatusApproved, user.Status)
}

func (s *ServiceSuite) TestLoginWithPlayerID() {
	_, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	session, err := s.service.LoginWithPlayerID(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)
	s.Equal(model.SyntheticEmail("1001"), session.Email)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	_, err = s.service.LoginWithPlayerID(context.Background(), "1001", "wrong")
	s.Require().ErrorIs(err, auth.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownAccount() {
	_, err := s.service.Login(context.Background(), "nobody@example.com", "hunter22")
	s.Require().ErrorIs(err, auth.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSessionLifecycle() {
	session, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	got, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Email, got.Email)

	s.service.InvalidateSession(session.Token)
	_, err = s.service.ValidateSession(session.Token)
	s.Require().ErrorIs(err, auth.ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpiry() {
	session, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	_, err = s.service.ValidateSession(session.Token)
	s.Require().ErrorIs(err, auth.ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old, err := s.service.Signup(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)
	s.clock.Advance(2 * time.Hour)
	fresh, err := s.service.LoginWithPlayerID(context.Background(), "1001", "hunter22")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(old.Token)
	s.Require().ErrorIs(err, auth.ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSignupConsumesInvite() {
	_, err := s.invites.Create(context.Background(), admin, model.SyntheticEmail("3003"), "3003", "Kestrel", "FRG")
	s.Require().NoError(err)

	session, err := s.service.Signup(context.Background(), "3003", "hunter22")
	s.Require().NoError(err)

	user, err := s.storage.GetUser(context.Background(), session.Email)
	s.Require().NoError(err)
	s.Equal(model.StatusApproved, user.Status)
	s.Equal("Kestrel", user.IngameName)
	s.Equal("FRG", user.Alliance)

	invites, err := s.invites.ListActive(context.Background())
	s.Require().NoError(err)
	s.Empty(invites)
}
