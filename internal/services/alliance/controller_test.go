package alliance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/alliance"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage/memory"
	"github.com/frostgate/svscoord/internal/testutil"
)

var admin = model.Actor{Email: "admin@example.com", Role: model.RoleAdmin}

type ControllerSuite struct {
	suite.Suite
	recorder   *audit.Recorder
	controller *alliance.Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(store, clk, testutil.NopLogger())
	s.controller = alliance.NewController(store, s.recorder)
}

func (s *ControllerSuite) TearDownTest() {
	s.recorder.Close()
}

func (s *ControllerSuite) TestSaveAndList() {
	s.Require().NoError(s.controller.Save(context.Background(), admin, " FRG ", " Frostgate ", model.AllianceActive))

	alliances, err := s.controller.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(alliances, 1)
	s.Equal("FRG", alliances[0].Tag)
	s.Equal("Frostgate", alliances[0].Name)
}

func (s *ControllerSuite) TestSaveOverwrites() {
	s.Require().NoError(s.controller.Save(context.Background(), admin, "FRG", "Frostgate", model.AllianceActive))
	s.Require().NoError(s.controller.Save(context.Background(), admin, "FRG", "Frostgate", model.AllianceInactive))

	alliances, err := s.controller.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(alliances, 1)
	s.Equal(model.AllianceInactive, alliances[0].Status)
}

func (s *ControllerSuite) TestSaveRejectsBlankTagOrName() {
	err := s.controller.Save(context.Background(), admin, "   ", "Frostgate", model.AllianceActive)
	s.Require().ErrorIs(err, alliance.ErrEmptyTag)

	err = s.controller.Save(context.Background(), admin, "FRG", "", model.AllianceActive)
	s.Require().ErrorIs(err, alliance.ErrEmptyTag)

	alliances, err := s.controller.List(context.Background())
	s.Require().NoError(err)
	s.Empty(alliances)
}

func (s *ControllerSuite) TestSaveRejectsUnknownStatus() {
	err := s.controller.Save(context.Background(), admin, "FRG", "Frostgate", "disbanded")
	s.Require().ErrorIs(err, alliance.ErrBadStatus)
}
