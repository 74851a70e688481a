package score_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/services/campaign"
	"github.com/frostgate/svscoord/internal/services/score"
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
	controller *score.Controller

	campaignID model.CampaignID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(s.storage, s.clock, testutil.NopLogger())
	s.controller = score.NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())

	campaigns := campaign.NewController(s.storage, s.recorder, s.clock, testutil.NopLogger())
	camp, err := campaigns.Create(context.Background(), admin,
		"State 512", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.campaignID = camp.ID
}

func (s *ControllerSuite) TearDownTest() {
	s.recorder.Close()
}

func (s *ControllerSuite) TestUpdate() {
	err := s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-02", 120, 95)
	s.Require().NoError(err)

	entries, err := s.storage.PrepScores(context.Background(), s.campaignID)
	s.Require().NoError(err)
	s.Require().Len(entries, campaign.PrepDayCount)
	s.Equal(int64(120), entries[0].SelfPoints)
	s.Equal(int64(95), entries[0].OpponentPoints)
	s.Equal(s.clock.Now(), entries[0].UpdatedAt)
}

func (s *ControllerSuite) TestUpdateOverwrites() {
	s.Require().NoError(s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-02", 120, 95))
	s.Require().NoError(s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-02", 150, 95))

	entries, err := s.storage.PrepScores(context.Background(), s.campaignID)
	s.Require().NoError(err)
	s.Equal(int64(150), entries[0].SelfPoints)
}

func (s *ControllerSuite) TestUpdateUnknownDay() {
	err := s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-08", 10, 10)
	s.Require().ErrorIs(err, model.ErrPrepDayNotFound)
}

func (s *ControllerSuite) TestUpdateUnknownCampaign() {
	err := s.controller.Update(context.Background(), admin, "svs_2030_01_05", "2026-03-02", 10, 10)
	s.Require().ErrorIs(err, model.ErrCampaignNotFound)
}

func (s *ControllerSuite) TestUpdateCompletedCampaign() {
	err := s.storage.RunTransaction(context.Background(), func(tx storage.Txn) error {
		camp, err := tx.GetCampaign(s.campaignID)
		if err != nil {
			return err
		}
		camp.Status = model.CampaignCompleted
		return tx.PutCampaign(camp)
	})
	s.Require().NoError(err)

	err = s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-02", 10, 10)
	s.Require().ErrorIs(err, model.ErrCampaignCompleted)
}

func (s *ControllerSuite) TestTotals() {
	s.Require().NoError(s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-02", 120, 95))
	s.Require().NoError(s.controller.Update(context.Background(), admin, s.campaignID, "2026-03-03", 80, 110))

	totals, err := s.controller.Totals(context.Background(), s.campaignID)
	s.Require().NoError(err)
	s.Equal(int64(200), totals.SelfPoints)
	s.Equal(int64(205), totals.OpponentPoints)
	s.Equal(int64(-5), totals.Differential)
}

func (s *ControllerSuite) TestTotalsEmpty() {
	totals, err := s.controller.Totals(context.Background(), s.campaignID)
	s.Require().NoError(err)
	s.Equal(score.Totals{}, totals)
}
