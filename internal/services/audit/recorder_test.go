package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/frostgate/svscoord/internal/dependencies/mocks"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/audit"
	"github.com/frostgate/svscoord/internal/storage/memory"
	"github.com/frostgate/svscoord/internal/testutil"
)

type RecorderSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	recorder *audit.Recorder
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.recorder = audit.NewRecorder(s.storage, s.clock, testutil.NopLogger())
}

func (s *RecorderSuite) TestRecordStampsDefaults() {
	s.recorder.Record(model.AuditEntry{
		EntityType: model.EntityCampaign,
		Action:     model.ActionCampaignCreated,
	})
	s.recorder.Close()

	entries, err := s.recorder.Page(context.Background(), 0, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(s.clock.Now(), entries[0].PerformedAt)
	s.Equal(model.SeverityInfo, entries[0].Severity)
}

func (s *RecorderSuite) TestCloseDrainsQueue() {
	for i := 0; i < 50; i++ {
		s.recorder.Record(model.AuditEntry{
			EntityType: model.EntityUser,
			Action:     model.ActionUserUpdated,
		})
	}
	s.recorder.Close()

	entries, err := s.recorder.Page(context.Background(), 0, 100)
	s.Require().NoError(err)
	s.Len(entries, 50)
}

func (s *RecorderSuite) TestCloseIsIdempotent() {
	s.recorder.Close()
	s.recorder.Close()
}

func (s *RecorderSuite) TestPagePagination() {
	for i := 0; i < 10; i++ {
		s.recorder.Record(model.AuditEntry{
			EntityType: model.EntityUser,
			Action:     model.ActionUserUpdated,
		})
		s.clock.Advance(time.Minute)
	}
	s.recorder.Close()

	page, err := s.recorder.Page(context.Background(), 0, 3)
	s.Require().NoError(err)
	s.Require().Len(page, 3)
	// Newest first.
	s.True(page[0].PerformedAt.After(page[2].PerformedAt))

	rest, err := s.recorder.Page(context.Background(), 9, 3)
	s.Require().NoError(err)
	s.Len(rest, 1)
}
