package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mindflow/mindflow/internal/db"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/repository"
	"github.com/mindflow/mindflow/internal/repository/sqlite"
	"github.com/mindflow/mindflow/internal/testutil"
)

type TestSessionRepositorySuite struct {
	suite.Suite
	db       *db.DB
	players  repository.PlayerRepository
	sessions repository.TestSessionRepository
	games    repository.GameSessionRepository
}

func (s *TestSessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.players = sqlite.NewPlayerRepository(s.db)
	s.sessions = sqlite.NewTestSessionRepository(s.db)
	s.games = sqlite.NewGameSessionRepository(s.db)

	player := models.Player{ID: "p-1", Name: "Maya", Age: 8, CreatedAt: time.Now().UTC()}
	s.Require().NoError(s.players.Insert(context.Background(), player))
}

func (s *TestSessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *TestSessionRepositorySuite) insertSession(id string, start time.Time) {
	session := models.TestSession{ID: id, PlayerID: "p-1", StartTime: start}
	s.Require().NoError(s.sessions.Insert(context.Background(), session))
}

func (s *TestSessionRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.insertSession("ts-1", start)

	got, err := s.sessions.Get(ctx, "ts-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("p-1", got.PlayerID)
	s.Assert().True(got.StartTime.Equal(start))
	s.Assert().Nil(got.EndTime)
	s.Assert().False(got.IsCompleted)
	s.Assert().NotNil(got.CompletedGames)
	s.Assert().Empty(got.CompletedGames)
}

func (s *TestSessionRepositorySuite) TestGet_NotFound() {
	got, err := s.sessions.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *TestSessionRepositorySuite) TestComplete() {
	ctx := context.Background()
	s.insertSession("ts-1", time.Now().UTC())

	end := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	s.Require().NoError(s.sessions.Complete(ctx, "ts-1", end))

	got, err := s.sessions.Get(ctx, "ts-1")
	s.Require().NoError(err)
	s.Assert().True(got.IsCompleted)
	s.Require().NotNil(got.EndTime)
	s.Assert().True(got.EndTime.Equal(end))
}

func (s *TestSessionRepositorySuite) TestListByPlayer_CompletedOnly() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.insertSession("ts-old", now.Add(-time.Hour))
	s.insertSession("ts-new", now)
	s.Require().NoError(s.sessions.Complete(ctx, "ts-old", now))

	all, err := s.sessions.ListByPlayer(ctx, "p-1", false)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	// Newest first.
	s.Assert().Equal("ts-new", all[0].ID)

	completed, err := s.sessions.ListByPlayer(ctx, "p-1", true)
	s.Require().NoError(err)
	s.Require().Len(completed, 1)
	s.Assert().Equal("ts-old", completed[0].ID)
}

func (s *TestSessionRepositorySuite) TestGet_PopulatesGamesInRecordedOrder() {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.insertSession("ts-1", start)

	first := models.GameSession{
		ID: "gs-1", PlayerID: "p-1", TestSessionID: "ts-1",
		GameType: models.GameLetterMaze,
		StartTime: start, EndTime: start.Add(time.Minute),
		Score: 48, GameData: map[string]any{},
	}
	second := models.GameSession{
		ID: "gs-2", PlayerID: "p-1", TestSessionID: "ts-1",
		GameType: models.GameWordFlip,
		StartTime: start.Add(time.Minute), EndTime: start.Add(2 * time.Minute),
		Score: 80, GameData: map[string]any{},
	}
	s.Require().NoError(s.games.Record(ctx, first))
	s.Require().NoError(s.games.Record(ctx, second))

	got, err := s.sessions.Get(ctx, "ts-1")
	s.Require().NoError(err)
	s.Require().Len(got.CompletedGames, 2)
	s.Assert().Equal("gs-1", got.CompletedGames[0].ID)
	s.Assert().Equal("gs-2", got.CompletedGames[1].ID)
	s.Assert().Equal(2, got.CurrentGameIndex)
}

func (s *TestSessionRepositorySuite) TestListAll_OldestFirst() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.insertSession("ts-old", now.Add(-time.Hour))
	s.insertSession("ts-new", now)

	all, err := s.sessions.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Assert().Equal("ts-old", all[0].ID)
}

func TestTestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TestSessionRepositorySuite))
}
