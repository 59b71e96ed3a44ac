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

type GameSessionRepositorySuite struct {
	suite.Suite
	db       *db.DB
	sessions repository.TestSessionRepository
	games    repository.GameSessionRepository
}

func (s *GameSessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.sessions = sqlite.NewTestSessionRepository(s.db)
	s.games = sqlite.NewGameSessionRepository(s.db)

	ctx := context.Background()
	players := sqlite.NewPlayerRepository(s.db)
	s.Require().NoError(players.Insert(ctx, models.Player{
		ID: "p-1", Name: "Maya", Age: 8, CreatedAt: time.Now().UTC(),
	}))
	s.Require().NoError(s.sessions.Insert(ctx, models.TestSession{
		ID: "ts-1", PlayerID: "p-1", StartTime: time.Now().UTC(),
	}))
}

func (s *GameSessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *GameSessionRepositorySuite) record(id string, gameType models.GameType, end time.Time) {
	s.Require().NoError(s.games.Record(context.Background(), models.GameSession{
		ID: id, PlayerID: "p-1", TestSessionID: "ts-1",
		GameType:  gameType,
		StartTime: end.Add(-time.Minute), EndTime: end,
		Score: 48, TotalClicks: 6, Hits: 5, Misses: 1,
		Accuracy: 83, MissRate: 17, TimeSpent: 42,
		GameData: map[string]any{"words_found": float64(5)},
	}))
}

func (s *GameSessionRepositorySuite) TestRecord_AdvancesParentSession() {
	ctx := context.Background()
	s.record("gs-1", models.GameLetterMaze, time.Now().UTC())

	parent, err := s.sessions.Get(ctx, "ts-1")
	s.Require().NoError(err)
	s.Assert().Equal(1, parent.CurrentGameIndex)

	s.record("gs-2", models.GameWordFlip, time.Now().UTC())
	parent, err = s.sessions.Get(ctx, "ts-1")
	s.Require().NoError(err)
	s.Assert().Equal(2, parent.CurrentGameIndex)
}

func (s *GameSessionRepositorySuite) TestRecord_UnknownParentRollsBack() {
	ctx := context.Background()
	err := s.games.Record(ctx, models.GameSession{
		ID: "gs-1", PlayerID: "p-1", TestSessionID: "missing",
		GameType: models.GameOddOneOut,
		StartTime: time.Now().UTC(), EndTime: time.Now().UTC(),
		GameData: map[string]any{},
	})
	s.Require().Error(err)

	// The insert must not survive the failed transaction.
	list, err := s.games.List(ctx, models.GameSessionFilter{})
	s.Require().NoError(err)
	s.Assert().Empty(list)
}

func (s *GameSessionRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.record("gs-1", models.GameLetterMaze, now.Add(-2*time.Minute))
	s.record("gs-2", models.GameWordFlip, now.Add(-time.Minute))
	s.record("gs-3", models.GameLetterMaze, now)

	all, err := s.games.List(ctx, models.GameSessionFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	// Newest first.
	s.Assert().Equal("gs-3", all[0].ID)

	mazes, err := s.games.List(ctx, models.GameSessionFilter{GameType: models.GameLetterMaze})
	s.Require().NoError(err)
	s.Assert().Len(mazes, 2)

	byPlayer, err := s.games.List(ctx, models.GameSessionFilter{PlayerID: "p-1"})
	s.Require().NoError(err)
	s.Assert().Len(byPlayer, 3)

	limited, err := s.games.List(ctx, models.GameSessionFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Assert().Equal("gs-2", limited[0].ID)
}

func (s *GameSessionRepositorySuite) TestRecord_RoundTripsGameData() {
	ctx := context.Background()
	s.record("gs-1", models.GamePatternTrace, time.Now().UTC())

	list, err := s.games.List(ctx, models.GameSessionFilter{})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Assert().Equal(map[string]any{"words_found": float64(5)}, list[0].GameData)
	s.Assert().Equal(83, list[0].Accuracy)
	s.Assert().Equal(42, list[0].TimeSpent)
}

func TestGameSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(GameSessionRepositorySuite))
}
