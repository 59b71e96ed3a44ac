package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mindflow/mindflow/internal/engine"
	apperrors "github.com/mindflow/mindflow/internal/errors"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/store"
	"github.com/mindflow/mindflow/internal/testutil/mocks"
)

type aggregatorMocks struct {
	players      *mocks.MockPlayerRepository
	testSessions *mocks.MockTestSessionRepository
	gameSessions *mocks.MockGameSessionRepository
}

func newAggregator(t *testing.T, opts ...store.Option) (*store.Aggregator, aggregatorMocks) {
	t.Helper()
	m := aggregatorMocks{
		players:      new(mocks.MockPlayerRepository),
		testSessions: new(mocks.MockTestSessionRepository),
		gameSessions: new(mocks.MockGameSessionRepository),
	}
	a := store.New(m.players, m.testSessions, m.gameSessions, opts...)
	return a, m
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	return appErr.Code
}

func TestCreatePlayer_BecomesCurrent(t *testing.T) {
	a, m := newAggregator(t)
	m.players.On("Insert", mock.Anything, mock.AnythingOfType("models.Player")).Return(nil)

	player, err := a.CreatePlayer(context.Background(), "Maya", 8, "parent@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "Maya", player.Name)

	current := a.CurrentPlayer()
	require.NotNil(t, current)
	assert.Equal(t, player.ID, current.ID)
	m.players.AssertExpectations(t)
}

func TestSelectPlayer_NotFound(t *testing.T) {
	a, m := newAggregator(t)
	m.players.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := a.SelectPlayer(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, appCode(t, err))
	assert.Nil(t, a.CurrentPlayer())
}

func TestStartTestSession_RequiresPlayer(t *testing.T) {
	a, _ := newAggregator(t)

	_, err := a.StartTestSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingContext, appCode(t, err))
}

func TestStartTestSession_StampsLastPlayed(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	a, m := newAggregator(t, store.WithClock(clock))

	m.players.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.testSessions.On("Insert", mock.Anything, mock.AnythingOfType("models.TestSession")).Return(nil)
	m.players.On("UpdateLastPlayed", mock.Anything, mock.Anything, clock.Now()).Return(nil)

	player, err := a.CreatePlayer(context.Background(), "Maya", 8, "")
	require.NoError(t, err)

	session, err := a.StartTestSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, player.ID, session.PlayerID)
	assert.Equal(t, clock.Now(), session.StartTime)
	assert.Empty(t, session.CompletedGames)
	assert.Equal(t, 0, session.CurrentGameIndex)

	require.NotNil(t, a.CurrentPlayer().LastPlayed)
	assert.Equal(t, clock.Now(), *a.CurrentPlayer().LastPlayed)
	m.testSessions.AssertExpectations(t)
}

func TestStartTestSession_SurvivesLastPlayedFailure(t *testing.T) {
	a, m := newAggregator(t)
	m.players.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.testSessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.players.On("UpdateLastPlayed", mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, err := a.CreatePlayer(context.Background(), "Maya", 8, "")
	require.NoError(t, err)

	_, err = a.StartTestSession(context.Background())
	assert.NoError(t, err)
}

func TestStartGame_UnknownType(t *testing.T) {
	a, _ := newAggregator(t)

	_, err := a.StartGame(context.Background(), models.GameType("tetris"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, appCode(t, err))
}

func TestInteract_NoActiveGame(t *testing.T) {
	a, _ := newAggregator(t)

	_, _, err := a.Interact(context.Background(), engine.Input{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingContext, appCode(t, err))
}

func TestEndGame_RequiresPlayerAndSession(t *testing.T) {
	a, _ := newAggregator(t)

	_, err := a.EndGame(context.Background(), models.GameResult{GameType: models.GameOddOneOut})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingContext, appCode(t, err))
}

// startSession wires a current player and test session through the mocks.
func startSession(t *testing.T, a *store.Aggregator, m aggregatorMocks) *models.TestSession {
	t.Helper()
	m.players.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.testSessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.players.On("UpdateLastPlayed", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := a.CreatePlayer(context.Background(), "Maya", 8, "")
	require.NoError(t, err)
	session, err := a.StartTestSession(context.Background())
	require.NoError(t, err)
	return session
}

func TestEndGame_AppendsToSessionAndHistory(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	a, m := newAggregator(t, store.WithClock(clock))
	session := startSession(t, a, m)

	var recorded models.GameSession
	m.gameSessions.On("Record", mock.Anything, mock.AnythingOfType("models.GameSession")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(models.GameSession)
		}).
		Return(nil)

	result := models.GameResult{
		GameType:    models.GameLetterMaze,
		Score:       48,
		TotalClicks: 6,
		Hits:        5,
		Misses:      1,
		Accuracy:    83,
		MissRate:    17,
		TimeSpent:   42,
	}
	stored, err := a.EndGame(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, session.ID, stored.TestSessionID)
	assert.Equal(t, session.PlayerID, stored.PlayerID)
	assert.Equal(t, 48, stored.Score)
	assert.Equal(t, 83, stored.Accuracy)
	assert.Equal(t, stored.ID, recorded.ID)

	current := a.CurrentSession()
	require.Len(t, current.CompletedGames, 1)
	assert.Equal(t, 1, current.CurrentGameIndex)
	assert.Equal(t, stored.ID, current.CompletedGames[0].ID)
	m.gameSessions.AssertExpectations(t)
}

func TestEndGame_RecordFailureLeavesSessionUntouched(t *testing.T) {
	a, m := newAggregator(t)
	startSession(t, a, m)

	m.gameSessions.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := a.EndGame(context.Background(), models.GameResult{GameType: models.GameOddOneOut})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, appCode(t, err))

	current := a.CurrentSession()
	assert.Empty(t, current.CompletedGames)
	assert.Equal(t, 0, current.CurrentGameIndex)
}

func TestInteract_CompletionRecordsGame(t *testing.T) {
	a, m := newAggregator(t)
	startSession(t, a, m)
	m.gameSessions.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := a.StartGame(context.Background(), models.GameOddOneOut)
	require.NoError(t, err)

	// Spot the intruder six times to finish the run; the deal is shuffled,
	// but the intruder always carries the same id.
	var stored *models.GameSession
	for stored == nil {
		var view map[string]any
		view, stored, err = a.Interact(context.Background(), engine.Input{OptionID: "odd"})
		require.NoError(t, err)
		require.NotNil(t, view)
	}

	assert.Equal(t, models.GameOddOneOut, stored.GameType)
	assert.Equal(t, 120, stored.Score)
	assert.Equal(t, 100, stored.Accuracy)
	assert.Len(t, a.CurrentSession().CompletedGames, 1)

	// The active game is cleared once recorded.
	_, err = a.GameView()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingContext, appCode(t, err))
}

func TestFinishGame_RecordsPartialRun(t *testing.T) {
	a, m := newAggregator(t)
	startSession(t, a, m)
	m.gameSessions.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := a.StartGame(context.Background(), models.GamePatternTrace)
	require.NoError(t, err)

	_, stored, err := a.FinishGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.GamePatternTrace, stored.GameType)
	assert.Equal(t, 0, stored.TotalClicks)
}

func TestCompleteTestSession_Idempotent(t *testing.T) {
	a, m := newAggregator(t)
	session := startSession(t, a, m)
	m.testSessions.On("Complete", mock.Anything, session.ID, mock.Anything).Return(nil).Once()

	require.NoError(t, a.CompleteTestSession(context.Background()))
	assert.Nil(t, a.CurrentSession())

	// A second call has no session to close and is a no-op.
	require.NoError(t, a.CompleteTestSession(context.Background()))
	m.testSessions.AssertExpectations(t)
}

func TestSnapshot_SurvivesJSONRoundTrip(t *testing.T) {
	clock := engine.NewManualClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	a, m := newAggregator(t, store.WithClock(clock))
	session := startSession(t, a, m)

	m.gameSessions.On("Record", mock.Anything, mock.Anything).Return(nil)
	m.testSessions.On("Complete", mock.Anything, session.ID, clock.Now()).Return(nil)

	game, err := a.EndGame(context.Background(), models.GameResult{
		GameType:    models.GameLetterMaze,
		Score:       48,
		TotalClicks: 6,
		Hits:        5,
		Misses:      1,
		Accuracy:    83,
		MissRate:    17,
		TimeSpent:   42,
	})
	require.NoError(t, err)

	player := *a.CurrentPlayer()
	completed := *a.CurrentSession()
	end := clock.Now()
	completed.EndTime = &end
	completed.IsCompleted = true
	require.NoError(t, a.CompleteTestSession(context.Background()))

	m.players.On("List", mock.Anything, "").Return([]models.Player{player}, nil)
	m.gameSessions.On("List", mock.Anything, models.GameSessionFilter{}).
		Return([]models.GameSession{*game}, nil)
	m.testSessions.On("ListAll", mock.Anything).Return([]models.TestSession{completed}, nil)

	snapshot, err := a.Snapshot(context.Background())
	require.NoError(t, err)

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	var decoded models.Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *snapshot, decoded)
}

func TestSnapshot_EmptyStateYieldsEmptySlices(t *testing.T) {
	a, m := newAggregator(t)
	m.players.On("List", mock.Anything, "").Return([]models.Player{}, nil)
	m.gameSessions.On("List", mock.Anything, mock.Anything).Return([]models.GameSession{}, nil)
	m.testSessions.On("ListAll", mock.Anything).Return([]models.TestSession{}, nil)

	snapshot, err := a.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Players)
	assert.Empty(t, snapshot.Players)
	assert.NotNil(t, snapshot.GameSessions)
	assert.NotNil(t, snapshot.TestSessions)
}
