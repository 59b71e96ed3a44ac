// Package store implements the session aggregator: the authoritative state
// for players, test sessions and recorded games. Durable history lives in
// the repositories; the current player, current session and in-flight game
// are process state only and never persisted.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mindflow/mindflow/internal/engine"
	apperrors "github.com/mindflow/mindflow/internal/errors"
	"github.com/mindflow/mindflow/internal/logger"
	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/repository"
)

// activeGame tracks the one in-flight mini-game.
type activeGame struct {
	gameType  models.GameType
	engine    *engine.Engine
	startedAt time.Time
}

// Aggregator owns process-wide session state. All mutating operations lock;
// there is no finer-grained concurrency because game events arrive one at a
// time from a single UI.
type Aggregator struct {
	mu sync.Mutex

	players      repository.PlayerRepository
	testSessions repository.TestSessionRepository
	gameSessions repository.GameSessionRepository

	clock       engine.Clock
	wordTarget  int
	memorizeFor time.Duration

	currentPlayer  *models.Player
	currentSession *models.TestSession
	game           *activeGame
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock replaces the wall clock used for timestamps and game timing.
func WithClock(c engine.Clock) Option {
	return func(a *Aggregator) { a.clock = c }
}

// WithMazeWordTarget sets how many words a letter maze run requires.
func WithMazeWordTarget(n int) Option {
	return func(a *Aggregator) { a.wordTarget = n }
}

// WithMemorizeDuration sets the preview interval for memorize games.
func WithMemorizeDuration(d time.Duration) Option {
	return func(a *Aggregator) { a.memorizeFor = d }
}

// New creates an Aggregator over the given repositories.
func New(players repository.PlayerRepository, testSessions repository.TestSessionRepository, gameSessions repository.GameSessionRepository, opts ...Option) *Aggregator {
	a := &Aggregator{
		players:      players,
		testSessions: testSessions,
		gameSessions: gameSessions,
		clock:        engine.SystemClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreatePlayer registers a new player and makes it current. Input validation
// is the caller's job; duplicates are not rejected.
func (a *Aggregator) CreatePlayer(ctx context.Context, name string, age int, email string) (*models.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating player: name=%s, age=%d", name, age)

	player := models.Player{
		ID:        uuid.NewString(),
		Name:      name,
		Age:       age,
		Email:     email,
		CreatedAt: a.clock.Now(),
	}
	if err := a.players.Insert(ctx, player); err != nil {
		log.Error("failed to insert player: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	a.mu.Lock()
	a.currentPlayer = &player
	a.mu.Unlock()

	log.Info("player created: id=%s, name=%s", player.ID, player.Name)
	return &player, nil
}

// SelectPlayer makes an existing player current.
func (a *Aggregator) SelectPlayer(ctx context.Context, id string) (*models.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting player: id=%s", id)

	player, err := a.players.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if player == nil {
		return nil, apperrors.NewNotFoundError("player", id)
	}

	a.mu.Lock()
	a.currentPlayer = player
	a.mu.Unlock()
	return player, nil
}

// CurrentPlayer returns the current player, or nil.
func (a *Aggregator) CurrentPlayer() *models.Player {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPlayer
}

// CurrentSession returns the active test session, or nil.
func (a *Aggregator) CurrentSession() *models.TestSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentSession
}

// StartTestSession opens a new test session for the current player and makes
// it current, stamping the player's last-played time.
func (a *Aggregator) StartTestSession(ctx context.Context) (*models.TestSession, error) {
	log := logger.FromContext(ctx)

	a.mu.Lock()
	player := a.currentPlayer
	a.mu.Unlock()
	if player == nil {
		return nil, apperrors.NewMissingContextError("player")
	}

	now := a.clock.Now()
	session := models.TestSession{
		ID:             uuid.NewString(),
		PlayerID:       player.ID,
		StartTime:      now,
		CompletedGames: []models.GameSession{},
	}
	if err := a.testSessions.Insert(ctx, session); err != nil {
		log.Error("failed to insert test session: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	if err := a.players.UpdateLastPlayed(ctx, player.ID, now); err != nil {
		// History already holds the session; a stale last-played stamp
		// is not worth failing the start over.
		log.Warn("failed to update last played: %v", err)
	}

	a.mu.Lock()
	a.currentSession = &session
	if a.currentPlayer != nil && a.currentPlayer.ID == player.ID {
		a.currentPlayer.LastPlayed = &now
	}
	a.mu.Unlock()

	log.Info("test session started: id=%s, player_id=%s", session.ID, player.ID)
	return &session, nil
}

// StartGame marks a game active, records its start time and builds its
// engine. The surrounding UI guarantees a player and session exist; the
// aggregator does not enforce that here.
func (a *Aggregator) StartGame(ctx context.Context, gameType models.GameType) (map[string]any, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting game: game_type=%s", gameType)

	opts := []engine.Option{engine.WithClock(a.clock)}
	if a.wordTarget > 0 {
		opts = append(opts, engine.WithWordTarget(a.wordTarget))
	}
	if a.memorizeFor > 0 && gameType == models.GameMirrorMatch {
		opts = append(opts, engine.WithMemorizeDuration(a.memorizeFor))
	}
	eng, err := engine.New(gameType, opts...)
	if err != nil {
		return nil, apperrors.NewValidationError("game_type", "unknown game type")
	}
	eng.Start()

	a.mu.Lock()
	a.game = &activeGame{
		gameType:  gameType,
		engine:    eng,
		startedAt: a.clock.Now(),
	}
	a.mu.Unlock()

	log.Info("game started: game_type=%s", gameType)
	return eng.View(), nil
}

// GameView returns the in-flight game's client state.
func (a *Aggregator) GameView() (map[string]any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game == nil {
		return nil, apperrors.NewMissingContextError("game")
	}
	return a.game.engine.View(), nil
}

// Interact feeds one user event to the in-flight game. When the event
// completes the game, the emitted result is recorded and the stored
// GameSession returned alongside the final view.
func (a *Aggregator) Interact(ctx context.Context, in engine.Input) (map[string]any, *models.GameSession, error) {
	a.mu.Lock()
	game := a.game
	a.mu.Unlock()
	if game == nil {
		return nil, nil, apperrors.NewMissingContextError("game")
	}

	result, err := game.engine.Interact(in)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(err.Error())
	}
	if result == nil {
		return game.engine.View(), nil, nil
	}

	session, err := a.EndGame(ctx, *result)
	if err != nil {
		return nil, nil, err
	}
	return game.engine.View(), session, nil
}

// FinishGame ends the in-flight game early, recording whatever counters
// have accumulated.
func (a *Aggregator) FinishGame(ctx context.Context) (map[string]any, *models.GameSession, error) {
	a.mu.Lock()
	game := a.game
	a.mu.Unlock()
	if game == nil {
		return nil, nil, apperrors.NewMissingContextError("game")
	}

	result, err := game.engine.Finish()
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(err.Error())
	}
	session, err := a.EndGame(ctx, result)
	if err != nil {
		return nil, nil, err
	}
	return game.engine.View(), session, nil
}

// EndGame folds a finished game's result into the current test session and
// the global history, then clears the active-game markers. It fails with
// MISSING_CONTEXT when no current player or test session exists.
func (a *Aggregator) EndGame(ctx context.Context, result models.GameResult) (*models.GameSession, error) {
	log := logger.FromContext(ctx)

	a.mu.Lock()
	player := a.currentPlayer
	testSession := a.currentSession
	game := a.game
	a.mu.Unlock()

	if player == nil || testSession == nil {
		return nil, apperrors.NewMissingContextError("player or test session")
	}

	now := a.clock.Now()
	startTime := now
	if game != nil {
		startTime = game.startedAt
	}
	session := models.GameSession{
		ID:            uuid.NewString(),
		PlayerID:      player.ID,
		TestSessionID: testSession.ID,
		GameType:      result.GameType,
		StartTime:     startTime,
		EndTime:       now,
		Score:         result.Score,
		TotalClicks:   result.TotalClicks,
		Hits:          result.Hits,
		Misses:        result.Misses,
		Accuracy:      result.Accuracy,
		MissRate:      result.MissRate,
		TimeSpent:     result.TimeSpent,
		GameData:      map[string]any{},
	}

	if err := a.gameSessions.Record(ctx, session); err != nil {
		log.Error("failed to record game session: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	a.mu.Lock()
	if a.currentSession != nil && a.currentSession.ID == testSession.ID {
		a.currentSession.CompletedGames = append(a.currentSession.CompletedGames, session)
		a.currentSession.CurrentGameIndex++
	}
	a.game = nil
	a.mu.Unlock()

	log.Info("game recorded: id=%s, game_type=%s, score=%d, accuracy=%d",
		session.ID, session.GameType, session.Score, session.Accuracy)
	return &session, nil
}

// CompleteTestSession closes the current session, moving it into completed
// history. Calling it with no current session is a no-op.
func (a *Aggregator) CompleteTestSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	a.mu.Lock()
	session := a.currentSession
	a.mu.Unlock()
	if session == nil {
		return nil
	}

	now := a.clock.Now()
	if err := a.testSessions.Complete(ctx, session.ID, now); err != nil {
		log.Error("failed to complete test session: %v", err)
		return apperrors.NewInternalError(err)
	}

	a.mu.Lock()
	if a.currentSession != nil && a.currentSession.ID == session.ID {
		a.currentSession = nil
	}
	a.game = nil
	a.mu.Unlock()

	log.Info("test session completed: id=%s", session.ID)
	return nil
}

// Snapshot returns the persisted slice of aggregator state, suitable for
// export. Current pointers and in-flight game state are excluded.
func (a *Aggregator) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	players, err := a.players.List(ctx, "")
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	gameSessions, err := a.gameSessions.List(ctx, models.GameSessionFilter{})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	testSessions, err := a.testSessions.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if players == nil {
		players = []models.Player{}
	}
	if gameSessions == nil {
		gameSessions = []models.GameSession{}
	}
	if testSessions == nil {
		testSessions = []models.TestSession{}
	}
	return &models.Snapshot{
		Players:      players,
		GameSessions: gameSessions,
		TestSessions: testSessions,
	}, nil
}
