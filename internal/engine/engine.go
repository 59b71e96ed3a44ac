// Package engine runs one mini-game's challenge loop: a small state machine
// with phases instructions → (memorizing) → playing → complete, shared hit,
// miss and score counters, and a game-specific challenge behind the
// challenge interface. Exactly one GameResult is emitted per run.
package engine

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/score"
)

// Phase is the engine's discrete state.
type Phase string

const (
	PhaseInstructions Phase = "instructions"
	PhaseMemorizing   Phase = "memorizing"
	PhasePlaying      Phase = "playing"
	PhaseComplete     Phase = "complete"
)

var (
	ErrUnknownGame = errors.New("engine: unknown game type")
	ErrNotPlaying  = errors.New("engine: game is not in progress")
)

// Input is one user interaction delivered to the engine. Which fields are
// meaningful depends on the game type: TileIndex for the letter maze, CardID
// for pair games, OptionID for odd-one-out, X/Y and Advance for pattern
// tracing.
type Input struct {
	TileIndex *int    `json:"tile_index,omitempty"`
	CardID    string  `json:"card_id,omitempty"`
	OptionID  string  `json:"option_id,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Advance   bool    `json:"advance,omitempty"`
}

// challenge is the game-specific half of the engine: it generates rounds,
// classifies interactions and decides when the run is over.
type challenge interface {
	// reset regenerates the challenge for a fresh run.
	reset(e *Engine)
	// handle classifies one interaction, updating counters through e.
	handle(e *Engine, in Input) error
	// done reports whether the terminal condition is reached.
	done() bool
	// finalize applies any end-of-run scoring before the result is
	// normalized. Most games have nothing to do here.
	finalize(e *Engine)
	// view returns client-facing challenge state.
	view() map[string]any
}

// Engine drives one game run. It is not safe for concurrent use; the caller
// serializes events, matching the one-interaction-at-a-time UI.
type Engine struct {
	gameType  models.GameType
	clock     Clock
	rng       *rand.Rand
	challenge challenge

	phase     Phase
	counters  score.Counters
	startedAt time.Time
	stoppedAt time.Time

	// memorizeFor is the fixed preview interval for games with a
	// memorizing phase; zero skips the phase entirely.
	memorizeFor time.Duration

	wordTarget int
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithClock replaces the wall clock, typically with a ManualClock in tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand replaces the challenge RNG for deterministic generation.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithWordTarget sets how many words a letter maze run must spell.
func WithWordTarget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.wordTarget = n
		}
	}
}

// WithMemorizeDuration overrides the preview interval for memorize games.
func WithMemorizeDuration(d time.Duration) Option {
	return func(e *Engine) { e.memorizeFor = d }
}

// New builds an engine for the given game type, starting in the
// instructions phase.
func New(gameType models.GameType, opts ...Option) (*Engine, error) {
	e := &Engine{
		gameType:   gameType,
		clock:      SystemClock(),
		phase:      PhaseInstructions,
		wordTarget: defaultWordTarget,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.clock.Now().UnixNano()))
	}

	switch gameType {
	case models.GameLetterMaze:
		e.challenge = &letterMaze{target: e.wordTarget}
	case models.GameWordFlip:
		e.challenge = newPairMatch(wordFlipDeck, 20, 5)
	case models.GameSoundMatch:
		e.challenge = newPairMatch(soundMatchDeck, 25, 10)
	case models.GameMirrorMatch:
		e.challenge = newPairMatch(mirrorMatchDeck, 20, 5)
		if e.memorizeFor == 0 {
			e.memorizeFor = defaultMemorizeFor
		}
	case models.GameOddOneOut:
		e.challenge = &oddOneOut{}
	case models.GamePatternTrace:
		e.challenge = &patternTrace{}
	default:
		return nil, ErrUnknownGame
	}
	return e, nil
}

// Start moves instructions → playing (or memorizing for preview games),
// resetting every counter and regenerating the challenge. Restarting a
// completed engine begins a fresh run.
func (e *Engine) Start() {
	e.counters = score.Counters{GameType: e.gameType}
	e.startedAt = e.clock.Now()
	e.stoppedAt = time.Time{}
	e.challenge.reset(e)
	if e.memorizeFor > 0 {
		e.phase = PhaseMemorizing
	} else {
		e.phase = PhasePlaying
	}
}

// Interact feeds one user event to the running game. When the interaction
// reaches the terminal condition the engine completes and the emitted
// GameResult is returned; otherwise the result is nil.
func (e *Engine) Interact(in Input) (*models.GameResult, error) {
	e.advanceMemorizing()
	if e.phase == PhaseMemorizing {
		// Clicks during the preview are swallowed, not counted.
		return nil, nil
	}
	if e.phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	if err := e.challenge.handle(e, in); err != nil {
		return nil, err
	}
	if e.challenge.done() {
		result := e.complete()
		return &result, nil
	}
	return nil, nil
}

// Finish ends the run early, emitting a result from whatever counters have
// accumulated so far.
func (e *Engine) Finish() (models.GameResult, error) {
	e.advanceMemorizing()
	if e.phase != PhasePlaying && e.phase != PhaseMemorizing {
		return models.GameResult{}, ErrNotPlaying
	}
	return e.complete(), nil
}

func (e *Engine) complete() models.GameResult {
	e.stoppedAt = e.clock.Now()
	e.phase = PhaseComplete
	e.challenge.finalize(e)
	e.counters.TimeSpent = e.elapsedSeconds()
	return score.Normalize(e.counters)
}

// advanceMemorizing flips memorizing → playing once the preview interval
// has elapsed.
func (e *Engine) advanceMemorizing() {
	if e.phase == PhaseMemorizing && e.clock.Now().Sub(e.startedAt) >= e.memorizeFor {
		e.phase = PhasePlaying
	}
}

func (e *Engine) elapsedSeconds() int {
	if e.startedAt.IsZero() {
		return 0
	}
	end := e.stoppedAt
	if end.IsZero() {
		end = e.clock.Now()
	}
	return int(end.Sub(e.startedAt) / time.Second)
}

// GameType returns the game type this engine runs.
func (e *Engine) GameType() models.GameType { return e.gameType }

// Phase returns the current phase, advancing out of memorizing first so
// callers never observe a stale preview.
func (e *Engine) Phase() Phase {
	e.advanceMemorizing()
	return e.phase
}

// TimeElapsed returns whole seconds spent in the run so far; the clock
// stops when the run completes.
func (e *Engine) TimeElapsed() int { return e.elapsedSeconds() }

// View returns the client-facing state: phase, live counters and the
// challenge's own view.
func (e *Engine) View() map[string]any {
	v := map[string]any{
		"game_type":    e.gameType,
		"phase":        e.Phase(),
		"score":        e.counters.Score,
		"hits":         e.counters.Hits,
		"misses":       e.counters.Misses,
		"total_clicks": e.counters.TotalClicks,
		"time_elapsed": e.elapsedSeconds(),
	}
	for k, val := range e.challenge.view() {
		v[k] = val
	}
	return v
}

// Counter mutators used by challenge implementations.

func (e *Engine) click() { e.counters.TotalClicks++ }

func (e *Engine) hit(points int) {
	e.counters.Hits++
	e.counters.Score += points
}

func (e *Engine) miss(penalty int) {
	e.counters.Misses++
	e.counters.Score -= penalty
	if e.counters.Score < 0 {
		e.counters.Score = 0
	}
}

func (e *Engine) attempt() { e.counters.Attempts++ }

func (e *Engine) addScore(points int) {
	e.counters.Score += points
	if e.counters.Score < 0 {
		e.counters.Score = 0
	}
}
