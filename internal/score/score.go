// Package score implements the result normalizer: pure arithmetic over
// terminal game counters, shared by the engine, the aggregator and the
// reporting views.
package score

import (
	"math"

	"github.com/mindflow/mindflow/internal/models"
)

// Counters are the raw terminal values a game engine accumulates. Attempts
// carries the resolved-pair count for games that score accuracy per attempt
// rather than per click; it is zero for click-scored games.
type Counters struct {
	GameType    models.GameType
	Score       int
	TotalClicks int
	Hits        int
	Misses      int
	Attempts    int
	TimeSpent   int
}

// Accuracy returns round(100*hits/total), or 0 when total is zero.
func Accuracy(hits, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(total) * 100))
}

// MissRate returns round(100*misses/total), or 0 when total is zero.
func MissRate(misses, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(misses) / float64(total) * 100))
}

// Normalize converts terminal counters into a canonical GameResult without
// mutating its input. Pair-matching games rate accuracy against attempts;
// everything else against total clicks.
func Normalize(c Counters) models.GameResult {
	basis := c.TotalClicks
	if usesAttempts(c.GameType) {
		basis = c.Attempts
	}
	return models.GameResult{
		GameType:    c.GameType,
		Score:       c.Score,
		TotalClicks: c.TotalClicks,
		Hits:        c.Hits,
		Misses:      c.Misses,
		Accuracy:    Accuracy(c.Hits, basis),
		MissRate:    MissRate(c.Misses, basis),
		TimeSpent:   c.TimeSpent,
	}
}

// usesAttempts reports whether the game type rates accuracy per resolved
// pair attempt instead of per raw click. The formulas differ across game
// types on purpose; each game's own basis is authoritative.
func usesAttempts(g models.GameType) bool {
	switch g {
	case models.GameWordFlip, models.GameSoundMatch, models.GameMirrorMatch:
		return true
	}
	return false
}
