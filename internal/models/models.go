package models

import "time"

type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	Email      string     `json:"email,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

// GameResult holds the terminal counters emitted by a finished mini-game.
// It is transient: the aggregator immediately folds it into a GameSession.
type GameResult struct {
	GameType    GameType `json:"game_type"`
	Score       int      `json:"score"`
	TotalClicks int      `json:"total_clicks"`
	Hits        int      `json:"hits"`
	Misses      int      `json:"misses"`
	Accuracy    int      `json:"accuracy"`
	MissRate    int      `json:"miss_rate"`
	TimeSpent   int      `json:"time_spent"`
}

type GameSession struct {
	ID            string         `json:"id"`
	PlayerID      string         `json:"player_id"`
	TestSessionID string         `json:"test_session_id"`
	GameType      GameType       `json:"game_type"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	Score         int            `json:"score"`
	TotalClicks   int            `json:"total_clicks"`
	Hits          int            `json:"hits"`
	Misses        int            `json:"misses"`
	Accuracy      int            `json:"accuracy"`
	MissRate      int            `json:"miss_rate"`
	TimeSpent     int            `json:"time_spent"`
	GameData      map[string]any `json:"game_data"`
}

type TestSession struct {
	ID               string        `json:"id"`
	PlayerID         string        `json:"player_id"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          *time.Time    `json:"end_time,omitempty"`
	CompletedGames   []GameSession `json:"completed_games"`
	CurrentGameIndex int           `json:"current_game_index"`
	IsCompleted      bool          `json:"is_completed"`
}

type GameSessionFilter struct {
	PlayerID string
	GameType GameType
	Limit    int
	Offset   int
}

// Snapshot is the persisted slice of aggregator state. Current-player,
// current-session and in-flight game pointers are deliberately absent.
type Snapshot struct {
	Players      []Player      `json:"players"`
	GameSessions []GameSession `json:"game_sessions"`
	TestSessions []TestSession `json:"test_sessions"`
}
