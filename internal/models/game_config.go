package models

// GameType identifies one of the six mini-games.
type GameType string

const (
	GameLetterMaze   GameType = "letter-maze"
	GameWordFlip     GameType = "word-flip"
	GameSoundMatch   GameType = "sound-match"
	GamePatternTrace GameType = "pattern-trace"
	GameMirrorMatch  GameType = "mirror-match"
	GameOddOneOut    GameType = "odd-one-out"
)

func (g GameType) String() string { return string(g) }

type GameConfig struct {
	ID            GameType `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Icon          string   `json:"icon"`
	EstimatedTime int      `json:"estimated_time"`
	Difficulty    string   `json:"difficulty"`
}

// GameConfigs is the static catalog of available games, in test-run order.
var GameConfigs = []GameConfig{
	{
		ID:            GameLetterMaze,
		Name:          "Letter Maze",
		Description:   "Navigate through a maze of letters to find the correct path",
		Icon:          "zap",
		EstimatedTime: 5,
		Difficulty:    "medium",
	},
	{
		ID:            GameWordFlip,
		Name:          "Word Flip",
		Description:   "Flip cards to match words with their meanings",
		Icon:          "rotate-ccw",
		EstimatedTime: 4,
		Difficulty:    "easy",
	},
	{
		ID:            GameSoundMatch,
		Name:          "Sound Match",
		Description:   "Match sounds with their corresponding letters or words",
		Icon:          "volume-2",
		EstimatedTime: 6,
		Difficulty:    "hard",
	},
	{
		ID:            GamePatternTrace,
		Name:          "Pattern Trace",
		Description:   "Trace patterns and shapes to improve visual processing",
		Icon:          "pen-tool",
		EstimatedTime: 5,
		Difficulty:    "medium",
	},
	{
		ID:            GameMirrorMatch,
		Name:          "Mirror Match",
		Description:   "Match pairs of mirrored letters or words",
		Icon:          "refresh-ccw",
		EstimatedTime: 4,
		Difficulty:    "easy",
	},
	{
		ID:            GameOddOneOut,
		Name:          "Odd One Out",
		Description:   "Identify the item that does not belong in a group",
		Icon:          "target",
		EstimatedTime: 5,
		Difficulty:    "medium",
	},
}

// GameConfigByID returns the catalog entry for id, or nil when unknown.
func GameConfigByID(id GameType) *GameConfig {
	for i := range GameConfigs {
		if GameConfigs[i].ID == id {
			return &GameConfigs[i]
		}
	}
	return nil
}
