package engine

import "time"

// Tunables shared across game types.
const (
	defaultWordTarget  = 5
	defaultMemorizeFor = 15 * time.Second
	mazeSize           = 6
	pairsPerGame       = 4
	traceTolerance     = 20.0
)

const mazeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Word lists bucketed by length; the maze picks a random bucket, then a
// random word, per sub-challenge.
var mazeWordLists = map[int][]string{
	3: {"CAT", "DOG", "SUN", "HAT", "CAR"},
	4: {"BLUE", "GAME", "LIFE", "MOON", "TIME"},
	5: {"APPLE", "BOARD", "CABLE", "DREAM", "EARTH"},
	6: {"ORANGE", "PLANET", "SCHOOL", "TRAVEL", "WONDER"},
}

// cardFace describes one side of a matchable pair before it is dealt into
// two cards.
type cardFace struct {
	id     string
	front  string // word side
	back   string // meaning, sound file or icon side
	backTy string
}

var wordFlipDeck = []cardFace{
	{id: "1", front: "CAT", back: "Furry Pet", backTy: "meaning"},
	{id: "2", front: "DOG", back: "Loyal Friend", backTy: "meaning"},
	{id: "3", front: "SUN", back: "Bright Star", backTy: "meaning"},
	{id: "4", front: "TREE", back: "Tall Plant", backTy: "meaning"},
	{id: "5", front: "BOOK", back: "Read Stories", backTy: "meaning"},
	{id: "6", front: "FISH", back: "Swims In Water", backTy: "meaning"},
}

var soundMatchDeck = []cardFace{
	{id: "1", front: "BIRD", back: "/sounds/bird.mp3", backTy: "sound"},
	{id: "2", front: "CAR", back: "/sounds/car.mp3", backTy: "sound"},
	{id: "3", front: "RAIN", back: "/sounds/rain.mp3", backTy: "sound"},
	{id: "4", front: "BELL", back: "/sounds/bell.mp3", backTy: "sound"},
	{id: "5", front: "PHONE", back: "/sounds/phone.mp3", backTy: "sound"},
}

var mirrorMatchDeck = []cardFace{
	{id: "1", front: "cat", back: "cat", backTy: "icon"},
	{id: "2", front: "dog", back: "dog", backTy: "icon"},
	{id: "3", front: "sun", back: "sun", backTy: "icon"},
	{id: "4", front: "trees", back: "trees", backTy: "icon"},
	{id: "5", front: "book", back: "book", backTy: "icon"},
	{id: "6", front: "fish", back: "fish", backTy: "icon"},
}

// oddRound is one odd-one-out sub-challenge: three items from a category
// plus the intruder.
type oddRound struct {
	normal []string
	odd    string
}

var oddRounds = []oddRound{
	{normal: []string{"cat", "dog", "rabbit"}, odd: "car"},
	{normal: []string{"red", "blue", "green"}, odd: "apple"},
	{normal: []string{"circle", "square", "triangle"}, odd: "happy"},
	{normal: []string{"1", "2", "3"}, odd: "tree"},
	{normal: []string{"apple", "banana", "orange"}, odd: "chair"},
	{normal: []string{"sunny", "rainy", "cloudy"}, odd: "book"},
}

// point is a 2D canvas coordinate.
type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// tracePattern is a shape outline as a polyline; closed shapes repeat the
// first vertex at the end.
type tracePattern struct {
	name     string
	vertices []point
}

var tracePatterns = []tracePattern{
	{
		name: "Square",
		vertices: []point{
			{50, 50}, {250, 50}, {250, 250}, {50, 250}, {50, 50},
		},
	},
	{
		name: "Zig-zag",
		vertices: []point{
			{50, 200}, {150, 100}, {250, 200}, {350, 100}, {450, 200},
		},
	},
	{
		name: "Spiral",
		vertices: []point{
			{250, 250}, {330, 190}, {380, 250}, {350, 330}, {250, 380},
			{160, 340}, {120, 250}, {150, 170}, {250, 130}, {360, 150},
			{430, 220},
		},
	},
}
