package engine

import "fmt"

// mazeTile is one cell of the letter grid.
type mazeTile struct {
	Letter   string `json:"letter"`
	IsTarget bool   `json:"-"`
	Visited  bool   `json:"visited"`
}

// letterMaze: spell a sequence of hidden words by clicking their letters in
// order on a 6x6 grid. +10 per correct letter, -2 per wrong click, run ends
// after the configured number of words.
type letterMaze struct {
	target int

	grid       []mazeTile
	sequence   []string
	seqIndex   int
	wordsFound int
}

func (m *letterMaze) reset(e *Engine) {
	m.wordsFound = 0
	m.generate(e)
}

// generate builds a fresh grid for the next word: random filler letters,
// with the chosen word's letters placed at random distinct cells.
func (m *letterMaze) generate(e *Engine) {
	lengths := []int{3, 4, 5, 6}
	words := mazeWordLists[lengths[e.rng.Intn(len(lengths))]]
	word := words[e.rng.Intn(len(words))]

	m.sequence = make([]string, 0, len(word))
	for _, r := range word {
		m.sequence = append(m.sequence, string(r))
	}
	m.seqIndex = 0

	m.grid = make([]mazeTile, mazeSize*mazeSize)
	for i := range m.grid {
		m.grid[i] = mazeTile{Letter: string(mazeAlphabet[e.rng.Intn(len(mazeAlphabet))])}
	}
	cells := e.rng.Perm(len(m.grid))[:len(m.sequence)]
	for i, cell := range cells {
		m.grid[cell] = mazeTile{Letter: m.sequence[i], IsTarget: true}
	}
}

func (m *letterMaze) handle(e *Engine, in Input) error {
	if in.TileIndex == nil {
		return fmt.Errorf("letter maze: tile_index required")
	}
	idx := *in.TileIndex
	if idx < 0 || idx >= len(m.grid) {
		return fmt.Errorf("letter maze: tile_index %d out of range", idx)
	}

	e.click()
	tile := &m.grid[idx]
	if tile.Letter != m.sequence[m.seqIndex] || tile.Visited {
		e.miss(2)
		return nil
	}

	e.hit(10)
	tile.Visited = true
	m.seqIndex++
	if m.seqIndex < len(m.sequence) {
		return nil
	}

	// Word spelled; either the run is over or the next maze is dealt.
	m.wordsFound++
	if m.wordsFound < m.target {
		m.generate(e)
	}
	return nil
}

func (m *letterMaze) done() bool { return m.wordsFound >= m.target }

func (m *letterMaze) finalize(*Engine) {}

func (m *letterMaze) view() map[string]any {
	target := ""
	if m.seqIndex < len(m.sequence) {
		target = m.sequence[m.seqIndex]
	}
	return map[string]any{
		"grid":           m.grid,
		"sequence":       m.sequence,
		"sequence_index": m.seqIndex,
		"current_target": target,
		"words_found":    m.wordsFound,
		"words_target":   m.target,
	}
}
