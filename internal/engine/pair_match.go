package engine

import "fmt"

// flipCard is one card of a pair-matching board.
type flipCard struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Type    string `json:"type"`
	PairID  string `json:"pair_id"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// pairMatch is the shared mechanic behind word-flip, sound-match and
// mirror-match: flip two cards, score a hit when they share a pair id. An
// attempt is one resolved two-card flip; accuracy for these games is rated
// against attempts, not raw clicks.
type pairMatch struct {
	deck        []cardFace
	hitPoints   int
	missPenalty int

	cards   []flipCard
	flipped []int
	matches int
}

func newPairMatch(deck []cardFace, hitPoints, missPenalty int) *pairMatch {
	return &pairMatch{deck: deck, hitPoints: hitPoints, missPenalty: missPenalty}
}

func (p *pairMatch) reset(e *Engine) {
	p.matches = 0
	p.flipped = p.flipped[:0]

	p.cards = make([]flipCard, 0, pairsPerGame*2)
	for _, face := range p.deck[:pairsPerGame] {
		p.cards = append(p.cards,
			flipCard{ID: "word-" + face.id, Content: face.front, Type: "word", PairID: face.id},
			flipCard{ID: face.backTy + "-" + face.id, Content: face.back, Type: face.backTy, PairID: face.id},
		)
	}
	e.rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}

func (p *pairMatch) handle(e *Engine, in Input) error {
	if in.CardID == "" {
		return fmt.Errorf("pair match: card_id required")
	}
	idx := -1
	for i := range p.cards {
		if p.cards[i].ID == in.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("pair match: unknown card %q", in.CardID)
	}

	card := &p.cards[idx]
	// Clicks on face-up cards are ignored, not counted.
	if card.Flipped || card.Matched {
		return nil
	}

	e.click()
	card.Flipped = true
	p.flipped = append(p.flipped, idx)
	if len(p.flipped) < 2 {
		return nil
	}

	e.attempt()
	first, second := &p.cards[p.flipped[0]], &p.cards[p.flipped[1]]
	if first.PairID == second.PairID {
		e.hit(p.hitPoints)
		first.Matched, second.Matched = true, true
		p.matches++
	} else {
		e.miss(p.missPenalty)
		first.Flipped, second.Flipped = false, false
	}
	p.flipped = p.flipped[:0]
	return nil
}

func (p *pairMatch) done() bool { return p.matches >= pairsPerGame }

func (p *pairMatch) finalize(*Engine) {}

func (p *pairMatch) view() map[string]any {
	flippedIDs := make([]string, 0, len(p.flipped))
	for _, i := range p.flipped {
		flippedIDs = append(flippedIDs, p.cards[i].ID)
	}
	return map[string]any{
		"cards":   p.cards,
		"flipped": flippedIDs,
		"matches": p.matches,
		"pairs":   pairsPerGame,
	}
}
