package engine

import "fmt"

type oddOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	IsOdd bool   `json:"-"`
}

// oddOneOut: each round shows three members of a category plus one
// intruder. +20 for spotting the intruder, -5 for a wrong pick, and a wrong
// pick keeps the same round open for a retry. The run ends when every round
// has been solved.
type oddOneOut struct {
	round   int
	options []oddOption
}

func (o *oddOneOut) reset(e *Engine) {
	o.round = 0
	o.deal(e)
}

func (o *oddOneOut) deal(e *Engine) {
	data := oddRounds[o.round]
	o.options = make([]oddOption, 0, len(data.normal)+1)
	for i, text := range data.normal {
		o.options = append(o.options, oddOption{ID: fmt.Sprintf("n-%d", i), Text: text})
	}
	o.options = append(o.options, oddOption{ID: "odd", Text: data.odd, IsOdd: true})
	e.rng.Shuffle(len(o.options), func(i, j int) {
		o.options[i], o.options[j] = o.options[j], o.options[i]
	})
}

func (o *oddOneOut) handle(e *Engine, in Input) error {
	if in.OptionID == "" {
		return fmt.Errorf("odd one out: option_id required")
	}
	var picked *oddOption
	for i := range o.options {
		if o.options[i].ID == in.OptionID {
			picked = &o.options[i]
			break
		}
	}
	if picked == nil {
		return fmt.Errorf("odd one out: unknown option %q", in.OptionID)
	}

	e.click()
	if !picked.IsOdd {
		e.miss(5)
		return nil
	}

	e.hit(20)
	o.round++
	if o.round < len(oddRounds) {
		o.deal(e)
	}
	return nil
}

func (o *oddOneOut) done() bool { return o.round >= len(oddRounds) }

func (o *oddOneOut) finalize(*Engine) {}

func (o *oddOneOut) view() map[string]any {
	return map[string]any{
		"round":   o.round,
		"rounds":  len(oddRounds),
		"options": o.options,
	}
}
