package engine

import "math"

// patternTrace: drag along a shape outline. Every sampled pointer position
// is a hit when it lies within the tolerance band of the outline, otherwise
// a miss that erodes the running shape accuracy. Score is awarded per shape
// from its accuracy, not per point, with the overall trace accuracy added
// once at the end of the run.
type patternTrace struct {
	shapeIndex    int
	shapeAccuracy float64
	finished      bool
}

func (p *patternTrace) reset(*Engine) {
	p.shapeIndex = 0
	p.shapeAccuracy = 100
	p.finished = false
}

func (p *patternTrace) handle(e *Engine, in Input) error {
	if in.Advance {
		p.advance(e)
		return nil
	}

	e.click()
	if distanceToPolyline(point{in.X, in.Y}, tracePatterns[p.shapeIndex].vertices) <= traceTolerance {
		e.hit(0)
	} else {
		e.miss(0)
		p.shapeAccuracy = math.Max(0, p.shapeAccuracy-0.1)
	}
	return nil
}

// advance banks the current shape's accuracy as score and moves to the next
// outline; advancing past the last shape ends the run.
func (p *patternTrace) advance(e *Engine) {
	if p.shapeIndex < len(tracePatterns)-1 {
		e.addScore(int(math.Round(p.shapeAccuracy)))
		p.shapeAccuracy = 100
		p.shapeIndex++
		return
	}
	p.finished = true
}

func (p *patternTrace) done() bool { return p.finished }

// finalize adds the overall point accuracy to the score, mirroring the
// per-shape award for the closing shape.
func (p *patternTrace) finalize(e *Engine) {
	total := e.counters.Hits + e.counters.Misses
	if total == 0 {
		return
	}
	overall := float64(e.counters.Hits) / float64(total) * 100
	e.addScore(int(math.Round(overall)))
}

func (p *patternTrace) view() map[string]any {
	pattern := tracePatterns[p.shapeIndex]
	return map[string]any{
		"shape":          pattern.name,
		"vertices":       pattern.vertices,
		"shape_index":    p.shapeIndex,
		"shapes":         len(tracePatterns),
		"shape_accuracy": p.shapeAccuracy,
		"tolerance":      traceTolerance,
	}
}

// distanceToPolyline returns the minimum distance from pt to any segment of
// the polyline.
func distanceToPolyline(pt point, vertices []point) float64 {
	if len(vertices) == 0 {
		return math.Inf(1)
	}
	if len(vertices) == 1 {
		return math.Hypot(pt.X-vertices[0].X, pt.Y-vertices[0].Y)
	}
	min := math.Inf(1)
	for i := 0; i < len(vertices)-1; i++ {
		if d := distanceToSegment(pt, vertices[i], vertices[i+1]); d < min {
			min = d
		}
	}
	return min
}

func distanceToSegment(pt, a, b point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(pt.X-(a.X+t*dx), pt.Y-(a.Y+t*dy))
}
