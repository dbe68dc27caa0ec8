package solver

import (
	"math/rand/v2"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
)

// DynamicSolver fills a blank grid from scratch, introducing black cells as
// it goes under a configurable budget, instead of assuming a fixed layout.
type DynamicSolver struct {
	grid *grid.Grid
	dict *dictionary.Dictionary
	rng  *rand.Rand

	cfg Config

	items []*dynamicItem
	idx   int

	blackBudget int
	blackUsed   int

	counter uint64
	running bool
}

// NewDynamicSolver creates an unstarted dynamic solver.
func NewDynamicSolver() *DynamicSolver {
	return &DynamicSolver{}
}

// Start configures the grid's density mode from cfg.BlackMode and begins a
// fresh row-major fill.
func (s *DynamicSolver) Start(g *grid.Grid, dict *dictionary.Dictionary, cfg Config) {
	s.grid = g
	s.dict = dict
	s.cfg = cfg
	s.rng = newRNG(cfg.Seed)
	s.counter = 0
	s.running = true

	g.SetDensityMode(cfg.BlackMode.densityMode())
	g.Erase()

	s.items = nil
	s.idx = 0
	s.blackBudget = int(cfg.MaxBlackBoxes)
	s.blackUsed = 0
}

// Status reports the solver's current progress.
func (s *DynamicSolver) Status() Status {
	fr := 0
	if s.grid != nil {
		fr = s.grid.FillRate()
	}
	return Status{Counter: s.counter, FillRate: fr}
}

// Stop ends the run without altering placed content.
func (s *DynamicSolver) Stop() {
	s.running = false
}

// findFreeBox returns the first row-major Letter cell with no value yet
// assigned, which is not already covered by a pending item.
func (s *DynamicSolver) findFreeBox() (x, y int, ok bool) {
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			c := s.grid.At(x, y)
			if c.Kind == grid.Letter && c.Value == 0 {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// SolveStep advances the fill by one item: either placing a new word at the
// current frontier, backtracking, or declaring the grid complete.
func (s *DynamicSolver) SolveStep() Status {
	if !s.running {
		return s.Status()
	}

	if s.idx >= len(s.items) {
		x, y, ok := s.findFreeBox()
		if !ok {
			return s.Status()
		}
		maxSpace := s.grid.GetSpace(x, y).Right + 1
		s.items = append(s.items, newDynamicItem(x, y, maxSpace))
	}

	item := s.items[s.idx]
	if s.changeItem(item) {
		s.idx++
	} else {
		s.backtrack()
	}
	return s.Status()
}

// changeItem runs item's fill state machine to completion: choose a
// length, search for an admissible word of that length, fall back to
// another untried length or a single black cell, and fail only once every option
// at this position is exhausted.
func (s *DynamicSolver) changeItem(item *dynamicItem) bool {
	state := stateChooseLength
	if item.length > 0 {
		state = stateChangeWord
	}

	for {
		switch state {
		case stateChooseLength:
			length, ok := s.nextLength(item)
			if !ok {
				state = stateChangeBlock
				continue
			}
			item.length = length
			item.word = nil
			item.firstWord = nil
			state = stateChangeWord

		case stateChangeWord:
			if s.tryWord(item) {
				return true
			}
			state = stateChangeLength

		case stateChangeLength:
			item.triedLens = append(item.triedLens, item.length)
			state = stateChooseLength

		case stateChangeBlock:
			if s.tryBlock(item) {
				return true
			}
			state = stateFailed

		case stateFailed:
			return false
		}
	}
}

// nextLength returns the next untried candidate length for item, ordered
// outward from the density curve's current target.
func (s *DynamicSolver) nextLength(item *dynamicItem) (int, bool) {
	remainingCells := (s.grid.Height()-item.y)*s.grid.Width() - item.x
	target := blackTarget(s.blackBudget-s.blackUsed, remainingCells, item.maxLength)

	tried := func(l int) bool {
		for _, t := range item.triedLens {
			if t == l {
				return true
			}
		}
		return false
	}

	for span := 0; span <= item.maxLength; span++ {
		for _, cand := range []int{target - span, target + span} {
			if cand < 1 || cand > item.maxLength || tried(cand) {
				continue
			}
			if !s.checkGridBlock(item, cand) {
				continue
			}
			return cand, true
		}
	}
	return 0, false
}

// checkGridBlock reports whether terminating item's word at the given
// length (with a trailing black cell, unless it reaches the grid edge or
// an existing boundary) is compatible with the density mode and the
// remaining black-cell budget. A length reaching the far edge needs no
// new black cell and is always block-compatible.
func (s *DynamicSolver) checkGridBlock(item *dynamicItem, length int) bool {
	endX := item.x + length
	if endX >= s.grid.Width() {
		return true
	}
	if c := s.grid.At(endX, item.y); c != nil && c.Kind != grid.Letter {
		return true // already bounded by an existing black/void cell
	}
	if s.blackUsed >= s.blackBudget && s.blackBudget > 0 {
		return false
	}
	return s.grid.CheckBlocDensity(endX, item.y)
}

// tryWord searches the dictionary for the next admissible word of item's
// current length, honoring the letters already fixed by crossing words,
// and checks that every column it touches still admits a completion.
func (s *DynamicSolver) tryWord(item *dynamicItem) bool {
	if item.word != nil {
		s.grid.RemoveWord(item.x, item.y, grid.Horizontal)
	}

	mask, ok := s.buildPartialMask(item)
	if !ok {
		return false
	}

	st := &wordState{word: item.word, firstWord: item.firstWord}
	if !changeItemWord(s.dict, s.rng, mask, item.candidates[:item.length], st, -1, false, &s.counter) {
		return false
	}
	item.word = st.word
	item.firstWord = st.firstWord

	s.grid.AddWord(item.x, item.y, grid.Horizontal, item.word)
	if !s.checkColumns(item) {
		s.grid.RemoveWord(item.x, item.y, grid.Horizontal)
		return false
	}
	s.resetCandidatesBelow(item)
	return true
}

// resetCandidatesBelow restores the candidate sets of every cell below
// item's row in each column it just fixed a letter in, since those cells
// haven't been visited yet and may have stale candidates from an earlier,
// since-abandoned attempt at this position.
func (s *DynamicSolver) resetCandidatesBelow(item *dynamicItem) {
	for i := 0; i < item.length; i++ {
		x, _ := item.cellAt(i)
		for y := item.y + 1; ; y++ {
			c := s.grid.At(x, y)
			if c == nil || c.Kind != grid.Letter {
				break
			}
			s.grid.ResetCandidates(x, y)
		}
	}
}

// buildPartialMask reads item's row span as a mask, failing if any cell in
// the span is already Black or Void (the chosen length doesn't fit).
func (s *DynamicSolver) buildPartialMask(item *dynamicItem) ([]byte, bool) {
	mask := make([]byte, item.length)
	for i := 0; i < item.length; i++ {
		x, y := item.cellAt(i)
		c := s.grid.At(x, y)
		if c == nil || c.Kind != grid.Letter {
			return nil, false
		}
		if c.Value != 0 {
			mask[i] = c.Value
		} else {
			mask[i] = dictionary.Wildcard
		}
	}
	return mask, true
}

// checkColumns verifies that every column item's word just fixed a letter
// in still admits at least one dictionary completion from the top.
func (s *DynamicSolver) checkColumns(item *dynamicItem) bool {
	for i := 0; i < item.length; i++ {
		x, y := item.cellAt(i)
		mask, _ := s.grid.BuildMask(x, y, grid.Vertical, true)
		if len(mask) <= 1 {
			continue
		}
		s.counter++
		if _, ok := s.dict.FindEntry(mask, nil, nil); !ok {
			return false
		}
	}
	return true
}

// tryBlock places a single black cell at item's position instead of a
// word, consuming one unit of budget, when every word length has been
// exhausted.
func (s *DynamicSolver) tryBlock(item *dynamicItem) bool {
	if s.blackBudget > 0 && s.blackUsed >= s.blackBudget {
		return false
	}
	if !s.grid.CheckBlocDensity(item.x, item.y) {
		return false
	}
	s.grid.AddBloc(item.x, item.y)
	item.blackAdded = true
	s.blackUsed++
	return true
}

// backtrack undoes the current item's placement (word or lone black cell)
// and steps back to the previous one. Falling off the front is total
// failure: the grid and budget are reset and the fill restarts.
func (s *DynamicSolver) backtrack() {
	if s.idx < len(s.items) {
		item := s.items[s.idx]
		if item.blackAdded {
			s.grid.RemoveBloc(item.x, item.y)
			s.blackUsed--
		} else if item.word != nil {
			s.grid.RemoveWord(item.x, item.y, grid.Horizontal)
		}
		item.reset()
	}

	s.items = s.items[:s.idx]
	s.idx--
	if s.idx < 0 {
		s.grid.Erase()
		s.items = nil
		s.idx = 0
		s.blackUsed = 0
	}
}
