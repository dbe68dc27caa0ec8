package solver

import (
	"math/rand/v2"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
)

// StaticSolver fills a grid whose black-cell layout is already fixed
// (typically via Grid.LockContent before Start) by backtracking over word
// slots in a connectivity-ordered sequence.
type StaticSolver struct {
	grid *grid.Grid
	dict *dictionary.Dictionary
	rng  *rand.Rand

	items      []*staticItem
	idx        int
	failCounts []int

	heuristic    bool
	backStep     int
	backThresh   int

	counter uint64
	running bool
}

// NewStaticSolver creates an unstarted static solver.
func NewStaticSolver() *StaticSolver {
	return &StaticSolver{backThresh: 8, backStep: 1}
}

// SetHeuristic enables or disables the multi-step backtrack heuristic: once
// a slot has failed threshold times in a row, BackTrack jumps back several
// slots at once instead of one, to escape unproductive local regions
// faster.
func (s *StaticSolver) SetHeuristic(enabled bool, threshold int) {
	s.heuristic = enabled
	if threshold > 0 {
		s.backThresh = threshold
	}
}

// Start locks g's pre-filled content, extracts every word slot, orders them
// by decreasing connectivity, and positions the solver at the first slot.
func (s *StaticSolver) Start(g *grid.Grid, dict *dictionary.Dictionary, seed uint32) {
	s.grid = g
	s.dict = dict
	s.rng = newRNG(seed)
	s.counter = 0
	s.running = true

	g.LockContent()

	s.items = orderSlots(extractSlots(g))
	s.failCounts = make([]int, len(s.items))
	s.idx = 0
}

// Status reports the solver's current progress.
func (s *StaticSolver) Status() Status {
	fr := 0
	if s.grid != nil {
		fr = s.grid.FillRate()
	}
	return Status{Counter: s.counter, FillRate: fr}
}

// Stop releases the grid lock taken by Start, leaving placed content intact.
func (s *StaticSolver) Stop() {
	if s.grid != nil {
		s.grid.Unlock()
	}
	s.running = false
}

// SolveStep advances the search by one slot: either committing the next
// admissible word for the current slot, or backtracking. The caller should
// call it repeatedly until FillRate reaches 0 (total failure) or 100
// (solved).
func (s *StaticSolver) SolveStep() Status {
	if !s.running || len(s.items) == 0 {
		return s.Status()
	}
	if s.idx >= len(s.items) {
		return s.Status()
	}

	item := s.items[s.idx]
	if s.changeItem(item) {
		s.failCounts[s.idx] = 0
		s.idx++
	} else {
		s.backTrack()
	}
	return s.Status()
}

// changeItem tries, in dictionary order resuming from item.word, the next
// word admissible at item's position that also leaves every slot it
// crosses with at least one admissible word. It returns false once the
// dictionary is exhausted without such a word.
func (s *StaticSolver) changeItem(item *staticItem) bool {
	if item.visibility {
		s.grid.RemoveWord(item.x, item.y, item.dir)
		item.visibility = false
	}

	prevWord := append([]byte(nil), item.word...)
	st := &wordState{word: item.word, firstWord: item.firstWord}
	for {
		mask, _ := s.grid.BuildMask(item.x, item.y, item.dir, false)
		if !changeItemWord(s.dict, s.rng, mask, item.candidates, st, -1, false, &s.counter) {
			item.word, item.firstWord = nil, nil
			return false
		}

		item.word = st.word
		s.grid.AddWord(item.x, item.y, item.dir, item.word)
		item.visibility = true

		if s.checkItemCross(item) {
			item.firstWord = st.firstWord
			s.resetChangedCrossings(item, prevWord)
			return true
		}

		s.grid.RemoveWord(item.x, item.y, item.dir)
		item.visibility = false
	}
}

// resetChangedCrossings restores the candidate sets of every cell crossing
// item whose letter differs from prevWord, since a stale candidate set
// computed against the old letter could otherwise wrongly rule out words
// that are admissible now.
func (s *StaticSolver) resetChangedCrossings(item *staticItem, prevWord []byte) {
	for i := 0; i < item.length; i++ {
		if i < len(prevWord) && i < len(item.word) && prevWord[i] == item.word[i] {
			continue
		}
		cx, cy := item.at(s.grid, i)
		resetCandidatesAlong(s.grid, cx, cy, otherDir(item.dir))
	}
}

// checkItemCross reports whether every slot crossing item still admits at
// least one dictionary word given item's current placement.
func (s *StaticSolver) checkItemCross(item *staticItem) bool {
	for i := 0; i < item.length; i++ {
		cx, cy := item.at(s.grid, i)
		crossMask, _ := buildCrossMask(s.grid, cx, cy, otherDir(item.dir))
		if len(crossMask) <= 1 {
			continue
		}
		s.counter++
		if _, ok := s.dict.FindEntry(crossMask, nil, nil); !ok {
			return false
		}
	}
	return true
}

// backTrack undoes the current slot's placement and steps back to an
// earlier slot, jumping backThresh slots at once if the heuristic is enabled
// and the current slot has failed too many times in a row. Falling off the
// front of the sequence is total failure: the grid is erased and the
// search restarts from the first slot.
func (s *StaticSolver) backTrack() {
	s.failCounts[s.idx]++

	step := 1
	jump := s.heuristic && s.failCounts[s.idx] >= s.backThresh
	if jump {
		step = s.backThresh
		if step > s.idx+1 {
			step = s.idx + 1
		}
	}

	for i := 0; i < step && s.idx >= 0; i++ {
		if s.idx < len(s.items) {
			item := s.items[s.idx]
			if item.visibility {
				s.grid.RemoveWord(item.x, item.y, item.dir)
			}
			item.reset()
			if i > 0 || jump {
				s.failCounts[s.idx] = 0
			}
		}
		s.idx--
	}

	if s.idx < 0 {
		s.grid.Erase()
		for _, it := range s.items {
			it.reset()
		}
		for i := range s.failCounts {
			s.failCounts[i] = 0
		}
		s.idx = 0
	}
}

// slot is a maximal run of Letter cells along one direction.
type slot struct {
	x, y, length int
	dir          grid.Direction
}

// extractSlots scans every row and every column for maximal runs of Letter
// cells at least two cells long; Black and Void cells (and the grid edge)
// are boundaries.
func extractSlots(g *grid.Grid) []slot {
	var slots []slot

	scan := func(dir grid.Direction) {
		outer, inner := g.Height(), g.Width()
		if dir == grid.Vertical {
			outer, inner = g.Width(), g.Height()
		}
		for o := 0; o < outer; o++ {
			runStart := -1
			for i := 0; i <= inner; i++ {
				isLetter := false
				if i < inner {
					var x, y int
					if dir == grid.Horizontal {
						x, y = i, o
					} else {
						x, y = o, i
					}
					cell := g.At(x, y)
					isLetter = cell != nil && cell.Kind == grid.Letter
				}
				if isLetter {
					if runStart < 0 {
						runStart = i
					}
				} else {
					if runStart >= 0 {
						length := i - runStart
						if length >= 2 {
							var sx, sy int
							if dir == grid.Horizontal {
								sx, sy = runStart, o
							} else {
								sx, sy = o, runStart
							}
							slots = append(slots, slot{x: sx, y: sy, length: length, dir: dir})
						}
						runStart = -1
					}
				}
			}
		}
	}

	scan(grid.Horizontal)
	scan(grid.Vertical)
	return slots
}

// overlap reports whether slots a and b cross at exactly one cell.
func overlap(a, b slot) bool {
	if a.dir == b.dir {
		return false
	}
	h, v := a, b
	if a.dir == grid.Vertical {
		h, v = b, a
	}
	if v.x < h.x || v.x >= h.x+h.length {
		return false
	}
	if h.y < v.y || h.y >= v.y+v.length {
		return false
	}
	return true
}

// orderSlots greedily sequences slots so that each one (after the first,
// longest, slot) maximizes the number of already-placed slots it crosses,
// breaking ties by longer length then by earlier extraction order.
func orderSlots(slots []slot) []*staticItem {
	n := len(slots)
	if n == 0 {
		return nil
	}

	placed := make([]bool, n)
	order := make([]int, 0, n)

	start := 0
	for i := 1; i < n; i++ {
		if slots[i].length > slots[start].length {
			start = i
		}
	}
	order = append(order, start)
	placed[start] = true

	for len(order) < n {
		best := -1
		bestStrength := -1
		for i := 0; i < n; i++ {
			if placed[i] {
				continue
			}
			strength := 0
			for _, j := range order {
				if overlap(slots[i], slots[j]) {
					strength++
				}
			}
			if strength > bestStrength ||
				(strength == bestStrength && best >= 0 && slots[i].length > slots[best].length) {
				best = i
				bestStrength = strength
			}
		}
		order = append(order, best)
		placed[best] = true
	}

	items := make([]*staticItem, n)
	for rank, i := range order {
		s := slots[i]
		it := newStaticItem(s.x, s.y, s.length, s.dir)
		it.processOrder = rank
		it.connectionStrength = bestOverlapCount(slots, order[:rank], i)
		items[rank] = it
	}
	return items
}

func bestOverlapCount(slots []slot, order []int, target int) int {
	count := 0
	for _, j := range order {
		if j != target && overlap(slots[target], slots[j]) {
			count++
		}
	}
	return count
}
