package solver

import (
	"crosswarped.com/wizium/pkg/letterset"
)

// dynamicItem is one horizontal word placed by the dynamic solver. Unlike a
// staticItem, its length is not known up front: the solver chooses it from
// the available row space and the remaining black-cell budget, and may
// revise it on backtrack.
type dynamicItem struct {
	x, y int

	length     int
	maxLength  int
	triedLens  []int // lengths already rejected at this position, this visit
	blackAdded bool  // whether this item is a lone black cell placed at (x,y) instead of a word

	word      []byte
	firstWord []byte

	candidates []letterset.LetterSet
}

func newDynamicItem(x, y, maxLength int) *dynamicItem {
	it := &dynamicItem{x: x, y: y, maxLength: maxLength}
	it.candidates = make([]letterset.LetterSet, maxLength)
	for i := range it.candidates {
		it.candidates[i] = letterset.Full(letterset.MaxLetters)
	}
	return it
}

func (it *dynamicItem) reset() {
	it.word = nil
	it.firstWord = nil
	it.triedLens = nil
	it.blackAdded = false
	it.length = 0
}

func (it *dynamicItem) cellAt(i int) (int, int) {
	return it.x + i, it.y
}

// dynamicItemState is the fill-state machine for one dynamicItem.
type dynamicItemState int

const (
	stateChooseLength dynamicItemState = iota
	stateChangeWord
	stateChangeLength
	stateChangeBlock
	stateFailed
)

// blackTarget estimates, from the remaining black-cell budget and the
// remaining ungenerated cells, the word length the density curve currently
// favors. It is a three-point quadratic fit between "no blacks needed"
// (budget empty: fill to the edge) and "blacks every other cell" (budget
// saturated), matching the original's non-linear budget-to-density curve
// rather than a straight-line ratio.
func blackTarget(remainingBudget, remainingCells, maxLen int) int {
	if remainingCells <= 0 || remainingBudget <= 0 {
		return maxLen
	}
	frac := float64(remainingBudget) / float64(remainingCells)
	if frac > 0.5 {
		frac = 0.5
	}
	// quadratic through (frac=0 -> maxLen), (frac=0.5 -> (maxLen+7)/4),
	// (frac=1 -> 2): target = maxLen + frac*(frac*(maxLen-3) - (2*maxLen-5))
	target := float64(maxLen) + frac*(frac*(float64(maxLen)-3) - (2*float64(maxLen) - 5))
	t := int(target + 0.5)
	if t < 1 {
		t = 1
	}
	if t > maxLen {
		t = maxLen
	}
	return t
}
