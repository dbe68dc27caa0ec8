package solver

import (
	"crosswarped.com/wizium/pkg/grid"
	"crosswarped.com/wizium/pkg/letterset"
)

// staticItem is one word slot on a fixed grid layout: a maximal run of
// Letter cells in a single direction that the static solver fills.
type staticItem struct {
	x, y, length int
	dir          grid.Direction

	word      []byte
	firstWord []byte

	candidates []letterset.LetterSet

	// connectionStrength counts how many already-ordered items this item
	// crosses; used only to choose fill order.
	connectionStrength int
	processOrder       int

	// visibility marks whether changeItem has written this item's
	// word into the grid.
	visibility bool
}

func newStaticItem(x, y, length int, dir grid.Direction) *staticItem {
	it := &staticItem{x: x, y: y, length: length, dir: dir}
	it.candidates = make([]letterset.LetterSet, length)
	for i := range it.candidates {
		it.candidates[i] = letterset.Full(letterset.MaxLetters)
	}
	return it
}

func (it *staticItem) reset() {
	it.word = nil
	it.firstWord = nil
	it.visibility = false
}

func (it *staticItem) at(g *grid.Grid, i int) (int, int) {
	if it.dir == grid.Horizontal {
		return it.x + i, it.y
	}
	return it.x, it.y + i
}
