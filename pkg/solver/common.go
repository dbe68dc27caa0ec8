// Package solver implements the static and dynamic backtracking solvers
// that fill a Grid from a Dictionary.
package solver

import (
	"math/rand/v2"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
	"crosswarped.com/wizium/pkg/letterset"
)

// Status reports solver progress: Counter is the total number of dictionary
// lookups attempted so far; FillRate is the grid's current fill percentage.
// FillRate == 0 signals total failure (the grid has been erased);
// FillRate == 100 signals success.
type Status struct {
	Counter  uint64
	FillRate int
}

// BlackMode selects the black-cell placement rule for the dynamic solver.
type BlackMode int

const (
	BlackAny BlackMode = iota
	BlackSingle
	BlackTwo
	BlackDiagonal
)

func (m BlackMode) densityMode() grid.DensityMode {
	switch m {
	case BlackSingle:
		return grid.DensitySingle
	case BlackTwo:
		return grid.DensityTwo
	case BlackDiagonal:
		return grid.DensityDiag
	default:
		return grid.DensityAny
	}
}

// Config configures a solver run. MaxBlackBoxes == 0 selects the static
// solver (the grid's black layout is assumed fixed); any other value
// selects the dynamic solver with that budget. HeuristicLevel >= 0 enables
// the static solver's backtrack heuristic with that step-back strength; < 0
// disables it. The dynamic solver has no backtrack heuristic and ignores
// HeuristicLevel.
type Config struct {
	Seed           uint32
	MaxBlackBoxes  int32
	HeuristicLevel int32
	BlackMode      BlackMode
}

func newRNG(seed uint32) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// wordState carries the shared masked-dictionary-search fields used by both
// solvers' ChangeItemWord routines.
type wordState struct {
	word      []byte
	prevWord  []byte
	firstWord []byte
}

// changeItemWord searches dict for a word matching mask/candidates,
// resuming from st.word (or drawing a random one the first time), honoring
// wrap-once cycle detection against st.firstWord. If colToChange >= 0, the
// positions after it are pre-filled with the maximum letter code so the
// next dictionary hit is forced to differ there; when strict is set, the
// caller additionally requires that the letter at colToChange actually
// changed.
func changeItemWord(dict *dictionary.Dictionary, rng *rand.Rand, mask []byte, candidates []letterset.LetterSet,
	st *wordState, colToChange int, strict bool, counter *uint64) bool {

	alphabet := dict.AlphabetSize()
	start := make([]byte, len(st.word))
	copy(start, st.word)

	if colToChange >= 0 && colToChange < len(start) {
		for i := colToChange + 1; i < len(start); i++ {
			start[i] = byte(alphabet)
		}
	}

	wrapped := false
	for {
		var found []byte
		var ok bool

		if len(st.word) == 0 || isAllZero(st.word) {
			*counter++
			found, ok = dict.FindRandomEntry(rng, mask, candidates)
		} else {
			*counter++
			found, ok = dict.FindEntry(mask, start, candidates)
		}

		if !ok {
			if wrapped {
				return false
			}
			wrapped = true
			start = nil
			continue
		}

		if len(st.firstWord) > 0 && !isAllZero(st.firstWord) && dictionary.Compare(found, st.firstWord) == 0 {
			return false
		}

		if strict && colToChange >= 0 && colToChange < len(found) && colToChange < len(st.word) {
			if found[colToChange] == st.word[colToChange] {
				start = found
				continue
			}
		}

		if isAllZero(st.firstWord) {
			st.firstWord = append([]byte(nil), found...)
		}

		st.word = found
		return true
	}
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// buildCrossMask returns the mask of the slot perpendicular to (x,y) along
// crossDir, passing through (x,y), plus the backward offset of (x,y) within
// that cross-mask.
func buildCrossMask(g *grid.Grid, x, y int, crossDir grid.Direction) (mask []byte, backOffset int) {
	return g.BuildMask(x, y, crossDir, true)
}

// resetCandidatesAlong restores the candidate set of every non-locked
// Letter cell along dir through (x,y), stopping at the first Black/Void
// cell or the grid edge in each direction.
func resetCandidatesAlong(g *grid.Grid, x, y int, dir grid.Direction) {
	g.ResetCandidates(x, y)

	dx, dy := 0, 0
	if dir == grid.Horizontal {
		dx = 1
	} else {
		dy = 1
	}

	for nx, ny := x+dx, y+dy; ; nx, ny = nx+dx, ny+dy {
		c := g.At(nx, ny)
		if c == nil || c.Kind != grid.Letter {
			break
		}
		g.ResetCandidates(nx, ny)
	}
	for nx, ny := x-dx, y-dy; ; nx, ny = nx-dx, ny-dy {
		c := g.At(nx, ny)
		if c == nil || c.Kind != grid.Letter {
			break
		}
		g.ResetCandidates(nx, ny)
	}
}

func otherDir(dir grid.Direction) grid.Direction {
	if dir == grid.Horizontal {
		return grid.Vertical
	}
	return grid.Horizontal
}
