package solver

import (
	"testing"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
)

func TestBlackTarget_BudgetShapesLength(t *testing.T) {
	noBudget := blackTarget(0, 100, 8)
	if noBudget != 8 {
		t.Errorf("blackTarget with no budget = %d, want maxLen (8)", noBudget)
	}

	tight := blackTarget(50, 100, 8)
	if tight >= noBudget {
		t.Errorf("blackTarget with a tight budget (%d) should favor shorter words than no budget (%d)", tight, noBudget)
	}
}

func TestDynamicSolver_FillsSmallGrid(t *testing.T) {
	d := dictionary.New(26, 10)
	for _, w := range []string{"cat", "car", "ace", "ebb", "tar", "tab"} {
		enc, ok := dictionary.EncodeWord(w)
		if !ok {
			t.Fatalf("EncodeWord(%q) failed", w)
		}
		d.AddWords([][]byte{enc})
	}

	g := grid.New(3, 1)
	s := NewDynamicSolver()
	s.Start(g, d, Config{Seed: 7, MaxBlackBoxes: 0, BlackMode: BlackAny})

	var status Status
	for i := 0; i < 2000; i++ {
		status = s.SolveStep()
		if status.FillRate == 0 || status.FillRate == 100 {
			break
		}
	}
	s.Stop()

	if status.FillRate != 100 {
		t.Fatalf("FillRate = %d, want 100", status.FillRate)
	}
}

// allWords returns every word over a size-n alphabet with length in
// [1, maxLen], encoded as letter codes 1..n.
func allWords(alphabet, maxLen int) [][]byte {
	var words [][]byte
	var gen func(prefix []byte)
	gen = func(prefix []byte) {
		if len(prefix) > 0 {
			w := make([]byte, len(prefix))
			copy(w, prefix)
			words = append(words, w)
		}
		if len(prefix) == maxLen {
			return
		}
		for c := 1; c <= alphabet; c++ {
			gen(append(prefix, byte(c)))
		}
	}
	gen(nil)
	return words
}

func TestDynamicSolver_BlackBudget7x7Diagonal(t *testing.T) {
	d := dictionary.New(3, 7)
	if added := d.AddWords(allWords(3, 7)); added == 0 {
		t.Fatal("expected a non-empty exhaustive dictionary")
	}

	g := grid.New(7, 7)
	s := NewDynamicSolver()
	s.Start(g, d, Config{Seed: 42, MaxBlackBoxes: 8, BlackMode: BlackDiagonal})

	var status Status
	for i := 0; i < 20000; i++ {
		status = s.SolveStep()
		if status.FillRate == 0 || status.FillRate == 100 {
			break
		}
	}
	s.Stop()

	if status.FillRate != 100 {
		t.Fatalf("FillRate = %d, want 100", status.FillRate)
	}
	if g.NumBlack() > 8 {
		t.Errorf("NumBlack() = %d, want <= 8", g.NumBlack())
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			c := g.At(x, y)
			if c.Kind == grid.Letter && c.Value == 0 {
				t.Fatalf("grid reported FillRate 100 but cell (%d,%d) is still empty", x, y)
			}
			if c.Kind != grid.Black {
				continue
			}
			for _, n := range [][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
				if nc := g.At(n[0], n[1]); nc != nil && nc.Kind == grid.Black {
					t.Errorf("orthogonally adjacent black cells at (%d,%d) and (%d,%d), want none under diagonal density", x, y, n[0], n[1])
				}
			}
		}
	}
}

func TestDynamicSolver_FindFreeBoxSkipsFilledCells(t *testing.T) {
	g := grid.New(3, 1)
	g.At(0, 0).Value = 1
	g.At(1, 0).Value = 2

	s := &DynamicSolver{grid: g}
	x, y, ok := s.findFreeBox()
	if !ok {
		t.Fatalf("expected a free box at (2,0)")
	}
	if x != 2 || y != 0 {
		t.Errorf("findFreeBox() = (%d,%d), want (2,0)", x, y)
	}
}
