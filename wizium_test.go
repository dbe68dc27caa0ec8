package wizium

import (
	"testing"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
	"crosswarped.com/wizium/pkg/solver"
)

func TestReadGridText_LetterBlackVoid(t *testing.T) {
	m := New(ModuleConfig{AlphabetSize: 26})
	m.SetGridSize(3, 1)
	m.SetBox(1, 0, grid.Black)
	m.Grid().SetKind(2, 0, grid.Void)

	rows := m.ReadGridText()
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0] != ".#-" {
		t.Errorf("rows[0] = %q, want %q", rows[0], ".#-")
	}
}

func TestReadGridText_RendersWrittenLetters(t *testing.T) {
	m := New(ModuleConfig{AlphabetSize: 26})
	m.SetGridSize(3, 1)
	enc, ok := dictionary.EncodeWord("cat")
	if !ok {
		t.Fatal("EncodeWord failed")
	}
	m.WriteWord(0, 0, enc, grid.Horizontal)

	rows := m.ReadGridText()
	if rows[0] != "CAT" {
		t.Errorf("rows[0] = %q, want %q", rows[0], "CAT")
	}
}

func TestReadGridText_NumericFallbackForNonStandardAlphabet(t *testing.T) {
	m := New(ModuleConfig{AlphabetSize: 10})
	m.SetGridSize(2, 1)
	m.SetBox(1, 0, grid.Black)

	rows := m.ReadGridText()
	if rows[0] != "0 #" {
		t.Errorf("rows[0] = %q, want %q", rows[0], "0 #")
	}
}

func TestModule_SolverStep_ResumeCounterSumsToTotal(t *testing.T) {
	m := New(ModuleConfig{AlphabetSize: 26, MaxWordLength: 10})
	words := [][]byte{}
	for _, w := range []string{"cat", "car", "ace", "ebb", "tar", "tab", "bat"} {
		enc, ok := dictionary.EncodeWord(w)
		if !ok {
			t.Fatalf("EncodeWord(%q) failed", w)
		}
		words = append(words, enc)
	}
	m.AddWords(words)
	m.SetGridSize(3, 1)
	m.StartSolver(solver.Config{Seed: 9, MaxBlackBoxes: 0, BlackMode: solver.BlackAny})

	var total uint64
	var final solver.Status
	for i := 0; i < 5000; i++ {
		final = m.SolverStep(0, 1)
		total += final.Counter
		if final.FillRate == 0 || final.FillRate == 100 {
			break
		}
	}
	m.SolverStop()

	if final.FillRate != 100 {
		t.Fatalf("FillRate = %d, want 100", final.FillRate)
	}

	m2 := New(ModuleConfig{AlphabetSize: 26, MaxWordLength: 10})
	m2.AddWords(words)
	m2.SetGridSize(3, 1)
	m2.StartSolver(solver.Config{Seed: 9, MaxBlackBoxes: 0, BlackMode: solver.BlackAny})
	oneShot := m2.SolverStep(0, 5000)
	m2.SolverStop()

	if total != oneShot.Counter {
		t.Errorf("sum of per-call counters = %d, want %d (equal to a single-call run's total)", total, oneShot.Counter)
	}
}

func TestModule_SolvesAndReportsFillRate(t *testing.T) {
	m := New(ModuleConfig{AlphabetSize: 26, MaxWordLength: 10})
	words := [][]byte{}
	for _, w := range []string{"cat", "car", "ace", "ebb", "tar", "tab"} {
		enc, ok := dictionary.EncodeWord(w)
		if !ok {
			t.Fatalf("EncodeWord(%q) failed", w)
		}
		words = append(words, enc)
	}
	m.AddWords(words)
	m.SetGridSize(3, 1)

	m.StartSolver(solver.Config{Seed: 3, MaxBlackBoxes: 0, BlackMode: solver.BlackAny})
	status := m.SolverStep(0, 5000)
	m.SolverStop()

	if status.FillRate != 100 {
		t.Fatalf("FillRate = %d, want 100", status.FillRate)
	}
}
