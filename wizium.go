// Package wizium is the top-level façade over the dictionary, grid, and
// solver packages: construct a Module, load words into it, lay out a grid,
// and run a solver against it.
package wizium

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
	"crosswarped.com/wizium/pkg/solver"
)

// ModuleConfig configures a Module instance. AlphabetSize == 0 selects the
// standard 26-letter ASCII alphabet; any other value fixes a custom
// alphabet size up to letterset.MaxLetters.
type ModuleConfig struct {
	AlphabetSize  int
	MaxWordLength int
}

type solverMode int

const (
	solverNone solverMode = iota
	solverStatic
	solverDynamic
)

// Module owns one dictionary, one grid, and the solver currently running
// against them. It replaces the original library's opaque handle registry
// with an explicit Go value the caller constructs and keeps.
type Module struct {
	dict *dictionary.Dictionary
	grid *grid.Grid

	mode   solverMode
	static *solver.StaticSolver
	dyn    *solver.DynamicSolver
}

// New creates a Module with an empty dictionary and a 0x0 grid.
func New(cfg ModuleConfig) *Module {
	alphabet := cfg.AlphabetSize
	if alphabet <= 0 {
		alphabet = 26
	}
	maxWord := cfg.MaxWordLength
	if maxWord <= 0 {
		maxWord = dictionary.MaxWordLength
	}

	return &Module{
		dict: dictionary.New(alphabet, maxWord),
		grid: grid.New(0, 0),
	}
}

// ClearDictionary discards every admitted word.
func (m *Module) ClearDictionary() { m.dict.Clear() }

// NumWords returns the number of admitted words.
func (m *Module) NumWords() uint32 { return m.dict.WordCount() }

// AddEntries admits a zero-terminated sequence of packed words (see
// dictionary.Dictionary.AddEntries) and returns the number added.
func (m *Module) AddEntries(entries []byte) int {
	return m.dict.AddEntries(entries, -1, -1)
}

// AddWords admits already-decoded words and returns the number added.
func (m *Module) AddWords(words [][]byte) int {
	return m.dict.AddWords(words)
}

// FindEntry looks up the next dictionary word matching mask, strictly
// after start (or the first match, if start is nil).
func (m *Module) FindEntry(mask, start []byte) ([]byte, bool) {
	return m.dict.FindEntry(mask, start, nil)
}

// FindRandomEntry looks up a uniformly random dictionary word matching
// mask.
func (m *Module) FindRandomEntry(seed uint32, mask []byte) ([]byte, bool) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return m.dict.FindRandomEntry(rng, mask, nil)
}

// SetGridSize reallocates the grid to width x height, discarding all
// content.
func (m *Module) SetGridSize(width, height int) {
	m.grid.Grow(width, height)
}

// SetBox sets one cell's kind directly, before a solver run.
func (m *Module) SetBox(x, y int, kind grid.Kind) {
	m.grid.SetKind(x, y, kind)
}

// WriteWord writes entry (letter codes) into the grid starting at (x,y)
// along dir. A zero byte, or the end of entry when the next cell is still
// inside the grid, places a trailing black cell, matching AddWord's
// convention.
func (m *Module) WriteWord(x, y int, entry []byte, dir grid.Direction) {
	m.grid.AddWord(x, y, dir, entry)
}

// ReadGrid returns every cell's letter value in row-major order (0 for an
// empty or non-letter cell).
func (m *Module) ReadGrid() []byte {
	w, h := m.grid.Width(), m.grid.Height()
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := m.grid.At(x, y)
			if c.Kind == grid.Letter {
				out[y*w+x] = c.Value
			}
		}
	}
	return out
}

// ReadGridText renders every row as one line: for a 26-letter alphabet, an
// unassigned Letter cell is '.', a Black cell is '#', a Void cell is '-', and
// an assigned Letter cell is its uppercase letter. Any other alphabet size
// falls back to space-separated numeric codes per cell, with "#"/"-" for
// Black/Void.
func (m *Module) ReadGridText() []string {
	w, h := m.grid.Width(), m.grid.Height()
	alphabet := m.dict.AlphabetSize()
	rows := make([]string, h)

	for y := 0; y < h; y++ {
		if alphabet == 26 {
			row := make([]byte, w)
			for x := 0; x < w; x++ {
				row[x] = formatCellLetter(m.grid.At(x, y))
			}
			rows[y] = string(row)
			continue
		}

		cells := make([]string, w)
		for x := 0; x < w; x++ {
			cells[x] = formatCellNumeric(m.grid.At(x, y))
		}
		rows[y] = strings.Join(cells, " ")
	}
	return rows
}

func formatCellLetter(c *grid.Cell) byte {
	switch {
	case c == nil || c.Kind == grid.Void:
		return '-'
	case c.Kind == grid.Black:
		return '#'
	case c.Value >= 1 && c.Value <= 26:
		return 'A' + c.Value - 1
	default:
		return '.'
	}
}

func formatCellNumeric(c *grid.Cell) string {
	switch {
	case c == nil || c.Kind == grid.Void:
		return "-"
	case c.Kind == grid.Black:
		return "#"
	default:
		return fmt.Sprintf("%d", c.Value)
	}
}

// EraseGrid resets every unlocked cell to empty.
func (m *Module) EraseGrid() { m.grid.Erase() }

// Grid exposes the underlying grid for read-only inspection (fill rate,
// space probes) beyond what the façade wraps directly.
func (m *Module) Grid() *grid.Grid { return m.grid }

// StartSolver begins a generation run: cfg.MaxBlackBoxes == 0 assumes the
// grid's black-cell layout is already fixed and runs the static solver;
// any other value runs the dynamic solver, which introduces black cells
// itself under that budget.
func (m *Module) StartSolver(cfg solver.Config) {
	if cfg.MaxBlackBoxes == 0 {
		m.mode = solverStatic
		m.static = solver.NewStaticSolver()
		m.static.SetHeuristic(cfg.HeuristicLevel >= 0, int(cfg.HeuristicLevel))
		m.static.Start(m.grid, m.dict, cfg.Seed)
		return
	}

	m.mode = solverDynamic
	m.dyn = solver.NewDynamicSolver()
	m.dyn.Start(m.grid, m.dict, cfg)
}

// SolverStep runs the active solver until the grid is fully generated,
// generation fails, maxSteps is reached (if positive), or maxTime elapses
// (if positive). The returned Status.Counter is the number of dictionary
// lookups attempted during THIS call only (not the solver's running
// total), so callers resuming a long search across repeated bounded calls
// can sum the returned counters to get the total attempt count. A zero
// status is returned if no solver has been started.
func (m *Module) SolverStep(maxTime time.Duration, maxSteps int) solver.Status {
	deadline := time.Time{}
	if maxTime > 0 {
		deadline = time.Now().Add(maxTime)
	}

	var before solver.Status
	switch m.mode {
	case solverStatic:
		before = m.static.Status()
	case solverDynamic:
		before = m.dyn.Status()
	default:
		return solver.Status{}
	}

	status := before
	steps := 0
	for {
		switch m.mode {
		case solverStatic:
			status = m.static.SolveStep()
		case solverDynamic:
			status = m.dyn.SolveStep()
		}

		steps++
		if status.FillRate == 0 || status.FillRate == 100 {
			break
		}
		if maxSteps > 0 && steps >= maxSteps {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}

	return solver.Status{Counter: status.Counter - before.Counter, FillRate: status.FillRate}
}

// SolverStop ends the active solver run, leaving the grid's placed content
// intact.
func (m *Module) SolverStop() {
	switch m.mode {
	case solverStatic:
		if m.static != nil {
			m.static.Stop()
		}
	case solverDynamic:
		if m.dyn != nil {
			m.dyn.Stop()
		}
	}
	m.mode = solverNone
}
