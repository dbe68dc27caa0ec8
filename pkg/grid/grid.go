// Package grid implements the crossword grid model: a matrix of cells
// carrying kind, letter value, candidate sets, and black-cell densities,
// plus the operations solvers need to mutate it during search.
package grid

import "crosswarped.com/wizium/pkg/letterset"

// Kind is the state of a grid cell.
type Kind int

const (
	Letter Kind = iota
	Black
	Void
)

// DensityMode constrains how close together black-cells may be placed.
type DensityMode int

const (
	DensityNone DensityMode = iota
	DensitySingle
	DensityTwo
	DensityDiag
	DensityAny
)

// Direction along which a word or mask runs.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Cell is one square of the grid.
type Cell struct {
	Kind Kind

	// Value holds the letter code (0 = unassigned) when Kind == Letter, or
	// the local black-neighbour density count when Kind == Black. Unused
	// for Void.
	Value byte

	// WriteCounter tracks how many concurrent writers placed the same
	// content at this cell, so a later single removal doesn't erase
	// content still relied on elsewhere.
	WriteCounter int8

	// FailCounter is a heuristic dead-end attribution counter, not a
	// correctness input.
	FailCounter int

	Locked bool

	Candidates letterset.LetterSet

	// Tag is the ordinal index among non-locked cells, assigned in
	// row-major order by LockContent.
	Tag int
}

// Space reports the four cardinal distances to the next Black/Void cell or
// the grid edge, not counting the origin cell.
type Space struct {
	Left, Right, Top, Bottom int
}

// Grid is a W×H matrix of cells.
type Grid struct {
	width, height int
	cells         []Cell

	densityMode DensityMode
	numBlack    int
	numVoid     int
}

var neighborDX = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
var neighborDY = [8]int{1, 1, 1, 0, 0, -1, -1, -1}

// New creates an empty W×H grid of Letter cells.
func New(width, height int) *Grid {
	g := &Grid{densityMode: DensityDiag}
	g.Grow(width, height)
	return g
}

// Grow reallocates the grid to the given size. All content is lost. Every
// cell starts with every letter admissible, matching the original's
// default-constructed LetterCandidates.
func (g *Grid) Grow(width, height int) {
	g.width, g.height = width, height
	g.cells = make([]Cell, width*height)
	for i := range g.cells {
		g.cells[i].Candidates = letterset.Full(letterset.MaxLetters)
	}
	g.numBlack, g.numVoid = 0, 0
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) SetDensityMode(mode DensityMode) { g.densityMode = mode }
func (g *Grid) DensityMode() DensityMode        { return g.densityMode }

func (g *Grid) NumBlack() int { return g.numBlack }
func (g *Grid) NumVoid() int  { return g.numVoid }

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

// At returns a pointer to the cell at (x,y), or nil if out of bounds.
// Callers must tolerate nil.
func (g *Grid) At(x, y int) *Cell {
	idx, ok := g.index(x, y)
	if !ok {
		return nil
	}
	return &g.cells[idx]
}

// SetKind directly sets a cell's kind and resets its content, bypassing the
// reference-counted AddBloc/RemoveBloc bookkeeping. Used to lay out a fixed
// grid before locking, not during search.
func (g *Grid) SetKind(x, y int, kind Kind) {
	c := g.At(x, y)
	if c == nil || c.Locked {
		return
	}
	c.Kind = kind
	c.Value = 0
	c.WriteCounter = 0
}

// Erase resets every unlocked cell to an empty Letter and recomputes the
// black/void counters.
func (g *Grid) Erase() {
	g.numBlack, g.numVoid = 0, 0
	for i := range g.cells {
		c := &g.cells[i]
		if !c.Locked {
			c.Kind = Letter
			c.Value = 0
			c.WriteCounter = 0
			c.FailCounter = 0
		}
		if c.Kind == Black {
			g.numBlack++
		}
		if c.Kind == Void {
			g.numVoid++
		}
	}
}

// LockContent marks every non-empty cell as locked and assigns Tag to the
// remaining unlocked cells in row-major order.
func (g *Grid) LockContent() {
	g.numBlack, g.numVoid = 0, 0
	count := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.At(x, y)
			if c.Kind != Letter || c.Value != 0 {
				c.Locked = true
				if c.Kind == Black {
					g.numBlack++
				}
				if c.Kind == Void {
					g.numVoid++
				}
			} else {
				c.Locked = false
				c.Tag = count
				count++
			}
		}
	}
}

// Unlock clears every cell's lock.
func (g *Grid) Unlock() {
	for i := range g.cells {
		g.cells[i].Locked = false
	}
}

// AddBloc converts (x,y) to Black, reference-counted: the first call at an
// unlocked cell converts it and bumps neighbour densities; subsequent calls
// only increment an internal counter, letting a later RemoveBloc undo them
// one at a time.
func (g *Grid) AddBloc(x, y int) {
	c := g.At(x, y)
	if c == nil || c.Locked {
		return
	}

	if c.Kind != Black {
		c.Kind = Black
		c.WriteCounter = 1
		g.numBlack++

		var density byte
		for i := 0; i < 8; i++ {
			n := g.At(x+neighborDX[i], y+neighborDY[i])
			if n != nil && n.Kind == Black {
				n.Value++
				density++
			}
		}
		c.Value = density
	} else {
		c.WriteCounter++
	}
}

// RemoveBloc reverses one AddBloc call at (x,y), reverting the cell to
// Letter only once its counter reaches zero.
func (g *Grid) RemoveBloc(x, y int) {
	c := g.At(x, y)
	if c == nil || c.Locked {
		return
	}

	if c.WriteCounter > 1 {
		c.WriteCounter--
		return
	}

	c.Kind = Letter
	c.Value = 0
	c.WriteCounter = 0
	g.numBlack--

	for i := 0; i < 8; i++ {
		n := g.At(x+neighborDX[i], y+neighborDY[i])
		if n != nil && n.Kind == Black {
			n.Value--
		}
	}
}

func step(dir Direction, x, y, i int) (int, int) {
	if dir == Horizontal {
		return x + i, y
	}
	return x, y + i
}

// AddWord writes word (letter codes, 0-terminated conceptually via slice
// length) along dir starting at (x,y). Re-writing an identical letter bumps
// the cell's write-counter; running past the last letter places a black
// cell via AddBloc.
func (g *Grid) AddWord(x, y int, dir Direction, word []byte) {
	for i := 0; i <= len(word); i++ {
		cx, cy := step(dir, x, y, i)
		c := g.At(cx, cy)
		if c == nil {
			break
		}

		if i < len(word) && word[i] != 0 {
			if c.Locked {
				continue
			}
			if c.Kind == Letter && c.Value == word[i] {
				c.WriteCounter++
			} else {
				c.Kind = Letter
				c.Value = word[i]
				c.WriteCounter = 1
			}
		} else {
			g.AddBloc(cx, cy)
			break
		}
	}
}

// RemoveWord reverses AddWord: walks the same run, decrementing letter
// write-counters (erasing the letter at zero) and calling RemoveBloc at the
// trailing black cell.
func (g *Grid) RemoveWord(x, y int, dir Direction) {
	for i := 0; ; i++ {
		cx, cy := step(dir, x, y, i)
		c := g.At(cx, cy)
		if c == nil {
			break
		}

		if c.Kind == Letter {
			if c.Locked {
				continue
			}
			if c.WriteCounter > 1 {
				c.WriteCounter--
			} else {
				c.Value = 0
				c.WriteCounter = 0
			}
		} else {
			g.RemoveBloc(cx, cy)
			break
		}
	}
}

// CheckBlocDensity reports whether adding a black cell at (x,y) is
// compatible with the grid's density mode and the universal anti-diamond
// pattern check.
func (g *Grid) CheckBlocDensity(x, y int) bool {
	c := g.At(x, y)
	if c == nil {
		return false
	}
	if c.Kind == Black {
		return true
	}
	if c.Kind == Letter && c.Value != 0 {
		return false
	}

	good := true
	switch g.densityMode {
	case DensityNone:
		if c.Locked {
			good = c.Kind == Black
		} else {
			good = false
		}

	case DensitySingle:
		for i := 0; i < 8; i++ {
			n := g.At(x+neighborDX[i], y+neighborDY[i])
			if n != nil && n.Kind == Black && !n.Locked {
				good = false
				break
			}
		}

	case DensityDiag:
		for i := 0; i < 8; i++ {
			n := g.At(x+neighborDX[i], y+neighborDY[i])
			if n != nil && n.Kind == Black && !n.Locked {
				if i == 1 || i == 3 || i == 4 || i == 6 {
					good = false
					break
				}
			}
		}

	case DensityTwo:
		count := 0
		for i := 0; i < 8; i++ {
			n := g.At(x+neighborDX[i], y+neighborDY[i])
			if n != nil && n.Kind == Black && !n.Locked {
				count++
				if count > 2 || n.Value >= 2 {
					good = false
					break
				}
			}
		}

	case DensityAny:
		// unconstrained
	}

	if good {
		good = g.checkAntiDiamond(x, y)
	}
	return good
}

// checkAntiDiamond rejects placements that would complete the pattern
//
//	. . * . .
//	. * . * .
//	. . * . .
//
// which would seal off the centre letter cell between opposite black
// corners.
func (g *Grid) checkAntiDiamond(x, y int) bool {
	blocOrEdge := func(dx, dy int) bool {
		n := g.At(x+dx, y+dy)
		return n == nil || n.Kind == Black
	}

	p1 := blocOrEdge(-1, -1)
	p2 := blocOrEdge(1, -1)
	p3 := blocOrEdge(1, 1)
	p4 := blocOrEdge(-1, 1)

	if p1 && p2 && y >= 1 {
		pc := blocOrEdge(0, -1)
		if !pc && blocOrEdge(0, -2) {
			return false
		}
	}
	if p1 && p4 && x >= 1 {
		pc := blocOrEdge(-1, 0)
		if !pc && blocOrEdge(-2, 0) {
			return false
		}
	}
	if p2 && p3 && x < g.width-1 {
		pc := blocOrEdge(1, 0)
		if !pc && blocOrEdge(2, 0) {
			return false
		}
	}
	if p3 && p4 && y < g.height-1 {
		pc := blocOrEdge(0, 1)
		if !pc && blocOrEdge(0, 2) {
			return false
		}
	}
	return true
}

// BuildMask walks backward from (x,y) along dir (if goBack) until a
// Black/Void boundary or the grid edge, then walks forward emitting each
// cell's letter (or the wildcard sentinel for an empty cell) until the next
// Black/Void cell or edge. It returns the mask and the number of cells
// walked backward.
func (g *Grid) BuildMask(x, y int, dir Direction, goBack bool) (mask []byte, backOffset int) {
	if goBack {
		for {
			if dir == Horizontal && x <= 0 {
				break
			}
			if dir == Vertical && y <= 0 {
				break
			}
			nx, ny := x, y
			if dir == Horizontal {
				nx--
			} else {
				ny--
			}
			c := g.At(nx, ny)
			if c.Kind == Black || c.Kind == Void {
				break
			}
			x, y = nx, ny
			backOffset++
		}
	}

	for i := 0; ; i++ {
		cx, cy := step(dir, x, y, i)
		c := g.At(cx, cy)
		if c == nil || c.Kind == Black || c.Kind == Void {
			break
		}
		if c.Kind == Letter && c.Value != 0 {
			mask = append(mask, c.Value)
		} else {
			mask = append(mask, letterset.Wildcard)
		}
	}

	return mask, backOffset
}

// ResetCandidates restores (x,y)'s candidate set to "every letter admissible",
// unless the cell is locked.
func (g *Grid) ResetCandidates(x, y int) {
	c := g.At(x, y)
	if c == nil || c.Locked {
		return
	}
	c.Candidates = letterset.Full(letterset.MaxLetters)
}

// GetSpace returns the four cardinal distances to the next Black/Void or
// the grid edge, not counting (x,y) itself.
func (g *Grid) GetSpace(x, y int) Space {
	dirX := [4]int{0, 1, 0, -1}
	dirY := [4]int{1, 0, -1, 0}
	dist := [4]int{}

	for i := 0; i < 4; i++ {
		px, py := x, y
		for {
			px += dirX[i]
			py += dirY[i]
			c := g.At(px, py)
			if c == nil || c.Kind == Black || c.Kind == Void {
				break
			}
			dist[i]++
		}
	}

	return Space{Left: dist[3], Right: dist[1], Top: dist[2], Bottom: dist[0]}
}

// FillRate returns the percentage of non-Void cells that are either Black
// or a non-zero letter. Returns 0 for an all-Void grid.
func (g *Grid) FillRate() int {
	notVoid := 0
	numVoid := 0
	for i := range g.cells {
		c := &g.cells[i]
		switch {
		case c.Kind == Void:
			numVoid++
		case c.Kind == Black:
			notVoid++
		case c.Kind == Letter && c.Value != 0:
			notVoid++
		default:
			// empty Letter cell: counts toward the denominator only.
		}
	}

	total := g.width*g.height - numVoid
	if total <= 0 {
		return 0
	}
	return 100 * notVoid / total
}
