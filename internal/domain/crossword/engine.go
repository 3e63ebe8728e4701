package crossword

import (
	"errors"
	"unicode"
)

var ErrReviewMode = errors.New("grid is read-only in review mode")

// Mode selects whether the engine accepts input.
type Mode int

const (
	ModeInteractive Mode = iota
	// ModeReview renders a submitted grid read-only; every mutation is
	// rejected and the completion callback never fires.
	ModeReview
)

// Engine drives one player's crossword session: entered letters, the active
// cell, the cursor direction, and one-shot completion detection.
type Engine struct {
	layout    *Layout
	grid      [][]byte
	active    Cell
	hasActive bool
	direction Direction
	mode      Mode
	completed bool

	onComplete func()
}

// NewEngine starts an empty interactive session over a layout.
func NewEngine(layout *Layout) *Engine {
	return &Engine{
		layout:    layout,
		grid:      emptyGrid(layout),
		direction: Across,
	}
}

// Resume restores a session from previously saved letters. Out-of-bounds or
// non-fillable entries in the snapshot are dropped rather than trusted.
func Resume(layout *Layout, letters map[Cell]rune, mode Mode) *Engine {
	e := NewEngine(layout)
	e.mode = mode
	for cell, r := range letters {
		if meta, ok := layout.CellAt(cell); ok && meta.Fillable {
			e.grid[cell.Row][cell.Col] = normalizeLetter(r)
		}
	}
	if mode == ModeInteractive {
		// A restored grid may already be solved; detect it without firing
		// the callback, which belongs to live play only.
		e.completed = e.isSolved()
	}

	return e
}

// OnComplete registers the callback fired exactly once when the last
// correct letter lands.
func (e *Engine) OnComplete(fn func()) {
	e.onComplete = fn
}

func (e *Engine) Completed() bool      { return e.completed }
func (e *Engine) Direction() Direction { return e.direction }

// ActiveCell returns the cursor position, if any.
func (e *Engine) ActiveCell() (Cell, bool) {
	return e.active, e.hasActive
}

// ActiveClue returns the index (in display order) of the clue under the
// cursor in the cursor direction, or -1.
func (e *Engine) ActiveClue() int {
	if !e.hasActive {
		return -1
	}
	return e.layout.clueAt(e.active, e.direction)
}

// Letters snapshots the entered grid as cell→rune, the shape progress
// saves carry.
func (e *Engine) Letters() map[Cell]rune {
	out := make(map[Cell]rune)
	for r := range e.grid {
		for c := range e.grid[r] {
			if e.grid[r][c] != 0 {
				out[Cell{Row: r, Col: c}] = rune(e.grid[r][c])
			}
		}
	}

	return out
}

// ClickCell activates a fillable cell. Clicking the already-active cell
// toggles direction when a clue exists the other way; activating a new cell
// keeps the current direction when possible, else switches.
func (e *Engine) ClickCell(cell Cell) error {
	if err := e.mutable(); err != nil {
		return err
	}
	meta, ok := e.layout.CellAt(cell)
	if !ok || !meta.Fillable {
		return nil
	}

	if e.hasActive && e.active == cell {
		if e.layout.clueAt(cell, e.direction.other()) >= 0 {
			e.direction = e.direction.other()
		}
		return nil
	}

	e.active = cell
	e.hasActive = true
	if e.layout.clueAt(cell, e.direction) < 0 {
		e.direction = e.direction.other()
	}

	return nil
}

// ClickClue jumps the cursor to a clue's first cell in that clue's
// direction. The index is in display order.
func (e *Engine) ClickClue(idx int) error {
	if err := e.mutable(); err != nil {
		return err
	}
	cells := e.layout.clueCells(idx)
	if len(cells) == 0 {
		return nil
	}

	e.active = cells[0]
	e.hasActive = true
	e.direction = e.layout.clues[idx].Direction

	return nil
}

// TypeLetter writes into the active cell and advances along the active
// clue, stopping at the word's end.
func (e *Engine) TypeLetter(r rune) error {
	if err := e.mutable(); err != nil {
		return err
	}
	r = normalizeLetterRune(r)
	if r == 0 || !e.hasActive || e.completed {
		return nil
	}

	e.grid[e.active.Row][e.active.Col] = byte(r)
	if next, ok := e.neighborInClue(e.active, +1); ok {
		e.active = next
	}
	e.checkCompletion()

	return nil
}

// Backspace clears in place when the active cell holds a letter; on an
// empty cell it steps back along the clue and clears there.
func (e *Engine) Backspace() error {
	if err := e.mutable(); err != nil {
		return err
	}
	if !e.hasActive || e.completed {
		return nil
	}

	if e.grid[e.active.Row][e.active.Col] != 0 {
		e.grid[e.active.Row][e.active.Col] = 0
		return nil
	}
	if prev, ok := e.neighborInClue(e.active, -1); ok {
		e.active = prev
		e.grid[prev.Row][prev.Col] = 0
	}

	return nil
}

// NextClue advances to the next clue in display order, wrapping to the
// first.
func (e *Engine) NextClue() error {
	if err := e.mutable(); err != nil {
		return err
	}
	total := len(e.layout.clues)
	if total == 0 {
		return nil
	}

	current := e.ActiveClue()
	return e.ClickClue((current + 1) % total)
}

// Move shifts the active cell by one row/column when the destination is
// in bounds and fillable; the direction is left untouched.
func (e *Engine) Move(deltaRow, deltaCol int) error {
	if err := e.mutable(); err != nil {
		return err
	}
	if !e.hasActive {
		return nil
	}

	dest := Cell{Row: e.active.Row + deltaRow, Col: e.active.Col + deltaCol}
	if meta, ok := e.layout.CellAt(dest); ok && meta.Fillable {
		e.active = dest
	}

	return nil
}

// IncorrectCells lists filled cells whose letter disagrees with the
// solution, for the review-mode overlay.
func (e *Engine) IncorrectCells() []Cell {
	var out []Cell
	for r := range e.grid {
		for c := range e.grid[r] {
			entered := e.grid[r][c]
			if entered != 0 && entered != e.layout.SolutionAt(Cell{Row: r, Col: c}) {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}

	return out
}

func (e *Engine) mutable() error {
	if e.mode == ModeReview {
		return ErrReviewMode
	}
	return nil
}

// neighborInClue walks one step along the active clue; ok is false at the
// word boundary (no wrap).
func (e *Engine) neighborInClue(cell Cell, step int) (Cell, bool) {
	idx := e.layout.clueAt(cell, e.direction)
	cells := e.layout.clueCells(idx)
	for i, c := range cells {
		if c == cell {
			j := i + step
			if j < 0 || j >= len(cells) {
				return Cell{}, false
			}
			return cells[j], true
		}
	}

	return Cell{}, false
}

func (e *Engine) checkCompletion() {
	if e.completed || !e.isSolved() {
		return
	}

	e.completed = true
	if e.onComplete != nil {
		e.onComplete()
	}
}

func (e *Engine) isSolved() bool {
	for r := 0; r < e.layout.Rows(); r++ {
		for c := 0; c < e.layout.Cols(); c++ {
			meta := e.layout.cells[r][c]
			if meta.Fillable && e.grid[r][c] != e.layout.solution[r][c] {
				return false
			}
		}
	}

	return true
}

func (d Direction) other() Direction {
	if d == Across {
		return Down
	}
	return Across
}

func emptyGrid(layout *Layout) [][]byte {
	grid := make([][]byte, layout.Rows())
	for r := range grid {
		grid[r] = make([]byte, layout.Cols())
	}

	return grid
}

func normalizeLetter(r rune) byte {
	if b := normalizeLetterRune(r); b != 0 {
		return byte(b)
	}
	return 0
}

func normalizeLetterRune(r rune) rune {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0
	}
	return r
}
