package crossword

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAnswerOutOfBounds  = errors.New("clue answer does not fit the grid")
	ErrConflictingAnswers = errors.New("crossing clues disagree on a letter")
	ErrNoClues            = errors.New("crossword has no clues")
)

// Direction of a clue or of the active cursor.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// Clue is one authored entry: its number, orientation, starting cell, the
// answer laid into the grid, and the prompt text shown to the player.
type Clue struct {
	Number    int
	Direction Direction
	Row       int
	Col       int
	Answer    string
	Text      string
}

// Content is the authoritative definition of one crossword variant. The
// grid topology is derived entirely from the clue list: every cell covered
// by an answer is fillable, everything else is blocked.
type Content struct {
	Rows  int
	Cols  int
	Clues []Clue
}

// Cell addresses one grid position, zero-based.
type Cell struct {
	Row int
	Col int
}

// CellMeta is the derived per-cell topology sent to clients: whether the
// cell takes a letter and which clue numbers start there. Letters are not
// part of it.
type CellMeta struct {
	Fillable bool
	Number   int
	acrossClue int
	downClue   int
}

// Layout is the memoized derivation of a Content: cell metadata, the
// solution overlay, and the clue list in across-then-down display order.
type Layout struct {
	rows     int
	cols     int
	cells    [][]CellMeta
	solution [][]byte
	clues    []Clue
}

// NewLayout derives and validates the grid topology for a variant.
func NewLayout(content Content) (*Layout, error) {
	if len(content.Clues) == 0 {
		return nil, ErrNoClues
	}
	if content.Rows <= 0 || content.Cols <= 0 {
		return nil, fmt.Errorf("%w: grid is %dx%d", ErrAnswerOutOfBounds, content.Rows, content.Cols)
	}

	l := &Layout{
		rows:     content.Rows,
		cols:     content.Cols,
		cells:    make([][]CellMeta, content.Rows),
		solution: make([][]byte, content.Rows),
	}
	for r := range l.cells {
		l.cells[r] = make([]CellMeta, content.Cols)
		l.solution[r] = make([]byte, content.Cols)
		for c := range l.cells[r] {
			l.cells[r][c] = CellMeta{acrossClue: -1, downClue: -1}
		}
	}

	// Across first, then down, each in number order: the order the clue
	// list renders and the order Enter/Next walks.
	l.clues = append([]Clue(nil), content.Clues...)
	sortClues(l.clues)

	for idx, clue := range l.clues {
		answer := strings.ToUpper(strings.TrimSpace(clue.Answer))
		dr, dc := clue.deltas()
		endRow := clue.Row + dr*(len(answer)-1)
		endCol := clue.Col + dc*(len(answer)-1)
		if answer == "" || clue.Row < 0 || clue.Col < 0 || endRow >= l.rows || endCol >= l.cols {
			return nil, fmt.Errorf("%w: clue %d %s", ErrAnswerOutOfBounds, clue.Number, clue.Direction)
		}

		r, c := clue.Row, clue.Col
		for i := 0; i < len(answer); i++ {
			existing := l.solution[r][c]
			if existing != 0 && existing != answer[i] {
				return nil, fmt.Errorf("%w: cell (%d,%d)", ErrConflictingAnswers, r, c)
			}
			l.solution[r][c] = answer[i]
			l.cells[r][c].Fillable = true
			if clue.Direction == Across {
				if l.cells[r][c].acrossClue < 0 {
					l.cells[r][c].acrossClue = idx
				}
			} else {
				if l.cells[r][c].downClue < 0 {
					l.cells[r][c].downClue = idx
				}
			}
			r += dr
			c += dc
		}

		if l.cells[clue.Row][clue.Col].Number == 0 || clue.Number < l.cells[clue.Row][clue.Col].Number {
			l.cells[clue.Row][clue.Col].Number = clue.Number
		}
	}

	return l, nil
}

func (l *Layout) Rows() int { return l.rows }
func (l *Layout) Cols() int { return l.cols }

// Clues returns the clue list in display order.
func (l *Layout) Clues() []Clue {
	return append([]Clue(nil), l.clues...)
}

// CellAt returns the derived metadata for a cell; ok is false out of bounds.
func (l *Layout) CellAt(cell Cell) (CellMeta, bool) {
	if !l.inBounds(cell) {
		return CellMeta{}, false
	}
	return l.cells[cell.Row][cell.Col], true
}

// FillableCells counts the cells that take a letter.
func (l *Layout) FillableCells() int {
	n := 0
	for r := range l.cells {
		for c := range l.cells[r] {
			if l.cells[r][c].Fillable {
				n++
			}
		}
	}

	return n
}

// SolutionAt exposes one solution letter. Callers on the client-safe path
// must never use it; it exists for verification and review overlays.
func (l *Layout) SolutionAt(cell Cell) byte {
	if !l.inBounds(cell) {
		return 0
	}
	return l.solution[cell.Row][cell.Col]
}

func (l *Layout) clueAt(cell Cell, dir Direction) int {
	meta, ok := l.CellAt(cell)
	if !ok {
		return -1
	}
	if dir == Across {
		return meta.acrossClue
	}
	return meta.downClue
}

func (l *Layout) inBounds(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < l.rows && cell.Col >= 0 && cell.Col < l.cols
}

// clueCells lists the cells of a clue in word order.
func (l *Layout) clueCells(idx int) []Cell {
	if idx < 0 || idx >= len(l.clues) {
		return nil
	}
	clue := l.clues[idx]
	dr, dc := clue.deltas()
	cells := make([]Cell, 0, len(clue.Answer))
	r, c := clue.Row, clue.Col
	for i := 0; i < len(strings.TrimSpace(clue.Answer)); i++ {
		cells = append(cells, Cell{Row: r, Col: c})
		r += dr
		c += dc
	}

	return cells
}

func (c Clue) deltas() (int, int) {
	if c.Direction == Down {
		return 1, 0
	}
	return 0, 1
}

func sortClues(clues []Clue) {
	sort.SliceStable(clues, func(i, j int) bool {
		if clues[i].Direction != clues[j].Direction {
			return clues[i].Direction == Across
		}
		return clues[i].Number < clues[j].Number
	})
}
