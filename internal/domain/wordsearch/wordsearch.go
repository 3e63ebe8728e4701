package wordsearch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds = errors.New("line endpoint outside the grid")
	ErrNotStraight = errors.New("line is not straight")
)

// Point addresses one grid cell, zero-based.
type Point struct {
	Row int
	Col int
}

// Line is a straight selection from one cell to another.
type Line struct {
	From Point
	To   Point
}

// Content is one word-search variant: a rectangular letter grid and the
// words hidden in it.
type Content struct {
	Grid  []string
	Words []string
}

// Check reports whether the selected line spells one of the hidden words,
// reading either direction. Straight means horizontal, vertical, or exact
// diagonal. The matched word (uppercased) is returned so the client can
// strike it from its list.
func Check(content Content, line Line) (string, bool, error) {
	letters, err := lineLetters(content.Grid, line)
	if err != nil {
		return "", false, err
	}

	reversed := reverse(letters)
	for _, w := range content.Words {
		target := strings.ToUpper(strings.TrimSpace(w))
		if letters == target || reversed == target {
			return target, true, nil
		}
	}

	return "", false, nil
}

func lineLetters(grid []string, line Line) (string, error) {
	rows := len(grid)
	if rows == 0 {
		return "", ErrOutOfBounds
	}
	cols := len(grid[0])

	for _, p := range []Point{line.From, line.To} {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return "", fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
		}
	}

	dr := sign(line.To.Row - line.From.Row)
	dc := sign(line.To.Col - line.From.Col)
	lenR := abs(line.To.Row - line.From.Row)
	lenC := abs(line.To.Col - line.From.Col)
	if dr != 0 && dc != 0 && lenR != lenC {
		return "", ErrNotStraight
	}

	steps := max(lenR, lenC)
	var b strings.Builder
	r, c := line.From.Row, line.From.Col
	for i := 0; i <= steps; i++ {
		b.WriteByte(grid[r][c])
		r += dr
		c += dc
	}

	return strings.ToUpper(b.String()), nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
