package engine

import (
	"errors"
	"strings"
)

// ErrInvalidDirection is returned by ParseDirection for unknown directions
var ErrInvalidDirection = errors.New("invalid direction")

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to Cell) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// ParseDirection maps user input to a Direction. "up" is accepted as an alias
// of forward, matching the arrow-key binding.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "forward", "up":
		return Forward, nil
	}
	return "", ErrInvalidDirection
}

// Target returns the cell a hare at from would move to. The result may be
// off the board.
func (d Direction) Target(from Cell) Cell {
	switch d {
	case Forward:
		return Cell{Row: from.Row - 1, Col: from.Col}
	case Left:
		return Cell{Row: from.Row, Col: from.Col - 1}
	case Right:
		return Cell{Row: from.Row, Col: from.Col + 1}
	}
	return from
}

// cloneCells returns a copy of cells that shares no backing array
func cloneCells(cells []Cell) []Cell {
	if cells == nil {
		return nil
	}
	out := make([]Cell, len(cells))
	copy(out, cells)
	return out
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
