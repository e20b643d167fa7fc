package engine

// neighborOffsets lists the eight cells surrounding a position, orthogonal
// first then diagonal.
var neighborOffsets = []Cell{
	{-1, 0},  // up
	{1, 0},   // down
	{0, -1},  // left
	{0, 1},   // right
	{-1, -1}, // up-left
	{-1, 1},  // up-right
	{1, -1},  // down-left
	{1, 1},   // down-right
}

// IsOnBoard reports whether c lies inside the grid
func IsOnBoard(c Cell) bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// IsHoundAt reports whether any hound occupies c
func IsHoundAt(c Cell, hounds []Cell) bool {
	for _, h := range hounds {
		if h == c {
			return true
		}
	}
	return false
}

// IsTrapped reports whether every neighbor of hare is off the board or
// occupied by a hound.
func IsTrapped(hare Cell, hounds []Cell) bool {
	for _, off := range neighborOffsets {
		n := Cell{Row: hare.Row + off.Row, Col: hare.Col + off.Col}
		if IsOnBoard(n) && !IsHoundAt(n, hounds) {
			return false
		}
	}
	return true
}

// RenderBoard draws the grid as text rows: 'H' hare, 'D' hound, 'X' a hound
// on the hare's cell and '.' empty.
func RenderBoard(hare Cell, hounds []Cell) []string {
	rows := make([]string, BoardSize)
	for r := 0; r < BoardSize; r++ {
		line := make([]byte, BoardSize)
		for c := 0; c < BoardSize; c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case cell == hare && IsHoundAt(cell, hounds):
				line[c] = 'X'
			case cell == hare:
				line[c] = 'H'
			case IsHoundAt(cell, hounds):
				line[c] = 'D'
			default:
				line[c] = '.'
			}
		}
		rows[r] = string(line)
	}
	return rows
}
