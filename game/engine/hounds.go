package engine

import (
	"cmp"
	"slices"
)

// houndSteps is the hound move generation order: down, down-left,
// down-right, left, right. Hounds may move away from the target row.
var houndSteps = []Cell{
	{1, 0},
	{1, -1},
	{1, 1},
	{0, -1},
	{0, 1},
}

// HoundMoves returns the cells the hound at from may step to, in generation
// order. A cell held by any hound is excluded, so hounds that already moved
// this turn block or free cells for the ones after them.
func HoundMoves(from Cell, hounds []Cell) []Cell {
	moves := make([]Cell, 0, len(houndSteps))
	for _, step := range houndSteps {
		next := Cell{Row: from.Row + step.Row, Col: from.Col + step.Col}
		if IsOnBoard(next) && !IsHoundAt(next, hounds) {
			moves = append(moves, next)
		}
	}
	return moves
}

// RunHoundTurn moves every hound once, greedily, and reports whether one of
// them landed on the hare. hounds is reordered and updated in place.
//
// The escape routes and the move order are computed once from the board at
// the start of the turn. Hounds then move one after another; a hound with no
// legal move stays put, and a capture ends the turn immediately.
func RunHoundTurn(hounds []Cell, hare Cell) TurnOutcome {
	routes := FindEscapeRoutes(hare, hounds)
	orderHounds(hounds, hare, routes)

	for i := range hounds {
		moves := HoundMoves(hounds[i], hounds)
		if len(moves) == 0 {
			continue
		}

		best := bestMove(moves, hare, othersExcept(hounds, i), routes)
		hounds[i] = best
		if best == hare {
			return TurnCaptured
		}
	}

	return TurnContinues
}

// bestMove returns the highest scoring of moves, which must not be empty
func bestMove(moves []Cell, hare Cell, others []Cell, routes [][]Cell) Cell {
	best := moves[0]
	bestScore := ScoreHound(best, hare, others, routes)
	for _, move := range moves[1:] {
		// strict comparison keeps the first candidate on ties
		if score := ScoreHound(move, hare, others, routes); score > bestScore {
			best, bestScore = move, score
		}
	}
	return best
}

// orderHounds sorts hounds by their current score, best first. The sort is
// stable so tied hounds keep their previous order.
func orderHounds(hounds []Cell, hare Cell, routes [][]Cell) {
	type ranked struct {
		cell  Cell
		score int
	}

	ranking := make([]ranked, len(hounds))
	for i, h := range hounds {
		ranking[i] = ranked{cell: h, score: ScoreHound(h, hare, othersExcept(hounds, i), routes)}
	}

	slices.SortStableFunc(ranking, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})

	for i, r := range ranking {
		hounds[i] = r.cell
	}
}
