package engine

// Score weights. The pursuit term is (2*BoardSize - distance) * PursuitWeight.
const (
	PursuitWeight      = 3
	BlockingRange      = 2
	BlockingWeight     = 4
	CoordinationRange  = 4
	CoordinationWeight = 2
	CaptureBonus       = 10
)

// ScoreHound rates candidate as a hound position, higher being better for the
// hounds. others holds the positions of every hound except the one being
// scored. The function is pure: identical inputs always give the same score.
func ScoreHound(candidate, hare Cell, others []Cell, routes [][]Cell) int {
	score := 0

	// Pursuit: closer to the hare is better
	score += (2*BoardSize - ManhattanDistance(candidate, hare)) * PursuitWeight

	// Blocking: standing near any cell of any escape route
	for _, route := range routes {
		for _, cell := range route {
			if d := ManhattanDistance(candidate, cell); d <= BlockingRange {
				score += (BlockingRange + 1 - d) * BlockingWeight
			}
		}
	}

	// Coordination: staying close to teammates
	for _, other := range others {
		if d := ManhattanDistance(candidate, other); d <= CoordinationRange {
			score += (CoordinationRange + 1 - d) * CoordinationWeight
		}
	}

	// Capture adjacency
	if abs(candidate.Row-hare.Row) <= 1 && abs(candidate.Col-hare.Col) <= 1 {
		score += CaptureBonus
	}

	return score
}

// othersExcept returns the hounds other than the one in slot i
func othersExcept(hounds []Cell, i int) []Cell {
	others := make([]Cell, 0, len(hounds)-1)
	others = append(others, hounds[:i]...)
	return append(others, hounds[i+1:]...)
}
