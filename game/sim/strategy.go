package sim

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/wricardo/hare-hounds/game/engine"
)

// Strategy picks the next hare move. rng is private to the game being
// played, so strategies stay deterministic for a given seed.
type Strategy func(state *engine.GameState, rng *rand.Rand) engine.Direction

var strategies = map[string]Strategy{
	"forward": Forward,
	"random":  Random,
	"dodge":   Dodge,
}

// Lookup returns the named strategy
func Lookup(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, StrategyNames())
	}
	return s, nil
}

// StrategyNames lists the registered strategies in alphabetical order
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Forward always runs straight for the top row
func Forward(state *engine.GameState, rng *rand.Rand) engine.Direction {
	return engine.Forward
}

// Random picks uniformly among the moves that stay on the board
func Random(state *engine.GameState, rng *rand.Rand) engine.Direction {
	moves := legalMoves(state)
	return moves[rng.Intn(len(moves))]
}

// Dodge prefers forward but steps aside from cells next to hounds. Moves onto
// a hound are never chosen while another move exists.
func Dodge(state *engine.GameState, rng *rand.Rand) engine.Direction {
	moves := legalMoves(state)

	best := moves[0]
	bestScore := dodgeScore(state, best)
	for _, d := range moves[1:] {
		if score := dodgeScore(state, d); score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func dodgeScore(state *engine.GameState, d engine.Direction) int {
	target := d.Target(state.Hare)
	if engine.IsHoundAt(target, state.Hounds) {
		return -100
	}

	score := 0
	if d == engine.Forward {
		score += 2
	}
	for _, h := range state.Hounds {
		if h.Row < target.Row-1 || h.Row > target.Row+1 {
			continue
		}
		if h.Col >= target.Col-1 && h.Col <= target.Col+1 {
			score -= 3
		}
	}
	return score
}

// legalMoves returns the on-board moves in forward, left, right order. The
// hare can always move forward or sideways, so the result is never empty.
func legalMoves(state *engine.GameState) []engine.Direction {
	moves := make([]engine.Direction, 0, 3)
	for _, d := range []engine.Direction{engine.Forward, engine.Left, engine.Right} {
		if engine.IsOnBoard(d.Target(state.Hare)) {
			moves = append(moves, d)
		}
	}
	return moves
}
