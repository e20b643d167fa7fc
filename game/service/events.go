package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wricardo/hare-hounds/game/engine"
)

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Game reset with a new board",
		Timestamp: time.Now(),
	}
}

// extractMoveEvents describes an accepted move: the hare step, the hound
// reply if the hounds moved, and the outcome if the game ended
func extractMoveEvents(before, after *engine.GameState, dir engine.Direction) []GameEvent {
	now := time.Now()
	hare := after.Hare
	events := []GameEvent{{
		Type:      "hare_move",
		Message:   fmt.Sprintf("Hare moved %s to (%d,%d)", dir, hare.Row, hare.Col),
		Timestamp: now,
		Position:  &hare,
	}}

	if !sameCells(before.Hounds, after.Hounds) {
		events = append(events, GameEvent{
			Type:      "hound_move",
			Message:   "Hounds moved to " + formatCells(after.Hounds),
			Timestamp: now,
		})
	}

	if after.IsOver() {
		if code := outcomeCode(after); code != "" {
			events = append(events, GameEvent{
				Type:      code,
				Message:   after.Message,
				Timestamp: now,
				Position:  &hare,
			})
		}
	}

	return events
}

// outcomeCode names a terminal state: victory, caught, trapped or timeout
func outcomeCode(state *engine.GameState) string {
	switch state.Status {
	case engine.Won:
		return "victory"
	case engine.Lost:
		return string(state.Reason)
	}
	return ""
}

func stepInfo(idx int, dir engine.Direction, before, after *engine.GameState) StepInfo {
	return StepInfo{
		Idx:       idx,
		Turn:      after.Turn,
		Dir:       string(dir),
		From:      before.Hare,
		To:        after.Hare,
		Hounds:    after.Hounds,
		Status:    after.Status,
		Remaining: after.RemainingSeconds,
	}
}

// attemptInfo explains why a move from state was rejected
func attemptInfo(state *engine.GameState, dir engine.Direction) *AttemptInfo {
	target := dir.Target(state.Hare)
	info := &AttemptInfo{
		Row:     target.Row,
		Col:     target.Col,
		OnBoard: engine.IsOnBoard(target),
	}

	switch {
	case state.IsOver():
		info.Reason = "game_over"
	case !info.OnBoard:
		info.Reason = "off_board"
	default:
		info.Reason = "rejected"
	}
	return info
}

func rejectionMessage(attempt *AttemptInfo, state *engine.GameState) string {
	switch attempt.Reason {
	case "game_over":
		return "The game is over. Reset to play again. " + state.Message
	case "off_board":
		return fmt.Sprintf("Cannot move to (%d,%d): off the board", attempt.Row, attempt.Col)
	}
	return state.Message
}

// sameCells compares hound positions ignoring order, since the hounds are
// reordered every turn
func sameCells(a, b []engine.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for _, c := range a {
		if !engine.IsHoundAt(c, b) {
			return false
		}
	}
	return true
}

func formatCells(cells []engine.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return strings.Join(parts, " ")
}

func sortSessions(sessions []*SessionInfo) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}
