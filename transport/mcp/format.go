package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/hare-hounds/game/engine"
	"github.com/wricardo/hare-hounds/game/service"
)

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard draws the grid with row and column labels
func formatBoard(state *engine.GameState) string {
	rows := state.Board
	if len(rows) == 0 {
		rows = engine.RenderBoard(state.Hare, state.Hounds)
	}

	var b strings.Builder
	b.WriteString("   ")
	for c := 0; c < engine.BoardSize; c++ {
		fmt.Fprintf(&b, "%d", c)
	}
	b.WriteString("\n")
	for r, line := range rows {
		fmt.Fprintf(&b, "%2d %s\n", r, line)
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hare: (%d,%d) | Turn: %d | Time left: %ds of %ds\n",
		state.Hare.Row, state.Hare.Col, state.Turn, state.RemainingSeconds, state.TimeLimit)
	fmt.Fprintf(&b, "Hounds: %s\n\n", formatCells(state.Hounds))
	b.WriteString(formatBoard(state))

	switch state.Status {
	case engine.Won:
		b.WriteString("\n🎉 VICTORY!")
	case engine.Lost:
		fmt.Fprintf(&b, "\n💀 GAME OVER (%s)", state.Reason)
	default:
		if moves := possibleMoves(state); len(moves) > 0 {
			fmt.Fprintf(&b, "\nPossible moves: %s", strings.Join(moves, ","))
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Accepted {
		b.WriteString("✓ Move accepted\n")
	} else {
		b.WriteString("✗ Move rejected\n")
	}

	if s := result.Step; s != nil {
		b.WriteString(formatStep(*s))
	}

	if a := result.AttemptedTo; a != nil {
		fmt.Fprintf(&b, "Attempted (%d,%d): %s\n", a.Row, a.Col, a.Reason)
	}
	if !result.Accepted && result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}

	writeEvents(&b, result.Events)

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s\n", sessionID, configName)
	fmt.Fprintf(&b, "Executed %d/%d moves", result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, " (truncated to %d)", result.Limit)
	}
	b.WriteString("\n")

	if result.StopReasonCode != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StopReasonCode)
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			b.WriteString(formatStep(s))
		}
	}

	if a := result.AttemptedTo; a != nil {
		fmt.Fprintf(&b, "Attempted (%d,%d): %s\n", a.Row, a.Col, a.Reason)
	}

	writeEvents(&b, result.Events)

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatStep(s service.StepInfo) string {
	return fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) hounds=%s %s %ds\n",
		s.Idx, s.Dir, s.From.Row, s.From.Col, s.To.Row, s.To.Col,
		formatCells(s.Hounds), s.Status, s.Remaining)
}

func writeEvents(b *strings.Builder, events []service.GameEvent) {
	if len(events) == 0 {
		return
	}
	b.WriteString("Events:\n")
	for _, event := range events {
		fmt.Fprintf(b, "- %s: %s\n", event.Type, event.Message)
	}
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d/%d, %d total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		b.WriteString("No moves yet\n")
		return b.String()
	}

	for _, m := range history.Moves {
		fmt.Fprintf(&b, "Turn %d: %s (%d,%d)→(%d,%d) hounds %s → %s [%s",
			m.Turn, m.Direction, m.HareFrom.Row, m.HareFrom.Col, m.HareTo.Row, m.HareTo.Col,
			formatCells(m.HoundsBefore), formatCells(m.HoundsAfter), m.Status)
		if m.Reason != "" {
			fmt.Fprintf(&b, ": %s", m.Reason)
		}
		fmt.Fprintf(&b, ", %ds]\n", m.Elapsed)
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}

// possibleMoves lists the directions that stay on the board
func possibleMoves(state *engine.GameState) []string {
	var moves []string
	for _, d := range []engine.Direction{engine.Forward, engine.Left, engine.Right} {
		if engine.IsOnBoard(d.Target(state.Hare)) {
			moves = append(moves, string(d))
		}
	}
	return moves
}

func describeCell(state *engine.GameState, cell engine.Cell) string {
	if !engine.IsOnBoard(cell) {
		return fmt.Sprintf("Cell (%d,%d) is off the board. Rows and columns run 0-%d.",
			cell.Row, cell.Col, engine.BoardSize-1)
	}

	var occupant string
	switch {
	case cell == state.Hare && engine.IsHoundAt(cell, state.Hounds):
		occupant = "The hare and a hound (caught)"
	case cell == state.Hare:
		occupant = "The hare"
	case engine.IsHoundAt(cell, state.Hounds):
		occupant = "A hound"
	default:
		occupant = "Empty"
	}

	reach := "Not reachable this turn"
	for _, d := range []engine.Direction{engine.Forward, engine.Left, engine.Right} {
		if d.Target(state.Hare) != cell {
			continue
		}
		if engine.IsHoundAt(cell, state.Hounds) {
			reach = fmt.Sprintf("Reachable with %s, but a hound is there: moving in loses", d)
		} else {
			reach = fmt.Sprintf("Reachable with %s", d)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d,%d):\n", cell.Row, cell.Col)
	fmt.Fprintf(&b, "Occupant: %s\n", occupant)
	fmt.Fprintf(&b, "Hare move: %s\n", reach)
	fmt.Fprintf(&b, "Distance from hare: %d\n", engine.ManhattanDistance(state.Hare, cell))
	if cell.Row == engine.TargetRow {
		b.WriteString("This is the target row.\n")
	}
	return b.String()
}

func formatCells(cells []engine.Cell) string {
	if len(cells) == 0 {
		return "none"
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return strings.Join(parts, " ")
}
