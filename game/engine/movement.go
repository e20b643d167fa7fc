package engine

import "fmt"

// houndTurn is the hound reply used by MoveHare; tests substitute scripted turns
var houndTurn = RunHoundTurn

// IsOver reports whether the game reached a terminal state
func (gs *GameState) IsOver() bool {
	return gs.Status != Active
}

// MoveHare applies one hare move and, if the game goes on, the hound reply.
// It returns false when the move is rejected: the game is over or the target
// is off the board. A rejected move changes nothing.
func (gs *GameState) MoveHare(direction Direction, config *GameConfig) bool {
	if gs.IsOver() {
		return false
	}

	target := direction.Target(gs.Hare)
	if target == gs.Hare || !IsOnBoard(target) {
		return false
	}

	record := MoveRecord{
		Direction:    direction,
		HareFrom:     gs.Hare,
		HareTo:       target,
		HoundsBefore: cloneCells(gs.Hounds),
	}

	gs.Turn++
	gs.Hare = target

	switch {
	case IsHoundAt(gs.Hare, gs.Hounds):
		// ran into a hound: the hounds never get their turn
		gs.endGame(Lost, Caught, config)
	case gs.Hare.Row == TargetRow:
		gs.endGame(Won, "", config)
	default:
		if houndTurn(gs.Hounds, gs.Hare) == TurnCaptured {
			gs.endGame(Lost, Caught, config)
		} else if IsTrapped(gs.Hare, gs.Hounds) {
			gs.endGame(Lost, Trapped, config)
		} else {
			gs.Message = fmt.Sprintf("Turn %d: hare at (%d,%d), %ds left",
				gs.Turn, gs.Hare.Row, gs.Hare.Col, gs.RemainingSeconds)
		}
	}

	record.HoundsAfter = cloneCells(gs.Hounds)
	gs.addMoveToHistory(record)
	return true
}

// Tick advances the countdown by one second. It returns false once the game
// is over, so a tick that races a terminal transition is ignored.
func (gs *GameState) Tick(config *GameConfig) bool {
	if gs.IsOver() {
		return false
	}

	gs.RemainingSeconds--
	gs.ElapsedSeconds++
	if gs.RemainingSeconds <= 0 {
		gs.RemainingSeconds = 0
		gs.endGame(Lost, Timeout, config)
	}
	return true
}

// endGame enters a terminal state and sets the outcome message
func (gs *GameState) endGame(status Status, reason LossReason, config *GameConfig) {
	gs.Status = status
	gs.Reason = reason

	switch {
	case status == Won:
		gs.Message = fmt.Sprintf(config.Messages.Victory, gs.ElapsedSeconds, gs.Turn)
	case reason == Caught:
		gs.Message = config.Messages.Caught
	case reason == Trapped:
		gs.Message = config.Messages.Trapped
	case reason == Timeout:
		gs.Message = config.Messages.Timeout
	}
}

// addMoveToHistory appends a move to the current game's history
func (gs *GameState) addMoveToHistory(record MoveRecord) {
	record.Turn = gs.Turn
	record.Status = gs.Status
	record.Reason = gs.Reason
	record.Elapsed = gs.ElapsedSeconds
	gs.History = append(gs.History, record)
}

// Clone returns a deep copy of the state with the board view filled in
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Hounds = cloneCells(gs.Hounds)
	c.History = make([]MoveRecord, len(gs.History))
	for i, rec := range gs.History {
		rec.HoundsBefore = cloneCells(rec.HoundsBefore)
		rec.HoundsAfter = cloneCells(rec.HoundsAfter)
		c.History[i] = rec
	}
	c.Board = RenderBoard(gs.Hare, gs.Hounds)
	return &c
}
