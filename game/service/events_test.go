package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wricardo/hare-hounds/game/engine"
)

func TestExtractMoveEvents(t *testing.T) {
	before := &engine.GameState{
		Hare:   engine.Cell{Row: 2, Col: 4},
		Hounds: []engine.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 9}},
		Status: engine.Active,
	}

	t.Run("hounds reordered but not moved", func(t *testing.T) {
		after := &engine.GameState{
			Hare:   engine.Cell{Row: 1, Col: 4},
			Hounds: []engine.Cell{{Row: 0, Col: 9}, {Row: 0, Col: 0}},
			Status: engine.Active,
		}
		events := extractMoveEvents(before, after, engine.Forward)
		require.Len(t, events, 1)
		require.Equal(t, "hare_move", events[0].Type)
		require.Equal(t, "Hare moved forward to (1,4)", events[0].Message)
		require.Equal(t, &engine.Cell{Row: 1, Col: 4}, events[0].Position)
	})

	t.Run("hounds moved and caught the hare", func(t *testing.T) {
		after := &engine.GameState{
			Hare:    engine.Cell{Row: 1, Col: 4},
			Hounds:  []engine.Cell{{Row: 1, Col: 4}, {Row: 0, Col: 9}},
			Status:  engine.Lost,
			Reason:  engine.Caught,
			Message: "caught!",
		}
		events := extractMoveEvents(before, after, engine.Forward)
		require.Len(t, events, 3)
		require.Equal(t, "hound_move", events[1].Type)
		require.Equal(t, "Hounds moved to (1,4) (0,9)", events[1].Message)
		require.Equal(t, "caught", events[2].Type)
		require.Equal(t, "caught!", events[2].Message)
	})

	t.Run("victory", func(t *testing.T) {
		after := &engine.GameState{
			Hare:   engine.Cell{Row: 0, Col: 4},
			Hounds: before.Hounds,
			Status: engine.Won,
		}
		events := extractMoveEvents(before, after, engine.Forward)
		require.Len(t, events, 2)
		require.Equal(t, "victory", events[1].Type)
	})
}

func TestAttemptInfo(t *testing.T) {
	state := &engine.GameState{Hare: engine.Cell{Row: 9, Col: 0}, Status: engine.Active}

	info := attemptInfo(state, engine.Left)
	require.Equal(t, &AttemptInfo{Row: 9, Col: -1, OnBoard: false, Reason: "off_board"}, info)
	require.Equal(t, "Cannot move to (9,-1): off the board", rejectionMessage(info, state))

	state.Status = engine.Lost
	state.Reason = engine.Timeout
	state.Message = "Time's up!"
	info = attemptInfo(state, engine.Forward)
	require.Equal(t, "game_over", info.Reason)
	require.True(t, info.OnBoard)
	require.Equal(t, "The game is over. Reset to play again. Time's up!", rejectionMessage(info, state))
}

func TestOutcomeCode(t *testing.T) {
	require.Equal(t, "", outcomeCode(&engine.GameState{Status: engine.Active}))
	require.Equal(t, "victory", outcomeCode(&engine.GameState{Status: engine.Won}))
	require.Equal(t, "trapped", outcomeCode(&engine.GameState{Status: engine.Lost, Reason: engine.Trapped}))
	require.Equal(t, "timeout", outcomeCode(&engine.GameState{Status: engine.Lost, Reason: engine.Timeout}))
}
