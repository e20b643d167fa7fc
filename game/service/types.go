package service

import (
	"sync"
	"time"

	"github.com/wricardo/hare-hounds/game/engine"
)

// MaxBulkMoves caps the moves accepted by one BulkMove call
const MaxBulkMoves = 50

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Accepted    bool              `json:"accepted"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Accepted       bool              `json:"accepted"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // off_board|invalid_direction|game_over|won|caught|trapped|timeout
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos engine.Cell `json:"start_pos"`
	EndPos   engine.Cell `json:"end_pos"`

	Steps       []StepInfo   `json:"steps,omitempty"`
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	GameOver bool   `json:"game_over"`
	Message  string `json:"message,omitempty"`
}

// StepInfo is a compact record of one accepted hare move
type StepInfo struct {
	Idx       int           `json:"idx"`
	Turn      int           `json:"turn"`
	Dir       string        `json:"dir"`
	From      engine.Cell   `json:"from"`
	To        engine.Cell   `json:"to"`
	Hounds    []engine.Cell `json:"hounds"`
	Status    engine.Status `json:"status"`
	Remaining int           `json:"remaining_seconds"`
}

// AttemptInfo details a rejected move target
type AttemptInfo struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	OnBoard bool   `json:"on_board"`
	Reason  string `json:"reason"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "reset", "hare_move", "hound_move", "victory", "caught", "trapped", "timeout"
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Position  *engine.Cell `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ShareResult is the text a player can post about a game
type ShareResult struct {
	SessionID string        `json:"session_id"`
	Player    string        `json:"player"`
	Status    engine.Status `json:"status"`
	Message   string        `json:"message"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	TimeLimit   int    `json:"time_limit"`
}

// Session represents an active game session. The embedded mutex serializes
// every call into Engine, including countdown ticks.
type Session struct {
	sync.Mutex

	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
