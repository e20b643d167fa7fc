package engine

// Status is the lifecycle state of a game
type Status string

const (
	Active Status = "active"
	Won    Status = "won"
	Lost   Status = "lost"
)

// LossReason explains why a game was lost. It is empty unless Status is Lost.
type LossReason string

const (
	Caught  LossReason = "caught"
	Trapped LossReason = "trapped"
	Timeout LossReason = "timeout"
)

// Direction is a hare move request
type Direction string

const (
	Left    Direction = "left"
	Right   Direction = "right"
	Forward Direction = "forward"
)

const (
	// BoardSize is the fixed side length of the square grid
	BoardSize = 10
	// HoundCount is the number of pursuers in every game
	HoundCount = 4
	// TargetRow is the row the hare must reach to win
	TargetRow = 0
	// MaxEscapeRoutes caps the routes enumerated per hound turn. Routes past
	// the cap never reach the blocking term of ScoreHound.
	MaxEscapeRoutes = 64

	// Validation constants
	MinTimeLimit          = 1
	MaxTimeLimit          = 3600
	DefaultTimeLimit      = 60
	DefaultTickIntervalMs = 1000
	MinTickIntervalMs     = 10
)

// Cell is a board coordinate, 0-indexed from the top-left corner
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TimeLimit      int    `json:"time_limit"`
	TickIntervalMs int    `json:"tick_interval_ms,omitempty"`
	Seed           uint64 `json:"seed,omitempty"`
	Messages       struct {
		Welcome string `json:"welcome"`
		Victory string `json:"victory"`
		Caught  string `json:"caught"`
		Trapped string `json:"trapped"`
		Timeout string `json:"timeout"`
		Share   string `json:"share,omitempty"`
	} `json:"messages"`
}

// GameState is a snapshot of one game. The engine hands out copies, so a
// GameState obtained from State is never mutated afterwards.
type GameState struct {
	Hare             Cell         `json:"hare"`
	Hounds           []Cell       `json:"hounds"`
	Status           Status       `json:"status"`
	Reason           LossReason   `json:"reason,omitempty"`
	Turn             int          `json:"turn"`
	ElapsedSeconds   int          `json:"elapsed_seconds"`
	RemainingSeconds int          `json:"remaining_seconds"`
	TimeLimit        int          `json:"time_limit"`
	Message          string       `json:"message"`
	ConfigName       string       `json:"config_name"`
	History          []MoveRecord `json:"history"`

	// Computed helper view (not required for core game logic)
	Board []string `json:"board,omitempty"`
}

// MoveRecord is one accepted hare move and the hound response to it
type MoveRecord struct {
	Turn         int        `json:"turn"`
	Direction    Direction  `json:"direction"`
	HareFrom     Cell       `json:"hare_from"`
	HareTo       Cell       `json:"hare_to"`
	HoundsBefore []Cell     `json:"hounds_before"`
	HoundsAfter  []Cell     `json:"hounds_after"`
	Status       Status     `json:"status"`
	Reason       LossReason `json:"reason,omitempty"`
	Elapsed      int        `json:"elapsed_seconds"`
}

// TurnOutcome is the result of one hound turn
type TurnOutcome int

const (
	TurnContinues TurnOutcome = iota
	TurnCaptured
)

// EventType names the notification emitted after an accepted event
type EventType string

const (
	EventMove     EventType = "move"
	EventTick     EventType = "tick"
	EventReset    EventType = "reset"
	EventGameOver EventType = "game_over"
)

// Event is the one-way notification the engine emits after each accepted
// event. State is a snapshot owned by the receiver.
type Event struct {
	Type  EventType  `json:"type"`
	State *GameState `json:"state"`
}

// Listener receives engine events. It runs synchronously inside the event
// that produced it and must not call back into the engine.
type Listener func(Event)

// Scheduler drives the countdown. Schedule registers fn to be called once per
// period until the returned cancel func is called. Cancel must be idempotent.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}
