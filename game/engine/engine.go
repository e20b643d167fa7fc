package engine

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	State() *GameState
	Reset() *GameState
	IsGameOver() bool
	Status() Status
	Reason() LossReason

	// Events
	Move(direction Direction) bool
	Tick() bool

	// Configuration
	GetConfig() *GameConfig

	// History
	GetMoveHistory() []MoveRecord
	GetLastMove() *MoveRecord

	// Close releases the tick schedule without changing the game
	Close()
}

// Option customises a GameEngine
type Option func(*GameEngine)

// WithRand injects the random source used for initial placement
func WithRand(rng *rand.Rand) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// WithScheduler attaches the countdown scheduler. Without one the engine only
// advances the clock when Tick is called directly.
func WithScheduler(s Scheduler) Option {
	return func(e *GameEngine) {
		e.scheduler = s
	}
}

// WithListener registers the receiver of engine events
func WithListener(l Listener) Option {
	return func(e *GameEngine) {
		e.listener = l
	}
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize moves and ticks.
type GameEngine struct {
	state  *GameState
	config *GameConfig

	rng        *rand.Rand
	scheduler  Scheduler
	listener   Listener
	cancelTick func()
}

// NewEngine creates a new game with the provided configuration and starts its
// countdown
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(config)
	}

	e.state = InitGameStateFromConfig(config, e.rng)
	e.startClock()
	return e, nil
}

// State returns a snapshot of the current game
func (e *GameEngine) State() *GameState {
	return e.state.Clone()
}

// Move attempts to move the hare. It returns false when the request was
// rejected and nothing changed.
func (e *GameEngine) Move(direction Direction) bool {
	if !e.state.MoveHare(direction, e.config) {
		return false
	}
	e.afterEvent(EventMove)
	return true
}

// Tick advances the countdown by one second
func (e *GameEngine) Tick() bool {
	if !e.state.Tick(e.config) {
		return false
	}
	e.afterEvent(EventTick)
	return true
}

// Reset starts a new game with fresh placements and a fresh countdown
func (e *GameEngine) Reset() *GameState {
	e.stopClock()
	e.state = InitGameStateFromConfig(e.config, e.rng)
	e.startClock()
	e.emit(EventReset)
	return e.State()
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.IsOver()
}

// Status returns the current game status
func (e *GameEngine) Status() Status {
	return e.state.Status
}

// Reason returns why the game was lost, or "" if it was not
func (e *GameEngine) Reason() LossReason {
	return e.state.Reason
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// GetMoveHistory returns the moves of the current game
func (e *GameEngine) GetMoveHistory() []MoveRecord {
	return e.State().History
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveRecord {
	history := e.GetMoveHistory()
	if len(history) == 0 {
		return nil
	}
	return &history[len(history)-1]
}

// Close cancels the countdown. The game state is left as it is.
func (e *GameEngine) Close() {
	e.stopClock()
}

// String renders the board for debugging
func (e *GameEngine) String() string {
	s := fmt.Sprintf("turn=%d status=%s reason=%s remaining=%ds\n",
		e.state.Turn, e.state.Status, e.state.Reason, e.state.RemainingSeconds)
	for _, row := range RenderBoard(e.state.Hare, e.state.Hounds) {
		s += row + "\n"
	}
	return s
}

// afterEvent stops the clock on a terminal transition and notifies the
// listener once for the accepted event
func (e *GameEngine) afterEvent(t EventType) {
	if e.state.IsOver() {
		e.stopClock()
		t = EventGameOver
	}
	e.emit(t)
}

func (e *GameEngine) emit(t EventType) {
	if e.listener != nil {
		e.listener(Event{Type: t, State: e.State()})
	}
}

func (e *GameEngine) startClock() {
	if e.scheduler == nil {
		return
	}
	e.cancelTick = e.scheduler.Schedule(func() {
		e.Tick()
	})
}

func (e *GameEngine) stopClock() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}
