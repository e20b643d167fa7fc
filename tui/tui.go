// Package tui is the terminal front end for a single local game.
//
// The bubbletea update loop is the only goroutine that touches the engine:
// the countdown runs on a clock.Manual fired by tea.Tick messages, so moves
// and ticks never race.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wricardo/hare-hounds/game/clock"
	"github.com/wricardo/hare-hounds/game/engine"
)

// TickMsg advances the countdown by one tick
type TickMsg time.Time

// Model is the bubbletea model of one game
type Model struct {
	engine *engine.GameEngine
	clock  *clock.Manual
	config *engine.GameConfig
	last   *lastEvent

	notice   string
	quitting bool
}

// lastEvent is written by the engine listener and read by View
type lastEvent struct {
	event engine.Event
	count int
}

// New starts a game with a manual countdown driven by the model
func New(config *engine.GameConfig, opts ...engine.Option) (Model, error) {
	clk := clock.NewManual()
	last := &lastEvent{}

	opts = append(opts,
		engine.WithScheduler(clk),
		engine.WithListener(func(ev engine.Event) {
			last.event = ev
			last.count++
		}),
	)

	e, err := engine.NewEngine(config, opts...)
	if err != nil {
		return Model{}, err
	}
	last.event = engine.Event{Type: engine.EventReset, State: e.State()}

	return Model{
		engine: e,
		clock:  clk,
		config: config,
		last:   last,
		notice: config.Messages.Welcome,
	}, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.config.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init starts the countdown
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles keys and ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.engine.Close()
			return m, tea.Quit
		case "r":
			m.engine.Reset()
			m.notice = "New game"
		case "left", "h":
			m.move(engine.Left)
		case "right", "l":
			m.move(engine.Right)
		case "up", "k":
			m.move(engine.Forward)
		}
		return m, nil

	case TickMsg:
		// Fire is a no-op once the game is over; keep ticking so a reset
		// picks the countdown back up
		m.clock.Fire()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) move(d engine.Direction) {
	if m.engine.IsGameOver() {
		m.notice = "Game over. Press r to play again"
		return
	}
	if !m.engine.Move(d) {
		m.notice = fmt.Sprintf("Can't move %s from here", d)
		return
	}
	m.notice = ""
}

// State returns the last snapshot the engine published
func (m Model) State() *engine.GameState {
	return m.last.event.State
}

// View renders the board and status line
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.State()
	var b strings.Builder

	fmt.Fprintf(&b, "Hare & Hounds - %s\n", m.config.Name)
	fmt.Fprintf(&b, "Time left: %3ds   Turn: %d\n\n", state.RemainingSeconds, state.Turn)

	for _, row := range engine.RenderBoard(state.Hare, state.Hounds) {
		b.WriteString("  ")
		for _, ch := range row {
			b.WriteRune(ch)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case state.IsOver():
		b.WriteString(state.Message + "\n")
		b.WriteString("r: play again   q: quit\n")
	default:
		if m.notice != "" {
			b.WriteString(m.notice + "\n")
		} else {
			b.WriteByte('\n')
		}
		b.WriteString("←/→/↑: move   r: reset   q: quit\n")
	}

	return b.String()
}

// Run plays one interactive game until the user quits or ctx is done
func Run(ctx context.Context, config *engine.GameConfig) error {
	m, err := New(config)
	if err != nil {
		return err
	}
	defer m.engine.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
