package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr string
	}{
		{"default is valid", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"time limit too low", func(c *GameConfig) { c.TimeLimit = 0 }, "time_limit must be between"},
		{"time limit too high", func(c *GameConfig) { c.TimeLimit = MaxTimeLimit + 1 }, "time_limit must be between"},
		{"tick interval too short", func(c *GameConfig) { c.TickIntervalMs = 5 }, "tick_interval_ms"},
		{"tick interval explicit", func(c *GameConfig) { c.TickIntervalMs = 250 }, ""},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome"},
		{"missing caught", func(c *GameConfig) { c.Messages.Caught = "" }, "messages.caught"},
		{"missing trapped", func(c *GameConfig) { c.Messages.Trapped = "" }, "messages.trapped"},
		{"missing timeout", func(c *GameConfig) { c.Messages.Timeout = "" }, "messages.timeout"},
		{"victory without verbs", func(c *GameConfig) { c.Messages.Victory = "You won!" }, "messages.victory"},
		{"share with wrong verbs", func(c *GameConfig) { c.Messages.Share = "%s won" }, "messages.share"},
		{"share with swapped verbs", func(c *GameConfig) { c.Messages.Share = "%d won in %s seconds, %d moves: %s" }, "messages.share"},
		{"share with a literal percent", func(c *GameConfig) { c.Messages.Share = "%s beat 100%% of hounds in %d seconds using %d moves! %s" }, ""},
		{"share omitted", func(c *GameConfig) { c.Messages.Share = "" }, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.mutate(config)

			err := ValidateGameConfig(config)
			if test.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), test.wantErr)
		})
	}

	require.Error(t, ValidateGameConfig(nil))
}

func TestTickInterval(t *testing.T) {
	config := DefaultConfig()
	require.Equal(t, time.Second, config.TickInterval())

	config.TickIntervalMs = 50
	require.Equal(t, 50*time.Millisecond, config.TickInterval())
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "blitz.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
		"name": "blitz",
		"description": "Fifteen seconds to escape",
		"time_limit": 15,
		"seed": 99,
		"messages": {
			"welcome": "Run!",
			"victory": "Escaped in %d seconds and %d moves",
			"caught": "Caught!",
			"trapped": "Trapped!",
			"timeout": "Too slow!"
		}
	}`), 0644))

	config, err := LoadGameConfig(valid)
	require.NoError(t, err)
	require.Equal(t, "blitz", config.Name)
	require.Equal(t, 15, config.TimeLimit)
	require.Equal(t, uint64(99), config.Seed)
	require.Equal(t, "Run!", config.Messages.Welcome)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":`), 0644))
	_, err = LoadGameConfig(broken)
	require.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name": "x", "description": "y", "time_limit": 0}`), 0644))
	_, err = LoadGameConfig(invalid)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorContains(t, err, "time_limit")

	_, err = LoadGameConfig(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"left":     Left,
		"RIGHT":    Right,
		" forward": Forward,
		"up":       Forward,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseDirection("down")
	require.ErrorIs(t, err, ErrInvalidDirection)
}

func TestDirectionTarget(t *testing.T) {
	from := Cell{5, 5}
	require.Equal(t, Cell{4, 5}, Forward.Target(from))
	require.Equal(t, Cell{5, 4}, Left.Target(from))
	require.Equal(t, Cell{5, 6}, Right.Target(from))
	require.Equal(t, from, Direction("down").Target(from))
	require.Equal(t, Cell{-1, 0}, Forward.Target(Cell{0, 0}), "Targets may leave the board")
}
