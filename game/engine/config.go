package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate timer settings
	if config.TimeLimit < MinTimeLimit || config.TimeLimit > MaxTimeLimit {
		return fmt.Errorf("config validation: time_limit must be between %d and %d, got %d", MinTimeLimit, MaxTimeLimit, config.TimeLimit)
	}
	if config.TickIntervalMs != 0 && config.TickIntervalMs < MinTickIntervalMs {
		return fmt.Errorf("config validation: tick_interval_ms must be 0 (default) or at least %d, got %d", MinTickIntervalMs, config.TickIntervalMs)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Caught == "" {
		return fmt.Errorf("config validation: messages.caught is required")
	}
	if config.Messages.Trapped == "" {
		return fmt.Errorf("config validation: messages.trapped is required")
	}
	if config.Messages.Timeout == "" {
		return fmt.Errorf("config validation: messages.timeout is required")
	}

	// Validate format strings
	if strings.Count(config.Messages.Victory, "%d") != 2 {
		return fmt.Errorf("config validation: messages.victory must contain two %%d for seconds and moves")
	}
	if config.Messages.Share != "" {
		sample := fmt.Sprintf(config.Messages.Share, AnonymousPlayer, 12, 9, "https://example.com")
		if strings.Contains(sample, "%!") {
			return fmt.Errorf("config validation: messages.share does not render with name, seconds, moves and url: %q", sample)
		}
	}

	return nil
}

// TickInterval returns the wall-clock period of one countdown tick
func (c *GameConfig) TickInterval() time.Duration {
	if c.TickIntervalMs <= 0 {
		return DefaultTickIntervalMs * time.Millisecond
	}
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// ErrInvalidConfig marks a configuration file that parses but fails
// ValidateGameConfig
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadGameConfig loads and validates a game configuration from a JSON file.
// A missing file reports fs.ErrNotExist.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns the classic one-minute game
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "Classic Hare & Hounds: reach the top row within 60 seconds",
		TimeLimit:   DefaultTimeLimit,
	}
	config.Messages.Welcome = "Help the hare reach the top row before the hounds catch it!"
	config.Messages.Victory = "Congratulations! You helped the hare escape in %d seconds with %d moves!"
	config.Messages.Caught = "The hare was caught by a hound!"
	config.Messages.Trapped = "The hare was trapped by the hounds!"
	config.Messages.Timeout = "Time's up! The hare couldn't escape in time!"
	config.Messages.Share = "%s completed Hare & Hounds in %d seconds using %d moves! Can you help the hare escape? Play now at %s"
	return config
}

// NewRand returns the random source for a config: seeded from the config when
// it pins a seed, from the clock otherwise.
func NewRand(config *GameConfig) *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}
	return rand.New(rand.NewSource(seed))
}

// InitGameStateFromConfig creates a new game: the hare on the bottom row at a
// random column and the hounds on distinct random cells of the top half.
func InitGameStateFromConfig(config *GameConfig, rng *rand.Rand) *GameState {
	if config == nil {
		config = DefaultConfig()
	}
	if rng == nil {
		rng = NewRand(config)
	}

	hare := Cell{Row: BoardSize - 1, Col: rng.Intn(BoardSize)}

	hounds := make([]Cell, 0, HoundCount)
	for len(hounds) < HoundCount {
		c := Cell{Row: rng.Intn(BoardSize / 2), Col: rng.Intn(BoardSize)}
		if c != hare && !IsHoundAt(c, hounds) {
			hounds = append(hounds, c)
		}
	}

	return &GameState{
		Hare:             hare,
		Hounds:           hounds,
		Status:           Active,
		TimeLimit:        config.TimeLimit,
		RemainingSeconds: config.TimeLimit,
		Message:          config.Messages.Welcome,
		ConfigName:       config.Name,
		History:          []MoveRecord{},
	}
}
