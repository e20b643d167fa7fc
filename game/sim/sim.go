// Package sim plays Hare & Hounds games headlessly with scripted hare
// strategies and summarizes the outcomes.
package sim

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/wricardo/hare-hounds/game/clock"
	"github.com/wricardo/hare-hounds/game/engine"
)

// DefaultMaxMoves bounds a game whose clock never ticks
const DefaultMaxMoves = 1000

// Options configures a batch of simulated games
type Options struct {
	Config     *engine.GameConfig
	Strategies []string
	// Games is the number of games per strategy
	Games int
	// Seed of the first game; game i uses Seed+i, shared across strategies
	Seed uint64
	// TicksPerMove is how many countdown ticks pass before each hare move
	TicksPerMove int
	MaxMoves     int
	Workers      int
}

// Result is the outcome of one simulated game
type Result struct {
	Strategy string
	Seed     uint64
	Status   engine.Status
	Reason   engine.LossReason
	Turns    int
	Elapsed  int
	Rejected int
	// FinalRow is the hare's row when the game ended
	FinalRow int
}

// Play runs one game to completion, or until maxMoves moves were attempted
func Play(config *engine.GameConfig, name string, strategy Strategy, seed uint64, ticksPerMove, maxMoves int) (Result, error) {
	if maxMoves <= 0 {
		maxMoves = DefaultMaxMoves
	}

	clk := clock.NewManual()
	e, err := engine.NewEngine(config,
		engine.WithRand(rand.New(rand.NewSource(seed))),
		engine.WithScheduler(clk),
	)
	if err != nil {
		return Result{}, err
	}
	defer e.Close()

	rng := rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15))
	rejected := 0

	for attempt := 0; attempt < maxMoves && !e.IsGameOver(); attempt++ {
		for i := 0; i < ticksPerMove; i++ {
			if !clk.Fire() {
				break
			}
		}
		if e.IsGameOver() {
			break
		}

		if !e.Move(strategy(e.State(), rng)) {
			rejected++
		}
	}

	state := e.State()
	return Result{
		Strategy: name,
		Seed:     seed,
		Status:   state.Status,
		Reason:   state.Reason,
		Turns:    state.Turn,
		Elapsed:  state.ElapsedSeconds,
		Rejected: rejected,
		FinalRow: state.Hare.Row,
	}, nil
}

type job struct {
	name     string
	strategy Strategy
	seed     uint64
}

// Run plays opts.Games games for every strategy on a pool of workers.
// Results are ordered by strategy, then seed.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Config == nil {
		opts.Config = engine.DefaultConfig()
	}
	if err := engine.ValidateGameConfig(opts.Config); err != nil {
		return nil, err
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = StrategyNames()
	}
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	jobs := make([]job, 0, len(opts.Strategies)*opts.Games)
	for _, name := range opts.Strategies {
		strategy, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < opts.Games; i++ {
			jobs = append(jobs, job{name: name, strategy: strategy, seed: opts.Seed + uint64(i)})
		}
	}

	queue := make(chan job)
	results := make([]Result, 0, len(jobs))
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				res, err := Play(opts.Config, j.name, j.strategy, j.seed, opts.TicksPerMove, opts.MaxMoves)
				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				if err == nil {
					results = append(results, res)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, j := range jobs {
		select {
		case queue <- j:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Strategy != results[j].Strategy {
			return results[i].Strategy < results[j].Strategy
		}
		return results[i].Seed < results[j].Seed
	})

	log.Debug().Int("games", len(results)).Int("workers", opts.Workers).Msg("simulation finished")
	return results, nil
}

// Summary aggregates the results of one strategy
type Summary struct {
	Strategy string
	Games    int
	Won      int
	Caught   int
	Trapped  int
	Timeout  int
	// Unfinished games hit the move limit while still active
	Unfinished int
	AvgTurns   float64
}

// WinRate returns the fraction of games won
func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Games)
}

// Summarize groups results per strategy, in strategy order
func Summarize(results []Result) []Summary {
	index := map[string]int{}
	var summaries []Summary
	turns := map[string]int{}

	for _, r := range results {
		i, ok := index[r.Strategy]
		if !ok {
			i = len(summaries)
			index[r.Strategy] = i
			summaries = append(summaries, Summary{Strategy: r.Strategy})
		}
		s := &summaries[i]
		s.Games++
		turns[r.Strategy] += r.Turns

		switch {
		case r.Status == engine.Won:
			s.Won++
		case r.Reason == engine.Caught:
			s.Caught++
		case r.Reason == engine.Trapped:
			s.Trapped++
		case r.Reason == engine.Timeout:
			s.Timeout++
		default:
			s.Unfinished++
		}
	}

	for i := range summaries {
		s := &summaries[i]
		s.AvgTurns = float64(turns[s.Strategy]) / float64(s.Games)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Strategy < summaries[j].Strategy })
	return summaries
}
