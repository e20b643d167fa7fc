// Command analyze plays simulated Hare & Hounds games for every configuration
// in the configs directory and prints how each scripted hare strategy fares.
// Results can also be written to a parquet file for offline analysis.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/hare-hounds/game/config"
	"github.com/wricardo/hare-hounds/game/sim"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "simulate games per configuration and report strategy outcomes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringSliceFlag{
				Name:  "config",
				Usage: "config IDs to analyze (default: all)",
			},
			&cli.StringSliceFlag{
				Name:  "strategy",
				Usage: fmt.Sprintf("hare strategies to simulate %v (default: all)", sim.StrategyNames()),
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 200,
				Usage: "games per strategy and configuration",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "seed of the first game",
			},
			&cli.IntFlag{
				Name:  "ticks-per-move",
				Value: 1,
				Usage: "countdown ticks that pass before each hare move",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "parallel simulations (default: number of CPUs)",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "write every game result to this parquet file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: analyze,
	}
}

func analyze(ctx context.Context, cmd *cli.Command) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	ids := cmd.StringSlice("config")
	if len(ids) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			ids = append(ids, info.ConfigID)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no configurations found in %s", cmd.String("config-dir"))
	}

	workers := int(cmd.Int("workers"))
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var rows []sim.ResultRow
	for _, id := range ids {
		cfg, err := manager.LoadConfig(id)
		if err != nil {
			return fmt.Errorf("config %s: %w", id, err)
		}

		results, err := sim.Run(ctx, sim.Options{
			Config:       cfg,
			Strategies:   cmd.StringSlice("strategy"),
			Games:        int(cmd.Int("games")),
			Seed:         cmd.Uint64("seed"),
			TicksPerMove: int(cmd.Int("ticks-per-move")),
			Workers:      workers,
		})
		if err != nil {
			return fmt.Errorf("config %s: %w", id, err)
		}

		report(cmd.Writer, id, cfg.TimeLimit, sim.Summarize(results))
		rows = append(rows, sim.Rows(id, results)...)
	}

	if out := cmd.String("out"); out != "" {
		if err := sim.WriteParquet(out, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.Writer, "\nWrote %d results to %s\n", len(rows), out)
	}
	return nil
}

// report prints one configuration's summary table
func report(w io.Writer, id string, timeLimit int, summaries []sim.Summary) {
	fmt.Fprintf(w, "\n=== %s (%ds) ===\n", id, timeLimit)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tGAMES\tWIN%\tCAUGHT\tTRAPPED\tTIMEOUT\tAVG TURNS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%d\t%d\t%d\t%.1f\n",
			s.Strategy, s.Games, 100*s.WinRate(), s.Caught, s.Trapped, s.Timeout, s.AvgTurns)
	}
	tw.Flush()
}
