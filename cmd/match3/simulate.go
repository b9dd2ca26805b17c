package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/match3/core"
	"github.com/vovakirdan/match3/internal/games/match3/layouts"
)

var (
	flagSwaps     int
	flagMaxRounds int
	flagMaxSteps  int
	flagAnySwap   bool
	flagSimLayout string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run random swaps headlessly and report the cascades",
	Long: `Plays random swaps against the board engine on a virtual clock, so
settle delays cost nothing. Each swap runs until the board is still again.

By default only swaps that make a match are picked; --any also picks swaps
that get reverted. The run stops early when no swap makes a match.

A cascade longer than --max-rounds, or one that does not settle within
--max-steps engine steps, fails the run.

Examples:
  match3 simulate
  match3 simulate --swaps 200 --seed 7 --log-level debug
  match3 simulate --layout walled --any`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSwaps, "swaps", 20, "Number of swaps to play")
	simulateCmd.Flags().IntVar(&flagMaxRounds, "max-rounds", 50, "Fail when one swap cascades for more rounds")
	simulateCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 10000, "Engine steps allowed per swap")
	simulateCmd.Flags().BoolVar(&flagAnySwap, "any", false, "Also pick swaps that do not match")
	simulateCmd.Flags().StringVar(&flagSimLayout, "layout", "", "Starting board: layout id or YAML file")
}

// simOptions controls a headless run.
type simOptions struct {
	Swaps     int
	MaxRounds int
	MaxSteps  int
	AnySwap   bool
}

// simResult totals a headless run.
type simResult struct {
	Swaps    int
	Reverted int
	Rounds   int
	Removed  int
	Spawned  int
	Longest  int
	Stuck    bool
}

// errRoundCap is returned when one swap cascades for too many rounds.
var errRoundCap = errors.New("cascade exceeded round cap")

func runSimulate(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail(err)
	}

	fileCfg, err := config.Load(flagConfig)
	if err != nil {
		fail(err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := fileCfg.ToEngineConfig(seed)
	opts := []core.Option{core.WithLogger(logger)}

	var eng *core.Engine
	if flagSimLayout != "" {
		l, err := layouts.Resolve(flagSimLayout, fileCfg.Layouts.Dir)
		if err != nil {
			fail(err)
		}
		eng, err = l.NewEngine(cfg, opts...)
		if err != nil {
			fail(err)
		}
	} else {
		eng, err = core.New(cfg, opts...)
		if err != nil {
			fail(err)
		}
	}

	fmt.Printf("Seed %d, starting board:\n%s\n\n", seed, eng.Board())

	res, err := simulate(eng, core.NewRand(seed+1), simOptions{
		Swaps:     flagSwaps,
		MaxRounds: flagMaxRounds,
		MaxSteps:  flagMaxSteps,
		AnySwap:   flagAnySwap,
	}, os.Stdout, logger)
	if err != nil {
		fail(err)
	}

	fmt.Println()
	fmt.Printf("Swaps:     %d (%d reverted)\n", res.Swaps, res.Reverted)
	fmt.Printf("Rounds:    %d (longest cascade %d)\n", res.Rounds, res.Longest)
	fmt.Printf("Removed:   %d\n", res.Removed)
	fmt.Printf("Spawned:   %d\n", res.Spawned)
	fmt.Printf("Clock:     %s\n", eng.Elapsed())
	fmt.Printf("Snapshot:  %016x\n", eng.Snapshot())
	if res.Stuck {
		fmt.Println("Stopped:   no swap makes a match")
	}
	fmt.Printf("\nFinal board:\n%s\n", eng.Board())
}

// simulate plays up to opts.Swaps random swaps picked with pick, writing one
// line per swap to w.
func simulate(eng *core.Engine, pick core.Rand, opts simOptions, w io.Writer, logger *log.Logger) (simResult, error) {
	var res simResult
	for i := range opts.Swaps {
		candidates := core.MatchingSwaps(eng.Board())
		if len(candidates) == 0 {
			res.Stuck = true
			if !opts.AnySwap {
				logger.Warn("no moves left", "swap", i)
				return res, nil
			}
		}
		if opts.AnySwap {
			candidates = core.ValidSwaps(eng.Board())
			if len(candidates) == 0 {
				return res, nil
			}
		}

		p := candidates[pick.Intn(len(candidates))]
		if _, err := eng.Swap(p.From, p.To); err != nil {
			return res, err
		}
		if _, err := eng.RunUntilIdle(opts.MaxSteps); err != nil {
			return res, err
		}

		stats := eng.LastStats()
		res.Swaps++
		res.Rounds += stats.Rounds
		res.Removed += stats.Removed
		res.Spawned += stats.Spawned
		res.Longest = max(res.Longest, stats.Rounds)
		if stats.Reverted {
			res.Reverted++
		}
		fmt.Fprintf(w, "%3d  %v <-> %v  rounds=%d removed=%d spawned=%d\n",
			i+1, p.From, p.To, stats.Rounds, stats.Removed, stats.Spawned)

		if opts.MaxRounds > 0 && stats.Rounds > opts.MaxRounds {
			return res, fmt.Errorf("%w: %d rounds > %d", errRoundCap, stats.Rounds, opts.MaxRounds)
		}
	}
	res.Stuck = len(core.MatchingSwaps(eng.Board())) == 0
	return res, nil
}
