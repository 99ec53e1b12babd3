package automatic

import (
	"context"
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/cdbrowne/twenty48/game"
)

// Result summarizes one finished evaluation game.
type Result struct {
	Score   int
	MaxTile int
	Moves   int
}

// AutoPlayOptions configures an evaluation run. NewPicker is a factory
// because pickers are not safe to share across goroutines (the
// expectimax transposition cache in particular); each worker gets its
// own.
type AutoPlayOptions struct {
	Games     int
	Threads   int
	BoardSize int
	NewPicker func() MovePicker
}

// AutoPlay plays games to completion without learning, spread over
// worker goroutines, and returns one Result per game. It stops early
// when the context is cancelled.
func AutoPlay(ctx context.Context, opts AutoPlayOptions) ([]Result, error) {
	if opts.Threads <= 0 {
		opts.Threads = 1
	}
	if opts.BoardSize <= 0 {
		opts.BoardSize = game.DefaultSize
	}

	jobs := make(chan int)
	results := make(chan Result, opts.Games)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Threads; i++ {
		g.Go(func() error {
			picker := opts.NewPicker()
			for range jobs {
				res, err := playOne(gctx, picker, opts.BoardSize)
				if err != nil {
					return err
				}
				results <- res
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("evaluation interrupted")
				return nil
			}
		}
		return nil
	})

	err := g.Wait()
	close(results)

	out := make([]Result, 0, opts.Games)
	for r := range results {
		out = append(out, r)
	}
	return out, err
}

func playOne(ctx context.Context, picker MovePicker, size int) (Result, error) {
	g := game.NewGame(size)
	moves := 0
	for !g.GameOver() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		dir, err := picker.BestMove(g)
		if err != nil {
			return Result{}, fmt.Errorf("move %d: %w", moves, err)
		}
		if _, err := g.Move(dir); err != nil {
			return Result{}, err
		}
		if err := g.SpawnTile(); err != nil {
			return Result{}, err
		}
		moves++
	}
	return Result{Score: g.Score, MaxTile: g.MaxTile(), Moves: moves}, nil
}

// ScoreHistogram prints a histogram of final scores.
func ScoreHistogram(w io.Writer, results []Result) error {
	if len(results) == 0 {
		return nil
	}
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
	}
	hist := histogram.Hist(10, scores)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
