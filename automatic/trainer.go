// Package automatic drives self-play games: TD training episodes and
// evaluation runs for any move picker.
package automatic

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/cdbrowne/twenty48/game"
	"github.com/cdbrowne/twenty48/stats"
	"github.com/cdbrowne/twenty48/tdagent"
)

// MovePicker chooses a move for a position. Both the TD agent and the
// expectimax solver implement it; the runner does not care which policy
// it is driving.
type MovePicker interface {
	BestMove(g *game.Game) (game.Direction, error)
}

// TrainOptions configures a training run.
type TrainOptions struct {
	Episodes  int
	Window    int    // statistics window, in episodes
	SaveEvery int    // save the model every this many episodes; 0 disables
	ModelPath string // destination for periodic and final saves
}

// Train runs self-play training episodes, printing a rolling statistics
// table to w and periodically saving the model. It stops early if the
// context is cancelled between episodes; the model is still saved on
// the way out.
func Train(ctx context.Context, agent *tdagent.Agent, opts TrainOptions, w io.Writer) error {
	if opts.Window <= 0 {
		opts.Window = 100
	}

	border := "+--------------------------------------------------------------+"
	fmt.Fprintln(w, border)
	fmt.Fprintf(w, "| Statistics from last %-4d episodes:%27s|\n", opts.Window, "")
	fmt.Fprintln(w, border)
	fmt.Fprintf(w, "| %14s | %14s | %14s | %9s |\n",
		"Episodes", "Mean Score", "Mean Max Tile", "Max Tile")
	fmt.Fprintf(w, "|%s|%s|%s|%s|\n",
		"----------------", "----------------", "----------------", "-----------")

	var scoreStat, tileStat stats.Statistic

	for ep := 1; ep <= opts.Episodes; ep++ {
		select {
		case <-ctx.Done():
			log.Info().Int("episode", ep).Msg("training interrupted")
			return saveModel(agent, opts.ModelPath)
		default:
		}

		final, _, err := agent.PlayEpisode()
		if err != nil {
			return fmt.Errorf("episode %d: %w", ep, err)
		}
		scoreStat.Push(float64(final.Score))
		tileStat.Push(float64(final.MaxTile()))

		if ep%opts.Window == 0 {
			fmt.Fprintf(w, "| %14d | %14.2f | %14.2f | %9d |\n",
				ep, scoreStat.Mean(), tileStat.Mean(), int(tileStat.Max()))
			scoreStat.Reset()
			tileStat.Reset()
		}
		if opts.SaveEvery > 0 && opts.ModelPath != "" && ep%opts.SaveEvery == 0 {
			if err := saveModel(agent, opts.ModelPath); err != nil {
				return err
			}
		}
	}
	return saveModel(agent, opts.ModelPath)
}

func saveModel(agent *tdagent.Agent, path string) error {
	if path == "" {
		return nil
	}
	if err := agent.Network().SaveFile(path); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	return nil
}
