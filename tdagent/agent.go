// Package tdagent implements the temporal-difference learning player:
// afterstate TD(0) over an n-tuple network, trained by self-play. Each
// step bootstraps from the greedy successor afterstate, and the update
// is applied eagerly and replicated across all eight board symmetries.
package tdagent

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/cdbrowne/twenty48/game"
	"github.com/cdbrowne/twenty48/ntuple"
)

// Agent selects moves with, and trains, an n-tuple network.
type Agent struct {
	net      *ntuple.Network
	explorer Explorer
	size     int
}

// NewAgent creates an agent around an existing network. A nil explorer
// means greedy-only selection during training.
func NewAgent(net *ntuple.Network, explorer Explorer, boardSize int) *Agent {
	if explorer == nil {
		explorer = Greedy{}
	}
	return &Agent{net: net, explorer: explorer, size: boardSize}
}

// Network exposes the learned model, e.g. for persistence.
func (a *Agent) Network() *ntuple.Network {
	return a.net
}

// BestMove returns the legal move maximizing reward plus afterstate
// value. It never explores; exploration only happens inside training
// move selection.
func (a *Agent) BestMove(g *game.Game) (game.Direction, error) {
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return 0, game.ErrNoLegalMoves
	}
	best := legal[0]
	bestValue := math.Inf(-1)
	for _, dir := range legal {
		value, err := a.net.EvaluateAction(g, dir)
		if err != nil {
			return 0, err
		}
		if value > bestValue {
			best, bestValue = dir, value
		}
	}
	return best, nil
}

func (a *Agent) selectTrainingMove(g *game.Game) (game.Direction, error) {
	if dir, ok := a.explorer.Explore(g.LegalMoves()); ok {
		return dir, nil
	}
	return a.BestMove(g)
}

// learn applies the one-step TD(0) update for a single transition. The
// bootstrap target is the reward of the greedy action from the next
// state plus the value of the afterstate it leads to. The TD error,
// scaled by alpha/m, is added to every pattern's entry for the
// afterstate in all eight orientations.
func (a *Agent) learn(afterstate, next *game.Game) error {
	nextMove, err := a.BestMove(next)
	if err != nil {
		return fmt.Errorf("td update: %w", err)
	}
	nextAfter, nextReward, err := next.ComputeAfterstate(nextMove)
	if err != nil {
		return fmt.Errorf("td update: %w", err)
	}

	target := float64(nextReward) + a.net.EvaluateBoard(nextAfter.Board)
	tdError := target - a.net.EvaluateBoard(afterstate.Board)
	step := a.net.LearningRate() / float64(a.net.NumPatterns())
	a.net.Update(afterstate.Board, step*tdError)
	return nil
}

// PlayEpisode runs one self-play training episode to termination and
// returns the final game state and the number of moves made. The
// learning update runs after every non-terminal transition.
func (a *Agent) PlayEpisode() (*game.Game, int, error) {
	g := game.NewGame(a.size)
	moves := 0

	for !g.GameOver() {
		dir, err := a.selectTrainingMove(g)
		if err != nil {
			return nil, moves, err
		}
		afterstate, _, err := g.ComputeAfterstate(dir)
		if err != nil {
			return nil, moves, err
		}
		next := afterstate.Copy()
		// A legal move always leaves at least one empty cell, so the
		// spawn cannot fail here.
		if err := next.SpawnTile(); err != nil {
			return nil, moves, err
		}
		if !next.GameOver() {
			if err := a.learn(afterstate, next); err != nil {
				return nil, moves, err
			}
		}
		g = next
		moves++
	}

	a.explorer.EpisodeEnd()
	log.Debug().Int("score", g.Score).Int("maxTile", g.MaxTile()).
		Int("moves", moves).Msg("episode finished")
	return g, moves, nil
}
