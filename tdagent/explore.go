package tdagent

import (
	"lukechampine.com/frand"

	"github.com/cdbrowne/twenty48/game"
)

// Explorer decides whether a training move should explore instead of
// exploiting. Exploration policy differs between training setups, so it
// is pluggable rather than hardcoded.
type Explorer interface {
	// Explore returns a random legal move and true when the agent
	// should explore this step.
	Explore(legal []game.Direction) (game.Direction, bool)
	// EpisodeEnd is called once at the end of each training episode,
	// for policies that decay over time.
	EpisodeEnd()
}

// Greedy never explores.
type Greedy struct{}

func (Greedy) Explore([]game.Direction) (game.Direction, bool) { return 0, false }
func (Greedy) EpisodeEnd()                                     {}

// EpsilonGreedy explores with probability Epsilon, decaying by Decay
// each episode down to Min.
type EpsilonGreedy struct {
	Epsilon float64
	Min     float64
	Decay   float64
}

// NewEpsilonGreedy returns an epsilon-greedy policy with the default
// training constants.
func NewEpsilonGreedy() *EpsilonGreedy {
	return &EpsilonGreedy{Epsilon: 0.01, Min: 0.005, Decay: 0.99995}
}

func (e *EpsilonGreedy) Explore(legal []game.Direction) (game.Direction, bool) {
	if len(legal) == 0 || frand.Float64() >= e.Epsilon {
		return 0, false
	}
	return legal[frand.Intn(len(legal))], true
}

func (e *EpsilonGreedy) EpisodeEnd() {
	e.Epsilon *= e.Decay
	if e.Epsilon < e.Min {
		e.Epsilon = e.Min
	}
}
