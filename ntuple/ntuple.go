// Package ntuple implements the n-tuple network value function for
// 2048. A pattern is an ordered set of board coordinates; the feature
// it observes on a board is the literal tuple of tile values at those
// coordinates. Each pattern owns one lookup table mapping features to
// learned weights, and a board's value is the sum of weights across all
// eight board symmetries and all patterns. A flat per-pattern table
// scales the weight count with the features actually observed, instead
// of a combinatorial full-board table.
package ntuple

import (
	"fmt"
	"math/bits"

	"github.com/cdbrowne/twenty48/game"
	"github.com/cdbrowne/twenty48/symmetry"
)

// DefaultLearningRate is a hand-tuned step size that trains stably with
// the default patterns.
const DefaultLearningRate = 0.1

// Coord is a single board position inside a pattern.
type Coord struct {
	Row int
	Col int
}

// Pattern is an ordered, fixed-length sequence of board coordinates
// acting as a feature template. Order matters: features are keyed by
// the tile values read coordinate by coordinate.
type Pattern []Coord

// DefaultPatterns returns the standard eight 6-tuple templates used for
// a 4x4 board.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 1}, {3, 1}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {1, 3}, {2, 2}},
		{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}, {3, 1}, {3, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 0}, {2, 1}, {3, 1}},
		{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 2}},
	}
}

// Network is the learned model: one lookup table per pattern, plus the
// learning rate the tables were trained with. It is an explicit owned
// value with explicit save/load, not ambient state.
type Network struct {
	patterns []Pattern
	tables   []map[uint64]float64
	alpha    float64
}

// NewNetwork creates a network with empty tables. Weights initialize
// lazily to zero on first access.
func NewNetwork(patterns []Pattern, alpha float64) *Network {
	n := &Network{
		patterns: patterns,
		tables:   make([]map[uint64]float64, len(patterns)),
		alpha:    alpha,
	}
	for i := range n.tables {
		n.tables[i] = make(map[uint64]float64)
	}
	return n
}

func (n *Network) Patterns() []Pattern { return n.patterns }

func (n *Network) NumPatterns() int { return len(n.patterns) }

func (n *Network) LearningRate() float64 { return n.alpha }

// NumWeights returns the total number of feature weights stored so far.
func (n *Network) NumWeights() int {
	total := 0
	for _, t := range n.tables {
		total += len(t)
	}
	return total
}

func exponent(v int) uint64 {
	if v == 0 {
		return 0
	}
	return uint64(bits.Len(uint(v)) - 1)
}

// FeatureKey packs the tiles at the pattern's coordinates into a single
// integer, six bits per coordinate as the tile's log2 exponent. The
// packing is order-sensitive and collision-free for any tile reachable
// on a 4x4 board, so it is an exact stand-in for the literal value
// tuple.
func FeatureKey(p Pattern, board [][]int) uint64 {
	var key uint64
	for _, c := range p {
		key = key<<6 | exponent(board[c.Row][c.Col])
	}
	return key
}

// Weight returns the learned weight for a feature key; features never
// seen read as zero. This is the explicit get-or-default accessor the
// update rule and evaluation share.
func (n *Network) Weight(pattern int, key uint64) float64 {
	return n.tables[pattern][key]
}

// EvaluateFeature reads the feature the given pattern observes on the
// board and returns its learned weight.
func (n *Network) EvaluateFeature(pattern int, board [][]int) float64 {
	return n.Weight(pattern, FeatureKey(n.patterns[pattern], board))
}

// EvaluateBoard is the learned estimate of a position's long-run value:
// the sum of EvaluateFeature over all eight symmetries and all
// patterns.
func (n *Network) EvaluateBoard(board [][]int) float64 {
	value := 0.0
	for _, b := range symmetry.All(board) {
		for i := range n.patterns {
			value += n.EvaluateFeature(i, b)
		}
	}
	return value
}

// EvaluateAction scores taking dir from g: the move's reward plus the
// value of the resulting afterstate. This is the action value used both
// for greedy selection and for TD targets.
func (n *Network) EvaluateAction(g *game.Game, dir game.Direction) (float64, error) {
	after, reward, err := g.ComputeAfterstate(dir)
	if err != nil {
		return 0, fmt.Errorf("evaluate action %v: %w", dir, err)
	}
	return float64(reward) + n.EvaluateBoard(after.Board), nil
}

// Update adds delta to the feature weight of every pattern, replicated
// across all eight symmetries of the board. Training applies the same
// TD error to every orientation so the learning signal is shared
// eight-fold.
func (n *Network) Update(board [][]int, delta float64) {
	for _, b := range symmetry.All(board) {
		for i, p := range n.patterns {
			n.tables[i][FeatureKey(p, b)] += delta
		}
	}
}
