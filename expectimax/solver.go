// Package expectimax implements a depth-limited expectimax search
// player for 2048. Max nodes take the best legal move; chance nodes
// average over the random tile spawn. The player is independent of the
// learned n-tuple model and evaluates leaves with a hand-written
// heuristic.
package expectimax

import (
	"math"
	"sort"

	"github.com/cespare/xxhash"

	"github.com/cdbrowne/twenty48/game"
)

// DefaultDepth is a good speed/strength tradeoff for interactive play.
const DefaultDepth = 2

// chanceBranchLimit caps the number of empty cells expanded at a chance
// node. When more cells are empty, the node keeps a biased sample that
// prefers corner and edge cells, trading exactness for speed.
const chanceBranchLimit = 4

type nodeKind int8

const (
	maxNode nodeKind = iota
	chanceNode
)

// cacheKey identifies a search position. Depth is part of the key
// because it is measured relative to the current top-level call.
type cacheKey struct {
	board uint64
	depth int8
	kind  nodeKind
}

// Solver is an expectimax search player. It is not safe for concurrent
// use; give each goroutine its own Solver.
type Solver struct {
	depth   int
	cache   map[cacheKey]float64
	hashBuf []byte
}

// NewSolver creates a solver that searches the given number of plies.
func NewSolver(depth int) *Solver {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Solver{
		depth: depth,
		cache: make(map[cacheKey]float64),
	}
}

// Depth returns the configured search depth.
func (s *Solver) Depth() int {
	return s.depth
}

// hash produces a position key for the transposition cache.
func (s *Solver) hash(g *game.Game) uint64 {
	n := g.Size()
	if cap(s.hashBuf) < n*n {
		s.hashBuf = make([]byte, n*n)
	}
	buf := s.hashBuf[:n*n]
	i := 0
	for _, row := range g.Board {
		for _, v := range row {
			buf[i] = tileByte(v)
			i++
		}
	}
	return xxhash.Sum64(buf)
}

func tileByte(v int) byte {
	e := byte(0)
	for v > 1 {
		v >>= 1
		e++
	}
	return e
}

// quickEval is the cheap root-ordering heuristic: empty cells, corner
// occupancy of the max tile, and the max tile itself.
func quickEval(g *game.Game) float64 {
	empty := len(g.EmptyCells())
	maxTile := g.MaxTile()
	n := g.Size()
	corner := 0
	if g.Board[0][0] == maxTile || g.Board[0][n-1] == maxTile ||
		g.Board[n-1][0] == maxTile || g.Board[n-1][n-1] == maxTile {
		corner = 1000
	}
	return float64(empty*100 + corner + maxTile)
}

// BestMove clears the transposition cache and runs a full search from
// the current position. Root moves are ordered by quickEval so the most
// promising subtrees are searched first.
func (s *Solver) BestMove(g *game.Game) (game.Direction, error) {
	s.cache = make(map[cacheKey]float64)

	legal := g.LegalMoves()
	if len(legal) == 0 {
		return 0, game.ErrNoLegalMoves
	}

	type scoredMove struct {
		dir   game.Direction
		quick float64
	}
	ordered := make([]scoredMove, 0, len(legal))
	for _, dir := range legal {
		after, _, err := g.ComputeAfterstate(dir)
		if err != nil {
			return 0, err
		}
		ordered = append(ordered, scoredMove{dir, quickEval(after)})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].quick > ordered[j].quick
	})

	best := ordered[0].dir
	bestValue := math.Inf(-1)
	for _, m := range ordered {
		after, _, err := g.ComputeAfterstate(m.dir)
		if err != nil {
			return 0, err
		}
		value := s.search(after, 0, chanceNode)
		if value > bestValue {
			best, bestValue = m.dir, value
		}
	}
	return best, nil
}

func (s *Solver) search(g *game.Game, depth int, kind nodeKind) float64 {
	if depth == s.depth || g.GameOver() {
		return heuristic(g)
	}
	key := cacheKey{s.hash(g), int8(depth), kind}
	if v, ok := s.cache[key]; ok {
		return v
	}
	var v float64
	if kind == maxNode {
		v = s.maxValue(g, depth)
	} else {
		v = s.chanceValue(g, depth)
	}
	s.cache[key] = v
	return v
}

func (s *Solver) maxValue(g *game.Game, depth int) float64 {
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return heuristic(g)
	}
	best := math.Inf(-1)
	for _, dir := range legal {
		after, _, err := g.ComputeAfterstate(dir)
		if err != nil {
			// Unreachable: dir came from LegalMoves.
			continue
		}
		if v := s.search(after, depth, chanceNode); v > best {
			best = v
		}
	}
	return best
}

// chanceValue averages over tile spawns. With many empty cells it
// expands at most chanceBranchLimit of them, preferring corners and
// edges; this deliberately biases the expectation toward the cells that
// matter most for board shape, in exchange for a bounded branch factor.
// At the deepest chance level the 4-tile child is approximated from the
// 2-tile child instead of being searched.
func (s *Solver) chanceValue(g *game.Game, depth int) float64 {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return heuristic(g)
	}
	if len(empty) > chanceBranchLimit {
		empty = sampleCells(empty, g.Size())
	}

	expected := 0.0
	prob := 1.0 / float64(len(empty))
	for _, cell := range empty {
		child := g.Copy()
		child.Board[cell[0]][cell[1]] = 2
		val2 := s.search(child, depth+1, maxNode)
		expected += 0.9 * prob * val2

		if depth < s.depth-1 {
			child4 := g.Copy()
			child4.Board[cell[0]][cell[1]] = 4
			expected += 0.1 * prob * s.search(child4, depth+1, maxNode)
		} else {
			expected += 0.1 * prob * val2 * 1.2
		}
	}
	return expected
}

// sampleCells keeps up to chanceBranchLimit cells, border cells first.
func sampleCells(cells [][2]int, size int) [][2]int {
	border := make([][2]int, 0, len(cells))
	inner := make([][2]int, 0, len(cells))
	for _, c := range cells {
		if c[0] == 0 || c[0] == size-1 || c[1] == 0 || c[1] == size-1 {
			border = append(border, c)
		} else {
			inner = append(inner, c)
		}
	}
	picked := append(border, inner...)
	return picked[:chanceBranchLimit]
}
