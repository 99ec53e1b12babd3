// Package game encapsulates the mechanics of a 2048 game: moving and
// merging tiles, legal-move detection, and random tile spawning.
// Note: a Game doesn't care how it is played. It is just rules for
// gameplay. AI players, human players, etc will play a game outside of
// the scope of this package.
package game

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"
)

// DefaultSize is the usual 2048 board dimension.
const DefaultSize = 4

var (
	// ErrFullBoard is returned by SpawnTile when there is no empty cell
	// left. Callers must check for an empty cell first; hitting this
	// error indicates a logic bug in the caller, not a game condition.
	ErrFullBoard = errors.New("cannot spawn tile: board is full")
	// ErrInvalidDirection is returned when a move outside of
	// LEFT/RIGHT/UP/DOWN is requested. Actions should only ever come
	// from LegalMoves, so this should be unreachable.
	ErrInvalidDirection = errors.New("invalid move direction")
	// ErrNoLegalMoves is returned by move pickers asked to choose a
	// move on a terminal position.
	ErrNoLegalMoves = errors.New("no legal moves")
)

// Direction is one of the four 2048 moves.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction, in evaluation order.
var Directions = [4]Direction{Left, Right, Up, Down}

var directionNames = [4]string{"LEFT", "RIGHT", "UP", "DOWN"}

func (d Direction) String() string {
	if d < Left || d > Down {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func seededRandSource() (int64, *rand.Rand) {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}

	randSeed := int64(binary.LittleEndian.Uint64(b[:]))
	randSource := rand.New(rand.NewSource(randSeed))

	return randSeed, randSource
}

// Game is the internal game structure that controls the entire business
// logic of a single 2048 game: the board, the cumulative score, and tile
// spawning. The board holds literal tile values; every non-zero cell is
// a power of two.
type Game struct {
	Board [][]int
	Score int

	n          int
	randSeed   int64
	randSource *rand.Rand
}

// NewGame creates a game with two starting tiles already spawned, and
// seeds its random number generator.
func NewGame(size int) *Game {
	if size <= 0 {
		size = DefaultSize
	}
	g := &Game{n: size}
	g.randSeed, g.randSource = seededRandSource()
	g.Board = make([][]int, size)
	for i := range g.Board {
		g.Board[i] = make([]int, size)
	}
	// A fresh board always has room for the starting tiles.
	for i := 0; i < 2; i++ {
		if err := g.SpawnTile(); err != nil {
			panic(err)
		}
	}
	return g
}

// Size returns the board dimension.
func (g *Game) Size() int {
	return g.n
}

// SetRandomSource overrides the tile-spawn randomizer, for deterministic
// play in tests.
func (g *Game) SetRandomSource(src *rand.Rand) {
	g.randSource = src
}

// RandSeed returns the seed this game's randomizer was created with.
func (g *Game) RandSeed() int64 {
	return g.randSeed
}

// Copy deep-clones the board and score. Move simulation mutates in
// place, so exploring a hypothetical move must always happen on a copy.
// The copy shares the parent's random source; spawns on either draw
// from the same stream.
func (g *Game) Copy() *Game {
	c := &Game{
		Score:      g.Score,
		n:          g.n,
		randSeed:   g.randSeed,
		randSource: g.randSource,
	}
	c.Board = make([][]int, g.n)
	for i := range g.Board {
		c.Board[i] = make([]int, g.n)
		copy(c.Board[i], g.Board[i])
	}
	return c
}

// collapseLine compacts a line toward index 0, merging the first pair of
// adjacent equal non-zero tiles into one tile of double value. A tile
// participates in at most one merge per move; no chain merges. Returns
// the new line and the sum of merged values.
func collapseLine(line []int) ([]int, int) {
	vals := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			vals = append(vals, v)
		}
	}

	out := make([]int, len(line))
	gained := 0
	oi := 0
	for i := 0; i < len(vals); i++ {
		if i+1 < len(vals) && vals[i] == vals[i+1] {
			out[oi] = vals[i] * 2
			gained += out[oi]
			i++
		} else {
			out[oi] = vals[i]
		}
		oi++
	}
	return out, gained
}

// extractLine reads the i-th line of the board oriented so that tiles
// move toward index 0: rows for LEFT, reversed rows for RIGHT, columns
// for UP, reversed columns for DOWN. All four moves share the same
// collapse primitive through this orientation.
func (g *Game) extractLine(dir Direction, i int) []int {
	line := make([]int, g.n)
	for j := 0; j < g.n; j++ {
		switch dir {
		case Left:
			line[j] = g.Board[i][j]
		case Right:
			line[j] = g.Board[i][g.n-1-j]
		case Up:
			line[j] = g.Board[j][i]
		case Down:
			line[j] = g.Board[g.n-1-j][i]
		}
	}
	return line
}

func (g *Game) writeLine(dir Direction, i int, line []int) {
	for j := 0; j < g.n; j++ {
		switch dir {
		case Left:
			g.Board[i][j] = line[j]
		case Right:
			g.Board[i][g.n-1-j] = line[j]
		case Up:
			g.Board[j][i] = line[j]
		case Down:
			g.Board[g.n-1-j][i] = line[j]
		}
	}
}

// Move collapses every row or column toward dir, merging tiles, and
// adds the merge gains to the score. It returns the score delta for
// this move. Applying a direction with no effect leaves the board and
// score unchanged and returns 0.
func (g *Game) Move(dir Direction) (int, error) {
	if dir < Left || dir > Down {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	gained := 0
	for i := 0; i < g.n; i++ {
		line, delta := collapseLine(g.extractLine(dir, i))
		g.writeLine(dir, i, line)
		gained += delta
	}
	g.Score += gained
	return gained, nil
}

// lineMovable reports whether collapsing the line (toward index 0)
// would change it: a gap in front of a tile, or two equal adjacent
// tiles.
func lineMovable(line []int) bool {
	for j := 0; j < len(line)-1; j++ {
		if line[j] == 0 && line[j+1] != 0 {
			return true
		}
		if line[j] != 0 && line[j] == line[j+1] {
			return true
		}
	}
	return false
}

// LegalMoves returns the directions that would change the board. It
// never mutates the board.
func (g *Game) LegalMoves() []Direction {
	moves := make([]Direction, 0, 4)
	for _, dir := range Directions {
		for i := 0; i < g.n; i++ {
			if lineMovable(g.extractLine(dir, i)) {
				moves = append(moves, dir)
				break
			}
		}
	}
	return moves
}

// GameOver is true iff no legal move exists.
func (g *Game) GameOver() bool {
	return len(g.LegalMoves()) == 0
}

// EmptyCells returns the (row, col) positions of all empty cells.
func (g *Game) EmptyCells() [][2]int {
	empty := make([][2]int, 0, g.n*g.n)
	for r := range g.Board {
		for c, v := range g.Board[r] {
			if v == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	return empty
}

// SpawnTile places a 2 (probability 0.9) or a 4 (probability 0.1) on a
// uniformly random empty cell.
func (g *Game) SpawnTile() error {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return ErrFullBoard
	}
	cell := empty[g.randSource.Intn(len(empty))]
	val := 2
	if g.randSource.Float64() >= 0.9 {
		val = 4
	}
	g.Board[cell[0]][cell[1]] = val
	return nil
}

// ComputeAfterstate applies dir to a copy of the game, without spawning
// a tile. The afterstate is the deterministic post-move, pre-chance
// position that the value function is defined over. Returns the
// afterstate and the move's score delta.
func (g *Game) ComputeAfterstate(dir Direction) (*Game, int, error) {
	after := g.Copy()
	reward, err := after.Move(dir)
	if err != nil {
		return nil, 0, err
	}
	return after, reward, nil
}

// MaxTile returns the largest tile on the board.
func (g *Game) MaxTile() int {
	return lo.Max(lo.Flatten(g.Board))
}

// TileSum returns the sum of all tiles on the board.
func (g *Game) TileSum() int {
	return lo.Sum(lo.Flatten(g.Board))
}
