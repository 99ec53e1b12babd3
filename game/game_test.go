package game

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func gameFromBoard(board [][]int) *Game {
	g := NewGame(len(board))
	g.Score = 0
	for i := range board {
		copy(g.Board[i], board[i])
	}
	return g
}

func TestCollapseLine(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		line   []int
		want   []int
		gained int
	}{
		{[]int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4},
		{[]int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{[]int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{[]int{4, 0, 4, 2}, []int{8, 2, 0, 0}, 8},
		{[]int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4},
		{[]int{0, 0, 0, 2}, []int{2, 0, 0, 0}, 0},
		{[]int{2, 4, 2, 4}, []int{2, 4, 2, 4}, 0},
		{[]int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{[]int{4, 4, 8, 8}, []int{8, 16, 0, 0}, 24},
	} {
		got, gained := collapseLine(tc.line)
		is.Equal(got, tc.want)
		is.Equal(gained, tc.gained)
	}
}

func TestMoveBasicMerge(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	reward, err := g.Move(Left)
	is.NoErr(err)
	is.Equal(reward, 4)
	is.Equal(g.Board[0], []int{4, 0, 0, 0})
	is.Equal(g.Score, 4)
}

func TestMoveNoChainMerge(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 2, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	reward, err := g.Move(Left)
	is.NoErr(err)
	is.Equal(reward, 8)
	is.Equal(g.Board[0], []int{4, 4, 0, 0})
}

func TestMoveAllDirections(t *testing.T) {
	is := is.New(t)
	board := [][]int{
		{2, 0, 0, 2},
		{0, 4, 4, 0},
		{2, 0, 0, 2},
		{0, 0, 0, 0},
	}
	for _, tc := range []struct {
		dir    Direction
		want   [][]int
		reward int
	}{
		{Left, [][]int{
			{4, 0, 0, 0},
			{8, 0, 0, 0},
			{4, 0, 0, 0},
			{0, 0, 0, 0},
		}, 16},
		{Right, [][]int{
			{0, 0, 0, 4},
			{0, 0, 0, 8},
			{0, 0, 0, 4},
			{0, 0, 0, 0},
		}, 16},
		{Up, [][]int{
			{4, 4, 4, 4},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}, 8},
		{Down, [][]int{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{4, 4, 4, 4},
		}, 8},
	} {
		g := gameFromBoard(board)
		reward, err := g.Move(tc.dir)
		is.NoErr(err)
		is.Equal(g.Board, tc.want)
		is.Equal(reward, tc.reward)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	is := is.New(t)
	g := NewGame(4)
	_, err := g.Move(Direction(7))
	is.True(err != nil)
}

func TestNoOpMoveNotOffered(t *testing.T) {
	is := is.New(t)
	// Everything is packed left already; LEFT must be a no-op and must
	// not appear in LegalMoves.
	g := gameFromBoard([][]int{
		{2, 4, 0, 0},
		{4, 2, 0, 0},
		{2, 4, 0, 0},
		{4, 2, 0, 0},
	})
	for _, d := range g.LegalMoves() {
		is.True(d != Left)
	}
	before := g.Copy()
	reward, err := g.Move(Left)
	is.NoErr(err)
	is.Equal(reward, 0)
	is.Equal(g.Board, before.Board)
	is.Equal(g.Score, before.Score)
}

func TestLegalMovesMerges(t *testing.T) {
	is := is.New(t)
	// A full board with a single horizontal merge available.
	g := gameFromBoard([][]int{
		{2, 2, 4, 8},
		{4, 8, 2, 4},
		{2, 4, 8, 2},
		{4, 2, 4, 8},
	})
	moves := g.LegalMoves()
	is.Equal(len(moves), 2) // only LEFT and RIGHT can merge the pair
	is.Equal(moves[0], Left)
	is.Equal(moves[1], Right)
}

func TestTerminalCheckerboard(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	is.Equal(len(g.LegalMoves()), 0)
	is.True(g.GameOver())
}

func TestSpawnTileFullBoard(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	err := g.SpawnTile()
	is.Equal(err, ErrFullBoard)
}

func TestSpawnTileDistribution(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.SetRandomSource(rand.New(rand.NewSource(42)))
	twos, fours := 0, 0
	for i := 0; i < 1000; i++ {
		is.NoErr(g.SpawnTile())
		switch g.TileSum() {
		case 2:
			twos++
		case 4:
			fours++
		default:
			t.Fatalf("unexpected tile sum %d", g.TileSum())
		}
		for r := range g.Board {
			for c := range g.Board[r] {
				g.Board[r][c] = 0
			}
		}
	}
	is.True(twos > 850)
	is.True(fours > 50)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	c := g.Copy()
	_, err := c.Move(Left)
	is.NoErr(err)
	is.Equal(g.Board[0], []int{2, 2, 0, 0})
	is.Equal(g.Score, 0)
	is.Equal(c.Board[0], []int{4, 0, 0, 0})
}

func TestComputeAfterstate(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	after, reward, err := g.ComputeAfterstate(Left)
	is.NoErr(err)
	is.Equal(reward, 4)
	// The original game is untouched.
	is.Equal(g.Board[0], []int{2, 2, 0, 0})
	// Merges only ever reduce the non-zero tile count.
	is.True(nonZero(after) <= nonZero(g))
	// Spawning adds exactly one tile to the afterstate.
	next := after.Copy()
	is.NoErr(next.SpawnTile())
	is.Equal(nonZero(next), nonZero(after)+1)
}

func nonZero(g *Game) int {
	count := 0
	for _, row := range g.Board {
		for _, v := range row {
			if v != 0 {
				count++
			}
		}
	}
	return count
}

func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Play random games and check the invariants that must hold across any
// move+spawn: the score never decreases, every non-zero tile stays a
// power of two, and the tile sum increases by exactly the merge gains
// plus the spawned tile.
func TestRandomPlayoutInvariants(t *testing.T) {
	is := is.New(t)
	src := rand.New(rand.NewSource(2048))
	for trial := 0; trial < 20; trial++ {
		g := NewGame(4)
		g.SetRandomSource(src)
		for !g.GameOver() {
			legal := g.LegalMoves()
			is.True(len(legal) > 0)
			dir := legal[src.Intn(len(legal))]

			prevScore := g.Score
			prevSum := g.TileSum()
			reward, err := g.Move(dir)
			is.NoErr(err)
			is.Equal(g.Score, prevScore+reward)
			is.True(g.Score >= prevScore)
			is.Equal(g.TileSum(), prevSum) // merges conserve tile sum

			is.NoErr(g.SpawnTile())
			spawned := g.TileSum() - prevSum
			is.True(spawned == 2 || spawned == 4)

			for _, row := range g.Board {
				for _, v := range row {
					if v != 0 {
						is.True(isPowerOfTwo(v))
					}
				}
			}
		}
	}
}

func TestNewGameStartsWithTwoTiles(t *testing.T) {
	is := is.New(t)
	g := NewGame(4)
	is.Equal(nonZero(g), 2)
	is.Equal(g.Score, 0)
	is.Equal(g.Size(), 4)
}
