// Package symmetry produces the eight dihedral-group transformations of
// a square board: the four rotations, each with and without a mirror.
// All eight share the same multiset of tile values, which is what lets
// n-tuple weights trained on one orientation generalize to every
// rotation and reflection of it.
package symmetry

// Rotate returns the board rotated n quarter-turns clockwise. One turn
// maps new[i][j] = old[N-1-j][i].
func Rotate(board [][]int, n int) [][]int {
	size := len(board)
	out := clone(board)
	for turn := 0; turn < n; turn++ {
		next := make([][]int, size)
		for i := 0; i < size; i++ {
			next[i] = make([]int, size)
			for j := 0; j < size; j++ {
				next[i][j] = out[size-1-j][i]
			}
		}
		out = next
	}
	return out
}

// Mirror returns the board flipped about its horizontal axis (row order
// reversed).
func Mirror(board [][]int) [][]int {
	size := len(board)
	out := make([][]int, size)
	for i := range board {
		out[size-1-i] = append([]int(nil), board[i]...)
	}
	return out
}

// All returns the eight symmetries of the board: identity, mirror, and
// each non-trivial rotation with and without its mirror. The first
// element aliases a copy of the input, never the input itself.
func All(board [][]int) [][][]int {
	out := make([][][]int, 0, 8)
	out = append(out, clone(board), Mirror(board))
	for n := 1; n < 4; n++ {
		rotated := Rotate(board, n)
		out = append(out, rotated, Mirror(rotated))
	}
	return out
}

func clone(board [][]int) [][]int {
	out := make([][]int, len(board))
	for i := range board {
		out[i] = append([]int(nil), board[i]...)
	}
	return out
}
