package expectimax

import "github.com/cdbrowne/twenty48/game"

// heuristic is the leaf evaluation: empty-cell count, max-tile
// magnitude, a corner bonus (or off-corner penalty) for the max tile,
// monotonicity along the max tile's row and column, and the merge
// potential of adjacent equal tiles.
func heuristic(g *game.Game) float64 {
	board := g.Board
	n := g.Size()

	empties := len(g.EmptyCells())
	maxTile := 0
	maxRow, maxCol := 0, 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if board[i][j] > maxTile {
				maxTile = board[i][j]
				maxRow, maxCol = i, j
			}
		}
	}

	score := float64(empties*500 + maxTile*2)

	inCorner := (maxRow == 0 || maxRow == n-1) && (maxCol == 0 || maxCol == n-1)
	if inCorner {
		score += float64(maxTile * 3)
	} else {
		score -= float64(maxTile * 2)
	}

	if inCorner {
		// Reward rows/columns that stay sorted away from the corner
		// holding the max tile.
		dx, dy := 1, 1
		if maxCol == n-1 {
			dx = -1
		}
		if maxRow == n-1 {
			dy = -1
		}
		for j := 0; j < n-1; j++ {
			if board[maxRow][j]*dx >= board[maxRow][j+1]*dx {
				score += 100
			}
		}
		for i := 0; i < n-1; i++ {
			if board[i][maxCol]*dy >= board[i+1][maxCol]*dy {
				score += 100
			}
		}
	}

	merge := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if board[i][j] == 0 {
				continue
			}
			if j < n-1 && board[i][j] == board[i][j+1] {
				merge += board[i][j]
			}
			if i < n-1 && board[i][j] == board[i+1][j] {
				merge += board[i][j]
			}
		}
	}
	return score + float64(merge)
}
