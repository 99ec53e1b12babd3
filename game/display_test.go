package game

import (
	"testing"

	"github.com/matryer/is"
)

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	g := gameFromBoard([][]int{
		{2, 0, 0, 16},
		{0, 0, 0, 0},
		{0, 128, 0, 0},
		{0, 0, 0, 2048},
	})
	g.Score = 1234

	want := "+---------------------+\n" +
		"| Score: 1234         |\n" +
		"+---------------------+\n" +
		"|    2    .    .   16 |\n" +
		"|    .    .    .    . |\n" +
		"|    .  128    .    . |\n" +
		"|    .    .    . 2048 |\n" +
		"+---------------------+\n"
	is.Equal(g.ToDisplayText(), want)
}
