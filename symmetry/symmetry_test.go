package symmetry

import (
	"fmt"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/samber/lo"
)

var testBoard = [][]int{
	{2, 4, 0, 0},
	{0, 8, 0, 0},
	{0, 0, 16, 0},
	{0, 0, 0, 32},
}

func TestRotateOnce(t *testing.T) {
	is := is.New(t)
	got := Rotate(testBoard, 1)
	want := [][]int{
		{0, 0, 0, 2},
		{0, 0, 8, 4},
		{0, 16, 0, 0},
		{32, 0, 0, 0},
	}
	is.Equal(got, want)
}

func TestRotateFullCircle(t *testing.T) {
	is := is.New(t)
	is.Equal(Rotate(testBoard, 4), testBoard)
}

func TestMirror(t *testing.T) {
	is := is.New(t)
	got := Mirror(testBoard)
	want := [][]int{
		{0, 0, 0, 32},
		{0, 0, 16, 0},
		{0, 8, 0, 0},
		{2, 4, 0, 0},
	}
	is.Equal(got, want)
	// Mirror is an involution.
	is.Equal(Mirror(got), testBoard)
}

func TestAllProducesEightDistinctOrientations(t *testing.T) {
	is := is.New(t)
	all := All(testBoard)
	is.Equal(len(all), 8)

	seen := map[string]bool{}
	for _, b := range all {
		key := ""
		for _, row := range b {
			for _, v := range row {
				key += fmt.Sprintf("%d,", v)
			}
		}
		seen[key] = true
	}
	// The test board has no symmetry of its own, so all eight
	// orientations are distinct.
	is.Equal(len(seen), 8)
}

func TestAllPreservesTileMultiset(t *testing.T) {
	is := is.New(t)
	want := lo.Flatten(testBoard)
	sort.Ints(want)
	for _, b := range All(testBoard) {
		got := lo.Flatten(b)
		sort.Ints(got)
		is.Equal(got, want)
	}
}

func TestAllDoesNotAliasInput(t *testing.T) {
	is := is.New(t)
	board := [][]int{{2, 0}, {0, 4}}
	all := All(board)
	all[0][0][0] = 999
	is.Equal(board[0][0], 2)
}
