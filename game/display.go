package game

import (
	"fmt"
	"strings"
)

const cellWidth = 5

// ToDisplayText renders the board as a bordered fixed-width grid with a
// score header. Empty cells display as ".".
func (g *Game) ToDisplayText() string {
	width := g.n*cellWidth + 1
	border := "+" + strings.Repeat("-", width) + "+"

	var sb strings.Builder
	sb.WriteString(border + "\n")
	sb.WriteString(fmt.Sprintf("| Score: %-*d|\n", width-8, g.Score))
	sb.WriteString(border + "\n")
	for _, row := range g.Board {
		sb.WriteString("|")
		for _, tile := range row {
			if tile == 0 {
				sb.WriteString(fmt.Sprintf("%*s", cellWidth, "."))
			} else {
				sb.WriteString(fmt.Sprintf("%*d", cellWidth, tile))
			}
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(border + "\n")
	return sb.String()
}
