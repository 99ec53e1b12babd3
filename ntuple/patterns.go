package ntuple

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// patternsFile is the YAML sidecar format for custom pattern sets:
//
//	patterns:
//	  - [[0, 0], [0, 1], [0, 2], [0, 3]]
//	  - [[1, 0], [1, 1], [1, 2], [1, 3]]
type patternsFile struct {
	Patterns [][][2]int `yaml:"patterns"`
}

// LoadPatterns reads a pattern set from a YAML file. Coordinates must
// fit on a board of the given size.
func LoadPatterns(path string, boardSize int) ([]Pattern, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	var pf patternsFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	if len(pf.Patterns) == 0 {
		return nil, fmt.Errorf("patterns file %s defines no patterns", path)
	}
	patterns := make([]Pattern, len(pf.Patterns))
	for i, coords := range pf.Patterns {
		if len(coords) == 0 {
			return nil, fmt.Errorf("pattern %d is empty", i)
		}
		p := make(Pattern, len(coords))
		for j, rc := range coords {
			row, col := rc[0], rc[1]
			if row < 0 || row >= boardSize || col < 0 || col >= boardSize {
				return nil, fmt.Errorf("pattern %d coordinate (%d, %d) is off the %dx%d board",
					i, row, col, boardSize, boardSize)
			}
			p[j] = Coord{Row: row, Col: col}
		}
		patterns[i] = p
	}
	return patterns, nil
}
