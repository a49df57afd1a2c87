package maze

import (
	"fmt"
	"strings"
)

// Dir is one of the four slide directions.
type Dir uint8

const (
	Up Dir = iota
	Down
	Left
	Right
)

// Dirs lists the directions in the order searches expand them.
var Dirs = [...]Dir{Up, Down, Left, Right}

// Delta returns the (row, col) offset of a single step.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// ParseDir accepts "up", "down", "left", "right" (case-insensitive).
func ParseDir(s string) (Dir, error) {
	for _, d := range Dirs {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("maze: unknown direction %q", s)
}
