package maze

// neighbours calls fn for every landing cell reachable from c in one slide.
// Slides that leave the grid are failures in play and are not followed.
func neighbours(g *Grid, c Cell, fn func(Cell) bool) bool {
	for _, d := range Dirs {
		if land, ok := Slide(g, c, d).(Landed); ok {
			if fn(land.Cell) {
				return true
			}
		}
	}
	return false
}

// IsSolvable reports whether goal can be reached from start by slides.
// The search runs over landing cells only: one slide is one edge no matter
// how many tiles it crosses.
func IsSolvable(g *Grid, start, goal Cell) bool {
	if start == goal {
		return true
	}
	visited := make([]bool, g.rows*g.cols)
	visited[g.Index(start)] = true
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		found := neighbours(g, cur, func(land Cell) bool {
			if land == goal {
				return true
			}
			idx := g.Index(land)
			if !visited[idx] {
				visited[idx] = true
				queue = append(queue, land)
			}
			return false
		})
		if found {
			return true
		}
	}
	return false
}

// Reachable lists every landing cell reachable from start, in BFS order,
// start first.
func Reachable(g *Grid, start Cell) []Cell {
	visited := make([]bool, g.rows*g.cols)
	visited[g.Index(start)] = true
	out := []Cell{start}

	for i := 0; i < len(out); i++ {
		neighbours(g, out[i], func(land Cell) bool {
			idx := g.Index(land)
			if !visited[idx] {
				visited[idx] = true
				out = append(out, land)
			}
			return false
		})
	}
	return out
}
