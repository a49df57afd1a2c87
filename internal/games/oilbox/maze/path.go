package maze

// FindPath returns the shortest sequence of landing cells leading from start
// to goal, excluding start itself. ok is false when goal is unreachable.
// When start == goal the path is empty and ok is true.
func FindPath(g *Grid, start, goal Cell) (path []Cell, ok bool) {
	if start == goal {
		return []Cell{}, true
	}

	parent := make([]int, g.rows*g.cols)
	for i := range parent {
		parent[i] = -1
	}
	startIdx := g.Index(start)
	parent[startIdx] = startIdx
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curIdx := g.Index(cur)

		found := neighbours(g, cur, func(land Cell) bool {
			idx := g.Index(land)
			if parent[idx] != -1 {
				return false
			}
			parent[idx] = curIdx
			if land == goal {
				return true
			}
			queue = append(queue, land)
			return false
		})
		if found {
			return tracePath(g, parent, startIdx, g.Index(goal)), true
		}
	}
	return nil, false
}

// tracePath walks parent pointers from goal back to start and reverses.
func tracePath(g *Grid, parent []int, startIdx, goalIdx int) []Cell {
	var rev []Cell
	for idx := goalIdx; idx != startIdx; idx = parent[idx] {
		rev = append(rev, g.CellAt(idx))
	}
	path := make([]Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// MinMoves returns the smallest number of slides from start to goal.
func MinMoves(g *Grid, start, goal Cell) (int, bool) {
	path, ok := FindPath(g, start, goal)
	if !ok {
		return 0, false
	}
	return len(path), true
}

// Directions converts a path (start prepended) into the slides that walk it.
func Directions(start Cell, path []Cell) []Dir {
	dirs := make([]Dir, 0, len(path))
	prev := start
	for _, c := range path {
		switch {
		case c.Row < prev.Row:
			dirs = append(dirs, Up)
		case c.Row > prev.Row:
			dirs = append(dirs, Down)
		case c.Col < prev.Col:
			dirs = append(dirs, Left)
		default:
			dirs = append(dirs, Right)
		}
		prev = c
	}
	return dirs
}
