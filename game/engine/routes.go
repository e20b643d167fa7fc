package engine

// routeSteps is the expansion order of the escape search: up, up-left,
// up-right, left, right. There is no downward step, so every route makes
// progress toward or along the target row.
var routeSteps = []Cell{
	{-1, 0},
	{-1, -1},
	{-1, 1},
	{0, -1},
	{0, 1},
}

// FindEscapeRoutes enumerates simple paths from hare to the target row by
// depth-first search. A path never repeats a cell. Hound positions do not
// constrain the search, so a route may pass through a hound.
//
// Enumeration stops after MaxEscapeRoutes paths and the order of the
// returned routes is the DFS order, so the blocking term of ScoreHound only
// sees the first MaxEscapeRoutes routes in that order.
//
// A hare off the board has no routes; an empty result is not an error.
func FindEscapeRoutes(hare Cell, hounds []Cell) [][]Cell {
	if !IsOnBoard(hare) {
		return nil
	}

	var routes [][]Cell

	// Each branch owns its path: the three-index slice makes append copy
	// instead of writing into a sibling branch's backing array.
	var walk func(path []Cell) bool
	walk = func(path []Cell) bool {
		pos := path[len(path)-1]
		if pos.Row == TargetRow {
			routes = append(routes, path)
			return len(routes) >= MaxEscapeRoutes
		}

		for _, step := range routeSteps {
			next := Cell{Row: pos.Row + step.Row, Col: pos.Col + step.Col}
			if !IsOnBoard(next) || pathContains(path, next) {
				continue
			}
			if walk(append(path[:len(path):len(path)], next)) {
				return true
			}
		}
		return false
	}

	walk([]Cell{hare})
	return routes
}

// pathContains reports whether c is already on path
func pathContains(path []Cell, c Cell) bool {
	for _, p := range path {
		if p == c {
			return true
		}
	}
	return false
}
