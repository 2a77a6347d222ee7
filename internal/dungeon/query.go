package dungeon

// Query enumerates tiles reachable from a start tile by repeated
// neighbor traversal under composable filters. Filters may be chained
// in any order; Get materializes the result. The start tile itself is
// never part of the result and no tile appears twice.
type Query struct {
	start        *Tile
	dirs         []Direction
	levels       int
	hasType      bool
	tileType     TileType
	hasNotType   bool
	notType      TileType
	hasRegion    bool
	region       int
	hasNotRegion bool
	notRegion    int
	uniqueRegion bool
}

// NewQuery creates a query starting at the given tile. The defaults
// are cardinal traversal at BFS radius 1.
func NewQuery(start *Tile) *Query {
	return &Query{start: start, dirs: CardinalDirections(), levels: 1}
}

// Start overrides the start tile.
func (q *Query) Start(tile *Tile) *Query {
	q.start = tile
	return q
}

// Cardinal restricts traversal to the four cardinal directions.
func (q *Query) Cardinal() *Query {
	q.dirs = CardinalDirections()
	return q
}

// Intercardinal restricts traversal to the four diagonal directions.
func (q *Query) Intercardinal() *Query {
	q.dirs = IntercardinalDirections()
	return q
}

// Levels sets the BFS radius. A radius of 0 means unlimited: the query
// floods across every matching tile it can reach.
func (q *Query) Levels(levels int) *Query {
	q.levels = levels
	return q
}

// Type keeps only tiles of the given type.
func (q *Query) Type(t TileType) *Query {
	q.hasType = true
	q.tileType = t
	return q
}

// NotType keeps only tiles whose type differs from the given type.
func (q *Query) NotType(t TileType) *Query {
	q.hasNotType = true
	q.notType = t
	return q
}

// Region keeps only tiles tagged with the given region id.
func (q *Query) Region(region int) *Query {
	q.hasRegion = true
	q.region = region
	return q
}

// NotRegion keeps only tiles whose region differs from the given id.
func (q *Query) NotRegion(region int) *Query {
	q.hasNotRegion = true
	q.notRegion = region
	return q
}

// UniqueRegion collapses the result to at most one tile per region id.
func (q *Query) UniqueRegion() *Query {
	q.uniqueRegion = true
	return q
}

// matches reports whether a tile passes every keep/drop predicate.
func (q *Query) matches(tile *Tile) bool {
	if q.hasType && tile.Type != q.tileType {
		return false
	}
	if q.hasNotType && tile.Type == q.notType {
		return false
	}
	if q.hasRegion && tile.Region != q.region {
		return false
	}
	if q.hasNotRegion && tile.Region == q.notRegion {
		return false
	}
	return true
}

// Get materializes the query via breadth-first traversal. Expansion
// beyond the first level only continues through matching tiles, so an
// unlimited query floods a connected component rather than the grid.
func (q *Query) Get() []*Tile {
	if q.start == nil {
		return nil
	}

	type step struct {
		tile  *Tile
		depth int
	}

	visited := map[*Tile]bool{q.start: true}
	seenRegions := make(map[int]bool)
	queue := []step{{q.start, 0}}
	var result []*Tile

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if q.levels > 0 && current.depth >= q.levels {
			continue
		}
		// Past the first level, only matching tiles conduct the flood.
		if current.tile != q.start && !q.matches(current.tile) {
			continue
		}

		for _, dir := range q.dirs {
			neighbor := current.tile.Neighbor(dir)
			if neighbor == nil || visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			queue = append(queue, step{neighbor, current.depth + 1})

			if !q.matches(neighbor) {
				continue
			}
			if q.uniqueRegion {
				if seenRegions[neighbor.Region] {
					continue
				}
				seenRegions[neighbor.Region] = true
			}
			result = append(result, neighbor)
		}
	}

	return result
}
