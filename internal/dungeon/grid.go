package dungeon

import "fmt"

// OutOfRangeError reports a tile access outside the grid bounds.
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("tile (%d,%d) out of range for %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

// Grid is the width x height tile matrix. It owns the canonical tile
// for every coordinate; tile neighbor links are wired once after Fill
// so that a mutation is observed through any neighbor reference.
type Grid struct {
	Width  int
	Height int
	tiles  [][]*Tile // indexed [x][y]
}

// NewGrid creates an empty grid. Fill must be called before tiles are
// accessed.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height}
}

// Fill allocates every tile with the given type and wires each tile's
// neighbor map with the in-bounds subset of the eight compass offsets.
func (g *Grid) Fill(tileType TileType) {
	g.tiles = make([][]*Tile, g.Width)
	for x := 0; x < g.Width; x++ {
		g.tiles[x] = make([]*Tile, g.Height)
		for y := 0; y < g.Height; y++ {
			g.tiles[x][y] = NewTile(x, y, tileType)
		}
	}
	g.wireNeighbors()
}

// wireNeighbors links every tile to its in-bounds compass neighbors.
func (g *Grid) wireNeighbors() {
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			tile := g.tiles[x][y]
			for _, dir := range AllDirections() {
				dx, dy := dir.Offset()
				if neighbor := g.at(x+dx, y+dy); neighbor != nil {
					tile.Neighbors[dir] = neighbor
				}
			}
		}
	}
}

// Tile returns the tile at (x, y) or an OutOfRangeError.
func (g *Grid) Tile(x, y int) (*Tile, error) {
	if !g.InBounds(x, y) {
		return nil, &OutOfRangeError{X: x, Y: y, Width: g.Width, Height: g.Height}
	}
	return g.tiles[x][y], nil
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// at returns the tile at (x, y), or nil when out of bounds.
func (g *Grid) at(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.tiles[x][y]
}

// Tiles returns the backing tile matrix indexed [x][y].
func (g *Grid) Tiles() [][]*Tile {
	return g.tiles
}
