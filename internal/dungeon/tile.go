package dungeon

import (
	"encoding/json"
	"fmt"
)

// TileType represents the type of a grid tile. The pipeline only
// produces walls, floors and doors; shafts and stairs exist for
// downstream annotation of a finished dungeon.
type TileType int

const (
	Wall TileType = iota
	Floor
	Door
	Shaft
	Stairs
)

// String returns the string representation of a TileType.
func (t TileType) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Door:
		return "door"
	case Shaft:
		return "shaft"
	case Stairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// RegionType classifies how a region was carved.
type RegionType int

const (
	RegionNone RegionType = iota
	RegionRoom
	RegionCorridor
)

// String returns the string representation of a RegionType.
func (t RegionType) String() string {
	switch t {
	case RegionRoom:
		return "room"
	case RegionCorridor:
		return "corridor"
	default:
		return "none"
	}
}

// NoRegion is the region id of a tile that belongs to no region.
const NoRegion = -1

// Tile is a single cell of the grid. Position is fixed at construction;
// type and region change as the pipeline carves.
type Tile struct {
	X, Y       int
	Type       TileType
	Region     int
	RegionType RegionType
	// Neighbors maps each compass direction to the canonical tile in
	// that direction. A direction is absent iff it falls off the grid.
	Neighbors map[Direction]*Tile
}

// NewTile creates an unregioned tile of the given type at (x, y).
func NewTile(x, y int, tileType TileType) *Tile {
	return &Tile{
		X:         x,
		Y:         y,
		Type:      tileType,
		Region:    NoRegion,
		Neighbors: make(map[Direction]*Tile),
	}
}

// Neighbor returns the tile in the given direction, or nil at the grid edge.
func (t *Tile) Neighbor(d Direction) *Tile {
	return t.Neighbors[d]
}

// SetRegion tags the tile with a region id and its kind.
func (t *Tile) SetRegion(id int, regionType RegionType) {
	t.Region = id
	t.RegionType = regionType
}

// ClearRegion removes the tile's region tag. The tile type is left as
// it is.
func (t *Tile) ClearRegion() {
	t.Region = NoRegion
	t.RegionType = RegionNone
}

// Query starts a neighbor query at this tile.
func (t *Tile) Query() *Query {
	return NewQuery(t)
}

// String returns the "x,y" form of the tile position.
func (t *Tile) String() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

// MarshalJSON emits the tile as {x, y, type}.
func (t *Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X    int    `json:"x"`
		Y    int    `json:"y"`
		Type string `json:"type"`
	}{t.X, t.Y, t.Type.String()})
}
