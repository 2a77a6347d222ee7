package dungeon

// Room is an axis-aligned rectangle of carved floor. Width and height
// are odd and the origin sits on the odd lattice so a one-tile wall
// always separates a room from the grid edge.
type Room struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	Region int `json:"region" yaml:"region"`
}

// Touches reports whether one room inflated by a single tile on every
// side intersects the other: overlap and edge contact both touch, while
// rooms separated by at least one wall tile do not.
func (r Room) Touches(other Room) bool {
	return r.X <= other.X+other.Width &&
		other.X <= r.X+r.Width &&
		r.Y <= other.Y+other.Height &&
		other.Y <= r.Y+r.Height
}

// Overlaps reports whether the two rooms share at least one tile.
func (r Room) Overlaps(other Room) bool {
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Contains reports whether the point lies inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
