// Package render draws a generated dungeon as ASCII text.
package render

import (
	"fmt"
	"strings"

	"github.com/snickbit/dungeon/internal/dungeon"
)

// Symbol returns the map character for a tile type.
func Symbol(t dungeon.TileType) byte {
	switch t {
	case dungeon.Wall:
		return '#'
	case dungeon.Floor:
		return '.'
	case dungeon.Door:
		return '+'
	case dungeon.Shaft:
		return 'O'
	case dungeon.Stairs:
		return '>'
	default:
		return '?'
	}
}

// Map renders the tile matrix row by row.
func Map(results *dungeon.Results) string {
	var output strings.Builder
	for y := 0; y < results.Height(); y++ {
		for x := 0; x < results.Width(); x++ {
			tile, err := results.Tile(x, y)
			if err != nil {
				output.WriteByte('?')
				continue
			}
			output.WriteByte(Symbol(tile.Type))
		}
		output.WriteByte('\n')
	}
	return output.String()
}

// Summary renders the map with a header and room list.
func Summary(results *dungeon.Results) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Dungeon %dx%d (seed: %s)\n", results.Width(), results.Height(), results.Seed()))
	output.WriteString(strings.Repeat("=", 40) + "\n\n")
	output.WriteString(Map(results))

	rooms := results.Rooms()
	output.WriteString(fmt.Sprintf("\n%d rooms:\n", len(rooms)))
	for _, room := range rooms {
		output.WriteString(fmt.Sprintf("  region %d: %dx%d at (%d,%d)\n",
			room.Region, room.Width, room.Height, room.X, room.Y))
	}

	return output.String()
}

// Legend describes the map symbols.
func Legend() string {
	return `
Legend:
  #  wall
  .  floor
  +  door
  O  shaft
  >  stairs
`
}
