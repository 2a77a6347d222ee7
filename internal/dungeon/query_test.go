package dungeon

import "testing"

// queryGrid builds a 5x5 wall grid with a floor cross around the center:
//
//	#####
//	##.##
//	#...#
//	##.##
//	#####
func queryGrid(t *testing.T) *Grid {
	t.Helper()
	grid := NewGrid(5, 5)
	grid.Fill(Wall)
	for _, p := range [][2]int{{2, 1}, {1, 2}, {2, 2}, {3, 2}, {2, 3}} {
		tile, _ := grid.Tile(p[0], p[1])
		tile.Type = Floor
	}
	return grid
}

func TestQueryExcludesStart(t *testing.T) {
	grid := queryGrid(t)
	center, _ := grid.Tile(2, 2)

	for _, tile := range center.Query().Get() {
		if tile == center {
			t.Fatal("query result contains the start tile")
		}
	}
}

func TestQueryCardinalDefault(t *testing.T) {
	grid := queryGrid(t)
	center, _ := grid.Tile(2, 2)

	got := center.Query().Get()
	if len(got) != 4 {
		t.Fatalf("default query returned %d tiles, want 4", len(got))
	}
}

func TestQueryTypeFilter(t *testing.T) {
	grid := queryGrid(t)
	corner, _ := grid.Tile(1, 1)

	floors := corner.Query().Type(Floor).Get()
	if len(floors) != 2 {
		t.Errorf("cardinal floors around (1,1) = %d, want 2", len(floors))
	}

	walls := corner.Query().NotType(Floor).Get()
	if len(walls) != 2 {
		t.Errorf("cardinal non-floors around (1,1) = %d, want 2", len(walls))
	}
}

func TestQueryIntercardinal(t *testing.T) {
	grid := queryGrid(t)
	center, _ := grid.Tile(2, 2)

	diagonals := center.Query().Intercardinal().Get()
	if len(diagonals) != 4 {
		t.Fatalf("intercardinal query returned %d tiles, want 4", len(diagonals))
	}
	for _, tile := range diagonals {
		if tile.Type != Wall {
			t.Errorf("diagonal tile (%d,%d) is %v, want wall", tile.X, tile.Y, tile.Type)
		}
	}
}

func TestQueryRegionFilters(t *testing.T) {
	grid := queryGrid(t)
	floor := func(x, y int) *Tile {
		tile, _ := grid.Tile(x, y)
		return tile
	}
	floor(2, 1).SetRegion(0, RegionRoom)
	floor(1, 2).SetRegion(1, RegionCorridor)
	floor(3, 2).SetRegion(1, RegionCorridor)
	floor(2, 3).SetRegion(1, RegionCorridor)

	center := floor(2, 2)

	tagged := center.Query().NotRegion(NoRegion).Get()
	if len(tagged) != 4 {
		t.Errorf("tagged neighbors = %d, want 4", len(tagged))
	}

	unique := center.Query().NotRegion(NoRegion).UniqueRegion().Get()
	if len(unique) != 2 {
		t.Errorf("unique regions = %d, want 2", len(unique))
	}

	regionOne := center.Query().Region(1).Get()
	if len(regionOne) != 3 {
		t.Errorf("region 1 neighbors = %d, want 3", len(regionOne))
	}
}

func TestQueryLevels(t *testing.T) {
	grid := queryGrid(t)
	top, _ := grid.Tile(2, 1)

	// Radius 2 from the top of the cross, walking floor only: the
	// center at depth 1, then the three remaining arms at depth 2.
	got := top.Query().Type(Floor).Levels(2).Get()
	if len(got) != 4 {
		t.Errorf("levels(2) floor query = %d tiles, want 4", len(got))
	}
}

func TestQueryUnlimitedFlood(t *testing.T) {
	grid := queryGrid(t)
	top, _ := grid.Tile(2, 1)

	// Unlimited flood across floor covers the whole cross minus start.
	got := top.Query().Type(Floor).Levels(0).Get()
	if len(got) != 4 {
		t.Errorf("flood query = %d tiles, want 4", len(got))
	}
}

func TestQueryNoDuplicates(t *testing.T) {
	grid := queryGrid(t)
	center, _ := grid.Tile(2, 2)

	got := center.Query().Levels(2).Type(Floor).Get()
	seen := make(map[*Tile]bool)
	for _, tile := range got {
		if seen[tile] {
			t.Fatalf("tile (%d,%d) appears twice", tile.X, tile.Y)
		}
		seen[tile] = true
	}
}

func TestQueryStartOverride(t *testing.T) {
	grid := queryGrid(t)
	corner, _ := grid.Tile(0, 0)
	center, _ := grid.Tile(2, 2)

	got := corner.Query().Start(center).Type(Floor).Get()
	if len(got) != 4 {
		t.Errorf("query with overridden start = %d tiles, want 4", len(got))
	}
}
