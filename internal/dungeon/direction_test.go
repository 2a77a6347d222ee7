package dungeon

import "testing"

func TestCardinalOrder(t *testing.T) {
	dirs := CardinalDirections()
	want := []Direction{North, East, South, West}
	wantOffsets := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	if len(dirs) != len(want) {
		t.Fatalf("got %d cardinal directions, want %d", len(dirs), len(want))
	}
	for i, dir := range dirs {
		if dir != want[i] {
			t.Errorf("cardinal[%d] = %v, want %v", i, dir, want[i])
		}
		dx, dy := dir.Offset()
		if dx != wantOffsets[i][0] || dy != wantOffsets[i][1] {
			t.Errorf("%v offset = (%d,%d), want (%d,%d)", dir, dx, dy, wantOffsets[i][0], wantOffsets[i][1])
		}
	}
}

func TestAllDirections(t *testing.T) {
	dirs := AllDirections()
	if len(dirs) != 8 {
		t.Fatalf("got %d directions, want 8", len(dirs))
	}
	seen := make(map[string]bool)
	for _, dir := range dirs {
		name := dir.String()
		if name == "unknown" {
			t.Errorf("direction %d has no name", dir)
		}
		if seen[name] {
			t.Errorf("direction %q appears twice", name)
		}
		seen[name] = true
	}
}

func TestIntercardinalOffsets(t *testing.T) {
	for _, dir := range IntercardinalDirections() {
		dx, dy := dir.Offset()
		if dx == 0 || dy == 0 {
			t.Errorf("%v offset = (%d,%d), want both axes nonzero", dir, dx, dy)
		}
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		x, y    int
		wantErr bool
	}{
		{"3,4", 3, 4, false},
		{"0,0", 0, 0, false},
		{" 7 , 12 ", 7, 12, false},
		{"3", 0, 0, true},
		{"3,4,5", 0, 0, true},
		{"a,b", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		x, y, err := ParsePoint(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePoint(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePoint(%q) failed: %v", tt.input, err)
			continue
		}
		if x != tt.x || y != tt.y {
			t.Errorf("ParsePoint(%q) = (%d,%d), want (%d,%d)", tt.input, x, y, tt.x, tt.y)
		}
	}
}
