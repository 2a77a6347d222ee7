package dungeon

import "testing"

func TestPRNGDeterminism(t *testing.T) {
	a := NewPRNG("s1")
	b := NewPRNG("s1")

	for i := 0; i < 1000; i++ {
		got, want := a.IntBetween(0, 100), b.IntBetween(0, 100)
		if got != want {
			t.Fatalf("draw %d: %d != %d for identical seeds", i, got, want)
		}
	}
}

func TestPRNGSeedsDiffer(t *testing.T) {
	a := NewPRNG("s1")
	b := NewPRNG("s2")

	same := true
	for i := 0; i < 50; i++ {
		if a.IntBetween(0, 1000000) != b.IntBetween(0, 1000000) {
			same = false
			break
		}
	}
	if same {
		t.Error("distinct seeds produced identical 50-draw streams")
	}
}

func TestIntBetweenBounds(t *testing.T) {
	p := NewPRNG("bounds")
	seen := make(map[int]bool)

	for i := 0; i < 1000; i++ {
		v := p.IntBetween(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("IntBetween(3, 7) = %d, out of range", v)
		}
		seen[v] = true
	}

	// Both endpoints are inclusive and should show up over 1000 draws.
	if !seen[3] || !seen[7] {
		t.Errorf("endpoints not drawn: seen = %v", seen)
	}
}

func TestIntBetweenSingleValue(t *testing.T) {
	p := NewPRNG("single")
	if got := p.IntBetween(5, 5); got != 5 {
		t.Errorf("IntBetween(5, 5) = %d, want 5", got)
	}
}

func TestIntBetweenPanicsOnBadRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntBetween(5, 4) should panic")
		}
	}()
	NewPRNG("panic").IntBetween(5, 4)
}

func TestOneIn(t *testing.T) {
	p := NewPRNG("onein")

	// OneIn(1) is always true.
	for i := 0; i < 10; i++ {
		if !p.OneIn(1) {
			t.Fatal("OneIn(1) returned false")
		}
	}

	// OneIn(2) should land near half over many draws.
	hits := 0
	for i := 0; i < 10000; i++ {
		if p.OneIn(2) {
			hits++
		}
	}
	if hits < 4500 || hits > 5500 {
		t.Errorf("OneIn(2) hit %d of 10000, want roughly half", hits)
	}
}

func TestGeneratedSeed(t *testing.T) {
	p := NewPRNG("")
	seed := p.Seed()

	if len(seed) != seedLength {
		t.Errorf("generated seed %q has length %d, want %d", seed, len(seed), seedLength)
	}
	for _, r := range seed {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')) {
			t.Errorf("generated seed %q contains %q outside the slug alphabet", seed, r)
		}
	}
}

func TestSeedEcho(t *testing.T) {
	if got := NewPRNG("keep-me").Seed(); got != "keep-me" {
		t.Errorf("Seed() = %q, want %q", got, "keep-me")
	}
}
