package hash

import (
	"testing"
)

// performance benchmark
func BenchmarkKeep(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Keep(uint32(i), uint32(i>>10), 42, 0.8)
	}
}

// sanity check fuzz
func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Add(uint32(7), uint32(42), uint32(100))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 0 && out >= max {
			t.Errorf("Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}

// Keep edge rates
func TestKeepBounds(t *testing.T) {
	for row := uint32(0); row < 1000; row++ {
		if !Keep(row, 3, 42, 1) {
			t.Fatalf("rate 1 dropped row %d", row)
		}
		if Keep(row, 3, 42, 0) {
			t.Fatalf("rate 0 kept row %d", row)
		}
	}
}

// Keep is a function of its arguments
func TestKeepDeterministic(t *testing.T) {
	for row := uint32(0); row < 1000; row++ {
		if Keep(row, 5, 42, 0.5) != Keep(row, 5, 42, 0.5) {
			t.Fatalf("row %d not deterministic", row)
		}
	}
}

// Keep roughly honours the requested rate
func TestKeepRate(t *testing.T) {
	const rows = 20000
	for round := uint32(0); round < 4; round++ {
		var kept int
		for row := uint32(0); row < rows; row++ {
			if Keep(row, round, 42, 0.5) {
				kept++
			}
		}
		frac := float64(kept) / rows
		if frac < 0.4 || frac > 0.6 {
			t.Errorf("round %d kept fraction %f, want about 0.5", round, frac)
		}
	}
}
