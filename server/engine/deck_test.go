package engine

import "testing"

func TestDrawCardAndAdvance(t *testing.T) {
	cases := []struct {
		seed     uint64
		card     Card
		nextSeed uint64
	}{
		{0, 0, 12345},
		{1, 1, 1103527590},
		{52, 0, 52*1103515245 + 12345},
		{123456789, Card(123456789 % 52), 123456789*1103515245 + 12345},
	}
	for _, tc := range cases {
		card, next := Draw(tc.seed)
		if card != tc.card {
			t.Fatalf("seed %d: card = %d, want %d", tc.seed, card, tc.card)
		}
		if next != tc.nextSeed {
			t.Fatalf("seed %d: next seed = %d, want %d", tc.seed, next, tc.nextSeed)
		}
	}
}

func TestDrawWrapsAtMaxSeed(t *testing.T) {
	// 2^64-1 mod 52 = 15; the advance must wrap, not overflow.
	card, next := Draw(^uint64(0))
	if card != 15 {
		t.Fatalf("card = %d, want 15", card)
	}
	if next == 0 {
		t.Fatalf("next seed should not collapse to zero")
	}
}

func TestDrawStreamReproducible(t *testing.T) {
	const start uint64 = 0xDEADBEEF
	a, b := start, start
	for i := 0; i < 100; i++ {
		ca, na := Draw(a)
		cb, nb := Draw(b)
		if ca != cb || na != nb {
			t.Fatalf("draw %d diverged: (%d,%d) vs (%d,%d)", i, ca, na, cb, nb)
		}
		if ca > 51 {
			t.Fatalf("draw %d out of range: %d", i, ca)
		}
		a, b = na, nb
	}
}
