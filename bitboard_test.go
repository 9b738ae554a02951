package chess

import "testing"

var allDirections = []Direction{
	North, East, South, West,
	NorthEast, SouthEast, SouthWest, NorthWest,
	NorthNorthEast, EastNorthEast, EastSouthEast, SouthSouthEast,
	SouthSouthWest, WestSouthWest, WestNorthWest, NorthNorthWest,
}

func TestShiftRoundTrip(t *testing.T) {
	// A single-square set shifted somewhere on the board and back must come
	// home unchanged.
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		for _, d := range allDirections {
			shifted := bb.Shift(d)
			if shifted == 0 {
				continue
			}
			if got := shifted.Shift(d.Opposite()); got != bb {
				t.Errorf("shift(%v, %d) round trip = %x, want %x", sq, d, got, bb)
			}
		}
	}
}

func TestShiftWrap(t *testing.T) {
	tests := []struct {
		name string
		bb   Bitboard
		d    Direction
		want Bitboard
	}{
		{"h-file east", SquareBB(H4), East, 0},
		{"a-file west", SquareBB(A4), West, 0},
		{"g-file double east", SquareBB(G4), EastNorthEast, 0},
		{"b-file double west", SquareBB(B4), WestSouthWest, 0},
		{"rank 8 north", SquareBB(E8), North, 0},
		{"rank 1 south", SquareBB(E1), South, 0},
		{"plain east", SquareBB(E4), East, SquareBB(F4)},
		{"plain knight jump", SquareBB(G1), NorthNorthWest, SquareBB(F3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.bb.Shift(tc.d); got != tc.want {
				t.Errorf("shift = %x, want %x", got, tc.want)
			}
		})
	}
}

func TestRay(t *testing.T) {
	// The ray includes the first blocker but nothing beyond it.
	bb := SquareBB(A1)
	occupied := SquareBB(A5)

	want := SquareBB(A2) | SquareBB(A3) | SquareBB(A4) | SquareBB(A5)
	if got := bb.Ray(North, occupied); got != want {
		t.Errorf("ray = %x, want %x", got, want)
	}

	// Without occupancy the ray runs to the edge.
	want |= SquareBB(A6) | SquareBB(A7) | SquareBB(A8)
	if got := bb.Ray(North, Empty); got != want {
		t.Errorf("ray = %x, want %x", got, want)
	}
}

func TestBitboardOps(t *testing.T) {
	bb := Empty.Set(E4).Set(A1).Set(H8)

	if got := bb.PopCount(); got != 3 {
		t.Errorf("PopCount = %d, want 3", got)
	}
	if got := bb.LSB(); got != A1 {
		t.Errorf("LSB = %v, want a1", got)
	}
	if got := bb.MSB(); got != H8 {
		t.Errorf("MSB = %v, want h8", got)
	}
	if !bb.IsSet(E4) || bb.IsSet(E5) {
		t.Error("IsSet gives wrong membership")
	}

	bb = bb.Clear(E4)
	if bb.IsSet(E4) {
		t.Error("Clear did not remove e4")
	}

	bb = bb.Toggle(E4)
	if !bb.IsSet(E4) {
		t.Error("Toggle did not add e4")
	}

	if got := bb.PopLSB(); got != A1 {
		t.Errorf("PopLSB = %v, want a1", got)
	}
	if bb.IsSet(A1) {
		t.Error("PopLSB did not remove a1")
	}
}

func TestFileRankMasks(t *testing.T) {
	for f := 0; f < 8; f++ {
		if got := FileMask[f].PopCount(); got != 8 {
			t.Errorf("file %d mask has %d squares", f, got)
		}
	}
	for r := 0; r < 8; r++ {
		if got := RankMask[r].PopCount(); got != 8 {
			t.Errorf("rank %d mask has %d squares", r, got)
		}
	}
	if FileMask[4]&RankMask[3] != SquareBB(E4) {
		t.Error("file e and rank 4 do not intersect at e4")
	}
}
