package chess

import "testing"

// Canonical perft fixtures. Heavy depths are skipped in short mode; run the
// full table with `go test -run Perft` and without -short to validate move
// generation completely.
func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, false},
		{5, 4865609, true},
		{6, 119060324, true},
	}

	pos := NewPosition()
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestPerftKiwipete exercises castling and pinned-piece edge cases.
func TestPerftKiwipete(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 48, false},
		{2, 2039, false},
		{3, 97862, false},
		{4, 4085603, true},
		{5, 193690690, true},
	}

	pos := mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestPerftEndgame exercises en passant discovered checks.
func TestPerftEndgame(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 14, false},
		{2, 191, false},
		{3, 2812, false},
		{4, 43238, false},
		{5, 674624, true},
		{6, 11030083, true},
	}

	pos := mustParseFEN(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestPerftPromotions exercises promotion and underpromotion edge cases.
func TestPerftPromotions(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 6, false},
		{2, 264, false},
		{3, 9467, false},
		{4, 422333, true},
		{5, 15833292, true},
	}

	pos := mustParseFEN(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestPerftTalkchess is the position that caught several published engines.
func TestPerftTalkchess(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 44, false},
		{2, 1486, false},
		{3, 62379, false},
		{4, 2103487, true},
		{5, 89941194, true},
	}

	pos := mustParseFEN(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

// TestPerftSteven exercises a balanced middlegame.
func TestPerftSteven(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
		heavy bool
	}{
		{1, 46, false},
		{2, 2079, false},
		{3, 89890, false},
		{4, 3894594, true},
		{5, 164075551, true},
	}

	pos := mustParseFEN(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			if tc.heavy && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			if got := Perft(pos, tc.depth); got != tc.nodes {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.nodes)
			}
		})
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := NewPosition()

	var total int64
	entries := Divide(pos, 3)
	for _, e := range entries {
		total += e.Nodes
	}

	if len(entries) != 20 {
		t.Errorf("divide has %d entries, want 20", len(entries))
	}
	if want := Perft(pos, 3); total != want {
		t.Errorf("divide total = %d, want %d", total, want)
	}
}
