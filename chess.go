// Package chess implements chess position representation, legal move
// generation and game state tracking using bitboards.
//
// A Position holds piece placement together with side to move, castling
// rights, en passant target and move counters, and maintains a Zobrist
// fingerprint incrementally through MakeMove and UndoMove. A Game stacks
// moves on top of a position and tracks repetitions and termination.
//
// Sliding piece attacks are answered by magic bitboard tables built once at
// package initialization. All tables are immutable after Init returns and may
// be read concurrently; individual positions and games are not synchronized.
package chess

// DefaultSeed is the seed used for table construction at package
// initialization.
const DefaultSeed uint64 = 2147483647

// Init rebuilds every precomputed table (attack tables, magic numbers and
// Zobrist keys) from the given seed. The tables are already built with
// DefaultSeed when the package loads; calling Init again invalidates the
// fingerprints of any position created before the call.
func Init(seed uint64) {
	rng := newPRNG(seed)
	initAttacks(rng)
	initZobrist(rng)
}

func init() {
	Init(DefaultSeed)
}
