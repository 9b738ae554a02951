package chess

// Zobrist keys for position hashing. Every independently varying aspect of a
// position gets its own key: piece placement per (square, color, type), each
// castling right, the en passant file and the side to move. The en passant
// keys depend only on the file of the target square.
var (
	zobristPiece      [64][2][6]uint64
	zobristKingside   [2]uint64
	zobristQueenside  [2]uint64
	zobristEnPassant  [8]uint64
	zobristSideToMove uint64
)

func initZobrist(rng *prng) {
	for sq := A1; sq <= H8; sq++ {
		for pt := Pawn; pt <= King; pt++ {
			zobristPiece[sq][White][pt] = rng.next()
			zobristPiece[sq][Black][pt] = rng.next()
		}
	}

	zobristKingside[White] = rng.next()
	zobristKingside[Black] = rng.next()
	zobristQueenside[White] = rng.next()
	zobristQueenside[Black] = rng.next()

	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rng.next()
	}

	zobristSideToMove = rng.next()
}
