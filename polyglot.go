package chess

// Polyglot-style Zobrist hashing for opening book lookups. Keys cover twelve
// piece kinds (black 0-5, white 6-11), four castling flags, eight en passant
// files, and a key folded in when White is to move. The keys are drawn from a
// fixed-seed generator rather than taken from the published Polyglot key
// table, so the hashes do not match those of existing Polyglot book files.
// The en passant key participates only when a pawn of the side to move can
// actually perform the capture.
var (
	polyglotPieces     [12][64]uint64
	polyglotCastling   [4]uint64
	polyglotEnPassant  [8]uint64
	polyglotSideToMove uint64
)

func init() {
	initPolyglotKeys()
}

func initPolyglotKeys() {
	rng := newPRNG(0x37b4a4b3f0d1c0d0)

	for kind := 0; kind < 12; kind++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[kind][sq] = rng.next()
		}
	}

	for i := 0; i < 4; i++ {
		polyglotCastling[i] = rng.next()
	}

	for f := 0; f < 8; f++ {
		polyglotEnPassant[f] = rng.next()
	}

	polyglotSideToMove = rng.next()
}

// polyglotKind maps (color, piece type) to the Polyglot piece kind index:
// black pieces occupy 0-5 and white pieces 6-11, ordered pawn, knight,
// bishop, rook, queen, king.
var polyglotKind = [2][6]int{
	White: {Pawn: 6, Knight: 7, Bishop: 8, Rook: 9, Queen: 10, King: 11},
	Black: {Pawn: 0, Knight: 1, Bishop: 2, Rook: 3, Queen: 4, King: 5},
}

// PolyglotHash computes the book hash key for the position.
func (p *Position) PolyglotHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.board.SidePieceSet(c, pt); bb != 0; {
				sq := bb.PopLSB()
				hash ^= polyglotPieces[polyglotKind[c][pt]][sq]
			}
		}
	}

	if p.kingsideCastle[White] {
		hash ^= polyglotCastling[0]
	}
	if p.queensideCastle[White] {
		hash ^= polyglotCastling[1]
	}
	if p.kingsideCastle[Black] {
		hash ^= polyglotCastling[2]
	}
	if p.queensideCastle[Black] {
		hash ^= polyglotCastling[3]
	}

	if p.enPassant != NoSquare {
		epBB := SquareBB(p.enPassant)
		pawns := p.board.SidePieceSet(p.turn, Pawn)
		backward := Forwards(p.turn.Other())

		if (epBB.Shift(backward+East)|epBB.Shift(backward+West))&pawns != 0 {
			hash ^= polyglotEnPassant[p.enPassant.File()]
		}
	}

	if p.turn == White {
		hash ^= polyglotSideToMove
	}

	return hash
}
