package chess

import "fmt"

// Move represents a move from one square to another. Promote names the piece
// a pawn turns into on reaching its back rank and is NoPieceType otherwise.
// Castling is encoded as the king's two-square step; en passant as the pawn
// capture onto the target square.
type Move struct {
	From    Square
	To      Square
	Promote PieceType
}

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promote: NoPieceType}
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promote PieceType) Move {
	return Move{From: from, To: to, Promote: promote}
}

// IsNull returns true if the move has no source or destination.
func (m Move) IsNull() bool {
	return m.From == NoSquare || m.To == NoSquare
}

// String returns the move in long algebraic notation (e.g., "e2e4",
// "h7h8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promote != NoPieceType {
		s += string(m.Promote.Char())
	}
	return s
}

// MoveFromLAN parses a move in long algebraic notation: source square,
// destination square and an optional promotion letter.
func MoveFromLAN(lan string) (Move, error) {
	if len(lan) != 4 && len(lan) != 5 {
		return Move{From: NoSquare, To: NoSquare, Promote: NoPieceType}, fmt.Errorf("invalid move: %q", lan)
	}

	from, err := ParseSquare(lan[0:2])
	if err != nil || from == NoSquare {
		return Move{From: NoSquare, To: NoSquare, Promote: NoPieceType}, fmt.Errorf("invalid move: %q", lan)
	}

	to, err := ParseSquare(lan[2:4])
	if err != nil || to == NoSquare {
		return Move{From: NoSquare, To: NoSquare, Promote: NoPieceType}, fmt.Errorf("invalid move: %q", lan)
	}

	promote := NoPieceType
	if len(lan) == 5 {
		switch lan[4] {
		case 'r':
			promote = Rook
		case 'n':
			promote = Knight
		case 'b':
			promote = Bishop
		case 'q':
			promote = Queen
		default:
			return Move{From: NoSquare, To: NoSquare, Promote: NoPieceType}, fmt.Errorf("invalid promotion piece: %c", lan[4])
		}
	}

	return Move{From: from, To: to, Promote: promote}, nil
}
