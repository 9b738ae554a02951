package chess

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square int8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare marks an absent square, such as a cleared en passant target.
	NoSquare Square = -1
)

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return A1 <= sq && sq <= H8
}

// IsLight returns true if the square is light-colored.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// String returns the algebraic notation for the square (e.g., "e4"),
// or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
// The string "-" parses to NoSquare.
func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}

	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(file, rank), nil
}

// sideRank maps a rank index to the same rank seen from the given color's
// side of the board: rank 0 is the first rank for White and the eighth for
// Black.
func sideRank(c Color, rank int) int {
	if c == White {
		return rank
	}
	return 7 - rank
}
