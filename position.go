package chess

import (
	"fmt"
	"strings"
)

// Position represents a complete chess position: piece placement plus side to
// move, castling rights, en passant target and move counters. A state hash
// over the non-placement aspects is maintained incrementally; the publicly
// observable fingerprint is the state hash folded with the board's placement
// hash.
type Position struct {
	board Board

	turn            Color
	kingsideCastle  [2]bool
	queensideCastle [2]bool
	enPassant       Square
	halfmoveClock   int
	fullmoveNumber  int

	hash uint64
}

// Undo holds precisely the information that cannot be recomputed from the
// position after a move and the move itself.
type Undo struct {
	capture         PieceType
	enPassant       Square
	kingsideCastle  [2]bool
	queensideCastle [2]bool
	halfmoveClock   int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	return NewPositionFromParts(NewBoard(), White, [2]bool{true, true}, [2]bool{true, true}, NoSquare, 0, 1)
}

// NewPositionFromParts assembles a position from its components and computes
// its state hash. The board is copied. No well-formedness validation is
// performed; move generation assumes a position reachable in a legal game.
func NewPositionFromParts(board *Board, turn Color, kingsideCastle, queensideCastle [2]bool, enPassant Square, halfmoveClock, fullmoveNumber int) *Position {
	p := &Position{
		board:           *board,
		turn:            turn,
		kingsideCastle:  kingsideCastle,
		queensideCastle: queensideCastle,
		enPassant:       enPassant,
		halfmoveClock:   halfmoveClock,
		fullmoveNumber:  fullmoveNumber,
	}

	if turn == Black {
		p.hash ^= zobristSideToMove
	}
	if kingsideCastle[White] {
		p.hash ^= zobristKingside[White]
	}
	if queensideCastle[White] {
		p.hash ^= zobristQueenside[White]
	}
	if kingsideCastle[Black] {
		p.hash ^= zobristKingside[Black]
	}
	if queensideCastle[Black] {
		p.hash ^= zobristQueenside[Black]
	}
	if enPassant != NoSquare {
		p.hash ^= zobristEnPassant[enPassant.File()]
	}

	return p
}

// Copy returns a deep copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// Board returns the position's board. The board is live; mutating it outside
// MakeMove and UndoMove leaves the position's fingerprint stale.
func (p *Position) Board() *Board {
	return &p.board
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.turn
}

// EnPassant returns the square a pawn may capture onto en passant this move,
// or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfmoveClock returns the number of plies since the last pawn move or
// capture.
func (p *Position) HalfmoveClock() int {
	return p.halfmoveClock
}

// FullmoveNumber returns the 1-based move number, incremented after each of
// Black's moves.
func (p *Position) FullmoveNumber() int {
	return p.fullmoveNumber
}

// Halfmove returns the number of plies played since the start of the game.
func (p *Position) Halfmove() int {
	return (p.fullmoveNumber-1)*2 + int(p.turn)
}

// CanCastleKingside returns true if the given side still holds its kingside
// castling right.
func (p *Position) CanCastleKingside(c Color) bool {
	return p.kingsideCastle[c]
}

// CanCastleQueenside returns true if the given side still holds its
// queenside castling right.
func (p *Position) CanCastleQueenside(c Color) bool {
	return p.queensideCastle[c]
}

// Hash returns the position fingerprint: the Zobrist fold of piece placement,
// side to move, castling rights and en passant file. Equal fingerprints imply
// equal observable state up to astronomically unlikely collisions.
func (p *Position) Hash() uint64 {
	return p.hash ^ p.board.hash
}

// MakeMove applies the move and returns the information needed to undo it.
// The move must be legal in this position.
func (p *Position) MakeMove(m Move) Undo {
	_, capture := p.board.Get(m.To)
	u := Undo{
		capture:         capture,
		enPassant:       p.enPassant,
		kingsideCastle:  p.kingsideCastle,
		queensideCastle: p.queensideCastle,
		halfmoveClock:   p.halfmoveClock,
	}

	side, piece := p.board.Get(m.From)
	ep := p.enPassant

	p.board.Set(m.From, NoColor, NoPieceType)
	if m.Promote != NoPieceType {
		p.board.Set(m.To, side, m.Promote)
	} else {
		p.board.Set(m.To, side, piece)
	}

	p.enPassant = NoSquare
	if ep != NoSquare {
		p.hash ^= zobristEnPassant[ep.File()]
	}

	switch piece {
	case Pawn:
		if m.From.Rank() == sideRank(side, 1) && m.To.Rank() == sideRank(side, 3) {
			// Double push: the skipped square becomes the en passant target.
			p.enPassant = NewSquare(m.From.File(), sideRank(side, 2))
			p.hash ^= zobristEnPassant[p.enPassant.File()]
		} else if m.To == ep {
			// En passant capture: the captured pawn sits one rank behind the
			// target square.
			p.board.Set(NewSquare(ep.File(), sideRank(side, 4)), NoColor, NoPieceType)
		}
	case King:
		if p.kingsideCastle[side] {
			p.kingsideCastle[side] = false
			p.hash ^= zobristKingside[side]
		}
		if p.queensideCastle[side] {
			p.queensideCastle[side] = false
			p.hash ^= zobristQueenside[side]
		}

		first := sideRank(side, 0)
		if m.From == NewSquare(4, first) {
			switch m.To {
			case NewSquare(6, first):
				p.board.Set(NewSquare(7, first), NoColor, NoPieceType)
				p.board.Set(NewSquare(5, first), side, Rook)
			case NewSquare(2, first):
				p.board.Set(NewSquare(0, first), NoColor, NoPieceType)
				p.board.Set(NewSquare(3, first), side, Rook)
			}
		}
	}

	if p.queensideCastle[White] && (m.From == A1 || m.To == A1) {
		p.queensideCastle[White] = false
		p.hash ^= zobristQueenside[White]
	}
	if p.kingsideCastle[White] && (m.From == H1 || m.To == H1) {
		p.kingsideCastle[White] = false
		p.hash ^= zobristKingside[White]
	}
	if p.queensideCastle[Black] && (m.From == A8 || m.To == A8) {
		p.queensideCastle[Black] = false
		p.hash ^= zobristQueenside[Black]
	}
	if p.kingsideCastle[Black] && (m.From == H8 || m.To == H8) {
		p.kingsideCastle[Black] = false
		p.hash ^= zobristKingside[Black]
	}

	if piece == Pawn || capture != NoPieceType {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}

	p.fullmoveNumber += int(p.turn)
	p.turn = p.turn.Other()
	p.hash ^= zobristSideToMove

	return u
}

// UndoMove reverses a move previously applied with MakeMove, given the undo
// record it returned. Position and fingerprint are restored exactly.
func (p *Position) UndoMove(m Move, u Undo) {
	side, piece := p.board.Get(m.To)

	p.board.Set(m.From, side, piece)
	p.board.Set(m.To, NoColor, NoPieceType)
	if u.capture != NoPieceType {
		p.board.Set(m.To, side.Other(), u.capture)
	}
	if m.Promote != NoPieceType {
		p.board.Set(m.From, side, Pawn)
	}

	if p.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[p.enPassant.File()]
	}
	if u.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[u.enPassant.File()]
	}
	p.enPassant = u.enPassant

	if p.kingsideCastle[White] != u.kingsideCastle[White] {
		p.kingsideCastle[White] = u.kingsideCastle[White]
		p.hash ^= zobristKingside[White]
	}
	if p.kingsideCastle[Black] != u.kingsideCastle[Black] {
		p.kingsideCastle[Black] = u.kingsideCastle[Black]
		p.hash ^= zobristKingside[Black]
	}
	if p.queensideCastle[White] != u.queensideCastle[White] {
		p.queensideCastle[White] = u.queensideCastle[White]
		p.hash ^= zobristQueenside[White]
	}
	if p.queensideCastle[Black] != u.queensideCastle[Black] {
		p.queensideCastle[Black] = u.queensideCastle[Black]
		p.hash ^= zobristQueenside[Black]
	}

	switch piece {
	case Pawn:
		if m.To == u.enPassant {
			p.board.Set(NewSquare(u.enPassant.File(), sideRank(side, 4)), side.Other(), Pawn)
		}
	case King:
		first := sideRank(side, 0)
		if m.From == NewSquare(4, first) {
			switch m.To {
			case NewSquare(6, first):
				p.board.Set(NewSquare(7, first), side, Rook)
				p.board.Set(NewSquare(5, first), NoColor, NoPieceType)
			case NewSquare(2, first):
				p.board.Set(NewSquare(0, first), side, Rook)
				p.board.Set(NewSquare(3, first), NoColor, NoPieceType)
			}
		}
	}

	p.halfmoveClock = u.halfmoveClock
	p.fullmoveNumber -= int(p.turn.Other())
	p.turn = p.turn.Other()
	p.hash ^= zobristSideToMove
}

// CopyMove returns a copy of the position with the move applied, leaving the
// receiver untouched.
func (p *Position) CopyMove(m Move) *Position {
	c := *p
	c.MakeMove(m)
	return &c
}

// NullUndo holds the state restored when a null move is unmade.
type NullUndo struct {
	enPassant Square
}

// MakeNullMove passes the turn without moving a piece. Useful to search
// consumers; a null move is not a legal chess move.
func (p *Position) MakeNullMove() NullUndo {
	u := NullUndo{enPassant: p.enPassant}

	if p.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[p.enPassant.File()]
		p.enPassant = NoSquare
	}

	p.turn = p.turn.Other()
	p.hash ^= zobristSideToMove

	return u
}

// UnmakeNullMove reverses a null move.
func (p *Position) UnmakeNullMove(u NullUndo) {
	if u.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[u.enPassant.File()]
	}
	p.enPassant = u.enPassant

	p.turn = p.turn.Other()
	p.hash ^= zobristSideToMove
}

// ParseMove parses a move in long algebraic notation and validates it
// against the position's legal moves. A pawn move to the back rank requires
// an explicit promotion letter, since the legal moves carry one.
func (p *Position) ParseMove(lan string) (Move, error) {
	m, err := MoveFromLAN(lan)
	if err != nil {
		return m, err
	}

	for _, legal := range p.Moves() {
		if legal == m {
			return m, nil
		}
	}

	return Move{From: NoSquare, To: NoSquare, Promote: NoPieceType}, fmt.Errorf("illegal move: %q", lan)
}

// IsCheck returns true if the side to move is in check.
func (p *Position) IsCheck() bool {
	return p.board.AttackSet(p.turn.Other())&p.board.SidePieceSet(p.turn, King) != 0
}

// IsCheckmate returns true if the side to move is in check with no legal
// moves.
func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && len(p.Moves()) == 0
}

// IsStalemate returns true if the side to move is not in check and has no
// legal moves.
func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && len(p.Moves()) == 0
}

// IsFiftyMoveRule returns true if fifty full moves have passed without a
// pawn move or capture.
func (p *Position) IsFiftyMoveRule() bool {
	return p.halfmoveClock >= 100
}

// IsSeventyFiveMoveRule returns true if seventy-five full moves have passed
// without a pawn move or capture.
func (p *Position) IsSeventyFiveMoveRule() bool {
	return p.halfmoveClock >= 150
}

// IsInsufficientMaterial returns true if neither side can deliver checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	b := &p.board

	if b.PieceSet(Pawn)|b.PieceSet(Rook)|b.PieceSet(Queen) != 0 {
		return false
	}

	knights := b.PieceSet(Knight).PopCount()
	bishops := b.PieceSet(Bishop).PopCount()

	if (knights == 0 && bishops <= 1) || (knights <= 1 && bishops == 0) {
		return true
	}

	if bishops == 2 {
		whiteBishops := b.SidePieceSet(White, Bishop)
		blackBishops := b.SidePieceSet(Black, Bishop)

		if whiteBishops == 0 || blackBishops == 0 {
			return false
		}

		return whiteBishops.LSB().IsLight() == blackBishops.LSB().IsLight()
	}

	return false
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder

	sb.WriteString(p.board.String())
	fmt.Fprintf(&sb, "turn: %s\n", p.turn)
	fmt.Fprintf(&sb, "castling: %s\n", p.castlingString())
	fmt.Fprintf(&sb, "en passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "halfmove clock: %d\n", p.halfmoveClock)
	fmt.Fprintf(&sb, "fullmove number: %d\n", p.fullmoveNumber)

	return sb.String()
}

func (p *Position) castlingString() string {
	s := ""
	if p.kingsideCastle[White] {
		s += "K"
	}
	if p.queensideCastle[White] {
		s += "Q"
	}
	if p.kingsideCastle[Black] {
		s += "k"
	}
	if p.queensideCastle[Black] {
		s += "q"
	}
	if s == "" {
		s = "-"
	}
	return s
}
