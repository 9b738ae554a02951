package chess

// Moves returns every legal move in the position. Pseudo-legal moves are
// generated setwise with bitboards, then filtered by applying each move to a
// copy and rejecting those that leave the mover's king attacked.
func (p *Position) Moves() []Move {
	us := p.turn
	them := us.Other()
	b := &p.board

	occupied := b.OccupiedSet()
	attackMask := ^b.SideSet(us)
	captureMask := b.SideSet(them)

	epMask := Empty
	if p.enPassant != NoSquare {
		epMask = SquareBB(p.enPassant)
	}

	forward := Forwards(us)
	backward := Forwards(them)

	moves := make([]Move, 0, 64)

	// Pawn moves. Sources and targets are produced by mutually inverse
	// shifts of the same base set, so popping both in lockstep keeps the
	// correspondence.
	pawns := b.SidePieceSet(us, Pawn)

	singlePushTos := pawns.Shift(forward) &^ occupied
	singlePushFroms := singlePushTos.Shift(backward)
	doublePushTos := (singlePushTos & RankMask[sideRank(us, 2)]).Shift(forward) &^ occupied
	doublePushFroms := doublePushTos.Shift(backward).Shift(backward)

	attackEastTos := pawns.Shift(forward+East) & (captureMask | epMask)
	attackEastFroms := attackEastTos.Shift(backward + West)
	attackWestTos := pawns.Shift(forward+West) & (captureMask | epMask)
	attackWestFroms := attackWestTos.Shift(backward + East)

	promoteRank := RankMask[sideRank(us, 7)]
	promoteFromRank := RankMask[sideRank(us, 6)]

	promotePushTos := singlePushTos & promoteRank
	promotePushFroms := singlePushFroms & promoteFromRank
	promoteEastTos := attackEastTos & promoteRank
	promoteEastFroms := attackEastFroms & promoteFromRank
	promoteWestTos := attackWestTos & promoteRank
	promoteWestFroms := attackWestFroms & promoteFromRank

	singlePushTos ^= promotePushTos
	singlePushFroms ^= promotePushFroms
	attackEastTos ^= promoteEastTos
	attackEastFroms ^= promoteEastFroms
	attackWestTos ^= promoteWestTos
	attackWestFroms ^= promoteWestFroms

	moves = setwiseMoves(moves, singlePushFroms, singlePushTos, NoPieceType)
	moves = setwiseMoves(moves, doublePushFroms, doublePushTos, NoPieceType)
	moves = setwiseMoves(moves, attackEastFroms, attackEastTos, NoPieceType)
	moves = setwiseMoves(moves, attackWestFroms, attackWestTos, NoPieceType)

	for _, promote := range [4]PieceType{Rook, Knight, Bishop, Queen} {
		moves = setwiseMoves(moves, promotePushFroms, promotePushTos, promote)
		moves = setwiseMoves(moves, promoteEastFroms, promoteEastTos, promote)
		moves = setwiseMoves(moves, promoteWestFroms, promoteWestTos, promote)
	}

	// Rook moves
	for rooks := b.SidePieceSet(us, Rook); rooks != 0; {
		from := rooks.PopLSB()
		moves = piecewiseMoves(moves, from, RookAttackSet(from, occupied)&attackMask)
	}

	// Knight moves
	for knights := b.SidePieceSet(us, Knight); knights != 0; {
		from := knights.PopLSB()
		moves = piecewiseMoves(moves, from, KnightAttackSet(from)&attackMask)
	}

	// Bishop moves
	for bishops := b.SidePieceSet(us, Bishop); bishops != 0; {
		from := bishops.PopLSB()
		moves = piecewiseMoves(moves, from, BishopAttackSet(from, occupied)&attackMask)
	}

	// Queen moves
	for queens := b.SidePieceSet(us, Queen); queens != 0; {
		from := queens.PopLSB()
		moves = piecewiseMoves(moves, from, QueenAttackSet(from, occupied)&attackMask)
	}

	// Castling. The king's path must not be attacked; the squares between
	// king and rook must be empty. Queenside additionally requires the
	// B-file square to be empty, though the king never crosses it.
	kings := b.SidePieceSet(us, King)

	if p.kingsideCastle[us] && kings != 0 {
		from := kings.LSB()
		to := NewSquare(6, from.Rank())
		path := kings
		path |= path.Shift(East)
		path |= path.Shift(East)
		between := path &^ kings

		if between&occupied == 0 && path&b.AttackSet(them) == 0 {
			moves = append(moves, NewMove(from, to))
		}
	}

	if p.queensideCastle[us] && kings != 0 {
		from := kings.LSB()
		to := NewSquare(2, from.Rank())
		path := kings
		path |= path.Shift(West)
		path |= path.Shift(West)
		between := path.Shift(West)

		if between&occupied == 0 && path&b.AttackSet(them) == 0 {
			moves = append(moves, NewMove(from, to))
		}
	}

	// King moves
	for kings != 0 {
		from := kings.PopLSB()
		moves = piecewiseMoves(moves, from, KingAttackSet(from)&attackMask)
	}

	// Remove moves that leave the king attacked.
	legal := moves[:0]
	for _, m := range moves {
		next := p.CopyMove(m)
		if next.board.AttackSet(them)&next.board.SidePieceSet(us, King) == 0 {
			legal = append(legal, m)
		}
	}

	return legal
}

// setwiseMoves pops source and target squares in lockstep.
func setwiseMoves(moves []Move, froms, tos Bitboard, promote PieceType) []Move {
	for froms != 0 && tos != 0 {
		from := froms.PopLSB()
		to := tos.PopLSB()
		moves = append(moves, Move{From: from, To: to, Promote: promote})
	}
	return moves
}

// piecewiseMoves enumerates the target set for a single source square.
func piecewiseMoves(moves []Move, from Square, tos Bitboard) []Move {
	for tos != 0 {
		moves = append(moves, Move{From: from, To: tos.PopLSB(), Promote: NoPieceType})
	}
	return moves
}
