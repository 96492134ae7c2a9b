package chess

// ValidMoves returns the legal moves of the side to move and updates the
// checkmate and stalemate flags.
//
// Candidates are played and taken back on the receiver, so ValidMoves must
// not run concurrently with anything else touching g.
func (g *GameState) ValidMoves() []Move {
	enPassant, castling := g.enPassant, g.castling

	side := g.SideToMove()
	moves := g.pseudoLegal(side, nil)
	moves = g.castleMoves(g.KingSquare(side), moves)

	// Walk backwards so deleting the current entry leaves the rest in place.
	for i := len(moves) - 1; i >= 0; i-- {
		g.MakeMove(moves[i])
		if g.Attacks(side.Opponent(), g.KingSquare(side)) {
			moves = append(moves[:i], moves[i+1:]...)
		}
		g.UndoMove()
	}

	g.enPassant, g.castling = enPassant, castling

	g.checkmate, g.stalemate = false, false
	if len(moves) == 0 {
		if g.InCheck() {
			g.checkmate = true
		} else {
			g.stalemate = true
		}
	}
	return moves
}

// InCheck reports whether the side to move's king is attacked.
func (g *GameState) InCheck() bool {
	return g.SquareUnderAttack(g.KingSquare(g.SideToMove()))
}

// SquareUnderAttack reports whether the opponent of the side to move attacks
// sq.
func (g *GameState) SquareUnderAttack(sq Square) bool {
	return g.Attacks(g.SideToMove().Opponent(), sq)
}

// Attacks reports whether some pseudo-legal move of color by ends on sq.
// Pawn pushes count, so the square in front of a pawn is treated as
// attacked. Attacks only reads g.
func (g *GameState) Attacks(by Color, sq Square) bool {
	for _, m := range g.pseudoLegal(by, nil) {
		if m.EndRow == sq.Row && m.EndCol == sq.Col {
			return true
		}
	}
	return false
}

// castleMoves appends the castles available to the king on sq.
func (g *GameState) castleMoves(sq Square, moves []Move) []Move {
	king := g.at(sq)
	if king.Type != King || g.SquareUnderAttack(sq) {
		return moves
	}
	if g.castling.Has(KingSide(king.Color)) {
		moves = g.kingSideCastle(sq, king, moves)
	}
	if g.castling.Has(QueenSide(king.Color)) {
		moves = g.queenSideCastle(sq, king, moves)
	}
	return moves
}

func (g *GameState) kingSideCastle(sq Square, king Piece, moves []Move) []Move {
	if sq.Col+2 > 7 {
		return moves
	}
	f, gg := Square{sq.Row, sq.Col + 1}, Square{sq.Row, sq.Col + 2}
	if !g.at(f).IsEmpty() || !g.at(gg).IsEmpty() {
		return moves
	}
	if g.SquareUnderAttack(f) || g.SquareUnderAttack(gg) {
		return moves
	}
	return append(moves, NewMove(sq, gg, king, NoPiece, FlagCastle))
}

func (g *GameState) queenSideCastle(sq Square, king Piece, moves []Move) []Move {
	if sq.Col-3 < 0 {
		return moves
	}
	d, c, b := Square{sq.Row, sq.Col - 1}, Square{sq.Row, sq.Col - 2}, Square{sq.Row, sq.Col - 3}
	if !g.at(d).IsEmpty() || !g.at(c).IsEmpty() || !g.at(b).IsEmpty() {
		return moves
	}
	// Only the king's path matters; the b-file square may be attacked.
	if g.SquareUnderAttack(d) || g.SquareUnderAttack(c) {
		return moves
	}
	return append(moves, NewMove(sq, c, king, NoPiece, FlagCastle))
}
