// Package chess is a rules engine: it keeps the board, generates legal moves
// for the side to move, and plays and takes back moves exactly.
package chess

import (
	"fmt"
	"slices"
)

// GameState owns the board and everything derived from the moves played
// on it. It is not safe for concurrent use; searches should work on a
// Clone.
//
// enPassantLog and castleLog are seeded with the starting values, so both
// are always exactly one longer than moveLog.
type GameState struct {
	board       Board
	whiteToMove bool
	whiteKing   Square
	blackKing   Square
	enPassant   Square
	castling    CastleRights

	moveLog      []Move
	enPassantLog []Square
	castleLog    []CastleRights

	checkmate bool
	stalemate bool
}

// NewGameState returns the standard starting position with white to move.
func NewGameState() *GameState {
	g := &GameState{}
	g.Reset()
	return g
}

// NewGameStateFromBoard sets up an arbitrary position. Castle rights whose
// king or rook is not on its home square are dropped, as is an en passant
// target that no double step could have produced.
func NewGameStateFromBoard(b Board, side Color, rights CastleRights, enPassant Square) (*GameState, error) {
	g := &GameState{
		board:       b,
		whiteToMove: side == White,
		whiteKing:   NoSquare,
		blackKing:   NoSquare,
		enPassant:   NoSquare,
	}

	for r := range 8 {
		for c := range 8 {
			p := b[r][c]
			if p.Type != King {
				continue
			}
			king := &g.whiteKing
			if p.Color == Black {
				king = &g.blackKing
			}
			if king.Valid() {
				return nil, fmt.Errorf("%w: %s", ErrExtraKing, p.Color)
			}
			*king = Square{r, c}
		}
	}
	if !g.whiteKing.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrMissingKing, White)
	}
	if !g.blackKing.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrMissingKing, Black)
	}

	g.castling = rights & g.supportedRights()

	// A target is only meaningful on the rank the last double step crossed.
	epRow := 2
	if side == Black {
		epRow = 5
	}
	if enPassant.Valid() && enPassant.Row == epRow && b.At(enPassant).IsEmpty() {
		g.enPassant = enPassant
	}

	g.enPassantLog = []Square{g.enPassant}
	g.castleLog = []CastleRights{g.castling}
	return g, nil
}

// supportedRights are the castles the current piece placement allows.
func (g *GameState) supportedRights() CastleRights {
	rights := NoCastleRights
	for _, c := range []Color{White, Black} {
		row := homeRow(c)
		if g.board[row][4] != (Piece{King, c}) {
			continue
		}
		if g.board[row][7] == (Piece{Rook, c}) {
			rights |= KingSide(c)
		}
		if g.board[row][0] == (Piece{Rook, c}) {
			rights |= QueenSide(c)
		}
	}
	return rights
}

// Reset puts the game back at the starting position.
func (g *GameState) Reset() {
	*g = GameState{
		board:        NewBoard(),
		whiteToMove:  true,
		whiteKing:    Square{7, 4},
		blackKing:    Square{0, 4},
		enPassant:    NoSquare,
		castling:     AllCastleRights,
		enPassantLog: []Square{NoSquare},
		castleLog:    []CastleRights{AllCastleRights},
	}
}

// Clone returns an independent copy, histories included.
func (g *GameState) Clone() *GameState {
	c := *g
	c.moveLog = slices.Clone(g.moveLog)
	c.enPassantLog = slices.Clone(g.enPassantLog)
	c.castleLog = slices.Clone(g.castleLog)
	return &c
}

// Board returns a copy of the current board.
func (g *GameState) Board() Board { return g.board }

// Codes returns the board as piece codes.
func (g *GameState) Codes() [8][8]string { return g.board.Codes() }

func (g *GameState) WhiteToMove() bool { return g.whiteToMove }

func (g *GameState) SideToMove() Color {
	if g.whiteToMove {
		return White
	}
	return Black
}

func (g *GameState) KingSquare(c Color) Square {
	if c == White {
		return g.whiteKing
	}
	return g.blackKing
}

// EnPassant returns the square a pawn may capture onto en passant this ply,
// or NoSquare.
func (g *GameState) EnPassant() Square { return g.enPassant }

func (g *GameState) CastlingRights() CastleRights { return g.castling }

// Checkmate and Stalemate are only updated by ValidMoves.
func (g *GameState) Checkmate() bool { return g.checkmate }
func (g *GameState) Stalemate() bool { return g.stalemate }

// MoveLog returns a copy of the moves played so far.
func (g *GameState) MoveLog() []Move { return slices.Clone(g.moveLog) }

// Ply is the number of moves played.
func (g *GameState) Ply() int { return len(g.moveLog) }

func (g *GameState) LastMove() (Move, bool) {
	if len(g.moveLog) == 0 {
		return Move{}, false
	}
	return g.moveLog[len(g.moveLog)-1], true
}

// Status describes the game outcome, or a check, as of the last ValidMoves.
func (g *GameState) Status() string {
	switch {
	case g.checkmate:
		return fmt.Sprintf("%s wins by checkmate", g.SideToMove().Opponent())
	case g.stalemate:
		return "Stalemate"
	case g.InCheck():
		return fmt.Sprintf("%s is in check", g.SideToMove())
	}
	return ""
}

// MakeMove plays m. Nothing happens if the origin square is empty. The move
// is trusted: it must come from ValidMoves.
func (g *GameState) MakeMove(m Move) {
	from, to := m.From(), m.To()
	if g.at(from).IsEmpty() {
		return
	}

	g.board.Set(from, NoPiece)
	g.board.Set(to, m.PieceMoved)
	g.whiteToMove = !g.whiteToMove

	if m.PieceMoved.Type == King {
		g.setKing(m.PieceMoved.Color, to)
	}

	if m.PawnPromotion {
		g.board.Set(to, Piece{Queen, m.PieceMoved.Color})
	}

	if m.EnPassantMove {
		g.board.Set(Square{m.StartRow, m.EndCol}, NoPiece)
	}

	if m.PieceMoved.Type == Pawn && abs(m.StartRow-m.EndRow) == 2 {
		g.enPassant = Square{(m.StartRow + m.EndRow) / 2, m.EndCol}
	} else {
		g.enPassant = NoSquare
	}

	if m.CastleMove {
		rookFrom, rookTo := castleRookSquares(m)
		g.board.Set(rookTo, g.at(rookFrom))
		g.board.Set(rookFrom, NoPiece)
	}

	g.castling = g.castling.afterMove(m)
	g.applyPly(m)
}

// UndoMove takes back the last move. Nothing happens if no move has been
// played.
func (g *GameState) UndoMove() {
	m, ok := g.revertPly()
	if !ok {
		return
	}
	from, to := m.From(), m.To()

	g.board.Set(from, m.PieceMoved)
	g.board.Set(to, m.PieceCaptured)
	g.whiteToMove = !g.whiteToMove

	if m.PieceMoved.Type == King {
		g.setKing(m.PieceMoved.Color, from)
	}

	if m.EnPassantMove {
		g.board.Set(to, NoPiece)
		g.board.Set(Square{m.StartRow, m.EndCol}, m.PieceCaptured)
	}

	if m.CastleMove {
		rookFrom, rookTo := castleRookSquares(m)
		g.board.Set(rookFrom, g.at(rookTo))
		g.board.Set(rookTo, NoPiece)
	}

	g.checkmate = false
	g.stalemate = false
}

// applyPly pushes m and the derived state it produced onto the histories.
func (g *GameState) applyPly(m Move) {
	g.moveLog = append(g.moveLog, m)
	g.enPassantLog = append(g.enPassantLog, g.enPassant)
	g.castleLog = append(g.castleLog, g.castling)
}

// revertPly pops the last ply from every history and restores the derived
// state in force before it.
func (g *GameState) revertPly() (Move, bool) {
	n := len(g.moveLog)
	if n == 0 {
		return Move{}, false
	}
	m := g.moveLog[n-1]
	g.moveLog = g.moveLog[:n-1]
	g.enPassantLog = g.enPassantLog[:n]
	g.castleLog = g.castleLog[:n]
	g.enPassant = g.enPassantLog[n-1]
	g.castling = g.castleLog[n-1]
	return m, true
}

// at reads a square without copying the board.
func (g *GameState) at(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return g.board[sq.Row][sq.Col]
}

func (g *GameState) setKing(c Color, sq Square) {
	if c == White {
		g.whiteKing = sq
	} else {
		g.blackKing = sq
	}
}

// castleRookSquares returns where the rook of castle move m starts and ends.
func castleRookSquares(m Move) (from, to Square) {
	if m.EndCol-m.StartCol == 2 {
		return Square{m.EndRow, 7}, Square{m.EndRow, m.EndCol - 1}
	}
	return Square{m.EndRow, 0}, Square{m.EndRow, m.EndCol + 1}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
