package chess

import (
	"slices"
	"testing"
)

var emptyRow = "-- -- -- -- -- -- -- --"

func mustState(t *testing.T, rows [8]string, side Color, rights CastleRights, ep Square) *GameState {
	t.Helper()
	b, err := ParseBoard(rows)
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}
	g, err := NewGameStateFromBoard(b, side, rights, ep)
	if err != nil {
		t.Fatalf("NewGameStateFromBoard() failed: %v", err)
	}
	return g
}

func mustSquare(t *testing.T, s string) Square {
	t.Helper()
	sq, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q) failed: %v", s, err)
	}
	return sq
}

// findMove looks up a coordinate move like "e2e4" among the legal moves.
func findMove(t *testing.T, g *GameState, coord string) (Move, bool) {
	t.Helper()
	want := NewMove(mustSquare(t, coord[:2]), mustSquare(t, coord[2:]), NoPiece, NoPiece, 0)
	for _, m := range g.ValidMoves() {
		if m.Equal(want) {
			return m, true
		}
	}
	return Move{}, false
}

// play applies each coordinate move, failing if one is not legal.
func play(t *testing.T, g *GameState, coords ...string) {
	t.Helper()
	for _, coord := range coords {
		m, ok := findMove(t, g, coord)
		if !ok {
			t.Fatalf("%s is not legal in\n%s", coord, g.Board())
		}
		g.MakeMove(m)
	}
}

// destinations lists the sorted targets of the moves starting on from.
func destinations(moves []Move, from Square) []string {
	var out []string
	for _, m := range moves {
		if m.From() == from {
			out = append(out, m.To().String())
		}
	}
	slices.Sort(out)
	return out
}

func coords(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.From().String()+m.To().String())
	}
	slices.Sort(out)
	return out
}

// snapshot is everything a make/undo pair must restore.
type snapshot struct {
	Board        Board
	WhiteToMove  bool
	WhiteKing    Square
	BlackKing    Square
	EnPassant    Square
	Castling     CastleRights
	Moves        int
	EnPassantLog int
	CastleLog    int
}

func snap(g *GameState) snapshot {
	return snapshot{
		Board:        g.board,
		WhiteToMove:  g.whiteToMove,
		WhiteKing:    g.whiteKing,
		BlackKing:    g.blackKing,
		EnPassant:    g.enPassant,
		Castling:     g.castling,
		Moves:        len(g.moveLog),
		EnPassantLog: len(g.enPassantLog),
		CastleLog:    len(g.castleLog),
	}
}
