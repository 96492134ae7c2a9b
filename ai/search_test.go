package ai

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imjasonh/chessrules/chess"
)

func play(t *testing.T, g *chess.GameState, coords ...string) {
	t.Helper()
	for _, c := range coords {
		from, err := chess.ParseSquare(c[:2])
		if err != nil {
			t.Fatal(err)
		}
		to, err := chess.ParseSquare(c[2:])
		if err != nil {
			t.Fatal(err)
		}
		want := chess.NewMove(from, to, chess.NoPiece, chess.NoPiece, 0)
		i := slices.IndexFunc(g.ValidMoves(), want.Equal)
		if i < 0 {
			t.Fatalf("%s is not legal", c)
		}
		g.MakeMove(g.ValidMoves()[i])
	}
}

func coord(m chess.Move) string {
	return m.From().String() + m.To().String()
}

func TestFindMoveMateInOne(t *testing.T) {
	g := chess.NewGameState()
	play(t, g, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6")

	before := g.Codes()
	m, ok := FindMove(context.Background(), g, 2)
	if !ok {
		t.Fatalf("FindMove() found nothing")
	}
	if got := coord(m); got != "h5f7" {
		t.Errorf("FindMove() = %s, want h5f7", got)
	}
	if diff := cmp.Diff(before, g.Codes()); diff != "" {
		t.Errorf("FindMove() changed the game (-want +got):\n%s", diff)
	}
	if g.Ply() != 6 {
		t.Errorf("Ply() = %d, want 6", g.Ply())
	}
}

func TestFindMoveWinsMaterial(t *testing.T) {
	b, err := chess.ParseBoard([8]string{
		"bQ -- -- -- -- -- -- bK",
		"-- -- -- -- -- -- bP bP",
		"-- -- -- -- -- -- -- --",
		"-- -- -- -- -- -- -- --",
		"-- -- -- -- -- -- -- --",
		"-- -- -- -- -- -- -- --",
		"-- -- -- -- -- wP wP wP",
		"wR -- -- -- -- -- wK --",
	})
	if err != nil {
		t.Fatal(err)
	}
	g, err := chess.NewGameStateFromBoard(b, chess.White, chess.NoCastleRights, chess.NoSquare)
	if err != nil {
		t.Fatal(err)
	}

	m, ok := FindMove(context.Background(), g, 2)
	if !ok {
		t.Fatalf("FindMove() found nothing")
	}
	if got := coord(m); got != "a1a8" {
		t.Errorf("FindMove() = %s, want a1a8", got)
	}
}

func TestFindMoveNoMoves(t *testing.T) {
	g := chess.NewGameState()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if _, ok := FindMove(context.Background(), g, 2); ok {
		t.Errorf("FindMove() in a mated position reported a move")
	}
}

func TestFindMoveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := FindMove(ctx, chess.NewGameState(), 3); ok {
		t.Errorf("FindMove() with a cancelled context reported a move")
	}
}

func TestEvaluate(t *testing.T) {
	g := chess.NewGameState()
	if got := Evaluate(g); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
	play(t, g, "e2e4", "d7d5", "e4d5")
	// Black to move, a pawn down.
	if got := Evaluate(g); got != -100 {
		t.Errorf("Evaluate() = %d, want -100", got)
	}
}

func TestRandomMove(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	moves := chess.NewGameState().ValidMoves()

	for range 20 {
		m, ok := RandomMove(moves, r)
		if !ok {
			t.Fatalf("RandomMove() found nothing")
		}
		if !slices.ContainsFunc(moves, m.Equal) {
			t.Errorf("RandomMove() = %v, not among the candidates", m)
		}
	}

	if _, ok := RandomMove(nil, r); ok {
		t.Errorf("RandomMove(nil) reported a move")
	}
}
