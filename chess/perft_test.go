package chess

import "testing"

// r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -
var kiwipete = [8]string{
	"bR -- -- -- bK -- -- bR",
	"bP -- bP bP bQ bP bB --",
	"bB bN -- -- bP bN bP --",
	"-- -- -- wP wN -- -- --",
	"-- bP -- -- wP -- -- --",
	"-- -- wN -- -- wQ -- bP",
	"wP wP wP wB wB wP wP wP",
	"wR -- -- -- wK -- -- wR",
}

// 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
var rookEndgame = [8]string{
	emptyRow,
	"-- -- bP -- -- -- -- --",
	"-- -- -- bP -- -- -- --",
	"wK wP -- -- -- -- -- bR",
	"-- wR -- -- -- bP -- bK",
	emptyRow,
	"-- -- -- -- wP -- wP --",
	emptyRow,
}

// perft counts the leaf nodes of the legal move tree.
func perft(g *GameState, depth int) int {
	moves := g.ValidMoves()
	if depth == 1 {
		return len(moves)
	}
	var nodes int
	for _, m := range moves {
		g.MakeMove(m)
		nodes += perft(g, depth-1)
		g.UndoMove()
	}
	return nodes
}

func start(*testing.T) *GameState { return NewGameState() }

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		state func(*testing.T) *GameState
		depth int
		want  int
	}{
		{"start depth 1", start, 1, 20},
		{"start depth 2", start, 2, 400},
		{"start depth 3", start, 3, 8902},
		{"kiwipete depth 1", func(t *testing.T) *GameState { return mustState(t, kiwipete, White, AllCastleRights, NoSquare) }, 1, 48},
		{"kiwipete depth 2", func(t *testing.T) *GameState { return mustState(t, kiwipete, White, AllCastleRights, NoSquare) }, 2, 2039},
		{"rook endgame depth 1", func(t *testing.T) *GameState { return mustState(t, rookEndgame, White, NoCastleRights, NoSquare) }, 1, 14},
		{"rook endgame depth 2", func(t *testing.T) *GameState { return mustState(t, rookEndgame, White, NoCastleRights, NoSquare) }, 2, 191},
		{"rook endgame depth 3", func(t *testing.T) *GameState { return mustState(t, rookEndgame, White, NoCastleRights, NoSquare) }, 3, 2812},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.want > 5000 {
				t.Skip("skipping deep perft in short mode")
			}
			if got := perft(tt.state(t), tt.depth); got != tt.want {
				t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
			}
		})
	}
}
