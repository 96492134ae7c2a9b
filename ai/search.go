// Package ai picks moves for the computer player. It only talks to the
// rules engine through ValidMoves, MakeMove and UndoMove, on its own copy of
// the game.
package ai

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"

	"github.com/imjasonh/chessrules/chess"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
)

var pieceValues = [...]int{
	chess.Empty:  0,
	chess.Pawn:   100,
	chess.Knight: 300,
	chess.Bishop: 300,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// Evaluate scores the material balance from the side to move's point of view.
func Evaluate(g *chess.GameState) int {
	var score int
	b := g.Board()
	for r := range 8 {
		for c := range 8 {
			p := b[r][c]
			if p.IsEmpty() {
				continue
			}
			if p.Color == g.SideToMove() {
				score += pieceValues[p.Type]
			} else {
				score -= pieceValues[p.Type]
			}
		}
	}
	return score
}

// FindMove searches depth plies ahead with negamax and alpha-beta pruning.
// It reports false when there is no move to return: the position has no
// legal moves, or ctx ended before the first root move was searched. When
// ctx ends mid-search the best move found so far is returned.
//
// The search runs on a clone, so g is never touched.
func FindMove(ctx context.Context, g *chess.GameState, depth int) (chess.Move, bool) {
	if depth < 1 {
		depth = 1
	}
	pos := g.Clone()

	moves := order(pos.ValidMoves())
	var (
		best  chess.Move
		found bool
		alpha = -Infinity
	)
	for _, m := range moves {
		if ctx.Err() != nil {
			break
		}
		pos.MakeMove(m)
		score := -negamax(ctx, pos, depth-1, 1, -Infinity, -alpha)
		pos.UndoMove()
		if ctx.Err() != nil && found {
			// The subtree was cut short; its score can't be trusted.
			break
		}
		if !found || score > alpha {
			best, alpha, found = m, score, true
		}
	}
	return best, found
}

func negamax(ctx context.Context, g *chess.GameState, depth, ply, alpha, beta int) int {
	moves := g.ValidMoves()
	if len(moves) == 0 {
		if g.Checkmate() {
			// Prefer the quickest mate.
			return -(MateScore - ply)
		}
		return 0
	}
	if depth == 0 || ctx.Err() != nil {
		return Evaluate(g)
	}

	for _, m := range order(moves) {
		g.MakeMove(m)
		score := -negamax(ctx, g, depth-1, ply+1, -beta, -alpha)
		g.UndoMove()
		if score >= beta {
			return beta
		}
		alpha = max(alpha, score)
	}
	return alpha
}

// order puts captures first, most valuable victim first. The sort is stable
// so equal moves keep generation order.
func order(moves []chess.Move) []chess.Move {
	slices.SortStableFunc(moves, func(a, b chess.Move) int {
		return cmp.Compare(pieceValues[b.PieceCaptured.Type], pieceValues[a.PieceCaptured.Type])
	})
	return moves
}

// RandomMove picks uniformly among moves. It is the fallback when FindMove
// reports nothing.
func RandomMove(moves []chess.Move, r *rand.Rand) (chess.Move, bool) {
	if len(moves) == 0 {
		return chess.Move{}, false
	}
	return moves[r.IntN(len(moves))], true
}
