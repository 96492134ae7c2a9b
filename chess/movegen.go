package chess

var (
	knightOffsets   = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	bishopDirs      = [4][2]int{{-1, -1}, {1, 1}, {-1, 1}, {1, -1}}
	rookDirs        = [4][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	kingOffsets     = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	pawnCaptureCols = [2]int{-1, 1}
)

// AllPossibleMoves returns the pseudo-legal moves of the side to move:
// shape-correct, but possibly leaving its own king in check. Castling is
// not included.
func (g *GameState) AllPossibleMoves() []Move {
	return g.pseudoLegal(g.SideToMove(), nil)
}

// pseudoLegal appends every pseudo-legal move of color c to moves, scanning
// the board row by row.
func (g *GameState) pseudoLegal(c Color, moves []Move) []Move {
	for r := range 8 {
		for col := range 8 {
			p := g.board[r][col]
			if p.IsEmpty() || p.Color != c {
				continue
			}
			sq := Square{r, col}
			switch p.Type {
			case Pawn:
				moves = g.pawnMoves(sq, p, moves)
			case Knight:
				moves = g.stepMoves(sq, p, knightOffsets[:], moves)
			case Bishop:
				moves = g.rayMoves(sq, p, bishopDirs[:], moves)
			case Rook:
				moves = g.rayMoves(sq, p, rookDirs[:], moves)
			case Queen:
				moves = g.rayMoves(sq, p, rookDirs[:], moves)
				moves = g.rayMoves(sq, p, bishopDirs[:], moves)
			case King:
				moves = g.stepMoves(sq, p, kingOffsets[:], moves)
			}
		}
	}
	return moves
}

func (g *GameState) move(from, to Square, flags MoveFlag) Move {
	return NewMove(from, to, g.at(from), g.at(to), flags)
}

func (g *GameState) pawnMoves(from Square, p Piece, moves []Move) []Move {
	dir, startRow := -1, 6
	if p.Color == Black {
		dir, startRow = 1, 1
	}

	one := Square{from.Row + dir, from.Col}
	if !one.Valid() {
		return moves
	}
	if g.at(one).IsEmpty() {
		moves = append(moves, g.move(from, one, 0))
		two := Square{from.Row + 2*dir, from.Col}
		if from.Row == startRow && g.at(two).IsEmpty() {
			moves = append(moves, g.move(from, two, 0))
		}
	}

	for _, dc := range pawnCaptureCols {
		to := Square{from.Row + dir, from.Col + dc}
		if !to.Valid() {
			continue
		}
		target := g.at(to)
		switch {
		case !target.IsEmpty() && target.Color != p.Color:
			moves = append(moves, g.move(from, to, 0))
		case to == g.enPassant:
			moves = append(moves, g.move(from, to, FlagEnPassant))
		}
	}
	return moves
}

// stepMoves covers knights and kings: each offset is one hop onto an empty
// or enemy square.
func (g *GameState) stepMoves(from Square, p Piece, offsets [][2]int, moves []Move) []Move {
	for _, d := range offsets {
		to := Square{from.Row + d[0], from.Col + d[1]}
		if !to.Valid() {
			continue
		}
		if target := g.at(to); target.IsEmpty() || target.Color != p.Color {
			moves = append(moves, g.move(from, to, 0))
		}
	}
	return moves
}

// rayMoves slides along each direction until the edge, stopping before a
// friendly piece or on an enemy one.
func (g *GameState) rayMoves(from Square, p Piece, dirs [][2]int, moves []Move) []Move {
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			to := Square{from.Row + d[0]*i, from.Col + d[1]*i}
			if !to.Valid() {
				break
			}
			target := g.at(to)
			if target.IsEmpty() {
				moves = append(moves, g.move(from, to, 0))
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, g.move(from, to, 0))
			}
			break
		}
	}
	return moves
}
