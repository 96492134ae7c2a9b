package chess

// CastleRights records which castles are still available, one bit per
// color and wing.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (r CastleRights) Has(right CastleRights) bool {
	return r&right == right
}

func (r CastleRights) Without(right CastleRights) CastleRights {
	return r &^ right
}

// KingSide returns the king-side right for c.
func KingSide(c Color) CastleRights {
	if c == White {
		return WhiteKingSide
	}
	return BlackKingSide
}

// QueenSide returns the queen-side right for c.
func QueenSide(c Color) CastleRights {
	if c == White {
		return WhiteQueenSide
	}
	return BlackQueenSide
}

// String uses the usual "KQkq" letters, "-" when nothing is left.
func (r CastleRights) String() string {
	var s []byte
	if r.Has(WhiteKingSide) {
		s = append(s, 'K')
	}
	if r.Has(WhiteQueenSide) {
		s = append(s, 'Q')
	}
	if r.Has(BlackKingSide) {
		s = append(s, 'k')
	}
	if r.Has(BlackQueenSide) {
		s = append(s, 'q')
	}
	if len(s) == 0 {
		return "-"
	}
	return string(s)
}

// homeRow is the back rank of c.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// afterMove returns the rights left once m has been played. A king that
// moves, or is captured on its home square, loses both wings; a rook that
// leaves or is captured on its original corner loses that wing.
func (r CastleRights) afterMove(m Move) CastleRights {
	r = r.lose(m.PieceCaptured, m.To())

	if m.PieceMoved.Type == King {
		return r.Without(KingSide(m.PieceMoved.Color) | QueenSide(m.PieceMoved.Color))
	}
	return r.lose(m.PieceMoved, m.From())
}

// lose clears the rights tied to p standing on sq.
func (r CastleRights) lose(p Piece, sq Square) CastleRights {
	if p.IsEmpty() || sq.Row != homeRow(p.Color) {
		return r
	}
	switch p.Type {
	case King:
		if sq.Col == 4 {
			return r.Without(KingSide(p.Color) | QueenSide(p.Color))
		}
	case Rook:
		switch sq.Col {
		case 0:
			return r.Without(QueenSide(p.Color))
		case 7:
			return r.Without(KingSide(p.Color))
		}
	}
	return r
}
