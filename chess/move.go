package chess

// MoveFlag tags the special moves generation produces.
type MoveFlag uint8

const (
	FlagEnPassant MoveFlag = 1 << iota
	FlagCastle
)

// Move describes one ply. It is a value built from snapshots of the two
// cells involved, so it stays valid however the board changes afterwards.
type Move struct {
	StartRow, StartCol int
	EndRow, EndCol     int
	PieceMoved         Piece
	PieceCaptured      Piece
	EnPassantMove      bool
	CastleMove         bool
	PawnPromotion      bool
}

// NewMove builds a move from the pieces on its origin and destination.
// For an en passant capture the destination is empty, so the captured piece
// is taken to be the opposing pawn.
func NewMove(from, to Square, moved, captured Piece, flags MoveFlag) Move {
	m := Move{
		StartRow:      from.Row,
		StartCol:      from.Col,
		EndRow:        to.Row,
		EndCol:        to.Col,
		PieceMoved:    moved,
		PieceCaptured: captured,
		EnPassantMove: flags&FlagEnPassant != 0,
		CastleMove:    flags&FlagCastle != 0,
	}
	if m.EnPassantMove {
		m.PieceCaptured = Piece{Pawn, moved.Color.Opponent()}
	}
	if moved.Type == Pawn {
		m.PawnPromotion = (moved.Color == White && to.Row == 0) ||
			(moved.Color == Black && to.Row == 7)
	}
	return m
}

func (m Move) From() Square { return Square{m.StartRow, m.StartCol} }
func (m Move) To() Square   { return Square{m.EndRow, m.EndCol} }

// ID encodes the origin and destination squares.
func (m Move) ID() int {
	return m.StartRow*1000 + m.StartCol*100 + m.EndRow*10 + m.EndCol
}

// Equal reports whether two moves share origin and destination. Flags and
// pieces are ignored, so a move built from user input matches the generated
// one.
func (m Move) Equal(o Move) bool {
	return m.ID() == o.ID()
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.PieceCaptured.IsEmpty()
}

// String renders the piece letter and destination, e.g. "Ng3". Pawn moves
// are just the destination.
func (m Move) String() string {
	if m.PieceMoved.Type == Pawn {
		return m.To().String()
	}
	return string(m.PieceMoved.Type.Letter()) + m.To().String()
}

// LongNotation spells out both squares: "e2 to e4", "Ng1 to f3", and for a
// piece capture "Bc4 to Pf7".
func (m Move) LongNotation() string {
	switch {
	case m.PieceMoved.Type == Pawn:
		return m.From().String() + " to " + m.To().String()
	case m.IsCapture():
		return string(m.PieceMoved.Type.Letter()) + m.From().String() + " to " +
			string(m.PieceCaptured.Type.Letter()) + m.To().String()
	default:
		return string(m.PieceMoved.Type.Letter()) + m.From().String() + " to " + m.To().String()
	}
}
