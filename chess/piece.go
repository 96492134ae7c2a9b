package chess

import "fmt"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Code is the first character of a piece code: 'w' or 'b'.
func (c Color) Code() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

func (c Color) Opponent() Color {
	return 1 - c
}

type PieceType int

const (
	Empty PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Letter is the second character of a piece code.
func (t PieceType) Letter() byte {
	switch t {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return '-'
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "Empty"
}

type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece is the empty square marker.
var NoPiece = Piece{Type: Empty}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// String returns the two-character piece code, e.g. "wN", or "--" for empty.
func (p Piece) String() string {
	if p.Type == Empty {
		return "--"
	}
	return string([]byte{p.Color.Code(), p.Type.Letter()})
}

// Name returns a human readable name such as "White Knight".
func (p Piece) Name() string {
	if p.Type == Empty {
		return "Empty"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// ParsePiece parses a two-character piece code. "--" is the empty square.
func ParsePiece(code string) (Piece, error) {
	if code == "--" {
		return NoPiece, nil
	}
	if len(code) != 2 {
		return NoPiece, fmt.Errorf("%w: %q", ErrInvalidPieceCode, code)
	}

	var color Color
	switch code[0] {
	case 'w':
		color = White
	case 'b':
		color = Black
	default:
		return NoPiece, fmt.Errorf("%w: %q: bad color", ErrInvalidPieceCode, code)
	}

	var t PieceType
	switch code[1] {
	case 'P':
		t = Pawn
	case 'N':
		t = Knight
	case 'B':
		t = Bishop
	case 'R':
		t = Rook
	case 'Q':
		t = Queen
	case 'K':
		t = King
	default:
		return NoPiece, fmt.Errorf("%w: %q: bad piece type", ErrInvalidPieceCode, code)
	}

	return Piece{Type: t, Color: color}, nil
}
