package chess

import (
	"fmt"
	"strings"
)

// Square is a board coordinate. Row 0 is rank 8 and row 7 is rank 1;
// col 0 is file a.
type Square struct {
	Row, Col int
}

// NoSquare marks the absence of an en passant target.
var NoSquare = Square{-1, -1}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// ParseSquare parses an algebraic coordinate like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{Row: int('8' - s[1]), Col: int(s[0] - 'a')}, nil
}

type Board [8][8]Piece

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col := range 8 {
		b[0][col] = Piece{backRank[col], Black}
		b[1][col] = Piece{Pawn, Black}
		b[6][col] = Piece{Pawn, White}
		b[7][col] = Piece{backRank[col], White}
	}
	return b
}

// ParseBoard builds a board from eight rows of space-separated piece codes,
// rank 8 first:
//
//	"bR bN bB bQ bK bB bN bR"
func ParseBoard(rows [8]string) (Board, error) {
	var b Board
	for r, row := range rows {
		codes := strings.Fields(row)
		if len(codes) != 8 {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, r, len(codes))
		}
		for c, code := range codes {
			p, err := ParsePiece(code)
			if err != nil {
				return Board{}, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			b[r][c] = p
		}
	}
	return b, nil
}

func (b Board) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p Piece) {
	if sq.Valid() {
		b[sq.Row][sq.Col] = p
	}
}

// Codes returns the board as piece codes, "--" for empty squares.
func (b Board) Codes() [8][8]string {
	var out [8][8]string
	for r := range 8 {
		for c := range 8 {
			out[r][c] = b[r][c].String()
		}
	}
	return out
}

func (b Board) String() string {
	var s strings.Builder
	for r := range 8 {
		for c := range 8 {
			if c > 0 {
				s.WriteByte(' ')
			}
			s.WriteString(b[r][c].String())
		}
		s.WriteByte('\n')
	}
	return s.String()
}
