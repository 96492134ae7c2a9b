package chess

import "errors"

// Errors returned by the parsing and setup helpers. The rule operations
// themselves never fail; see MakeMove and UndoMove.
var (
	ErrInvalidPieceCode = errors.New("invalid piece code")
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrMissingKing      = errors.New("missing king")
	ErrExtraKing        = errors.New("more than one king")
)
