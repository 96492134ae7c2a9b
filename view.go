package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imjasonh/chessrules/chess"
)

var glyphs = [2]map[chess.PieceType]string{
	chess.White: {
		chess.Pawn:   "♙",
		chess.Rook:   "♖",
		chess.Knight: "♘",
		chess.Bishop: "♗",
		chess.Queen:  "♕",
		chess.King:   "♔",
	},
	chess.Black: {
		chess.Pawn:   "♟",
		chess.Rook:   "♜",
		chess.Knight: "♞",
		chess.Bishop: "♝",
		chess.Queen:  "♛",
		chess.King:   "♚",
	},
}

func glyph(p chess.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	return glyphs[p.Color][p.Type]
}

const boardWidth = 26 // 8*3 + 2 for rank numbers

func (m model) View() string {
	var s strings.Builder

	s.WriteString("CheSSH\n")
	s.WriteString(m.turnLine())
	s.WriteString("\n\n")

	if status := m.game.Status(); status != "" {
		fmt.Fprintf(&s, "*** %s ***\n\n", status)
	}

	s.WriteString(m.renderBoardWithInfo())
	return s.String()
}

func (m model) turnLine() string {
	side := m.game.SideToMove()
	switch {
	case m.gameOver():
		return "GAME OVER - R to play again, Z to undo, Q to quit"
	case m.thinking || !m.human[side]:
		return fmt.Sprintf("%s is thinking...", side)
	default:
		return fmt.Sprintf("%s TO MOVE - Arrows to move cursor, ENTER/SPACE to select/move, ESC to deselect, Z undo, R reset, Q quit",
			strings.ToUpper(side.String()))
	}
}

func (m model) renderBoardWithInfo() string {
	boardLines := m.boardLines()
	infoLines := m.infoLines()

	var s strings.Builder
	for i := range max(len(boardLines), len(infoLines)) {
		if i < len(boardLines) {
			s.WriteString(boardLines[i])
		} else {
			s.WriteString(strings.Repeat(" ", boardWidth))
		}

		s.WriteString("   ")

		if i < len(infoLines) {
			s.WriteString(infoLines[i])
		}

		s.WriteString("\n")
	}
	return s.String()
}

// boardLines draws rank 8 (row 0) at the top.
func (m model) boardLines() []string {
	const files = "  a  b  c  d  e  f  g  h  "
	board := m.game.Board()

	lines := []string{files}
	for row := range 8 {
		var line strings.Builder
		rank := 8 - row
		fmt.Fprintf(&line, "%d", rank)

		for col := range 8 {
			sq := chess.Square{Row: row, Col: col}

			var bg string
			switch {
			case m.cursor == sq:
				bg = "\033[41m" // red cursor
			case m.selected != nil && *m.selected == sq:
				bg = "\033[43m" // yellow selection
			case slices.Contains(m.targets, sq):
				bg = "\033[42m" // green destinations
			case (row+col)%2 == 0:
				bg = "\033[100m" // light squares
			default:
				bg = "\033[40m" // dark squares
			}

			fmt.Fprintf(&line, "%s %s \033[0m", bg, glyph(board.At(sq)))
		}

		fmt.Fprintf(&line, "%d", rank)
		lines = append(lines, line.String())
	}
	return append(lines, files)
}

func (m model) infoLines() []string {
	board := m.game.Board()
	lines := []string{
		"┌─────────────────────┐",
		"│ GAME INFO           │",
		"├─────────────────────┤",
		fmt.Sprintf("│ Turn: %-13s │", m.game.SideToMove()),
		fmt.Sprintf("│ Move: %-13d │", m.game.Ply()/2+1),
		fmt.Sprintf("│ Castling: %-9s │", m.game.CastlingRights()),
	}
	if m.sessions != nil {
		if sess, ok := m.sessions.Get(m.sessionID); ok {
			lines = append(lines, fmt.Sprintf("│ Player: %-11s │", sess.Name))
		}
		lines = append(lines, fmt.Sprintf("│ Online: %-11d │", m.sessions.Count()))
	}
	lines = append(lines,
		"│                     │",
		fmt.Sprintf("│ Cursor: %-11s │", m.cursor),
		fmt.Sprintf("│ Piece: %-12s │", board.At(m.cursor).Name()),
		"│                     │",
	)

	if m.selected != nil {
		lines = append(lines,
			"├─────────────────────┤",
			fmt.Sprintf("│ Selected: %-9s │", board.At(*m.selected).Type),
			fmt.Sprintf("│ At: %-15s │", m.selected),
		)

		if len(m.targets) > 0 {
			lines = append(lines, "│                     │", "│ Valid moves:        │")

			shown := min(len(m.targets), 6)
			for i := 0; i < shown; i += 2 {
				pair := m.targets[i].String()
				if i+1 < shown {
					pair += "  " + m.targets[i+1].String()
				}
				lines = append(lines, fmt.Sprintf("│ %-19s │", pair))
			}
			if len(m.targets) > 6 {
				lines = append(lines, fmt.Sprintf("│ ... and %-2d more    │", len(m.targets)-6))
			}
		}
	}
	lines = append(lines, "└─────────────────────┘")

	if last, ok := m.game.LastMove(); ok {
		lines = append(lines, fmt.Sprintf("Last move: %s", last.LongNotation()))
	}
	return lines
}
