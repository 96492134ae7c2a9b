package main

import (
	"context"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/imjasonh/chessrules/ai"
	"github.com/imjasonh/chessrules/chess"
)

type model struct {
	// Game state
	game       *chess.GameState
	validMoves []chess.Move
	cursor     chess.Square
	selected   *chess.Square
	targets    []chess.Square

	// Players
	name     string
	human    [2]bool // indexed by chess.Color
	depth    int
	think    time.Duration
	thinking bool
	search   int // generation of the search in flight
	rng      *rand.Rand

	// Server side only
	sessionID string
	sessions  sessionLookup

	logger *log.Logger
}

// sessionLookup is the part of SessionManager the board shows.
type sessionLookup interface {
	Get(id string) (*Session, bool)
	Count() int
}

// computerMoveMsg carries a search result back into Update. search is the
// generation the search was started under; every board change bumps the
// generation, so results for positions that no longer exist are dropped.
type computerMoveMsg struct {
	move   chess.Move
	ok     bool
	search int
}

func newModel(cfg Config, name string, logger *log.Logger) model {
	m := model{
		game:   chess.NewGameState(),
		cursor: chess.Square{Row: 6, Col: 4},
		name:   name,
		depth:  cfg.Depth,
		think:  cfg.Think,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: logger,
	}
	m.human[chess.White] = cfg.humanPlays(chess.White)
	m.human[chess.Black] = cfg.humanPlays(chess.Black)
	if !m.human[chess.White] && m.human[chess.Black] {
		m.cursor = chess.Square{Row: 1, Col: 4}
	}
	m.validMoves = m.game.ValidMoves()
	if !m.human[chess.White] {
		m.thinking = true
		m.search++
	}
	return m
}

func (m model) Init() tea.Cmd {
	if !m.thinking {
		return nil
	}
	return searchCmd(m.game.Clone(), m.depth, m.think, m.search)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case computerMoveMsg:
		if !m.thinking || msg.search != m.search {
			// The game changed while the search ran.
			return m, nil
		}
		m.thinking = false
		mv, ok := m.legal(msg.move)
		if !msg.ok || !ok {
			if msg.ok {
				m.logger.Warn("search returned an illegal move", "user", m.name, "move", msg.move.LongNotation())
			}
			mv, ok = ai.RandomMove(m.validMoves, m.rng)
		}
		if !ok {
			return m, nil
		}
		return m.play(mv)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.deselect()
	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < 7 {
			m.cursor.Row++
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right", "l":
		if m.cursor.Col < 7 {
			m.cursor.Col++
		}
	case "enter", " ":
		return m.choose()
	case "z":
		return m.undo()
	case "r":
		m.game.Reset()
		m.logger.Info("game reset", "user", m.name)
		m.refresh()
		return m.nextTurn()
	}
	return m, nil
}

// humanToMove reports whether input should move pieces right now.
func (m model) humanToMove() bool {
	return m.human[m.game.SideToMove()] && !m.gameOver()
}

func (m model) gameOver() bool {
	return m.game.Checkmate() || m.game.Stalemate()
}

func (m model) choose() (tea.Model, tea.Cmd) {
	if !m.humanToMove() {
		return m, nil
	}
	board := m.game.Board()
	piece := board.At(m.cursor)

	if m.selected != nil {
		if *m.selected == m.cursor {
			m.deselect()
			return m, nil
		}
		want := chess.NewMove(*m.selected, m.cursor, board.At(*m.selected), piece, 0)
		if mv, ok := m.legal(want); ok {
			return m.play(mv)
		}
	}

	if !piece.IsEmpty() && piece.Color == m.game.SideToMove() {
		sq := m.cursor
		m.selected = &sq
		m.targets = nil
		for _, mv := range m.validMoves {
			if mv.From() == sq {
				m.targets = append(m.targets, mv.To())
			}
		}
	}
	return m, nil
}

// legal returns the entry of m.validMoves matching mv.
func (m model) legal(mv chess.Move) (chess.Move, bool) {
	for _, v := range m.validMoves {
		if v.Equal(mv) {
			return v, true
		}
	}
	return chess.Move{}, false
}

// play applies mv, which must come from m.validMoves.
func (m model) play(mv chess.Move) (tea.Model, tea.Cmd) {
	mover := m.game.SideToMove()
	m.game.MakeMove(mv)
	m.logger.Debug("move", "user", m.name, "color", mover, "move", mv.LongNotation(), "ply", m.game.Ply())
	m.refresh()
	if status := m.game.Status(); m.gameOver() {
		m.logger.Info("game over", "user", m.name, "result", status, "ply", m.game.Ply())
	}
	return m.nextTurn()
}

// undo takes back one ply, or two when that hands the move back to a human.
func (m model) undo() (tea.Model, tea.Cmd) {
	if m.game.Ply() == 0 {
		return m, nil
	}
	m.game.UndoMove()
	if !m.human[m.game.SideToMove()] && m.game.Ply() > 0 && m.human[m.game.SideToMove().Opponent()] {
		m.game.UndoMove()
	}
	m.logger.Debug("undo", "user", m.name, "ply", m.game.Ply())
	m.refresh()
	return m.nextTurn()
}

// refresh follows every board change. It also retires any search in flight.
func (m *model) refresh() {
	m.validMoves = m.game.ValidMoves()
	m.thinking = false
	m.search++
	m.deselect()
}

func (m *model) deselect() {
	m.selected = nil
	m.targets = nil
}

// nextTurn starts a search when the computer is to move.
func (m model) nextTurn() (model, tea.Cmd) {
	if m.gameOver() || m.human[m.game.SideToMove()] {
		return m, nil
	}
	m.thinking = true
	m.search++
	return m, searchCmd(m.game.Clone(), m.depth, m.think, m.search)
}

func searchCmd(g *chess.GameState, depth int, think time.Duration, search int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), think)
		defer cancel()
		mv, ok := ai.FindMove(ctx, g, depth)
		return computerMoveMsg{move: mv, ok: ok, search: search}
	}
}
