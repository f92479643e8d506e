package termui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/they4kman/minesweep/game"
)

type tickMsg struct {
	seconds int
}

var (
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	mineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	losingStyle  = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	wonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	numberStyles = map[game.CellState]lipgloss.Style{
		game.Number1: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		game.Number2: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		game.Number3: lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		game.Number4: lipgloss.NewStyle().Foreground(lipgloss.Color("19")),
		game.Number5: lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
		game.Number6: lipgloss.NewStyle().Foreground(lipgloss.Color("30")),
		game.Number7: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		game.Number8: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
)

var difficultyKeys = map[string]game.Difficulty{
	"1": game.Easy,
	"2": game.Medium,
	"3": game.Hard,
}

type model struct {
	session *game.Session

	cursorRow, cursorCol int
	err                  error
}

func newModel(session *game.Session) model {
	return model{session: session}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// View reads the elapsed time straight from the session
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	board := m.session.Board()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k", "w":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
	case "down", "j", "s":
		if m.cursorRow < board.Rows()-1 {
			m.cursorRow++
		}
	case "left", "h", "a":
		if m.cursorCol > 0 {
			m.cursorCol--
		}
	case "right", "l", "d":
		if m.cursorCol < board.Cols()-1 {
			m.cursorCol++
		}
	case " ", "enter":
		if cell := board.CellAt(m.cursorRow, m.cursorCol); cell != nil && cell.IsRevealed() {
			m.session.Chord(m.cursorRow, m.cursorCol)
		} else {
			m.session.Reveal(m.cursorRow, m.cursorCol)
		}
	case "f":
		m.session.ToggleFlag(m.cursorRow, m.cursorCol)
	case "c":
		m.session.Chord(m.cursorRow, m.cursorCol)
	case "n", "r":
		m.session.NewGame()
	case "p":
		m.session.Step()
	default:
		if difficulty, ok := difficultyKeys[key]; ok {
			m.err = m.session.SetDifficulty(difficulty)
			m.cursorRow, m.cursorCol = 0, 0
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  mines %03d  time %03d",
		m.session.Difficulty().Name, m.session.MinesRemaining(), m.session.ElapsedSeconds())))
	switch m.session.State() {
	case game.Won:
		b.WriteString("  " + wonStyle.Render("You won!"))
	case game.Lost:
		b.WriteString("  " + lostStyle.Render("Game over"))
	}
	b.WriteString("\n\n")

	board := m.session.Board()
	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Cols(); col++ {
			glyph := renderCell(board.CellAt(row, col).State())
			if row == m.cursorRow && col == m.cursorCol {
				glyph = cursorStyle.Render(glyph)
			}
			b.WriteString(glyph)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	if m.err != nil {
		b.WriteString("\n" + lostStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("arrows/hjkl move · space reveal · f flag · c chord · n new · 1-3 difficulty · p director step · q quit"))
	return b.String()
}

func renderCell(state game.CellState) string {
	switch {
	case state == game.Unrevealed:
		return hiddenStyle.Render("■")
	case state == game.Flag:
		return flagStyle.Render("F")
	case state == game.FlagWrong:
		return lostStyle.Render("X")
	case state == game.Mine:
		return mineStyle.Render("*")
	case state == game.MineLosing:
		return losingStyle.Render("*")
	case state == game.Empty:
		return emptyStyle.Render("·")
	case state.IsNumber():
		return numberStyles[state].Render(fmt.Sprint(int(state)))
	}
	return "?"
}
