package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

// Renderer draws boards as text, top row first.
type Renderer struct {
	color     bool
	player1   lipgloss.Style
	player2   lipgloss.Style
	highlight lipgloss.Style
}

func NewRenderer(color bool) *Renderer {
	return &Renderer{
		color:     color,
		player1:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		player2:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		highlight: lipgloss.NewStyle().Reverse(true),
	}
}

// Board renders the grid with column numbers underneath. Cells in line are
// marked: highlighted when colour is on, wrapped in brackets otherwise.
func (r *Renderer) Board(board domain.Board, line []domain.Position) string {
	marked := make(map[domain.Position]bool, len(line))
	for _, p := range line {
		marked[p] = true
	}

	var sb strings.Builder
	separator := strings.Repeat("-", domain.Columns*4+1)
	for row := 0; row < domain.Rows; row++ {
		sb.WriteString("|")
		for col := 0; col < domain.Columns; col++ {
			sb.WriteString(r.cell(board.At(row, col), marked[domain.Position{Row: row, Col: col}]))
			sb.WriteString("|")
		}
		sb.WriteString("\n")
		sb.WriteString(separator)
		sb.WriteString("\n")
	}

	sb.WriteString(" ")
	for col := 0; col < domain.Columns; col++ {
		fmt.Fprintf(&sb, "  %d ", col)
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *Renderer) cell(p domain.PlayerID, marked bool) string {
	if !p.IsPlayer() {
		return "   "
	}
	symbol := p.Symbol()
	if !r.color {
		if marked {
			return "[" + symbol + "]"
		}
		return " " + symbol + " "
	}

	style := r.player1
	if p == domain.Player2 {
		style = r.player2
	}
	if marked {
		style = style.Inherit(r.highlight)
	}
	return style.Render(" " + symbol + " ")
}

// Player returns the player's symbol, coloured when enabled.
func (r *Renderer) Player(p domain.PlayerID) string {
	if !r.color || !p.IsPlayer() {
		return p.Symbol()
	}
	if p == domain.Player2 {
		return r.player2.Render(p.Symbol())
	}
	return r.player1.Render(p.Symbol())
}
