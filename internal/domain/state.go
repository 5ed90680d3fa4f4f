package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

// SavedGame is the persisted form of a game. Field names match the files
// written by the first terminal version so old saves still load.
type SavedGame struct {
	Board         [][]*string `json:"board"`
	History       []SavedMove `json:"history"`
	CurrentPlayer string      `json:"currentPlayer"`
	IsGameOver    bool        `json:"isGameOver"`
	Winner        *string     `json:"winner,omitempty"`
	GameID        string      `json:"gameId,omitempty"`
	SavedAt       string      `json:"savedAt,omitempty"`
	Checksum      string      `json:"checksum,omitempty"`
}

// SavedMove uses pointers so a missing field can be told apart from a zero.
type SavedMove struct {
	Row    *int    `json:"row"`
	Col    *int    `json:"col"`
	Player *string `json:"player"`
}

// SaveMeta carries the optional descriptive fields of a save.
type SaveMeta struct {
	GameID  string
	SavedAt time.Time
}

// EncodeState serializes the game as indented JSON with a checksum.
func EncodeState(g *Game, meta SaveMeta) ([]byte, error) {
	saved := SavedGame{
		Board:         make([][]*string, Rows),
		History:       make([]SavedMove, 0, g.History.Len()),
		CurrentPlayer: g.CurrentPlayer.Symbol(),
		IsGameOver:    g.IsFinished(),
		GameID:        meta.GameID,
	}
	if !meta.SavedAt.IsZero() {
		saved.SavedAt = meta.SavedAt.UTC().Format(time.RFC3339)
	}

	for r := 0; r < Rows; r++ {
		saved.Board[r] = make([]*string, Columns)
		for c := 0; c < Columns; c++ {
			saved.Board[r][c] = symbolPtr(g.Board.Cells[r][c])
		}
	}

	for _, m := range g.History.Moves() {
		row, col := m.Row, m.Col
		saved.History = append(saved.History, SavedMove{
			Row:    &row,
			Col:    &col,
			Player: symbolPtr(m.Player),
		})
	}

	if g.Status == StatusWon {
		saved.Winner = symbolPtr(g.Winner)
	}

	sum, err := checksum(saved)
	if err != nil {
		return nil, err
	}
	saved.Checksum = sum

	return json.MarshalIndent(saved, "", "  ")
}

// DecodeState parses and validates a save. The returned game is brand new;
// callers swap it in only when err is nil.
func DecodeState(data []byte) (*Game, SaveMeta, error) {
	var saved SavedGame
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, SaveMeta{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	return saved.ToGame()
}

// ToGame validates the saved structure and builds the game it describes.
func (s SavedGame) ToGame() (*Game, SaveMeta, error) {
	var meta SaveMeta

	if s.Checksum != "" {
		unsigned := s
		unsigned.Checksum = ""
		sum, err := checksum(unsigned)
		if err != nil {
			return nil, meta, fmt.Errorf("%w: %v", ErrInvalidSave, err)
		}
		if sum != s.Checksum {
			return nil, meta, fmt.Errorf("%w: checksum mismatch", ErrInvalidSave)
		}
	}

	if len(s.Board) != Rows {
		return nil, meta, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidSave, len(s.Board), Rows)
	}

	g := NewGame()
	for r, row := range s.Board {
		if len(row) != Columns {
			return nil, meta, fmt.Errorf("%w: board row %d has %d columns, want %d", ErrInvalidSave, r, len(row), Columns)
		}
		for c, cell := range row {
			if cell == nil {
				continue
			}
			player, ok := ParsePlayer(*cell)
			if !ok {
				return nil, meta, fmt.Errorf("%w: unknown cell value %q at row %d column %d", ErrInvalidSave, *cell, r, c)
			}
			g.Board.Cells[r][c] = player
		}
	}
	if !g.Board.HasGravity() {
		return nil, meta, fmt.Errorf("%w: board has a disk floating above an empty cell", ErrInvalidSave)
	}

	for i, m := range s.History {
		if m.Row == nil || m.Col == nil || m.Player == nil {
			return nil, meta, fmt.Errorf("%w: history entry %d is incomplete", ErrInvalidSave, i)
		}
		if !g.Board.InBounds(*m.Row, *m.Col) {
			return nil, meta, fmt.Errorf("%w: history entry %d is out of the board", ErrInvalidSave, i)
		}
		player, ok := ParsePlayer(*m.Player)
		if !ok {
			return nil, meta, fmt.Errorf("%w: history entry %d has unknown player %q", ErrInvalidSave, i, *m.Player)
		}
		g.History.Append(Move{Row: *m.Row, Col: *m.Col, Player: player})
	}

	current, ok := ParsePlayer(s.CurrentPlayer)
	if !ok {
		return nil, meta, fmt.Errorf("%w: unknown current player %q", ErrInvalidSave, s.CurrentPlayer)
	}
	g.CurrentPlayer = current

	if s.IsGameOver {
		g.Status = StatusDraw
		if s.Winner != nil {
			winner, ok := ParsePlayer(*s.Winner)
			if !ok {
				return nil, meta, fmt.Errorf("%w: unknown winner %q", ErrInvalidSave, *s.Winner)
			}
			g.Status, g.Winner = StatusWon, winner
		} else if last, ok := g.History.Last(); ok && CheckWin(&g.Board, last.Row, last.Col, last.Player) {
			g.Status, g.Winner = StatusWon, last.Player
		}
	}

	meta.GameID = s.GameID
	if s.SavedAt != "" {
		if t, err := time.Parse(time.RFC3339, s.SavedAt); err == nil {
			meta.SavedAt = t
		}
	}

	return g, meta, nil
}

func symbolPtr(p PlayerID) *string {
	if !p.IsPlayer() {
		return nil
	}
	s := p.Symbol()
	return &s
}

func checksum(s SavedGame) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
