package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRestoresGame(t *testing.T) {
	g := NewGame()
	playColumns(t, g, 3, 4, 3)
	savedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	data, err := EncodeState(g, SaveMeta{GameID: "abc", SavedAt: savedAt})
	require.NoError(t, err)

	loaded, meta, err := DecodeState(data)
	require.NoError(t, err)
	assert.True(t, g.Equal(loaded))
	assert.Equal(t, "abc", meta.GameID)
	assert.True(t, savedAt.Equal(meta.SavedAt))
}

func TestEncodeUsesSymbols(t *testing.T) {
	g := NewGame()
	playColumns(t, g, 0)

	data, err := EncodeState(g, SaveMeta{})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	board := raw["board"].([]any)
	require.Len(t, board, Rows)
	bottom := board[Rows-1].([]any)
	assert.Equal(t, "R", bottom[0])
	assert.Nil(t, bottom[1])
	assert.Equal(t, "Y", raw["currentPlayer"])
	assert.Equal(t, false, raw["isGameOver"])
	history := raw["history"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, map[string]any{"row": float64(5), "col": float64(0), "player": "R"}, history[0])
}

func TestDecodeWonGameKeepsWinner(t *testing.T) {
	g := NewGame()
	playColumns(t, g, 0, 0, 1, 1, 2, 2, 3)
	require.Equal(t, StatusWon, g.Status)

	data, err := EncodeState(g, SaveMeta{})
	require.NoError(t, err)
	loaded, _, err := DecodeState(data)
	require.NoError(t, err)
	assert.Equal(t, StatusWon, loaded.Status)
	assert.Equal(t, Player1, loaded.Winner)
}

// legacySave is the layout written by the first terminal version of the game:
// no checksum and no winner field.
func legacySave(board [][]any, history []map[string]any, current string, over bool) []byte {
	data, _ := json.MarshalIndent(map[string]any{
		"board":         board,
		"history":       history,
		"currentPlayer": current,
		"isGameOver":    over,
	}, "", "  ")
	return data
}

func emptyRawBoard() [][]any {
	board := make([][]any, Rows)
	for r := range board {
		board[r] = make([]any, Columns)
	}
	return board
}

func TestDecodeLegacyFormat(t *testing.T) {
	board := emptyRawBoard()
	board[5][3] = "R"
	board[4][3] = "Y"
	history := []map[string]any{
		{"row": 5, "col": 3, "player": "R"},
		{"row": 4, "col": 3, "player": "Y"},
	}

	g, _, err := DecodeState(legacySave(board, history, "R", false))
	require.NoError(t, err)
	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, StatusActive, g.Status)
	assert.Equal(t, 2, g.MoveCount())
	assert.True(t, g.IsConsistent())
}

func TestDecodeDerivesWinnerFromLastMove(t *testing.T) {
	board := emptyRawBoard()
	var history []map[string]any
	for c := 0; c < 4; c++ {
		board[5][c] = "R"
		history = append(history, map[string]any{"row": 5, "col": c, "player": "R"})
		if c < 3 {
			board[4][c] = "Y"
			history = append(history, map[string]any{"row": 4, "col": c, "player": "Y"})
		}
	}

	g, _, err := DecodeState(legacySave(board, history, "R", true))
	require.NoError(t, err)
	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	validHistory := []map[string]any{{"row": 5, "col": 0, "player": "R"}}
	validBoard := func() [][]any {
		b := emptyRawBoard()
		b[5][0] = "R"
		return b
	}

	cases := map[string][]byte{
		"not json":       []byte("{board:"),
		"wrong row count": legacySave(validBoard()[:Rows-1], validHistory, "Y", false),
		"wrong column count": func() []byte {
			b := validBoard()
			b[2] = b[2][:Columns-1]
			return legacySave(b, validHistory, "Y", false)
		}(),
		"unknown symbol": func() []byte {
			b := validBoard()
			b[0][0] = "X"
			return legacySave(b, validHistory, "Y", false)
		}(),
		"numeric cell": func() []byte {
			b := validBoard()
			b[0][0] = 1
			return legacySave(b, validHistory, "Y", false)
		}(),
		"history row as string": legacySave(validBoard(),
			[]map[string]any{{"row": "5", "col": 0, "player": "R"}}, "Y", false),
		"history missing player": legacySave(validBoard(),
			[]map[string]any{{"row": 5, "col": 0}}, "Y", false),
		"history out of board": legacySave(validBoard(),
			[]map[string]any{{"row": 9, "col": 0, "player": "R"}}, "Y", false),
		"history unknown player": legacySave(validBoard(),
			[]map[string]any{{"row": 5, "col": 0, "player": "B"}}, "Y", false),
		"unknown current player": legacySave(validBoard(), validHistory, "G", false),
		"floating disk": func() []byte {
			b := validBoard()
			b[3][1] = "Y"
			return legacySave(b, validHistory, "R", false)
		}(),
		"board not an array":     []byte(`{"board": "R", "history": [], "currentPlayer": "R", "isGameOver": false}`),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			g, _, err := DecodeState(data)
			assert.ErrorIs(t, err, ErrInvalidSave)
			assert.Nil(t, g)
		})
	}
}

// A nearly full board whose only holes are the top of column 3 and the bottom
// of column 0, under stacked disks. Accepting it would let the last top cell
// end the game in a draw while column 0 is still open.
func TestDecodeRejectsBoardWithHole(t *testing.T) {
	board := emptyRawBoard()
	symbols := []string{"R", "Y"}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			board[r][c] = symbols[(r/2+c)%2]
		}
	}
	board[0][3] = nil
	board[Rows-1][0] = nil

	g, _, err := DecodeState(legacySave(board, nil, "R", false))
	assert.ErrorIs(t, err, ErrInvalidSave)
	assert.Contains(t, err.Error(), "floating")
	assert.Nil(t, g)
}

func TestDecodeRejectsTamperedChecksum(t *testing.T) {
	g := NewGame()
	playColumns(t, g, 2, 2)
	data, err := EncodeState(g, SaveMeta{})
	require.NoError(t, err)

	tampered := strings.Replace(string(data), `"currentPlayer": "R"`, `"currentPlayer": "Y"`, 1)
	require.NotEqual(t, string(data), tampered)

	_, _, err = DecodeState([]byte(tampered))
	assert.ErrorIs(t, err, ErrInvalidSave)
	assert.Contains(t, err.Error(), "checksum")
}
