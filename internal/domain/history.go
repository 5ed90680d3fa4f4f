package domain

import "iter"

// Move is one ply. Row is resolved by gravity when the move is applied and is
// recorded so undo can clear the exact cell.
type Move struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Player PlayerID `json:"player"`
}

// MoveHistory is the ordered log of applied moves.
type MoveHistory struct {
	moves []Move
}

func NewMoveHistory(moves ...Move) MoveHistory {
	h := MoveHistory{moves: make([]Move, 0, Rows*Columns)}
	h.moves = append(h.moves, moves...)
	return h
}

func (h *MoveHistory) Append(m Move) {
	h.moves = append(h.moves, m)
}

// Pop removes the last move. ok is false on an empty history.
func (h *MoveHistory) Pop() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	last := h.moves[len(h.moves)-1]
	h.moves = h.moves[:len(h.moves)-1]
	return last, true
}

func (h *MoveHistory) Last() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	return h.moves[len(h.moves)-1], true
}

func (h *MoveHistory) Len() int {
	return len(h.moves)
}

func (h *MoveHistory) Reset() {
	h.moves = h.moves[:0]
}

// Moves returns a copy of the log.
func (h *MoveHistory) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

func (h *MoveHistory) clone() MoveHistory {
	return NewMoveHistory(h.moves...)
}

// Replay yields the board after each move, built on a scratch board from an
// empty grid. Ranging over it again starts over. The yielded index is 1-based
// (the ply number).
func (h *MoveHistory) Replay() iter.Seq2[int, Board] {
	moves := h.Moves()
	return func(yield func(int, Board) bool) {
		scratch := NewBoard()
		for i, m := range moves {
			if !scratch.InBounds(m.Row, m.Col) {
				return
			}
			scratch.Cells[m.Row][m.Col] = m.Player
			if !yield(i+1, scratch) {
				return
			}
		}
	}
}

// Rebuild replays every move onto an empty board and returns the result.
func (h *MoveHistory) Rebuild() (Board, error) {
	board := NewBoard()
	for _, m := range h.moves {
		row, err := board.DropDisk(m.Col, m.Player)
		if err != nil {
			return board, err
		}
		if row != m.Row {
			return board, ErrHistoryMismatch
		}
	}
	return board, nil
}
