package bot

import (
	"github.com/iamasit07/connect4-cli/internal/domain"
)

// centerOrder is the positional fallback: center column first, then
// alternating outward (3,2,4,1,5,0,6 on a 7-wide board).
var centerOrder = func() []int {
	order := make([]int, 0, domain.Columns)
	center := domain.Columns / 2
	order = append(order, center)
	for d := 1; len(order) < domain.Columns; d++ {
		if left := center - d; left >= 0 {
			order = append(order, left)
		}
		if right := center + d; right < domain.Columns {
			order = append(order, right)
		}
	}
	return order
}()

func calculateMediumMove(board *domain.Board, botPlayer domain.PlayerID) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return NoMove
	}

	// === PHASE 1: take an immediate win ===
	if col, ok := findWinningColumn(board, validColumns, botPlayer); ok {
		return col
	}

	// === PHASE 2: block the opponent's immediate win ===
	if col, ok := findWinningColumn(board, validColumns, botPlayer.Opponent()); ok {
		return col
	}

	// === PHASE 3: positional preference ===
	for _, col := range centerOrder {
		if _, ok := board.LowestOpenRow(col); ok {
			return col
		}
	}
	return validColumns[0]
}

// findWinningColumn returns the first column in which player would win right
// away. Each probe is placed and removed again before the next one.
func findWinningColumn(board *domain.Board, validColumns []int, player domain.PlayerID) (int, bool) {
	for _, col := range validColumns {
		if wouldWin(board, col, player) {
			return col, true
		}
	}
	return NoMove, false
}

func wouldWin(board *domain.Board, col int, player domain.PlayerID) bool {
	row, ok := board.LowestOpenRow(col)
	if !ok {
		return false
	}
	if err := board.Place(row, col, player); err != nil {
		return false
	}
	defer board.Clear(row, col)

	return domain.CheckWin(board, row, col, player)
}
