package domain

// axes walked by the win check: horizontal, vertical, diagonal \, diagonal /
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CountRun walks from (row, column) in the given direction while the cells
// belong to player. The starting cell is included in the count.
func CountRun(board *Board, row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row, column
	for board.InBounds(r, c) && board.Cells[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}

// CheckWin only checks lines passing through (row, column). A win can only be
// completed by the last move so there is no need to scan the whole board.
func CheckWin(board *Board, row, column int, player PlayerID) bool {
	if !player.IsPlayer() {
		return false
	}
	for _, dir := range directions {
		forward := CountRun(board, row, column, dir[0], dir[1], player)
		backward := CountRun(board, row, column, -dir[0], -dir[1], player)
		if forward+backward-1 >= ToWin {
			return true
		}
	}
	return false
}

// WinningLine returns the connected cells of the first axis that reaches ToWin,
// ordered from the far backward end to the far forward end. nil if no win.
func WinningLine(board *Board, row, column int, player PlayerID) []Position {
	if !player.IsPlayer() {
		return nil
	}
	for _, dir := range directions {
		forward := CountRun(board, row, column, dir[0], dir[1], player)
		backward := CountRun(board, row, column, -dir[0], -dir[1], player)
		if forward+backward-1 < ToWin {
			continue
		}

		line := make([]Position, 0, forward+backward-1)
		for i := backward - 1; i > 0; i-- {
			line = append(line, Position{Row: row - dir[0]*i, Col: column - dir[1]*i})
		}
		for i := 0; i < forward; i++ {
			line = append(line, Position{Row: row + dir[0]*i, Col: column + dir[1]*i})
		}
		return line
	}
	return nil
}

// IsDraw is evaluated on the move that was just played: the board is full and
// that move did not win.
func IsDraw(board *Board, row, column int, player PlayerID) bool {
	return board.IsFull() && !CheckWin(board, row, column, player)
}
