package domain

// Board is the grid of cells. Row 0 is the top row and Rows-1 the bottom one,
// so a disk dropped in a column lands on the highest free row index.
type Board struct {
	Cells [Rows][Columns]PlayerID
}

func NewBoard() Board {
	return Board{}
}

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}

// At returns Empty for coordinates outside the board.
func (b *Board) At(row, column int) PlayerID {
	if !b.InBounds(row, column) {
		return Empty
	}
	return b.Cells[row][column]
}

// LowestOpenRow scans the column from the bottom and returns the first empty
// row. ok is false when the column is full or out of range.
func (b *Board) LowestOpenRow(column int) (row int, ok bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.Cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Place puts the player's disk on the cell. Callers get row from
// LowestOpenRow for the same column.
func (b *Board) Place(row, column int, player PlayerID) error {
	if !b.InBounds(row, column) {
		return ErrInvalidColumn
	}
	if b.Cells[row][column] != Empty {
		return ErrCellOccupied
	}
	b.Cells[row][column] = player
	return nil
}

func (b *Board) Clear(row, column int) {
	if b.InBounds(row, column) {
		b.Cells[row][column] = Empty
	}
}

// DropDisk shifts the disk from top to bottom till it reaches the end or
// another disk.
func (b *Board) DropDisk(column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	row, ok := b.LowestOpenRow(column)
	if !ok {
		return -1, ErrColumnFull
	}
	if err := b.Place(row, column, player); err != nil {
		return -1, err
	}
	return row, nil
}

// IsFull reports whether no empty cell is left anywhere on the board.
func (b *Board) IsFull() bool {
	return b.Count() == Rows*Columns
}

// ValidMoves lists playable columns in order 0..Columns-1.
func (b *Board) ValidMoves() []int {
	validMoves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if _, ok := b.LowestOpenRow(col); ok {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b.Cells[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// HasGravity reports whether no occupied cell floats above an empty one.
func (b *Board) HasGravity() bool {
	for c := 0; c < Columns; c++ {
		seenEmpty := false
		for r := Rows - 1; r >= 0; r-- {
			if b.Cells[r][c] == Empty {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}
