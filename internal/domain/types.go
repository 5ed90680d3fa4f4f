package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// symbols used on screen and in save files
const (
	SymbolPlayer1 = "R"
	SymbolPlayer2 = "Y"
)

// Opponent returns the other player. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Symbol() string {
	switch p {
	case Player1:
		return SymbolPlayer1
	case Player2:
		return SymbolPlayer2
	}
	return ""
}

func (p PlayerID) IsPlayer() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) String() string {
	if s := p.Symbol(); s != "" {
		return s
	}
	return "empty"
}

// ParsePlayer maps a persisted symbol back to a player.
func ParsePlayer(symbol string) (PlayerID, bool) {
	switch symbol {
	case SymbolPlayer1:
		return Player1, true
	case SymbolPlayer2:
		return Player2, true
	}
	return Empty, false
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

func (s GameStatus) IsTerminal() bool {
	return s == StatusWon || s == StatusDraw
}

// Position is a single cell coordinate, row 0 being the top row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn   Error = "invalid column"
	ErrColumnFull      Error = "column is full"
	ErrCellOccupied    Error = "cell is already occupied"
	ErrGameOver        Error = "game is over"
	ErrNothingToUndo   Error = "nothing to undo"
	ErrHistoryMismatch Error = "move history does not match the board"
	ErrInvalidSave     Error = "invalid save data"
	ErrSaveNotFound    Error = "save not found"
	ErrInvalidSaveName Error = "invalid save name"
)
