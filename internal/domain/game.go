package domain

type Game struct {
	Board         Board
	History       MoveHistory
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		History:       NewMoveHistory(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}
}

// MakeMove drops the current player's disk in column. Rejected moves return an
// error and leave the game untouched.
func (g *Game) MakeMove(column int) (Move, error) {
	if g.Status != StatusActive {
		return Move{}, ErrGameOver
	}

	if column < 0 || column >= Columns {
		return Move{}, ErrInvalidColumn
	}

	row, err := g.Board.DropDisk(column, g.CurrentPlayer)
	if err != nil {
		return Move{}, err
	}

	move := Move{Row: row, Col: column, Player: g.CurrentPlayer}
	g.History.Append(move)

	if CheckWin(&g.Board, row, column, g.CurrentPlayer) {
		g.Status = StatusWon
		g.Winner = g.CurrentPlayer
		return move, nil
	}

	if IsDraw(&g.Board, row, column, g.CurrentPlayer) {
		g.Status = StatusDraw
		return move, nil
	}

	g.CurrentPlayer = g.CurrentPlayer.Opponent()
	return move, nil
}

// Undo takes back the last move and hands the turn back to whoever played it.
// The game is always active afterwards, even if the undone move had ended it.
func (g *Game) Undo() (Move, error) {
	last, ok := g.History.Last()
	if !ok {
		return Move{}, ErrNothingToUndo
	}
	if g.Board.At(last.Row, last.Col) != last.Player || !last.Player.IsPlayer() {
		return Move{}, ErrHistoryMismatch
	}

	g.History.Pop()
	g.Board.Clear(last.Row, last.Col)
	g.CurrentPlayer = last.Player
	g.Status = StatusActive
	g.Winner = Empty
	return last, nil
}

func (g *Game) Reset() {
	*g = *NewGame()
}

func (g *Game) IsFinished() bool {
	return g.Status.IsTerminal()
}

func (g *Game) MoveCount() int {
	return g.History.Len()
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (Move, bool) {
	return g.History.Last()
}

// WinningLine returns the cells of the winning run, nil unless the game is won.
func (g *Game) WinningLine() []Position {
	if g.Status != StatusWon {
		return nil
	}
	last, ok := g.LastMove()
	if !ok {
		return nil
	}
	return WinningLine(&g.Board, last.Row, last.Col, last.Player)
}

// Clone creates a deep copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		Board:         g.Board,
		History:       g.History.clone(),
		CurrentPlayer: g.CurrentPlayer,
		Status:        g.Status,
		Winner:        g.Winner,
	}
}

// Equal compares every observable part of two games.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Board != other.Board || g.CurrentPlayer != other.CurrentPlayer ||
		g.Status != other.Status || g.Winner != other.Winner {
		return false
	}
	if g.History.Len() != other.History.Len() {
		return false
	}
	for i, m := range g.History.moves {
		if other.History.moves[i] != m {
			return false
		}
	}
	return true
}

// IsConsistent reports whether replaying the history from an empty board gives
// the current board.
func (g *Game) IsConsistent() bool {
	rebuilt, err := g.History.Rebuild()
	return err == nil && rebuilt == g.Board
}
