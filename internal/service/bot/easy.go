package bot

import (
	"github.com/iamasit07/connect4-cli/internal/domain"
)

// easy mode does no lookahead at all
func (a *Agent) calculateEasyMove(board *domain.Board) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return NoMove
	}
	return validColumns[a.rng.Intn(len(validColumns))]
}
