package bot

import (
	"math/rand"
	"strings"
	"time"

	"github.com/iamasit07/connect4-cli/internal/domain"
)

// NoMove is returned when the board has no legal column left.
const NoMove = -1

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
)

// ParseDifficulty falls back to medium for anything it does not recognise.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	default:
		return DifficultyMedium
	}
}

// Agent picks columns for a player. It probes the board it is given in place
// and always puts every probed cell back before returning.
type Agent struct {
	rng *rand.Rand
}

func NewAgent(rng *rand.Rand) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{rng: rng}
}

var defaultAgent = NewAgent(nil)

// ChooseColumn selects a column based on difficulty using the default agent.
func ChooseColumn(board *domain.Board, botPlayer domain.PlayerID, difficulty Difficulty) int {
	return defaultAgent.ChooseColumn(board, botPlayer, difficulty)
}

func (a *Agent) ChooseColumn(board *domain.Board, botPlayer domain.PlayerID, difficulty Difficulty) int {
	switch difficulty {
	case DifficultyEasy:
		return a.calculateEasyMove(board)
	default:
		return calculateMediumMove(board, botPlayer)
	}
}
