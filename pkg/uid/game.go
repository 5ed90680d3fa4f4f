package uid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier for a new game.
func GenerateGameID() string {
	return uuid.NewString()
}

// DefaultSaveName is used when save is called without a name.
func DefaultSaveName(now time.Time) string {
	return fmt.Sprintf("save_%d.json", now.UnixMilli())
}
