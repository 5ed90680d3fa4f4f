package uid

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	a, b := GenerateGameID(), GenerateGameID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}

func TestDefaultSaveName(t *testing.T) {
	now := time.UnixMilli(1735689600123)
	assert.Equal(t, "save_1735689600123.json", DefaultSaveName(now))
}
