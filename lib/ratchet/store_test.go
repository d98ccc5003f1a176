package ratchet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateAndCurrent(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(0, 0)

	first, err := store.Current()
	require.NoError(t, err)
	assert.Len(first, RATCHET_SIZE)
	assert.Equal(1, store.Len())

	second, err := store.Rotate()
	require.NoError(t, err)
	assert.NotEqual(first, second)
	assert.Equal(2, store.Len())

	current, err := store.Current()
	require.NoError(t, err)
	assert.Equal(second, current)
}

func TestSupersededKeysStayUsable(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(0, 0)
	first, err := store.Rotate()
	require.NoError(t, err)
	_, err = store.Rotate()
	require.NoError(t, err)

	firstID, err := ID(first)
	require.NoError(t, err)
	_, ok := store.Get(firstID)
	assert.True(ok)

	keys := store.DecryptionKeys()
	assert.Len(keys, 2)
}

func TestRetentionCap(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(0, 4)
	for i := 0; i < 10; i++ {
		_, err := store.Rotate()
		require.NoError(t, err)
	}
	assert.LessOrEqual(store.Len(), 4)
}

func TestExpiredKeysDropped(t *testing.T) {
	assert := assert.New(t)

	store := NewStore(time.Hour, 0)
	now := time.Now()
	store.now = func() time.Time { return now }

	_, err := store.Rotate()
	require.NoError(t, err)

	// Advance past expiry; the stale key is no longer offered.
	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	current, err := store.Rotate()
	require.NoError(t, err)

	keys := store.DecryptionKeys()
	assert.Len(keys, 1)

	currentID, err := ID(current)
	require.NoError(t, err)
	_, ok := store.Get(currentID)
	assert.True(ok)
}
