package handoff

import (
	"path/filepath"
	"testing"

	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "handoff.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutTake_ConsumedOnce(t *testing.T) {
	s := openTestStore(t)

	snap := Snapshot{
		ConversationID: "c1",
		Messages: []domain.Message{
			domain.NewMessage(domain.RoleUser, "carry me over"),
		},
	}
	require.NoError(t, s.Put("u1", snap))

	got, found, err := s.Take("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "c1", got.ConversationID)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "carry me over", got.Messages[0].Content)

	_, found, err = s.Take("u1")
	require.NoError(t, err)
	assert.False(t, found, "a snapshot is consumed by the first take")
}

func TestTake_NothingParked(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Take("nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPut_ReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("u1", Snapshot{ConversationID: "old"}))
	require.NoError(t, s.Put("u1", Snapshot{ConversationID: "new"}))

	got, found, err := s.Take("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", got.ConversationID)
}

func TestTake_CorruptPayloadDiscarded(t *testing.T) {
	s := openTestStore(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte("u1"), []byte("{broken"))
	})
	require.NoError(t, err)

	_, found, err := s.Take("u1")
	require.NoError(t, err)
	assert.False(t, found)

	// The corrupt entry was cleared, not left behind.
	_, found, err = s.Take("u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSnapshots_IsolatedPerUser(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("u1", Snapshot{ConversationID: "a"}))
	require.NoError(t, s.Put("u2", Snapshot{ConversationID: "b"}))

	got, found, err := s.Take("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a", got.ConversationID)

	got, found, err = s.Take("u2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", got.ConversationID)
}
