package task

import (
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/model"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTask(t *testing.T) {
	t.Helper()
	require.NoError(t, repo.InitSqliteTest("file:"+t.Name()+"?mode=memory&cache=shared"))
	sqlDB, err := repo.Db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	storage.Default = store
}

func TestEncodeDecodeCleanup(t *testing.T) {
	key := storage.NewKey("pieza.stl")
	body, err := EncodeCleanup(key, "delete failed")
	require.NoError(t, err)

	msg, err := DecodeCleanup(body)
	require.NoError(t, err)
	assert.Equal(t, key, msg.StorageKey)
	assert.Equal(t, "delete failed", msg.Reason)
	assert.Zero(t, msg.Attempt)
	assert.False(t, msg.QueuedAt.IsZero())
}

func TestCleanupRejectsBadMessages(t *testing.T) {
	_, err := EncodeCleanup("../../etc/passwd", "")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeCleanup([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = DecodeCleanup([]byte(`{"storage_key":"uploads/x.stl"}`))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestProcessCleanup(t *testing.T) {
	setupTask(t)
	ctx := context.Background()

	orphan := storage.NewKey("orphan.stl")
	inUse := storage.NewKey("in_use.stl")
	for _, key := range []string{orphan, inUse} {
		require.NoError(t, storage.Default.Put(ctx, key, strings.NewReader("x"), 1, ""))
	}
	require.NoError(t, repo.Db.Create(&model.Model3D{
		FileName:   "in_use.stl",
		StorageKey: inUse,
		UserID:     1,
		CategoryID: model.FallbackCategoryID,
	}).Error)

	require.NoError(t, ProcessCleanup(ctx, CleanupMessage{StorageKey: orphan}))
	require.NoError(t, ProcessCleanup(ctx, CleanupMessage{StorageKey: inUse}))
	// already gone
	require.NoError(t, ProcessCleanup(ctx, CleanupMessage{StorageKey: orphan}))

	exists, err := storage.Default.Exists(ctx, orphan)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = storage.Default.Exists(ctx, inUse)
	require.NoError(t, err)
	assert.True(t, exists)
}
