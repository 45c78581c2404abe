package service

import (
	"ModelHub/config"
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/model"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestEnv points the package at a fresh in-memory database and a
// temporary local store.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	config.AppConfig = config.Config{MaxUploadBytes: 1 << 20}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	require.NoError(t, repo.InitSqliteTest("file:"+name+"?mode=memory&cache=shared"))
	sqlDB, err := repo.Db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	storage.Default = store

	repo.Redis = nil
	Cleanup = nil
	return dir
}

func createTestUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email}
	require.NoError(t, CreateUser(context.Background(), user))
	return user
}

func uploadTestModel(t *testing.T, userID uint64, fileName, content string) *model.Model3D {
	t.Helper()
	m, err := UploadModel(context.Background(), &dto.UploadModelRequest{
		FileName: fileName,
		UserID:   &userID,
		Size:     int64(len(content)),
		Reader:   strings.NewReader(content),
	})
	require.NoError(t, err)
	return m
}

func rateModel(t *testing.T, userID, modelID uint64, score float64) *model.Rating {
	t.Helper()
	r, _, err := UpsertRating(context.Background(), &dto.RatingRequest{
		UserID:  userID,
		ModelID: modelID,
		Score:   score,
	})
	require.NoError(t, err)
	return r
}

// serializeConnections keeps the shared in-memory database on one connection,
// so concurrent callers interleave at the Go level without SQLite table locks.
func serializeConnections(t *testing.T) {
	t.Helper()
	sqlDB, err := repo.Db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
}
