package service

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/model"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingScheduler struct {
	keys []string
}

func (s *recordingScheduler) ScheduleCleanup(_ context.Context, storageKey, _ string) error {
	s.keys = append(s.keys, storageKey)
	return nil
}

// brokenRemoveStore fails every removal.
type brokenRemoveStore struct {
	storage.Store
}

func (brokenRemoveStore) Remove(context.Context, string) error {
	return errors.New("disk unavailable")
}

func TestUploadModelStoresFileAndRow(t *testing.T) {
	dir := setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")

	m := uploadTestModel(t, user.ID, "../../etc/pieza.STL", "solid pieza")
	assert.NotZero(t, m.ID)
	assert.Equal(t, model.FallbackCategoryID, m.CategoryID)
	assert.Equal(t, "../../etc/pieza.STL", m.FileName)
	assert.True(t, strings.HasSuffix(m.StorageKey, ".stl"))
	assert.True(t, storage.ValidKey(m.StorageKey))

	data, err := os.ReadFile(filepath.Join(dir, m.StorageKey))
	require.NoError(t, err)
	assert.Equal(t, "solid pieza", string(data))

	byUser, err := ListModelsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	byCategory, err := ListModelsByCategory(ctx, model.FallbackCategoryID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
}

func TestUploadModelValidation(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	unknown := uint64(999)

	cases := []struct {
		name string
		req  dto.UploadModelRequest
		want error
	}{
		{"missing file name", dto.UploadModelRequest{UserID: &user.ID}, ErrInvalidInput},
		{"missing user", dto.UploadModelRequest{FileName: "a.stl"}, ErrInvalidInput},
		{"too large", dto.UploadModelRequest{FileName: "a.stl", UserID: &user.ID, Size: 2 << 20}, ErrInvalidInput},
		{"unknown user", dto.UploadModelRequest{FileName: "a.stl", UserID: &unknown}, ErrNotFound},
		{"unknown category", dto.UploadModelRequest{FileName: "a.stl", UserID: &user.ID, CategoryID: &unknown}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			req.Reader = strings.NewReader("x")
			req.Size = max(req.Size, 1)
			_, err := UploadModel(ctx, &req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	objects, err := storage.Default.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
	models, err := ListModels(ctx)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestUploadModelRemovesFileWhenInsertFails(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")

	require.NoError(t, repo.Db.Callback().Create().Before("gorm:create").Register("test:fail_modelos", func(db *gorm.DB) {
		if db.Statement.Table == "modelos" {
			_ = db.AddError(errors.New("insert rejected"))
		}
	}))

	_, err := UploadModel(ctx, &dto.UploadModelRequest{
		FileName: "pieza.stl",
		UserID:   &user.ID,
		Size:     3,
		Reader:   strings.NewReader("abc"),
	})
	require.Error(t, err)

	objects, err := storage.Default.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestDeleteModelRemovesRatingsRowAndFile(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	keep := uploadTestModel(t, user.ID, "keep.stl", "keep")
	gone := uploadTestModel(t, user.ID, "gone.stl", "gone")
	rateModel(t, user.ID, keep.ID, 4)
	rateModel(t, user.ID, gone.ID, 2)

	require.NoError(t, DeleteModel(ctx, gone.ID))

	_, err := GetModel(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var ratings []model.Rating
	require.NoError(t, repo.Db.Find(&ratings).Error)
	require.Len(t, ratings, 1)
	assert.Equal(t, keep.ID, ratings[0].ModelID)

	exists, err := storage.Default.Exists(ctx, gone.StorageKey)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = storage.Default.Exists(ctx, keep.StorageKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteModelNotFoundLeavesStateUntouched(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid")
	rateModel(t, user.ID, m.ID, 5)

	assert.ErrorIs(t, DeleteModel(ctx, m.ID+1), ErrNotFound)

	models, err := ListModels(ctx)
	require.NoError(t, err)
	assert.Len(t, models, 1)
	var count int64
	require.NoError(t, repo.Db.Model(&model.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteModelToleratesMissingFile(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid")
	require.NoError(t, storage.Default.Remove(ctx, m.StorageKey))

	require.NoError(t, DeleteModel(ctx, m.ID))
	_, err := GetModel(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteModelSchedulesCleanupWhenRemoveFails(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid")

	scheduler := &recordingScheduler{}
	Cleanup = scheduler
	storage.Default = brokenRemoveStore{Store: storage.Default}

	require.NoError(t, DeleteModel(ctx, m.ID))
	assert.Equal(t, []string{m.StorageKey}, scheduler.keys)
}

func TestOpenModelFileServesLatestUpload(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	uploadTestModel(t, user.ID, "pieza.stl", "v1")
	latest := uploadTestModel(t, user.ID, "pieza.stl", "v2")

	body, m, err := OpenModelFile(ctx, "pieza.stl")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
	assert.Equal(t, latest.ID, m.ID)

	_, _, err = OpenModelFile(ctx, "otro.stl")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, storage.Default.Remove(ctx, latest.StorageKey))
	_, _, err = OpenModelFile(ctx, "pieza.stl")
	assert.ErrorIs(t, err, ErrNotFound)
}
