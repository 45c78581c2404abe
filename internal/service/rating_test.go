package service

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/model"
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateScores(t *testing.T) {
	cases := []struct {
		name    string
		scores  []float64
		average float64
		total   int
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3}, 3, 1},
		{"two", []float64{4, 5}, 4.5, 2},
		{"three", []float64{4, 5, 3}, 4, 3},
		{"rounds to two decimals", []float64{5, 4, 4}, 4.33, 3},
		{"rounds half up", []float64{1, 2, 2, 2, 2, 2, 2, 2}, 1.88, 8},
		{"tie rounds away from zero", []float64{4, 4.25}, 4.13, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			average, total := AggregateScores(tc.scores)
			assert.Equal(t, tc.average, average)
			assert.Equal(t, tc.total, total)
		})
	}
}

func TestValidateScore(t *testing.T) {
	for _, ok := range []float64{1, 2.5, 5} {
		assert.NoError(t, ValidateScore(ok), "score %v", ok)
	}
	for _, bad := range []float64{0, 0.99, 5.01, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateScore(bad), ErrInvalidInput, "score %v", bad)
	}
}

func TestUpsertRatingUpdatesSameRow(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid pieza")

	comment := "bien"
	first, created, err := UpsertRating(ctx, &dto.RatingRequest{
		UserID: user.ID, ModelID: m.ID, Score: 3, Comment: &comment,
	})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := UpsertRating(ctx, &dto.RatingRequest{
		UserID: user.ID, ModelID: m.ID, Score: 5,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5.0, second.Score)
	assert.Nil(t, second.Comment)

	var count int64
	require.NoError(t, repo.Db.Model(&model.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertRatingRejectsUnknownRefs(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid pieza")

	_, _, err := UpsertRating(ctx, &dto.RatingRequest{UserID: user.ID, ModelID: m.ID + 100, Score: 4})
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = UpsertRating(ctx, &dto.RatingRequest{UserID: user.ID + 100, ModelID: m.ID, Score: 4})
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = UpsertRating(ctx, &dto.RatingRequest{UserID: user.ID, ModelID: m.ID, Score: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var count int64
	require.NoError(t, repo.Db.Model(&model.Rating{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetModelRatings(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()
	ana := createTestUser(t, "Ana", "ana@example.com")
	luis := createTestUser(t, "Luis", "luis@example.com")
	eva := createTestUser(t, "Eva", "eva@example.com")
	m := uploadTestModel(t, ana.ID, "pieza.stl", "solid pieza")

	empty, err := GetModelRatings(ctx, m.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.Average)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Ratings)

	rateModel(t, ana.ID, m.ID, 4)
	rateModel(t, luis.ID, m.ID, 5)
	got, err := GetModelRatings(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Average)
	assert.Equal(t, 2, got.Total)

	rateModel(t, eva.ID, m.ID, 3)
	got, err = GetModelRatings(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Average)
	assert.Equal(t, 3, got.Total)
	require.Len(t, got.Ratings, 3)
	assert.Equal(t, "Ana", got.Ratings[0].UserName)
	assert.Equal(t, "Eva", got.Ratings[2].UserName)
}

func TestUpsertRatingConcurrentSamePair(t *testing.T) {
	setupTestEnv(t)
	serializeConnections(t)
	user := createTestUser(t, "Ana", "ana@example.com")
	m := uploadTestModel(t, user.ID, "pieza.stl", "solid pieza")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(score float64) {
			defer wg.Done()
			_, _, err := UpsertRating(context.Background(), &dto.RatingRequest{
				UserID: user.ID, ModelID: m.ID, Score: score,
			})
			errs <- err
		}(float64(i%5 + 1))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var count int64
	require.NoError(t, repo.Db.Model(&model.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetModelRatingsUnknownModel(t *testing.T) {
	setupTestEnv(t)

	got, err := GetModelRatings(context.Background(), 404)
	require.NoError(t, err)
	assert.EqualValues(t, 404, got.ModelID)
	assert.Zero(t, got.Average)
	assert.Zero(t, got.Total)
}
