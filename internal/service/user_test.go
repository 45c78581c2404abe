package service

import (
	"ModelHub/model"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginCreatesOnce(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	first, created, err := Login(ctx, "Ana", " Ana@Example.com ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "ana@example.com", first.Email)

	second, created, err := Login(ctx, "Otro nombre", "ana@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana", second.Name)

	users, err := ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginConcurrentSameEmail(t *testing.T) {
	setupTestEnv(t)
	serializeConnections(t)

	var wg sync.WaitGroup
	ids := make(chan uint64, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, _, err := Login(context.Background(), "Ana", "ana@example.com")
			if assert.NoError(t, err) {
				ids <- user.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1)
	users, err := ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginAssignsDistinctIDs(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	a, _, err := Login(ctx, "Ana", "ana@example.com")
	require.NoError(t, err)
	b, _, err := Login(ctx, "Luis", "luis@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLoginRequiresNameAndEmail(t *testing.T) {
	setupTestEnv(t)
	ctx := context.Background()

	_, _, err := Login(ctx, "Ana", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = Login(ctx, "", "ana@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	setupTestEnv(t)
	createTestUser(t, "Ana", "ana@example.com")

	err := CreateUser(context.Background(), &model.User{Name: "Ana bis", Email: "ana@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetUserNotFound(t *testing.T) {
	setupTestEnv(t)

	_, err := GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
