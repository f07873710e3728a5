package users

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Email: "a@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsActive)

	byEmail, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.True(t, IsNotFound(err))
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestRepositoryRecordLogin(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "b@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordLogin(ctx, user.ID, at, ""))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, at.Equal(*reloaded.LastLoginAt))
	assert.Equal(t, "h", reloaded.PasswordHash)

	require.NoError(t, repo.RecordLogin(ctx, user.ID, at.Add(time.Hour), "h2"))
	reloaded, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "h2", reloaded.PasswordHash)

	assert.True(t, IsNotFound(repo.RecordLogin(ctx, uuid.New(), at, "")))

	dto := FromModel(reloaded)
	assert.Equal(t, user.ID, dto.ID)
	assert.Nil(t, FromModel(nil))
}
