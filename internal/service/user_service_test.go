package service

import (
	"context"
	"io"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *database.DB) {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserService(db, &logger), db
}

func strPtr(s string) *string { return &s }

func TestUserServiceCreate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)

	// Повтор почты - конфликт
	_, err = svc.Create(ctx, "Fake Alice", "alice@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestUserServiceGetByID(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(ctx, 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserServicePartialUpdate(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	// Только имя
	updated, err := svc.Update(ctx, user.ID, strPtr("Alice Cooper"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// Только почта
	updated, err = svc.Update(ctx, user.ID, nil, strPtr("cooper@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "cooper@example.com", updated.Email)
}

func TestUserServiceUpdateConflictsAndMissing(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, nil, strPtr("alice@example.com"))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	_, err = svc.Update(ctx, 999, strPtr("Ghost"), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserServiceDelete(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))

	err = svc.Delete(ctx, user.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserServiceGetAll(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	users, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
