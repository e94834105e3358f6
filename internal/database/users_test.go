package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)

	got.Name = "Alice Cooper"
	require.NoError(t, db.UpdateUser(ctx, got))

	updated, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUser(ctx, user.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := &models.User{Name: "Alice", Email: "same@example.com"}
	require.NoError(t, db.CreateUser(ctx, first))

	second := &models.User{Name: "Bob", Email: "same@example.com"}
	err := db.CreateUser(ctx, second)
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.CreateUser(ctx, alice))
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.CreateUser(ctx, bob))

	bob.Email = "alice@example.com"
	err := db.UpdateUser(ctx, bob)
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	missing := &models.User{ID: 777, Name: "Ghost", Email: "ghost@example.com"}
	err := db.UpdateUser(context.Background(), missing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteUser(context.Background(), 777)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	createTestUser(t, db, "Alice", "alice@example.com")
	createTestUser(t, db, "Bob", "bob@example.com")

	users, err = db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}
