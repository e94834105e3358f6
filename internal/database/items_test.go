package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ownerID := createTestUser(t, db, "Owner", "owner@example.com")

	item := &models.Item{Name: "Дрель", Description: "Аккумуляторная", Available: true, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(ctx, item))
	require.NotZero(t, item.ID)

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Дрель", got.Name)
	assert.True(t, got.Available)
	assert.Equal(t, ownerID, got.OwnerID)

	got.Available = false
	got.Description = "В ремонте"
	require.NoError(t, db.UpdateItem(ctx, got))

	updated, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "В ремонте", updated.Description)
}

func TestGetItemNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetItem(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItemNotFound(t *testing.T) {
	db := setupTestDB(t)

	missing := &models.Item{ID: 999, Name: "Ghost"}
	err := db.UpdateItem(context.Background(), missing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	aliceID := createTestUser(t, db, "Alice", "alice@example.com")
	bobID := createTestUser(t, db, "Bob", "bob@example.com")

	createTestItem(t, db, aliceID, "Дрель")
	createTestItem(t, db, aliceID, "Палатка")
	createTestItem(t, db, bobID, "Лодка")

	items, err := db.GetItemsByOwner(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Дрель", items[0].Name)
	assert.Equal(t, "Палатка", items[1].Name)

	items, err = db.GetItemsByOwner(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestSearchAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ownerID := createTestUser(t, db, "Owner", "owner@example.com")

	drill := &models.Item{Name: "Аккумуляторная дрель", Description: "с битами", Available: true, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(ctx, drill))
	hidden := &models.Item{Name: "Дрель старая", Description: "", Available: false, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(ctx, hidden))
	byDescription := &models.Item{Name: "Шуруповерт", Description: "дрель-шуруповерт 2 в 1", Available: true, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(ctx, byDescription))

	// Поиск по названию и описанию, недоступные вещи скрыты
	items, err := db.SearchAvailableItems(ctx, "дрель")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, drill.ID, items[0].ID)
	assert.Equal(t, byDescription.ID, items[1].ID)

	// Пустой запрос дает пустой срез
	items, err = db.SearchAvailableItems(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = db.SearchAvailableItems(ctx, "экскаватор")
	require.NoError(t, err)
	assert.Empty(t, items)
}
