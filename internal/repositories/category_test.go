package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// defaultCategoryNames are seeded by the initial migration.
var defaultCategoryNames = []string{
	"Entertainment", "Food", "Healthcare", "Other", "Shopping", "Transportation", "Utilities",
}

func TestCategoryReadRepository_ListVisible(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewCategoryReadRepository(db)
	writeRepo := NewCategoryWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := writeRepo.Save(ctx, alice, "Books")
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, bob, "Gadgets")
	assert.NoError(t, err)

	categories, err := readRepo.ListVisible(ctx, alice)
	assert.NoError(t, err)
	assert.Len(t, categories, len(defaultCategoryNames)+1)

	// Defaults first, sorted by name, then the user's own.
	for i, name := range defaultCategoryNames {
		assert.Equal(t, name, categories[i].Name)
		assert.True(t, categories[i].IsDefault)
		assert.Nil(t, categories[i].UserID)
	}
	own := categories[len(defaultCategoryNames)]
	assert.Equal(t, "Books", own.Name)
	assert.False(t, own.IsDefault)
	assert.Equal(t, alice, *own.UserID)
}

func TestCategoryReadRepository_GetVisibleByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewCategoryReadRepository(db)
	writeRepo := NewCategoryWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	own, err := writeRepo.Save(ctx, alice, "Books")
	assert.NoError(t, err)

	var defaultID uuid.UUID
	err = db.Get(&defaultID, "SELECT category_id FROM categories WHERE is_default AND name='Food'")
	assert.NoError(t, err)

	t.Run("default is visible to everyone", func(t *testing.T) {
		category, err := readRepo.GetVisibleByID(ctx, bob, defaultID)
		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.True(t, category.IsDefault)
	})

	t.Run("own category is visible", func(t *testing.T) {
		category, err := readRepo.GetVisibleByID(ctx, alice, own.CategoryID)
		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, "Books", category.Name)
	})

	t.Run("another user's category is invisible", func(t *testing.T) {
		category, err := readRepo.GetVisibleByID(ctx, bob, own.CategoryID)
		assert.NoError(t, err)
		assert.Nil(t, category)
	})

	t.Run("unknown id", func(t *testing.T) {
		category, err := readRepo.GetVisibleByID(ctx, alice, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, category)
	})
}

func TestCategoryReadRepository_NameExists(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewCategoryReadRepository(db)
	writeRepo := NewCategoryWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	own, err := writeRepo.Save(ctx, alice, "Books")
	assert.NoError(t, err)

	t.Run("default name is free for the user", func(t *testing.T) {
		exists, err := readRepo.NameExists(ctx, alice, "fOOd", nil)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("own name is taken case-insensitively", func(t *testing.T) {
		exists, err := readRepo.NameExists(ctx, alice, "books", nil)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("another user's name is free", func(t *testing.T) {
		exists, err := readRepo.NameExists(ctx, bob, "Books", nil)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("exclude id frees the row being renamed", func(t *testing.T) {
		exists, err := readRepo.NameExists(ctx, alice, "Books", &own.CategoryID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestCategoryWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	readRepo := NewCategoryReadRepository(db)
	writeRepo := NewCategoryWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	t.Run("owned category may share a default name", func(t *testing.T) {
		own, err := writeRepo.Save(ctx, alice, "Food")
		assert.NoError(t, err)
		assert.NotNil(t, own)
		assert.False(t, own.IsDefault)

		// Both the seeded default and the owned row stay visible.
		categories, err := readRepo.ListVisible(ctx, alice)
		assert.NoError(t, err)

		foodRows := 0
		for _, c := range categories {
			if c.Name == "Food" {
				foodRows++
			}
		}
		assert.Equal(t, 2, foodRows)
	})

	t.Run("duplicate own name hits the unique index", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, alice, "Garden")
		assert.NoError(t, err)

		_, err = writeRepo.Save(ctx, alice, "gArDeN")
		assert.ErrorIs(t, err, ErrCategoryNameTaken)
	})
}

func TestCategoryWriteRepository_Update(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewCategoryWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	own, err := writeRepo.Save(ctx, alice, "Books")
	assert.NoError(t, err)

	var defaultID uuid.UUID
	err = db.Get(&defaultID, "SELECT category_id FROM categories WHERE is_default AND name='Food'")
	assert.NoError(t, err)

	t.Run("rename own category", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, alice, own.CategoryID, "Novels")
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, "Novels", updated.Name)
	})

	t.Run("defaults are not updatable", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, alice, defaultID, "Mine now")
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("another user's category is untouchable", func(t *testing.T) {
		updated, err := writeRepo.Update(ctx, bob, own.CategoryID, "Stolen")
		assert.NoError(t, err)
		assert.Nil(t, updated)

		var name string
		assert.NoError(t, db.Get(&name, "SELECT name FROM categories WHERE category_id=$1", own.CategoryID))
		assert.Equal(t, "Novels", name)
	})

	t.Run("rename onto another own name hits the unique index", func(t *testing.T) {
		other, err := writeRepo.Save(ctx, alice, "Cinema")
		assert.NoError(t, err)

		updated, err := writeRepo.Update(ctx, alice, other.CategoryID, "novels")
		assert.ErrorIs(t, err, ErrCategoryNameTaken)
		assert.Nil(t, updated)
	})
}

func TestCategoryWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	categoryRepo := NewCategoryWriteRepository(db, nil)
	expenseRepo := NewExpenseWriteRepository(db, nil)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("delete own category", func(t *testing.T) {
		own, err := categoryRepo.Save(ctx, alice, "Books")
		assert.NoError(t, err)

		deleted, err := categoryRepo.Delete(ctx, alice, own.CategoryID)
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("defaults are not deletable", func(t *testing.T) {
		var defaultID uuid.UUID
		assert.NoError(t, db.Get(&defaultID, "SELECT category_id FROM categories WHERE is_default AND name='Food'"))

		deleted, err := categoryRepo.Delete(ctx, alice, defaultID)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("another user's category is untouchable", func(t *testing.T) {
		own, err := categoryRepo.Save(ctx, alice, "Garden")
		assert.NoError(t, err)

		deleted, err := categoryRepo.Delete(ctx, bob, own.CategoryID)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("referenced category is rejected", func(t *testing.T) {
		own, err := categoryRepo.Save(ctx, alice, "Travel")
		assert.NoError(t, err)

		_, err = expenseRepo.Save(ctx, alice, own.CategoryID, 10, "flight", time.Now())
		assert.NoError(t, err)

		deleted, err := categoryRepo.Delete(ctx, alice, own.CategoryID)
		assert.ErrorIs(t, err, ErrCategoryReferenced)
		assert.False(t, deleted)
	})
}
