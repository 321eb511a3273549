package services

import (
	"testing"

	"notable-notes/notable/models"
	"notable-notes/notable/testutils"

	"github.com/stretchr/testify/assert"
)

func TestCreateCategory(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	owner := testutils.CreateTestUser(db, "owner@example.com", false)
	svc := NewCategoryService()
	r := requesterFor(owner)

	category, err := svc.CreateCategory(db, r, map[string]interface{}{"name": "Work"})
	assert.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, "#808080", category.Color)

	_, err = svc.CreateCategory(db, r, map[string]interface{}{"name": ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCategory(db, r, map[string]interface{}{"name": "Bad color", "color": "red"})
	assert.ErrorIs(t, err, ErrValidation)

	// Same name, same owner: rejected.
	_, err = svc.CreateCategory(db, r, map[string]interface{}{"name": "Work"})
	assert.ErrorIs(t, err, ErrResourceExists)

	// Same name, different owner: fine.
	other := testutils.CreateTestUser(db, "other@example.com", false)
	_, err = svc.CreateCategory(db, requesterFor(other), map[string]interface{}{"name": "Work"})
	assert.NoError(t, err)
}

func TestUpdateCategory(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	owner := testutils.CreateTestUser(db, "owner@example.com", false)
	svc := NewCategoryService()
	r := requesterFor(owner)

	category, err := svc.CreateCategory(db, r, map[string]interface{}{"name": "Work"})
	assert.NoError(t, err)
	taken, err := svc.CreateCategory(db, r, map[string]interface{}{"name": "Home"})
	assert.NoError(t, err)

	updated, err := svc.UpdateCategory(db, r, category.ID.String(), map[string]interface{}{
		"name": "Projects", "color": "#336699",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Projects", updated.Name)
	assert.Equal(t, "#336699", updated.Color)

	_, err = svc.UpdateCategory(db, r, category.ID.String(), map[string]interface{}{"name": taken.Name})
	assert.ErrorIs(t, err, ErrResourceExists)

	// Other users' categories read as missing.
	stranger := testutils.CreateTestUser(db, "stranger@example.com", false)
	_, err = svc.UpdateCategory(db, requesterFor(stranger), category.ID.String(), map[string]interface{}{"name": "Mine now"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategory_DetachesNotes(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	owner := testutils.CreateTestUser(db, "owner@example.com", false)
	categoryService := NewCategoryService()
	noteService := newTestNoteService()
	r := requesterFor(owner)

	category, err := categoryService.CreateCategory(db, r, map[string]interface{}{"name": "Work"})
	assert.NoError(t, err)

	note := createNote(t, db, noteService, r, map[string]interface{}{
		"title":       "Categorized",
		"category_id": category.ID.String(),
	})
	assert.NotNil(t, note.CategoryID)

	assert.NoError(t, categoryService.DeleteCategory(db, r, category.ID.String()))

	// The note survives without its category.
	var stored models.Note
	assert.NoError(t, db.DB.First(&stored, "id = ?", note.ID).Error)
	assert.Nil(t, stored.CategoryID)

	var count int64
	assert.NoError(t, db.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
