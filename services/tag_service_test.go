package services

import (
	"testing"
	"time"

	"notable-notes/notable/models"
	"notable-notes/notable/testutils"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	cases := map[string]string{
		"  ##Work  ":  "Work",
		"#go":         "go",
		"###":         "",
		"":            "",
		"   ":         "",
		"# spaced  #": "spaced  #",
		"plain":       "plain",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeTagName(input), "input %q", input)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello World"))
	assert.Equal(t, "go-123", Slugify("  Go! 123 "))
	assert.Equal(t, "a-b", Slugify("a---b"))
}

func TestResolveTags(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	svc := NewTagService()

	tags, err := svc.ResolveTags(db.DB, []string{"  ##Work  ", "###", "", "work", "Ideas"})
	assert.NoError(t, err)

	// "work" deduplicates against "Work" case-insensitively.
	assert.Len(t, tags, 2)
	assert.Equal(t, "Work", tags[0].Name)
	assert.Equal(t, "work", tags[0].Slug)
	assert.Equal(t, "Ideas", tags[1].Name)

	// Resolving again reuses the existing rows.
	again, err := svc.ResolveTags(db.DB, []string{"WORK"})
	assert.NoError(t, err)
	assert.Len(t, again, 1)
	assert.Equal(t, tags[0].ID, again[0].ID)

	var count int64
	assert.NoError(t, db.DB.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetTagCloud(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	owner := testutils.CreateTestUser(db, "owner@example.com", false)
	other := testutils.CreateTestUser(db, "other@example.com", false)
	noteService := newTestNoteService()
	tagService := NewTagService()
	r := requesterFor(owner)

	createNote(t, db, noteService, r, map[string]interface{}{
		"title": "One", "tags": []interface{}{"go", "notes"},
	})
	createNote(t, db, noteService, r, map[string]interface{}{
		"title": "Two", "tags": []interface{}{"go"},
	})
	// Invisible to the owner, must not count.
	createNote(t, db, noteService, requesterFor(other), map[string]interface{}{
		"title": "Secret", "tags": []interface{}{"go", "hidden"},
	})
	// A tag with no remaining note references stays out of the cloud.
	doomed := createNote(t, db, noteService, r, map[string]interface{}{
		"title": "Doomed", "tags": []interface{}{"orphan"},
	})
	assert.NoError(t, noteService.SoftDeleteNote(db, r, doomed.ID.String()))

	cloud, err := tagService.GetTagCloud(db, r)
	assert.NoError(t, err)

	assert.Len(t, cloud, 2)
	assert.Equal(t, "go", cloud[0].Name)
	assert.Equal(t, int64(2), cloud[0].Count)
	assert.Equal(t, "notes", cloud[1].Name)
	assert.Equal(t, int64(1), cloud[1].Count)

	// Staff aggregate over every note.
	staff := testutils.CreateTestUser(db, "staff@example.com", true)
	cloud, err = tagService.GetTagCloud(db, requesterFor(staff))
	assert.NoError(t, err)
	assert.Len(t, cloud, 3)
	assert.Equal(t, int64(3), cloud[0].Count)
}

func TestGetTrendingTags(t *testing.T) {
	db, close := testutils.SetupTestDB()
	defer close()

	owner := testutils.CreateTestUser(db, "owner@example.com", false)
	noteService := newTestNoteService()
	tagService := NewTagService()
	r := requesterFor(owner)

	fresh := createNote(t, db, noteService, r, map[string]interface{}{
		"title": "Fresh", "tags": []interface{}{"new"},
	})
	stale := createNote(t, db, noteService, r, map[string]interface{}{
		"title": "Stale", "tags": []interface{}{"old"},
	})

	// Age the second note past the trending window.
	err := db.DB.Model(&models.Note{}).Where("id = ?", stale.ID).
		Update("created_at", time.Now().AddDate(0, 0, -45)).Error
	assert.NoError(t, err)

	trending, err := tagService.GetTrendingTags(db, r)
	assert.NoError(t, err)

	assert.Len(t, trending, 1)
	assert.Equal(t, "new", trending[0].Name)
	_ = fresh
}
