package services

import (
	"notable-notes/notable/models"

	"gorm.io/gorm"
)

// VisibleNotes scopes a query to the notes the requester may read in the
// given lifecycle state: staff see every note, regular users see their
// own notes plus public ones. Every read path (listing, related notes,
// tag aggregation) composes this same scope.
func VisibleNotes(r Requester, state models.NoteState) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("notes.state = ?", state)
		if r.Staff {
			return db
		}
		return db.Where("notes.user_id = ? OR notes.visibility = ?", r.ID, models.VisibilityPublic)
	}
}

// OwnedNotes scopes a query to the requester's own notes in the given
// lifecycle state, regardless of visibility. Trash views use this: staff
// do not browse other users' trash.
func OwnedNotes(r Requester, state models.NoteState) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.user_id = ? AND notes.state = ?", r.ID, state)
	}
}

// SharedNote scopes a query to the single note reachable through a public
// share link. It bypasses requester identity entirely: the token plus
// public visibility plus active state is the whole predicate.
func SharedNote(shareToken string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.share_token = ? AND notes.visibility = ? AND notes.state = ?",
			shareToken, models.VisibilityPublic, models.NoteActive)
	}
}
