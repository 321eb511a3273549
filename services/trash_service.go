package services

import (
	"errors"

	"notable-notes/notable/database"
	"notable-notes/notable/models"

	"gorm.io/gorm"
)

// The trash is strictly personal: every operation here is scoped to the
// requester's own notes, staff included.
type TrashServiceInterface interface {
	GetTrashedNotes(db *database.Database, requester Requester) ([]models.Note, error)
	RestoreNote(db *database.Database, requester Requester, id string) error
	RestoreAll(db *database.Database, requester Requester) (int, error)
	HardDeleteNote(db *database.Database, requester Requester, id string) error
	EmptyTrash(db *database.Database, requester Requester) (int, error)
}

type TrashService struct{}

func NewTrashService() TrashServiceInterface {
	return &TrashService{}
}

func (s *TrashService) GetTrashedNotes(db *database.Database, requester Requester) ([]models.Note, error) {
	var notes []models.Note
	err := db.DB.Preload("Tags").Preload("Category").
		Scopes(OwnedNotes(requester, models.NoteTrashed)).
		Order("notes.updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// RestoreNote moves a note back to the active state. Restoring a note
// that was never trashed is a no-op rather than an error.
func (s *TrashService) RestoreNote(db *database.Database, requester Requester, id string) error {
	result := db.DB.Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, requester.ID).
		Update("state", models.NoteActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RestoreAll moves every trashed note of the requester back to the
// active state and returns how many were restored.
func (s *TrashService) RestoreAll(db *database.Database, requester Requester) (int, error) {
	result := db.DB.Model(&models.Note{}).
		Where("user_id = ? AND state = ?", requester.ID, models.NoteTrashed).
		Update("state", models.NoteActive)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// HardDeleteNote permanently removes a trashed note and its tag
// associations. Notes outside the trash, or owned by someone else, are
// reported as not found.
func (s *TrashService) HardDeleteNote(db *database.Database, requester Requester, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var note models.Note
	err := tx.Where("id = ? AND user_id = ? AND state = ?", id, requester.ID, models.NoteTrashed).
		First(&note).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", note.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// EmptyTrash permanently removes all of the requester's trashed notes and
// returns the count deleted.
func (s *TrashService) EmptyTrash(db *database.Database, requester Requester) (int, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	var noteIDs []string
	err := tx.Model(&models.Note{}).
		Where("user_id = ? AND state = ?", requester.ID, models.NoteTrashed).
		Pluck("id", &noteIDs).Error
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if len(noteIDs) == 0 {
		tx.Rollback()
		return 0, nil
	}

	if err := tx.Exec("DELETE FROM note_tags WHERE note_id IN ?", noteIDs).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	result := tx.Where("id IN ?", noteIDs).Delete(&models.Note{})
	if result.Error != nil {
		tx.Rollback()
		return 0, result.Error
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	return int(result.RowsAffected), nil
}
