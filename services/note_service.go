package services

import (
	"errors"
	"fmt"
	"strings"

	"notable-notes/notable/database"
	"notable-notes/notable/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const relatedNotesLimit = 10

type NoteServiceInterface interface {
	CreateNote(db *database.Database, requester Requester, noteData map[string]interface{}) (models.Note, error)
	GetNoteById(db *database.Database, requester Requester, id string) (models.Note, error)
	GetNotes(db *database.Database, requester Requester, params map[string]interface{}) ([]models.Note, error)
	UpdateNote(db *database.Database, requester Requester, id string, updatedData map[string]interface{}) (models.Note, error)
	SoftDeleteNote(db *database.Database, requester Requester, id string) error
	TogglePin(db *database.Database, requester Requester, id string) (models.Note, error)
	ToggleShare(db *database.Database, requester Requester, id string) (models.Note, error)
	UpdateOrder(db *database.Database, requester Requester, noteIDs []uuid.UUID) (int, error)
	GetRelatedNotes(db *database.Database, requester Requester, id string) ([]models.Note, error)
	GetSharedNote(db *database.Database, shareToken string) (models.Note, error)
}

type NoteService struct {
	tagService TagServiceInterface
}

func NewNoteService(tagService TagServiceInterface) NoteServiceInterface {
	return &NoteService{tagService: tagService}
}

func (s *NoteService) CreateNote(db *database.Database, requester Requester, noteData map[string]interface{}) (models.Note, error) {
	title, ok := noteData["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return models.Note{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > models.MaxTitleLength {
		return models.Note{}, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, models.MaxTitleLength)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	note := models.Note{
		UserID:     requester.ID,
		Title:      title,
		Visibility: models.VisibilityPrivate,
		State:      models.NoteActive,
	}

	if content, ok := noteData["content"].(string); ok {
		note.Content = content
	}

	if visibility, ok := noteData["visibility"].(string); ok {
		parsed, err := parseVisibility(visibility)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		note.Visibility = parsed
	}

	if categoryIDStr, ok := noteData["category_id"].(string); ok && categoryIDStr != "" {
		categoryID, err := s.ownedCategoryID(tx, requester, categoryIDStr)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		note.CategoryID = &categoryID
	}

	tags, err := s.resolveTagData(tx, noteData["tags"])
	if err != nil {
		tx.Rollback()
		return models.Note{}, err
	}
	note.Tags = tags

	if err := tx.Create(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

func (s *NoteService) GetNoteById(db *database.Database, requester Requester, id string) (models.Note, error) {
	var note models.Note
	err := db.DB.Preload("Tags").Preload("Category").
		Scopes(VisibleNotes(requester, models.NoteActive)).
		First(&note, "notes.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	return note, nil
}

func (s *NoteService) GetNotes(db *database.Database, requester Requester, params map[string]interface{}) ([]models.Note, error) {
	query := db.DB.Model(&models.Note{}).
		Preload("Tags").Preload("Category").
		Scopes(VisibleNotes(requester, models.NoteActive))

	distinct := false

	if search, ok := params["search"].(string); ok && search != "" {
		like := "%" + search + "%"
		query = query.
			Joins("JOIN users search_users ON search_users.id = notes.user_id").
			Joins("LEFT JOIN note_tags search_nt ON search_nt.note_id = notes.id").
			Joins("LEFT JOIN tags search_tags ON search_tags.id = search_nt.tag_id").
			Where("notes.title LIKE ? OR notes.content LIKE ? OR search_users.display_name LIKE ? OR search_tags.name LIKE ?",
				like, like, like, like)
		distinct = true
	}

	if tagNames, ok := params["tags"].([]string); ok && len(tagNames) > 0 {
		query = query.
			Joins("JOIN note_tags filter_nt ON filter_nt.note_id = notes.id").
			Joins("JOIN tags filter_tags ON filter_tags.id = filter_nt.tag_id").
			Where("filter_tags.name IN ?", tagNames)
		distinct = true
	}

	if categoryID, ok := params["category_id"].(string); ok && categoryID != "" {
		query = query.Where("notes.category_id = ?", categoryID)
	}

	if visibility, ok := params["visibility"].(string); ok && visibility != "" {
		parsed, err := parseVisibility(visibility)
		if err != nil {
			return nil, err
		}
		query = query.Where("notes.visibility = ?", parsed)
	}

	if distinct {
		query = query.Select("DISTINCT notes.*")
	}

	var notes []models.Note
	err := query.
		Order("notes.is_pinned DESC, notes.sort_order ASC, notes.created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *NoteService) UpdateNote(db *database.Database, requester Requester, id string, updatedData map[string]interface{}) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	note, err := s.mutableNote(tx, requester, id, CanModify)
	if err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	updates := map[string]interface{}{}

	if title, ok := updatedData["title"].(string); ok {
		if strings.TrimSpace(title) == "" {
			tx.Rollback()
			return models.Note{}, fmt.Errorf("%w: title is required", ErrValidation)
		}
		if len(title) > models.MaxTitleLength {
			tx.Rollback()
			return models.Note{}, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, models.MaxTitleLength)
		}
		updates["title"] = title
	}

	if content, ok := updatedData["content"].(string); ok {
		updates["content"] = content
	}

	if visibility, ok := updatedData["visibility"].(string); ok {
		parsed, err := parseVisibility(visibility)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		updates["visibility"] = parsed
	}

	if rawCategory, present := updatedData["category_id"]; present {
		switch categoryID := rawCategory.(type) {
		case nil:
			updates["category_id"] = nil
		case string:
			if categoryID == "" {
				updates["category_id"] = nil
			} else {
				owned, err := s.ownedCategoryID(tx, requester, categoryID)
				if err != nil {
					tx.Rollback()
					return models.Note{}, err
				}
				updates["category_id"] = owned
			}
		default:
			tx.Rollback()
			return models.Note{}, fmt.Errorf("%w: category_id must be a string or null", ErrValidation)
		}
	}

	if len(updates) > 0 {
		if err := tx.Model(&note).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
	}

	if rawTags, present := updatedData["tags"]; present {
		tags, err := s.resolveTagData(tx, rawTags)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		if len(tags) == 0 {
			if err := tx.Model(&note).Association("Tags").Clear(); err != nil {
				tx.Rollback()
				return models.Note{}, err
			}
		} else if err := tx.Model(&note).Association("Tags").Replace(tags); err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		note.Tags = tags
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

// SoftDeleteNote moves a note to the trash. Deleting an already-trashed
// note is a no-op, so the operation is safe to retry.
func (s *NoteService) SoftDeleteNote(db *database.Database, requester Requester, id string) error {
	note, err := s.mutableNote(db.DB, requester, id, CanModify)
	if err != nil {
		return err
	}

	if note.State == models.NoteTrashed {
		return nil
	}

	return db.DB.Model(&note).Update("state", models.NoteTrashed).Error
}

// TogglePin flips the pinned flag. Pinning is a personal-organization
// feature, so staff privilege does not override the owner check.
func (s *NoteService) TogglePin(db *database.Database, requester Requester, id string) (models.Note, error) {
	note, err := s.mutableNote(db.DB, requester, id, IsOwner)
	if err != nil {
		return models.Note{}, err
	}

	note.IsPinned = !note.IsPinned
	if err := db.DB.Model(&note).Update("is_pinned", note.IsPinned).Error; err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// ToggleShare flips the note between private and public. The share token
// is generated once, on the first transition to public, and never
// regenerated: toggling back to private leaves it in place so re-sharing
// restores the same link.
func (s *NoteService) ToggleShare(db *database.Database, requester Requester, id string) (models.Note, error) {
	note, err := s.mutableNote(db.DB, requester, id, CanModify)
	if err != nil {
		return models.Note{}, err
	}

	updates := map[string]interface{}{}
	if note.Visibility == models.VisibilityPublic {
		note.Visibility = models.VisibilityPrivate
	} else {
		note.Visibility = models.VisibilityPublic
		if note.ShareToken == nil {
			token := uuid.NewString()
			note.ShareToken = &token
			updates["share_token"] = token
		}
	}
	updates["visibility"] = note.Visibility

	if err := db.DB.Model(&note).Updates(updates).Error; err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// UpdateOrder assigns each note's position from its index in the given
// list. The batch runs in a single transaction; ids not owned by the
// requester are skipped without failing the rest. Returns the number of
// notes actually reordered.
func (s *NoteService) UpdateOrder(db *database.Database, requester Requester, noteIDs []uuid.UUID) (int, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	updated := 0
	for position, noteID := range noteIDs {
		result := tx.Model(&models.Note{}).
			Where("id = ? AND user_id = ?", noteID, requester.ID).
			Update("sort_order", position)
		if result.Error != nil {
			tx.Rollback()
			return 0, result.Error
		}
		updated += int(result.RowsAffected)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	return updated, nil
}

// GetRelatedNotes returns up to ten other visible active notes sharing at
// least one tag with the given note, most recent first.
func (s *NoteService) GetRelatedNotes(db *database.Database, requester Requester, id string) ([]models.Note, error) {
	note, err := s.GetNoteById(db, requester, id)
	if err != nil {
		return nil, err
	}

	if len(note.Tags) == 0 {
		return []models.Note{}, nil
	}

	tagIDs := make([]uuid.UUID, 0, len(note.Tags))
	for _, tag := range note.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	var related []models.Note
	err = db.DB.Model(&models.Note{}).
		Select("DISTINCT notes.*").
		Preload("Tags").
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Where("note_tags.tag_id IN ?", tagIDs).
		Where("notes.id <> ?", note.ID).
		Scopes(VisibleNotes(requester, models.NoteActive)).
		Order("notes.created_at DESC").
		Limit(relatedNotesLimit).
		Find(&related).Error
	if err != nil {
		return nil, err
	}
	return related, nil
}

// GetSharedNote resolves a public share link. Identity plays no part
// here: the token, public visibility and active state are the whole
// predicate.
func (s *NoteService) GetSharedNote(db *database.Database, shareToken string) (models.Note, error) {
	var note models.Note
	err := db.DB.Preload("Tags").Preload("Category").
		Scopes(SharedNote(shareToken)).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	return note, nil
}

// mutableNote loads a note and applies the given authorization rule.
// Notes the requester may not even read surface as not-found so private
// objects never leak their existence through a 403.
func (s *NoteService) mutableNote(tx *gorm.DB, requester Requester, id string, allowed func(Requester, uuid.UUID) bool) (models.Note, error) {
	var note models.Note
	if err := tx.First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	if allowed(requester, note.UserID) {
		return note, nil
	}

	if note.Visibility == models.VisibilityPublic || requester.Staff {
		return models.Note{}, ErrPermissionDenied
	}
	return models.Note{}, ErrNoteNotFound
}

func (s *NoteService) ownedCategoryID(tx *gorm.DB, requester Requester, categoryIDStr string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid category id", ErrValidation)
	}

	var count int64
	if err := tx.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, requester.ID).
		Count(&count).Error; err != nil {
		return uuid.Nil, err
	}
	if count == 0 {
		return uuid.Nil, fmt.Errorf("%w: category does not belong to you", ErrValidation)
	}
	return categoryID, nil
}

func (s *NoteService) resolveTagData(tx *gorm.DB, rawTags interface{}) ([]models.Tag, error) {
	if rawTags == nil {
		return nil, nil
	}

	items, ok := rawTags.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: tags must be a list of strings", ErrValidation)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: tags must be a list of strings", ErrValidation)
		}
		names = append(names, name)
	}

	return s.tagService.ResolveTags(tx, names)
}

func parseVisibility(value string) (models.Visibility, error) {
	switch models.Visibility(value) {
	case models.VisibilityPrivate:
		return models.VisibilityPrivate, nil
	case models.VisibilityPublic:
		return models.VisibilityPublic, nil
	default:
		return "", fmt.Errorf("%w: visibility must be private or public", ErrValidation)
	}
}
