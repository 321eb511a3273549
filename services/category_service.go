package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"notable-notes/notable/database"
	"notable-notes/notable/models"

	"gorm.io/gorm"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const defaultCategoryColor = "#808080"

type CategoryServiceInterface interface {
	GetCategories(db *database.Database, requester Requester) ([]models.Category, error)
	CreateCategory(db *database.Database, requester Requester, categoryData map[string]interface{}) (models.Category, error)
	UpdateCategory(db *database.Database, requester Requester, id string, updatedData map[string]interface{}) (models.Category, error)
	DeleteCategory(db *database.Database, requester Requester, id string) error
}

type CategoryService struct{}

func NewCategoryService() CategoryServiceInterface {
	return &CategoryService{}
}

func (s *CategoryService) GetCategories(db *database.Database, requester Requester) ([]models.Category, error) {
	var categories []models.Category
	err := db.DB.Where("user_id = ?", requester.ID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(db *database.Database, requester Requester, categoryData map[string]interface{}) (models.Category, error) {
	name, err := categoryName(categoryData)
	if err != nil {
		return models.Category{}, err
	}

	color := defaultCategoryColor
	if c, ok := categoryData["color"].(string); ok && c != "" {
		if !hexColorPattern.MatchString(c) {
			return models.Category{}, fmt.Errorf("%w: color must be a hex code like #1a2b3c", ErrValidation)
		}
		color = c
	}

	if err := s.checkNameFree(db.DB, requester, name, ""); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		UserID: requester.ID,
		Name:   name,
		Color:  color,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		// The composite unique index closes the race between the check
		// above and this write.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrResourceExists
		}
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(db *database.Database, requester Requester, id string, updatedData map[string]interface{}) (models.Category, error) {
	category, err := s.ownedCategory(db.DB, requester, id)
	if err != nil {
		return models.Category{}, err
	}

	updates := map[string]interface{}{}

	if rawName, present := updatedData["name"]; present {
		name, ok := rawName.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return models.Category{}, fmt.Errorf("%w: name is required", ErrValidation)
		}
		if err := s.checkNameFree(db.DB, requester, name, id); err != nil {
			return models.Category{}, err
		}
		updates["name"] = name
		category.Name = name
	}

	if color, ok := updatedData["color"].(string); ok {
		if !hexColorPattern.MatchString(color) {
			return models.Category{}, fmt.Errorf("%w: color must be a hex code like #1a2b3c", ErrValidation)
		}
		updates["color"] = color
		category.Color = color
	}

	if len(updates) == 0 {
		return category, nil
	}

	if err := db.DB.Model(&category).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrResourceExists
		}
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category and detaches it from its notes.
// Notes are never deleted with their category.
func (s *CategoryService) DeleteCategory(db *database.Database, requester Requester, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	category, err := s.ownedCategory(tx, requester, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	err = tx.Model(&models.Note{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ownedCategory loads a category owned by the requester. Other users'
// categories are reported as not found, never as forbidden.
func (s *CategoryService) ownedCategory(tx *gorm.DB, requester Requester, id string) (models.Category, error) {
	var category models.Category
	err := tx.Where("id = ? AND user_id = ?", id, requester.ID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) checkNameFree(tx *gorm.DB, requester Requester, name, excludeID string) error {
	query := tx.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", requester.ID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrResourceExists
	}
	return nil
}

func categoryName(categoryData map[string]interface{}) (string, error) {
	name, ok := categoryData["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(name) > 100 {
		return "", fmt.Errorf("%w: name exceeds 100 characters", ErrValidation)
	}
	return name, nil
}
