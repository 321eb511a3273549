package services

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"notable-notes/notable/database"
	"notable-notes/notable/models"

	"gorm.io/gorm"
)

const (
	tagCloudLimit     = 50
	trendingTagLimit  = 10
	trendingWindowDay = 30
)

type TagServiceInterface interface {
	ResolveTags(tx *gorm.DB, names []string) ([]models.Tag, error)
	GetTagCloud(db *database.Database, requester Requester) ([]models.TagCount, error)
	GetTrendingTags(db *database.Database, requester Requester) ([]models.TagCount, error)
}

type TagService struct{}

func NewTagService() TagServiceInterface {
	return &TagService{}
}

// NormalizeTagName strips leading '#' characters and surrounding
// whitespace. The empty string means the tag should be discarded.
func NormalizeTagName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "#")
	return strings.TrimSpace(name)
}

// Slugify lowercases a tag name and collapses non-alphanumeric runs to
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// ResolveTags normalizes the given names and finds or creates the
// matching tag rows. Names that are empty after normalization are
// dropped; duplicates are deduplicated case-insensitively.
func (s *TagService) ResolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	seen := make(map[string]bool)

	for _, raw := range names {
		name := NormalizeTagName(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		var tag models.Tag
		err := tx.Where("LOWER(name) = ?", key).First(&tag).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			tag = models.Tag{Name: name, Slug: Slugify(name)}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// GetTagCloud counts how many visible active notes carry each tag and
// returns the top entries, most used first, name as tiebreaker.
// Zero-count tags never appear because the join is inner.
func (s *TagService) GetTagCloud(db *database.Database, requester Requester) ([]models.TagCount, error) {
	return s.aggregateTags(db, requester, tagCloudLimit, nil)
}

// GetTrendingTags is the tag cloud restricted to notes created within the
// trending window.
func (s *TagService) GetTrendingTags(db *database.Database, requester Requester) ([]models.TagCount, error) {
	since := time.Now().AddDate(0, 0, -trendingWindowDay)
	return s.aggregateTags(db, requester, trendingTagLimit, &since)
}

func (s *TagService) aggregateTags(db *database.Database, requester Requester, limit int, since *time.Time) ([]models.TagCount, error) {
	query := db.DB.Model(&models.Tag{}).
		Select("tags.name AS name, tags.slug AS slug, COUNT(notes.id) AS count").
		Joins("JOIN note_tags ON note_tags.tag_id = tags.id").
		Joins("JOIN notes ON notes.id = note_tags.note_id").
		Scopes(VisibleNotes(requester, models.NoteActive)).
		Group("tags.id, tags.name, tags.slug").
		Order("count DESC, name ASC").
		Limit(limit)

	if since != nil {
		query = query.Where("notes.created_at >= ?", *since)
	}

	var counts []models.TagCount
	if err := query.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
