package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteState is the lifecycle state of a note. Trashed notes are only
// reachable through the trash endpoints until restored or hard-deleted.
type NoteState string

const (
	NoteActive  NoteState = "active"
	NoteTrashed NoteState = "trashed"
)

// Visibility controls who may read a note besides its owner.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// MaxTitleLength matches the store-level column limit on note titles.
const MaxTitleLength = 200

type Note struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Content    string     `json:"content"`
	Tags       []Tag      `gorm:"many2many:note_tags" json:"tags"`
	Visibility Visibility `gorm:"type:varchar(10);not null;default:'private'" json:"visibility"`
	State      NoteState  `gorm:"type:varchar(10);not null;default:'active';index" json:"state"`
	IsPinned   bool       `gorm:"default:false" json:"is_pinned"`
	ShareToken *string    `gorm:"uniqueIndex" json:"share_token,omitempty"`
	SortOrder  int        `gorm:"default:0" json:"order"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
