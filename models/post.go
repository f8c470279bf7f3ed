package models

import (
	"time"

	"gorm.io/datatypes"
)

// Known post types accepted by the factory registry.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

// Post is an entry authored by a user. Metadata carries type-specific
// fields (image url, video duration) as an open key-value mapping.
type Post struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	Title     string            `gorm:"size:255" json:"title"`
	PostType  string            `gorm:"size:32;not null;default:'text'" json:"post_type"`
	Content   string            `gorm:"type:text" json:"content"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	User      User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}
