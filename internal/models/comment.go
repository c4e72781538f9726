package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemComment is a message left on a lost or found item notice.
// ItemType carries the kind tag (ItemKindLost / ItemKindFound).
type ItemComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"itemId"`
	ItemType  string    `gorm:"size:10;not null;index" json:"itemType"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username   string `gorm:"-" json:"username,omitempty"`
	UserAvatar string `gorm:"-" json:"userAvatar,omitempty"`
}

func (c *ItemComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PostComment is a reply on a forum post.
type PostComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username   string `gorm:"-" json:"username,omitempty"`
	UserAvatar string `gorm:"-" json:"userAvatar,omitempty"`
}

func (c *PostComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
