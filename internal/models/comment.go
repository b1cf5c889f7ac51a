package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	VideoID   string    `gorm:"type:varchar(36);index;not null" json:"videoId"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null" json:"authorId"`
	Author    *Profile  `gorm:"foreignKey:AuthorID;-:migration" json:"user,omitempty"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
