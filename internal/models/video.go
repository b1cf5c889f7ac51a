package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video privacy values
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// DefaultThumbnail is used when an upload does not come with a thumbnail.
const DefaultThumbnail = "/placeholder.svg"

type Video struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID      string    `gorm:"type:varchar(36);index;not null" json:"ownerId"`
	Owner        *Profile  `gorm:"foreignKey:OwnerID;-:migration" json:"user,omitempty"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	URL          string    `gorm:"not null" json:"url"`
	StorageKey   string    `json:"-"`
	Thumbnail    string    `json:"thumbnail"`
	Privacy      string    `gorm:"index;not null;default:'public'" json:"privacy"`
	LikeCount    int64     `gorm:"not null;default:0" json:"likeCount"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Privacy == "" {
		v.Privacy = PrivacyPublic
	}
	if v.Thumbnail == "" {
		v.Thumbnail = DefaultThumbnail
	}
	return nil
}

// VideoLike records that an account likes a video. The set of rows for a
// video is its liker set; the set of rows for an account is its liked list.
type VideoLike struct {
	VideoID   string    `gorm:"type:varchar(36);primaryKey"`
	AccountID string    `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt time.Time
}

// LikeResult is the state after a like toggle.
type LikeResult struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}
