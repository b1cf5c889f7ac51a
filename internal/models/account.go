package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a user's identity plus their token balance.
type Account struct {
	ID                  string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username            string    `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName         string    `json:"displayName"`
	Avatar              string    `json:"avatar"`
	PasswordHash        string    `gorm:"not null" json:"-"`
	Role                string    `gorm:"not null;default:'user'" json:"role"`
	TokenBalance        int64     `gorm:"not null;default:0;check:token_balance >= 0" json:"tokenBalance"`
	UploadedVideosCount int64     `gorm:"not null;default:0" json:"uploadedVideosCount"`
	TokenVersion        int       `gorm:"not null;default:1" json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	if a.TokenVersion == 0 {
		a.TokenVersion = 1
	}
	return nil
}

// Profile is the public display identity of an account. It reads from the
// accounts table and is what tips, comments and videos resolve their
// account references to.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

func (Profile) TableName() string {
	return "accounts"
}

// Profile returns the display identity of the account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Avatar:      a.Avatar,
	}
}
