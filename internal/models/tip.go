package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tip is an immutable ledger record of tokens moved from a sender to the
// owner of a video. Tips are never updated or deleted.
type Tip struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID       string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_tips_sender_idempotency" json:"senderId"`
	Sender         *Profile  `gorm:"foreignKey:SenderID;-:migration" json:"sender,omitempty"`
	ReceiverID     string    `gorm:"type:varchar(36);index;not null" json:"receiverId"`
	Receiver       *Profile  `gorm:"foreignKey:ReceiverID;-:migration" json:"receiver,omitempty"`
	VideoID        string    `gorm:"type:varchar(36);index;not null" json:"videoId"`
	Amount         int64     `gorm:"not null;check:amount > 0" json:"amount"`
	IdempotencyKey *string   `gorm:"uniqueIndex:idx_tips_sender_idempotency" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (t *Tip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TipSummary aggregates the tips received through one video.
type TipSummary struct {
	TotalAmount   int64 `json:"totalAmount"`
	TipCount      int64 `json:"tipCount"`
	UniqueSenders int64 `json:"uniqueSenders"`
}
