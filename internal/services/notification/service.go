package notification

import (
	"context"
	"time"

	"piclips/internal/models"

	log "github.com/sirupsen/logrus"
)

// Publisher sends a message on a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// TipEvent is the message published to the receiver of a tip.
type TipEvent struct {
	Type      string    `json:"type"`
	TipID     string    `json:"tipId"`
	VideoID   string    `json:"videoId"`
	SenderID  string    `json:"senderId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service publishes account notifications. Without a publisher it only logs.
type Service struct {
	publisher Publisher
}

// NewService creates a new notification service. publisher may be nil.
func NewService(publisher Publisher) *Service {
	return &Service{publisher: publisher}
}

// TipChannel is the channel a receiver subscribes to for incoming tips.
func TipChannel(receiverID string) string {
	return "tips:" + receiverID
}

// NotifyTip announces a committed tip to its receiver.
func (s *Service) NotifyTip(ctx context.Context, tip *models.Tip) error {
	event := TipEvent{
		Type:      "tip.received",
		TipID:     tip.ID,
		VideoID:   tip.VideoID,
		SenderID:  tip.SenderID,
		Amount:    tip.Amount,
		CreatedAt: tip.CreatedAt,
	}

	if s.publisher == nil {
		log.WithFields(log.Fields{
			"receiver": tip.ReceiverID,
			"tip_id":   tip.ID,
			"amount":   tip.Amount,
		}).Debug("Tip notification (no publisher configured)")
		return nil
	}
	return s.publisher.Publish(ctx, TipChannel(tip.ReceiverID), event)
}
