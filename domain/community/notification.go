package community

import (
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationSystem  NotificationType = "system"
	NotificationOrder   NotificationType = "order"
)

type Notification struct {
	ID          string
	RecipientID string
	ActorID     string
	Type        NotificationType
	TargetType  string
	TargetID    string
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}

func NewNotification(recipientID, actorID string, typ NotificationType, targetType, targetID, content string) *Notification {
	return &Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		ActorID:     actorID,
		Type:        typ,
		TargetType:  targetType,
		TargetID:    targetID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
}

func (n *Notification) OwnedBy(userID string) error {
	if n.RecipientID != userID {
		return shared.NewNotFoundError("notification")
	}
	return nil
}
