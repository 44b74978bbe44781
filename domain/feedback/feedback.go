// Package feedback collects user feedback answered by admins.
package feedback

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBug        Type = "bug"
	TypeSuggestion Type = "suggestion"
	TypeComplaint  Type = "complaint"
	TypeOther      Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeBug, TypeSuggestion, TypeComplaint, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusResolved   Status = "resolved"
)

var transitions = shared.Transitions[Status]{
	StatusPending:    {StatusProcessing, StatusResolved},
	StatusProcessing: {StatusResolved},
}

type Feedback struct {
	ID        string
	UserID    string
	Type      Type
	Content   string
	Images    []string
	Contact   string
	Status    Status
	Reply     string
	RepliedBy string
	RepliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Input struct {
	Type    Type
	Content string
	Images  []string
	Contact string
}

func New(userID string, in Input) (*Feedback, error) {
	if !in.Type.IsValid() {
		return nil, shared.NewValidationError("feedback", "type", "type must be bug, suggestion, complaint or other")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, shared.NewValidationError("feedback", "content", "content is required")
	}
	if len(in.Images) > 9 {
		return nil, shared.NewValidationError("feedback", "images", "at most 9 images")
	}
	now := time.Now()
	return &Feedback{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      in.Type,
		Content:   content,
		Images:    append([]string(nil), in.Images...),
		Contact:   in.Contact,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Process marks the feedback as being worked on.
func (f *Feedback) Process() error {
	if !transitions.Allows(f.Status, StatusProcessing) {
		return shared.NewStateError("feedback", "feedback is "+string(f.Status))
	}
	f.Status = StatusProcessing
	f.UpdatedAt = time.Now()
	return nil
}

// Answer stores the admin reply and resolves the feedback.
func (f *Feedback) Answer(adminID, reply string) error {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return shared.NewValidationError("feedback", "reply", "reply is required")
	}
	if !transitions.Allows(f.Status, StatusResolved) {
		return shared.NewStateError("feedback", "feedback is already resolved")
	}
	now := time.Now()
	f.Status = StatusResolved
	f.Reply = reply
	f.RepliedBy = adminID
	f.RepliedAt = &now
	f.UpdatedAt = now
	return nil
}

func (f *Feedback) OwnedBy(userID string) error {
	if f.UserID != userID {
		return shared.NewNotFoundError("feedback")
	}
	return nil
}
