package community

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Topic struct {
	ID          string
	Name        string
	Description string
	Cover       string
	PostCount   int
	Sort        int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TopicInput struct {
	Name        string
	Description string
	Cover       string
	Sort        int
	IsActive    bool
}

func NewTopic(in TopicInput) (*Topic, error) {
	t := &Topic{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := t.Update(in); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Topic) Update(in TopicInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("topic", "name", "name is required")
	}
	t.Name = name
	t.Description = in.Description
	t.Cover = in.Cover
	t.Sort = in.Sort
	t.IsActive = in.IsActive
	t.UpdatedAt = time.Now()
	return nil
}
