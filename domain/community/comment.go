package community

import (
	"strings"
	"time"
	"unicode/utf8"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Comment struct {
	shared.EventRecorder

	ID        string
	PostID    string
	AuthorID  string
	ParentID  string
	Content   string
	LikeCount int
	CreatedAt time.Time
}

// NewComment comments on an approved post; parent must belong to the same post.
func NewComment(post *Post, authorID, content string, parent *Comment) (*Comment, error) {
	if err := post.RequireApproved(); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > 1000 {
		return nil, shared.NewValidationError("comment", "content", "content must be 1-1000 characters")
	}
	c := &Comment{
		ID:        uuid.New().String(),
		PostID:    post.ID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	event := &PostCommentedEvent{
		EventBase:    shared.NewEventBase(post.ID),
		PostID:       post.ID,
		CommentID:    c.ID,
		PostAuthorID: post.AuthorID,
		ActorID:      authorID,
		Excerpt:      excerpt(content, 50),
	}
	if parent != nil {
		if parent.PostID != post.ID {
			return nil, shared.NewValidationError("comment", "parent_id", "parent comment belongs to another post")
		}
		c.ParentID = parent.ID
		event.ParentAuthorID = parent.AuthorID
	}
	c.Record(event)
	return c, nil
}

func (c *Comment) OwnedBy(userID string) error {
	if c.AuthorID != userID {
		return shared.NewForbiddenError("comment", "only the author can delete this comment")
	}
	return nil
}

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
