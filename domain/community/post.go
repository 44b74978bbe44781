/*
Package community is the social feed: topics, moderated posts, comments,
reactions, follows, notifications and abuse reports.
*/
package community

import (
	"strings"
	"time"
	"unicode/utf8"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// postTransitions: only pending posts can be reviewed.
var postTransitions = shared.Transitions[PostStatus]{
	PostPending: {PostApproved, PostRejected},
}

const maxPostImages = 9

type Post struct {
	shared.EventRecorder

	ID            string
	AuthorID      string
	TopicID       string
	Title         string
	Content       string
	Images        []string
	Status        PostStatus
	RejectReason  string
	LikeCount     int
	CommentCount  int
	FavoriteCount int
	ViewCount     int
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PostInput struct {
	TopicID string
	Title   string
	Content string
	Images  []string
}

func (in *PostInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || utf8.RuneCountInString(in.Title) > 100 {
		return shared.NewValidationError("post", "title", "title must be 1-100 characters")
	}
	if in.Content == "" {
		return shared.NewValidationError("post", "content", "content is required")
	}
	if len(in.Images) > maxPostImages {
		return shared.NewValidationError("post", "images", "at most 9 images")
	}
	return nil
}

// NewPost creates a post awaiting moderation.
func NewPost(authorID string, in PostInput) (*Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Status:    PostPending,
		CreatedAt: now,
	}
	p.apply(in, now)
	return p, nil
}

// Edit replaces the content and sends the post back to moderation.
func (p *Post) Edit(in PostInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	p.apply(in, time.Now())
	p.Status = PostPending
	p.RejectReason = ""
	p.ReviewedAt = nil
	return nil
}

func (p *Post) apply(in PostInput, now time.Time) {
	p.TopicID = in.TopicID
	p.Title = in.Title
	p.Content = in.Content
	p.Images = append([]string(nil), in.Images...)
	p.UpdatedAt = now
}

// Review approves or rejects a pending post; rejection needs a reason.
func (p *Post) Review(approve bool, reason string) error {
	to := PostRejected
	if approve {
		to = PostApproved
	}
	if !postTransitions.Allows(p.Status, to) {
		return shared.NewStateError("post", "only pending posts can be reviewed")
	}
	reason = strings.TrimSpace(reason)
	if !approve && reason == "" {
		return shared.NewValidationError("post", "reason", "reject reason is required")
	}
	now := time.Now()
	p.Status = to
	p.RejectReason = ""
	if !approve {
		p.RejectReason = reason
	}
	p.ReviewedAt = &now
	p.UpdatedAt = now
	p.Record(&PostReviewedEvent{
		EventBase: shared.NewEventBase(p.ID),
		PostID:    p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Approved:  approve,
		Reason:    reason,
	})
	return nil
}

// VisibleTo: approved posts are public, others only to their author.
func (p *Post) VisibleTo(viewerID string) bool {
	return p.Status == PostApproved || (viewerID != "" && viewerID == p.AuthorID)
}

// RequireApproved guards reactions and comments.
func (p *Post) RequireApproved() error {
	if p.Status != PostApproved {
		return shared.NewNotFoundError("post")
	}
	return nil
}

func (p *Post) OwnedBy(userID string) error {
	if p.AuthorID != userID {
		return shared.NewForbiddenError("post", "only the author can modify this post")
	}
	return nil
}

// RecordLiked notifies the author of a like by someone else.
func (p *Post) RecordLiked(actorID string) {
	if actorID == p.AuthorID {
		return
	}
	p.Record(&PostLikedEvent{
		EventBase: shared.NewEventBase(p.ID),
		PostID:    p.ID,
		AuthorID:  p.AuthorID,
		ActorID:   actorID,
	})
}
