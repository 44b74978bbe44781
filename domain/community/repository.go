package community

import (
	"context"

	"petcare/domain/shared"
)

type TopicRepository interface {
	Save(ctx context.Context, topic *Topic) error
	FindByID(ctx context.Context, id string) (*Topic, error)
	List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*Topic, int64, error)
	Delete(ctx context.Context, id string) error
	AdjustPostCount(ctx context.Context, id string, delta int) error
}

type PostOrder string

const (
	PostOrderNewest PostOrder = "newest"
	PostOrderHot    PostOrder = "hot"
)

type PostFilter struct {
	TopicID   string
	AuthorID  string
	AuthorIDs []string // feed; an empty non-nil slice matches nothing
	Status    PostStatus
	Keyword   string
	Order     PostOrder
}

// PostCounter names a denormalized counter column on posts.
type PostCounter string

const (
	PostLikes     PostCounter = "like_count"
	PostComments  PostCounter = "comment_count"
	PostFavorites PostCounter = "favorite_count"
	PostViews     PostCounter = "view_count"
)

type PostRepository interface {
	Save(ctx context.Context, post *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, filter PostFilter, page shared.PageQuery) ([]*Post, int64, error)
	ListFavoritedBy(ctx context.Context, userID string, page shared.PageQuery) ([]*Post, int64, error)
	Delete(ctx context.Context, id string) error
	AdjustCounter(ctx context.Context, id string, counter PostCounter, delta int) error
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	ListByPost(ctx context.Context, postID string, page shared.PageQuery) ([]*Comment, int64, error)
	// Delete removes the comment and its replies, returning how many rows went.
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByPost(ctx context.Context, postID string) error
	AdjustLikeCount(ctx context.Context, id string, delta int) error
}

// ReactionRepository stores unique (user, target) rows. Add fails with a
// conflict on duplicates, Remove with not-found when the row is missing.
type ReactionRepository interface {
	Add(ctx context.Context, kind ReactionKind, userID, targetID string) error
	Remove(ctx context.Context, kind ReactionKind, userID, targetID string) error
	// Reacted returns which of targetIDs the user has reacted to.
	Reacted(ctx context.Context, kind ReactionKind, userID string, targetIDs []string) (map[string]bool, error)
}

type FollowRepository interface {
	Add(ctx context.Context, follow *Follow) error
	Remove(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	FollowingIDs(ctx context.Context, followerID string) ([]string, error)
	ListFollowers(ctx context.Context, userID string, page shared.PageQuery) ([]string, int64, error)
	ListFollowing(ctx context.Context, userID string, page shared.PageQuery) ([]string, int64, error)
}

type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, recipientID string, unreadOnly bool, page shared.PageQuery) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type ReportFilter struct {
	Status     ReportStatus
	TargetType ReportTarget
}

type ReportRepository interface {
	Save(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter ReportFilter, page shared.PageQuery) ([]*Report, int64, error)
}
