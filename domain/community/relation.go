package community

import (
	"time"

	"petcare/domain/shared"
)

// ReactionKind names a (user, target) reaction table. Each pair is unique.
type ReactionKind string

const (
	ReactionPostLike     ReactionKind = "post_like"
	ReactionPostFavorite ReactionKind = "post_favorite"
	ReactionCommentLike  ReactionKind = "comment_like"
)

type Follow struct {
	shared.EventRecorder

	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}

func NewFollow(followerID, followeeID string) (*Follow, error) {
	if followerID == followeeID {
		return nil, shared.NewValidationError("follow", "user_id", "cannot follow yourself")
	}
	f := &Follow{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: time.Now()}
	f.Record(&UserFollowedEvent{
		EventBase:  shared.NewEventBase(followeeID),
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	return f, nil
}
