package community

import "petcare/domain/shared"

const (
	EventPostLiked     = "community.post.liked"
	EventPostCommented = "community.post.commented"
	EventPostReviewed  = "community.post.reviewed"
	EventUserFollowed  = "community.user.followed"
)

type PostLikedEvent struct {
	shared.EventBase
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
	ActorID  string `json:"actor_id"`
}

func (e *PostLikedEvent) EventName() string { return EventPostLiked }

type PostCommentedEvent struct {
	shared.EventBase
	PostID         string `json:"post_id"`
	CommentID      string `json:"comment_id"`
	PostAuthorID   string `json:"post_author_id"`
	ParentAuthorID string `json:"parent_author_id,omitempty"`
	ActorID        string `json:"actor_id"`
	Excerpt        string `json:"excerpt"`
}

func (e *PostCommentedEvent) EventName() string { return EventPostCommented }

type PostReviewedEvent struct {
	shared.EventBase
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

func (e *PostReviewedEvent) EventName() string { return EventPostReviewed }

type UserFollowedEvent struct {
	shared.EventBase
	FollowerID string `json:"follower_id"`
	FolloweeID string `json:"followee_id"`
}

func (e *UserFollowedEvent) EventName() string { return EventUserFollowed }
