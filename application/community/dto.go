package community

import "time"

type PostRequest struct {
	TopicID string   `json:"topic_id"`
	Title   string   `json:"title" binding:"required,max=100"`
	Content string   `json:"content" binding:"required,max=10000"`
	Images  []string `json:"images" binding:"max=9,dive,max=512"`
}

// ListPostsRequest 用户端列表固定只看已审核通过的帖子
type ListPostsRequest struct {
	TopicID  string `form:"topic_id"`
	AuthorID string `form:"author_id"`
	Keyword  string `form:"keyword"`
	Order    string `form:"order" binding:"omitempty,oneof=newest hot"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ReviewPostRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Reason  string `json:"reason" binding:"max=255"`
}

type CommentRequest struct {
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID string `json:"parent_id"`
}

type ReportRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=post comment user"`
	TargetID   string `json:"target_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

type ListReportsRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=pending resolved dismissed"`
	TargetType string `form:"target_type" binding:"omitempty,oneof=post comment user"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type HandleReportRequest struct {
	Status string `json:"status" binding:"required,oneof=resolved dismissed"`
	Note   string `json:"note" binding:"max=500"`
}

type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=32"`
	Description string `json:"description" binding:"max=255"`
	Cover       string `json:"cover" binding:"max=512"`
	Sort        int    `json:"sort"`
	IsActive    bool   `json:"is_active"`
}

type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Page       int  `form:"page"`
	PageSize   int  `form:"page_size"`
}

type PostResponse struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	TopicID       string     `json:"topic_id,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Images        []string   `json:"images"`
	Status        string     `json:"status"`
	RejectReason  string     `json:"reject_reason,omitempty"`
	LikeCount     int        `json:"like_count"`
	CommentCount  int        `json:"comment_count"`
	FavoriteCount int        `json:"favorite_count"`
	ViewCount     int        `json:"view_count"`
	Liked         bool       `json:"liked"`
	Favorited     bool       `json:"favorited"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

type UserBrief struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type FollowStatusResponse struct {
	Following bool `json:"following"`
}

type NotificationResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Type       string    `json:"type"`
	TargetType string    `json:"target_type,omitempty"`
	TargetID   string    `json:"target_id,omitempty"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type ReportResponse struct {
	ID          string     `json:"id"`
	ReporterID  string     `json:"reporter_id"`
	TargetType  string     `json:"target_type"`
	TargetID    string     `json:"target_id"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	HandlerID   string     `json:"handler_id,omitempty"`
	HandlerNote string     `json:"handler_note,omitempty"`
	HandledAt   *time.Time `json:"handled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TopicResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	PostCount   int    `json:"post_count"`
	Sort        int    `json:"sort"`
	IsActive    bool   `json:"is_active"`
}
