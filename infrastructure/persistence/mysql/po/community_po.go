package po

import (
	"time"

	"petcare/domain/community"

	"gorm.io/datatypes"
)

type TopicPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:64;uniqueIndex;not null"`
	Description string    `gorm:"size:500"`
	Cover       string    `gorm:"size:500"`
	PostCount   int       `gorm:"not null;default:0"`
	Sort        int       `gorm:"default:0"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (TopicPO) TableName() string {
	return "topics"
}

func FromTopicDomain(t *community.Topic) *TopicPO {
	return &TopicPO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Cover:       t.Cover,
		PostCount:   t.PostCount,
		Sort:        t.Sort,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (po *TopicPO) ToDomain() *community.Topic {
	return &community.Topic{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Cover:       po.Cover,
		PostCount:   po.PostCount,
		Sort:        po.Sort,
		IsActive:    po.IsActive,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

type PostPO struct {
	ID            string                      `gorm:"primaryKey;size:64"`
	AuthorID      string                      `gorm:"size:64;index;not null"`
	TopicID       string                      `gorm:"size:64;index"`
	Title         string                      `gorm:"size:100;not null"`
	Content       string                      `gorm:"type:text;not null"`
	Images        datatypes.JSONSlice[string] `gorm:"type:json"`
	Status        string                      `gorm:"size:16;index;not null"`
	RejectReason  string                      `gorm:"size:255"`
	LikeCount     int                         `gorm:"not null;default:0"`
	CommentCount  int                         `gorm:"not null;default:0"`
	FavoriteCount int                         `gorm:"not null;default:0"`
	ViewCount     int                         `gorm:"not null;default:0"`
	ReviewedAt    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PostPO) TableName() string {
	return "posts"
}

// PostCounterColumns are maintained by AdjustCounter and never overwritten on save.
var PostCounterColumns = []string{"like_count", "comment_count", "favorite_count", "view_count"}

func FromPostDomain(p *community.Post) *PostPO {
	return &PostPO{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		TopicID:       p.TopicID,
		Title:         p.Title,
		Content:       p.Content,
		Images:        datatypes.JSONSlice[string](p.Images),
		Status:        string(p.Status),
		RejectReason:  p.RejectReason,
		LikeCount:     p.LikeCount,
		CommentCount:  p.CommentCount,
		FavoriteCount: p.FavoriteCount,
		ViewCount:     p.ViewCount,
		ReviewedAt:    p.ReviewedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (po *PostPO) ToDomain() *community.Post {
	return &community.Post{
		ID:            po.ID,
		AuthorID:      po.AuthorID,
		TopicID:       po.TopicID,
		Title:         po.Title,
		Content:       po.Content,
		Images:        []string(po.Images),
		Status:        community.PostStatus(po.Status),
		RejectReason:  po.RejectReason,
		LikeCount:     po.LikeCount,
		CommentCount:  po.CommentCount,
		FavoriteCount: po.FavoriteCount,
		ViewCount:     po.ViewCount,
		ReviewedAt:    po.ReviewedAt,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}

type CommentPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	PostID    string    `gorm:"size:64;index;not null"`
	AuthorID  string    `gorm:"size:64;index;not null"`
	ParentID  string    `gorm:"size:64;index"`
	Content   string    `gorm:"size:1000;not null"`
	LikeCount int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (CommentPO) TableName() string {
	return "comments"
}

func FromCommentDomain(c *community.Comment) *CommentPO {
	return &CommentPO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
	}
}

func (po *CommentPO) ToDomain() *community.Comment {
	return &community.Comment{
		ID:        po.ID,
		PostID:    po.PostID,
		AuthorID:  po.AuthorID,
		ParentID:  po.ParentID,
		Content:   po.Content,
		LikeCount: po.LikeCount,
		CreatedAt: po.CreatedAt,
	}
}

// ReactionPO is one like or favorite; the composite key makes it unique.
type ReactionPO struct {
	Kind      string    `gorm:"primaryKey;size:20"`
	UserID    string    `gorm:"primaryKey;size:64"`
	TargetID  string    `gorm:"primaryKey;size:64;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ReactionPO) TableName() string {
	return "reactions"
}

type FollowPO struct {
	FollowerID string    `gorm:"primaryKey;size:64"`
	FolloweeID string    `gorm:"primaryKey;size:64;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (FollowPO) TableName() string {
	return "follows"
}

type NotificationPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	RecipientID string    `gorm:"size:64;index:idx_notification_recipient;not null"`
	ActorID     string    `gorm:"size:64"`
	Type        string    `gorm:"size:16;not null"`
	TargetType  string    `gorm:"size:32"`
	TargetID    string    `gorm:"size:64"`
	Content     string    `gorm:"size:500"`
	IsRead      bool      `gorm:"index:idx_notification_recipient;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (NotificationPO) TableName() string {
	return "notifications"
}

func FromNotificationDomain(n *community.Notification) *NotificationPO {
	return &NotificationPO{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		ActorID:     n.ActorID,
		Type:        string(n.Type),
		TargetType:  n.TargetType,
		TargetID:    n.TargetID,
		Content:     n.Content,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}

func (po *NotificationPO) ToDomain() *community.Notification {
	return &community.Notification{
		ID:          po.ID,
		RecipientID: po.RecipientID,
		ActorID:     po.ActorID,
		Type:        community.NotificationType(po.Type),
		TargetType:  po.TargetType,
		TargetID:    po.TargetID,
		Content:     po.Content,
		IsRead:      po.IsRead,
		CreatedAt:   po.CreatedAt,
	}
}

type ReportPO struct {
	ID          string `gorm:"primaryKey;size:64"`
	ReporterID  string `gorm:"size:64;index;not null"`
	TargetType  string `gorm:"size:16;index;not null"`
	TargetID    string `gorm:"size:64;not null"`
	Reason      string `gorm:"size:500;not null"`
	Status      string `gorm:"size:16;index;not null"`
	HandlerID   string `gorm:"size:64"`
	HandlerNote string `gorm:"size:500"`
	HandledAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ReportPO) TableName() string {
	return "reports"
}

func FromReportDomain(r *community.Report) *ReportPO {
	return &ReportPO{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		TargetType:  string(r.TargetType),
		TargetID:    r.TargetID,
		Reason:      r.Reason,
		Status:      string(r.Status),
		HandlerID:   r.HandlerID,
		HandlerNote: r.HandlerNote,
		HandledAt:   r.HandledAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (po *ReportPO) ToDomain() *community.Report {
	return &community.Report{
		ID:          po.ID,
		ReporterID:  po.ReporterID,
		TargetType:  community.ReportTarget(po.TargetType),
		TargetID:    po.TargetID,
		Reason:      po.Reason,
		Status:      community.ReportStatus(po.Status),
		HandlerID:   po.HandlerID,
		HandlerNote: po.HandlerNote,
		HandledAt:   po.HandledAt,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}
