package po

import (
	"time"

	"petcare/domain/attach"
	"petcare/domain/feedback"

	"gorm.io/datatypes"
)

type FeedbackPO struct {
	ID        string                      `gorm:"primaryKey;size:64"`
	UserID    string                      `gorm:"size:64;index;not null"`
	Type      string                      `gorm:"size:16;index;not null"`
	Content   string                      `gorm:"size:2000;not null"`
	Images    datatypes.JSONSlice[string] `gorm:"type:json"`
	Contact   string                      `gorm:"size:64"`
	Status    string                      `gorm:"size:16;index;not null"`
	Reply     string                      `gorm:"size:2000"`
	RepliedBy string                      `gorm:"size:64"`
	RepliedAt *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (FeedbackPO) TableName() string {
	return "feedback"
}

func FromFeedbackDomain(f *feedback.Feedback) *FeedbackPO {
	return &FeedbackPO{
		ID:        f.ID,
		UserID:    f.UserID,
		Type:      string(f.Type),
		Content:   f.Content,
		Images:    datatypes.JSONSlice[string](f.Images),
		Contact:   f.Contact,
		Status:    string(f.Status),
		Reply:     f.Reply,
		RepliedBy: f.RepliedBy,
		RepliedAt: f.RepliedAt,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (po *FeedbackPO) ToDomain() *feedback.Feedback {
	return &feedback.Feedback{
		ID:        po.ID,
		UserID:    po.UserID,
		Type:      feedback.Type(po.Type),
		Content:   po.Content,
		Images:    []string(po.Images),
		Contact:   po.Contact,
		Status:    feedback.Status(po.Status),
		Reply:     po.Reply,
		RepliedBy: po.RepliedBy,
		RepliedAt: po.RepliedAt,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

type BannerPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	Title     string `gorm:"size:128"`
	Image     string `gorm:"size:500;not null"`
	Link      string `gorm:"size:500"`
	Position  string `gorm:"size:32;index;not null"`
	Sort      int    `gorm:"default:0"`
	IsActive  bool   `gorm:"default:true"`
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BannerPO) TableName() string {
	return "banners"
}

func FromBannerDomain(b *attach.Banner) *BannerPO {
	return &BannerPO{
		ID:        b.ID,
		Title:     b.Title,
		Image:     b.Image,
		Link:      b.Link,
		Position:  b.Position,
		Sort:      b.Sort,
		IsActive:  b.IsActive,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (po *BannerPO) ToDomain() *attach.Banner {
	return &attach.Banner{
		ID:        po.ID,
		Title:     po.Title,
		Image:     po.Image,
		Link:      po.Link,
		Position:  po.Position,
		Sort:      po.Sort,
		IsActive:  po.IsActive,
		StartAt:   po.StartAt,
		EndAt:     po.EndAt,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
