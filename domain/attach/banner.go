// Package attach holds banners and uploaded media.
package attach

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Banner struct {
	ID        string
	Title     string
	Image     string
	Link      string
	Position  string
	Sort      int
	IsActive  bool
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BannerInput struct {
	Title    string
	Image    string
	Link     string
	Position string
	Sort     int
	IsActive bool
	StartAt  *time.Time
	EndAt    *time.Time
}

const DefaultPosition = "home"

func NewBanner(in BannerInput) (*Banner, error) {
	b := &Banner{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := b.Update(in); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Banner) Update(in BannerInput) error {
	if strings.TrimSpace(in.Image) == "" {
		return shared.NewValidationError("banner", "image", "image is required")
	}
	if in.StartAt != nil && in.EndAt != nil && !in.EndAt.After(*in.StartAt) {
		return shared.NewValidationError("banner", "end_at", "end must be after start")
	}
	if in.Position == "" {
		in.Position = DefaultPosition
	}
	b.Title = strings.TrimSpace(in.Title)
	b.Image = in.Image
	b.Link = in.Link
	b.Position = in.Position
	b.Sort = in.Sort
	b.IsActive = in.IsActive
	b.StartAt = in.StartAt
	b.EndAt = in.EndAt
	b.UpdatedAt = time.Now()
	return nil
}

// LiveAt reports whether the banner is active and inside its time window.
func (b *Banner) LiveAt(t time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartAt != nil && t.Before(*b.StartAt) {
		return false
	}
	if b.EndAt != nil && !t.Before(*b.EndAt) {
		return false
	}
	return true
}
