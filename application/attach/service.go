// Package attach 轮播图维护与图片上传。
package attach

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"petcare/domain/attach"
	"petcare/domain/shared"
	"petcare/pkg/logger"
	"petcare/pkg/storage"

	"go.uber.org/zap"
)

// DefaultMaxUploadSize 单张图片上限 5MB
const DefaultMaxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type BannerRequest struct {
	Title    string     `json:"title" binding:"max=64"`
	Image    string     `json:"image" binding:"required,max=512"`
	Link     string     `json:"link" binding:"max=512"`
	Position string     `json:"position" binding:"max=32"`
	Sort     int        `json:"sort"`
	IsActive bool       `json:"is_active"`
	StartAt  *time.Time `json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
}

type BannerResponse struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Image    string     `json:"image"`
	Link     string     `json:"link"`
	Position string     `json:"position"`
	Sort     int        `json:"sort"`
	IsActive bool       `json:"is_active"`
	StartAt  *time.Time `json:"start_at,omitempty"`
	EndAt    *time.Time `json:"end_at,omitempty"`
}

type UploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

func toBannerInput(req BannerRequest) attach.BannerInput {
	return attach.BannerInput{
		Title:    req.Title,
		Image:    req.Image,
		Link:     req.Link,
		Position: req.Position,
		Sort:     req.Sort,
		IsActive: req.IsActive,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
	}
}

func toBannerResponse(b *attach.Banner) *BannerResponse {
	return &BannerResponse{
		ID:       b.ID,
		Title:    b.Title,
		Image:    b.Image,
		Link:     b.Link,
		Position: b.Position,
		Sort:     b.Sort,
		IsActive: b.IsActive,
		StartAt:  b.StartAt,
		EndAt:    b.EndAt,
	}
}

type ApplicationService struct {
	bannerRepo attach.BannerRepository
	storage    storage.Provider
	maxSize    int64
	now        func() time.Time
}

// NewApplicationService maxSize <= 0 时使用 DefaultMaxUploadSize
func NewApplicationService(bannerRepo attach.BannerRepository, provider storage.Provider, maxSize int64) *ApplicationService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &ApplicationService{bannerRepo: bannerRepo, storage: provider, maxSize: maxSize, now: time.Now}
}

// ListLiveBanners 前台展示：启用且在投放时间窗内，按 sort 排序
func (s *ApplicationService) ListLiveBanners(ctx context.Context, position string) ([]*BannerResponse, error) {
	if position == "" {
		position = attach.DefaultPosition
	}
	banners, err := s.bannerRepo.ListLive(ctx, position, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]*BannerResponse, len(banners))
	for i, b := range banners {
		out[i] = toBannerResponse(b)
	}
	return out, nil
}

func (s *ApplicationService) ListBanners(ctx context.Context, page shared.PageQuery) (shared.Page[*BannerResponse], error) {
	banners, total, err := s.bannerRepo.List(ctx, page)
	if err != nil {
		return shared.Page[*BannerResponse]{}, err
	}
	return shared.MapPage(shared.Page[*attach.Banner]{Items: banners, Total: total, Page: page.Page, PageSize: page.PageSize}, toBannerResponse), nil
}

func (s *ApplicationService) CreateBanner(ctx context.Context, req BannerRequest) (*BannerResponse, error) {
	b, err := attach.NewBanner(toBannerInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.bannerRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return toBannerResponse(b), nil
}

func (s *ApplicationService) UpdateBanner(ctx context.Context, id string, req BannerRequest) (*BannerResponse, error) {
	b, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Update(toBannerInput(req)); err != nil {
		return nil, err
	}
	if err := s.bannerRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return toBannerResponse(b), nil
}

func (s *ApplicationService) DeleteBanner(ctx context.Context, id string) error {
	return s.bannerRepo.Delete(ctx, id)
}

// UploadImage 按内容嗅探类型，不信任客户端声明的 Content-Type
func (s *ApplicationService) UploadImage(ctx context.Context, userID, filename string, r io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, shared.NewValidationError("upload", "file", "file is empty")
	}
	if n > s.maxSize {
		return nil, shared.NewValidationError("upload", "file", fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	}
	data := buf.Bytes()
	contentType := storage.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return nil, shared.NewValidationError("upload", "file", "only jpeg, png, gif and webp images are allowed")
	}

	url, err := s.storage.Upload(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Image uploaded",
		zap.String("user_id", userID), zap.String("url", url), zap.Int64("size", n))
	return &UploadResponse{URL: url, ContentType: contentType, Size: len(data)}, nil
}
