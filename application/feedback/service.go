// Package feedback 意见反馈：用户提交与查看，后台处理与回复。
package feedback

import (
	"context"
	"time"

	"petcare/domain/feedback"
	"petcare/domain/shared"
)

type CreateRequest struct {
	Type    string   `json:"type" binding:"required,oneof=bug suggestion complaint other"`
	Content string   `json:"content" binding:"required,max=2000"`
	Images  []string `json:"images" binding:"max=9,dive,max=512"`
	Contact string   `json:"contact" binding:"max=64"`
}

type ListRequest struct {
	UserID   string `form:"user_id"`
	Type     string `form:"type" binding:"omitempty,oneof=bug suggestion complaint other"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing resolved"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required,max=2000"`
}

type Response struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
	Images    []string   `json:"images"`
	Contact   string     `json:"contact,omitempty"`
	Status    string     `json:"status"`
	Reply     string     `json:"reply,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toResponse(f *feedback.Feedback) *Response {
	images := f.Images
	if images == nil {
		images = []string{}
	}
	return &Response{
		ID:        f.ID,
		UserID:    f.UserID,
		Type:      string(f.Type),
		Content:   f.Content,
		Images:    images,
		Contact:   f.Contact,
		Status:    string(f.Status),
		Reply:     f.Reply,
		RepliedAt: f.RepliedAt,
		CreatedAt: f.CreatedAt,
	}
}

type ApplicationService struct {
	repo feedback.Repository
}

func NewApplicationService(repo feedback.Repository) *ApplicationService {
	return &ApplicationService{repo: repo}
}

func (s *ApplicationService) Create(ctx context.Context, userID string, req CreateRequest) (*Response, error) {
	f, err := feedback.New(userID, feedback.Input{
		Type:    feedback.Type(req.Type),
		Content: req.Content,
		Images:  req.Images,
		Contact: req.Contact,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return toResponse(f), nil
}

func (s *ApplicationService) List(ctx context.Context, req ListRequest) (shared.Page[*Response], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	filter := feedback.ListFilter{UserID: req.UserID, Type: feedback.Type(req.Type), Status: feedback.Status(req.Status)}
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*Response]{}, err
	}
	return shared.MapPage(shared.Page[*feedback.Feedback]{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, toResponse), nil
}

func (s *ApplicationService) ListMine(ctx context.Context, userID string, req ListRequest) (shared.Page[*Response], error) {
	req.UserID = userID
	return s.List(ctx, req)
}

// Get userID 为空表示管理员查看
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*Response, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		if err := f.OwnedBy(userID); err != nil {
			return nil, err
		}
	}
	return toResponse(f), nil
}

func (s *ApplicationService) MarkProcessing(ctx context.Context, id string) (*Response, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Process(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return toResponse(f), nil
}

func (s *ApplicationService) Reply(ctx context.Context, adminID, id string, req ReplyRequest) (*Response, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Answer(adminID, req.Reply); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return toResponse(f), nil
}
