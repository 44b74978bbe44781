package community

import (
	"context"

	"petcare/domain/community"
	"petcare/domain/shared"
)

func (s *ApplicationService) ListNotifications(ctx context.Context, userID string, req ListNotificationsRequest) (shared.Page[*NotificationResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	items, total, err := s.notificationRepo.List(ctx, userID, req.UnreadOnly, page)
	if err != nil {
		return shared.Page[*NotificationResponse]{}, err
	}
	return shared.MapPage(shared.Page[*community.Notification]{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, toNotificationResponse), nil
}

func (s *ApplicationService) UnreadCount(ctx context.Context, userID string) (*UnreadCountResponse, error) {
	n, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Unread: n}, nil
}

func (s *ApplicationService) MarkNotificationRead(ctx context.Context, userID, id string) error {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := n.OwnedBy(userID); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *ApplicationService) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Notify 写入一条通知，outbox 事件处理器调用
func (s *ApplicationService) Notify(ctx context.Context, n *community.Notification) error {
	if n.RecipientID == "" || n.RecipientID == n.ActorID {
		return nil
	}
	return s.notificationRepo.Save(ctx, n)
}
