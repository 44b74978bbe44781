package events

import (
	"context"
	"fmt"

	"petcare/domain/booking"
	"petcare/domain/community"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/user"
)

type Notifier interface {
	Notify(ctx context.Context, n *community.Notification) error
}

type Awarder interface {
	AwardForPayment(ctx context.Context, userID string, amountFen int64, orderID string) (bool, error)
	AwardForRegister(ctx context.Context, userID string) (bool, error)
}

// handlers 同一事件可能被重复投递：积分按 (user, reason, ref) 去重，通知允许重复
type handlers struct {
	notifier Notifier
	awarder  Awarder
}

// Register 订阅所有业务事件
func Register(bus *shared.EventBus, notifier Notifier, awarder Awarder) error {
	h := &handlers{notifier: notifier, awarder: awarder}
	subs := []struct {
		event string
		name  string
		fn    func(context.Context, shared.DomainEvent) error
	}{
		{community.EventPostLiked, "notify-post-liked", h.postLiked},
		{community.EventPostCommented, "notify-post-commented", h.postCommented},
		{community.EventPostReviewed, "notify-post-reviewed", h.postReviewed},
		{community.EventUserFollowed, "notify-user-followed", h.userFollowed},
		{booking.EventServiceOrderStatusChanged, "notify-service-order-status", h.serviceOrderStatus},
		{booking.EventServiceOrderPaid, "award-service-order-paid", h.serviceOrderPaid},
		{mall.EventOrderPaid, "award-mall-order-paid", h.mallOrderPaid},
		{mall.EventOrderShipped, "notify-mall-order-shipped", h.mallOrderShipped},
		{mall.EventOrderCancelled, "notify-mall-order-cancelled", h.mallOrderCancelled},
		{user.EventUserRegistered, "award-user-registered", h.userRegistered},
	}
	for _, s := range subs {
		if err := bus.Subscribe(s.event, shared.NewFuncHandler(s.name, s.fn)); err != nil {
			return err
		}
	}
	return nil
}

func unexpected(event shared.DomainEvent) error {
	return fmt.Errorf("unexpected event %T", event)
}

func (h *handlers) postLiked(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*community.PostLikedEvent)
	if !ok {
		return unexpected(event)
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.AuthorID, e.ActorID, community.NotificationLike, "post", e.PostID, "liked your post"))
}

func (h *handlers) postCommented(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*community.PostCommentedEvent)
	if !ok {
		return unexpected(event)
	}
	if err := h.notifier.Notify(ctx, community.NewNotification(
		e.PostAuthorID, e.ActorID, community.NotificationComment, "post", e.PostID, e.Excerpt)); err != nil {
		return err
	}
	if e.ParentAuthorID == "" || e.ParentAuthorID == e.PostAuthorID {
		return nil
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.ParentAuthorID, e.ActorID, community.NotificationComment, "comment", e.CommentID, e.Excerpt))
}

func (h *handlers) postReviewed(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*community.PostReviewedEvent)
	if !ok {
		return unexpected(event)
	}
	content := fmt.Sprintf("Your post %q was approved", e.Title)
	if !e.Approved {
		content = fmt.Sprintf("Your post %q was rejected", e.Title)
		if e.Reason != "" {
			content += ": " + e.Reason
		}
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.AuthorID, "", community.NotificationSystem, "post", e.PostID, content))
}

func (h *handlers) userFollowed(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*community.UserFollowedEvent)
	if !ok {
		return unexpected(event)
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.FolloweeID, e.FollowerID, community.NotificationFollow, "user", e.FollowerID, "started following you"))
}

func (h *handlers) serviceOrderStatus(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*booking.ServiceOrderStatusChangedEvent)
	if !ok {
		return unexpected(event)
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.UserID, "", community.NotificationOrder, "service_order", e.OrderID,
		fmt.Sprintf("Service order %s is now %s", e.OrderNo, e.To)))
}

func (h *handlers) serviceOrderPaid(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*booking.ServiceOrderPaidEvent)
	if !ok {
		return unexpected(event)
	}
	_, err := h.awarder.AwardForPayment(ctx, e.UserID, e.Amount, e.OrderID)
	return err
}

func (h *handlers) mallOrderPaid(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*mall.OrderPaidEvent)
	if !ok {
		return unexpected(event)
	}
	_, err := h.awarder.AwardForPayment(ctx, e.UserID, e.Amount, e.OrderID)
	return err
}

func (h *handlers) mallOrderShipped(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*mall.OrderShippedEvent)
	if !ok {
		return unexpected(event)
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.UserID, "", community.NotificationOrder, "mall_order", e.OrderID,
		fmt.Sprintf("Order %s shipped via %s, tracking no. %s", e.OrderNo, e.ShippingCompany, e.TrackingNo)))
}

func (h *handlers) mallOrderCancelled(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*mall.OrderCancelledEvent)
	if !ok {
		return unexpected(event)
	}
	content := fmt.Sprintf("Order %s was cancelled", e.OrderNo)
	if e.Reason != "" {
		content += ": " + e.Reason
	}
	return h.notifier.Notify(ctx, community.NewNotification(
		e.UserID, "", community.NotificationOrder, "mall_order", e.OrderID, content))
}

func (h *handlers) userRegistered(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*user.UserRegisteredEvent)
	if !ok {
		return unexpected(event)
	}
	_, err := h.awarder.AwardForRegister(ctx, e.UserID)
	return err
}
