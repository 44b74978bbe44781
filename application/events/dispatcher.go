// Package events 把 outbox 中的事件解码后分发给进程内的处理器。
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"petcare/domain/booking"
	"petcare/domain/community"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"

	"go.uber.org/zap"
)

// decoders 事件名到空事件的构造函数
var decoders = map[string]func() shared.DomainEvent{
	community.EventPostLiked:               func() shared.DomainEvent { return &community.PostLikedEvent{} },
	community.EventPostCommented:           func() shared.DomainEvent { return &community.PostCommentedEvent{} },
	community.EventPostReviewed:            func() shared.DomainEvent { return &community.PostReviewedEvent{} },
	community.EventUserFollowed:            func() shared.DomainEvent { return &community.UserFollowedEvent{} },
	user.EventUserRegistered:               func() shared.DomainEvent { return &user.UserRegisteredEvent{} },
	mall.EventOrderPaid:                    func() shared.DomainEvent { return &mall.OrderPaidEvent{} },
	mall.EventOrderShipped:                 func() shared.DomainEvent { return &mall.OrderShippedEvent{} },
	mall.EventOrderCancelled:               func() shared.DomainEvent { return &mall.OrderCancelledEvent{} },
	booking.EventServiceOrderStatusChanged: func() shared.DomainEvent { return &booking.ServiceOrderStatusChangedEvent{} },
	booking.EventServiceOrderPaid:          func() shared.DomainEvent { return &booking.ServiceOrderPaidEvent{} },
}

// Decode 还原 outbox 里存储的 JSON 事件
func Decode(eventType, payload string) (shared.DomainEvent, error) {
	newEvent, ok := decoders[eventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", eventType)
	}
	event := newEvent()
	if err := json.Unmarshal([]byte(payload), event); err != nil {
		return nil, fmt.Errorf("decode %s: %w", eventType, err)
	}
	return event, nil
}

// Dispatcher is the outbox publisher of the embedded worker.
type Dispatcher struct {
	bus *shared.EventBus
}

func NewDispatcher(bus *shared.EventBus) *Dispatcher {
	return &Dispatcher{bus: bus}
}

func (d *Dispatcher) Publish(ctx context.Context, eventType, payload string) error {
	if !d.bus.HasHandlers(eventType) {
		logger.Debug("No handler for outbox event", zap.String("event_type", eventType))
		return nil
	}
	event, err := Decode(eventType, payload)
	if err != nil {
		return err
	}
	return d.bus.Publish(ctx, event)
}
