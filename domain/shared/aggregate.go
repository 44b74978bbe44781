package shared

// AggregateRoot 聚合根接口
// 聚合根记录领域事件，工作单元在提交事务前取出事件写入 outbox
type AggregateRoot interface {
	// PullEvents 获取并清空聚合根记录的领域事件
	PullEvents() []DomainEvent
}

// EventRecorder 可嵌入实体的事件记录器
type EventRecorder struct {
	events []DomainEvent
}

// Record 记录一个领域事件
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 返回并清空已记录事件
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}
