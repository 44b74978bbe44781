package user

import "petcare/domain/shared"

const EventUserRegistered = "user.registered"

type UserRegisteredEvent struct {
	shared.EventBase
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func NewUserRegisteredEvent(userID, username string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		EventBase: shared.NewEventBase(userID),
		UserID:    userID,
		Username:  username,
	}
}

func (e *UserRegisteredEvent) EventName() string { return EventUserRegistered }
