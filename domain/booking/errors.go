package booking

import (
	"fmt"

	"petcare/domain/shared"
)

func NewServiceOrderNotFoundError() error {
	return shared.NewNotFoundError("service_order")
}

func NewInvalidTransitionError(from, to Status) error {
	return shared.NewStateError("service_order", fmt.Sprintf("cannot change status from %s to %s", from, to))
}

func newItemError(field, reason string) error {
	return shared.NewValidationError("service_order", field, reason)
}
