package prototype

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidTransactionField = errors.New("invalid transaction field")
	ErrInvalidState            = errors.New("invalid transaction state")
)

// InvalidFieldError names the transaction field that failed validation.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid transaction field %s: %s", e.Field, e.Reason)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidTransactionField
}

// StateError reports an operation called out of the
// Built -> Encoded -> Signed -> Serialized order.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a transaction in state %s", e.Op, e.State)
}

func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}
