package rpc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrReceiptNotFound is returned while a transaction is not yet included.
var ErrReceiptNotFound = errors.New("transaction receipt not found")

// TransportError covers everything that kept a well-formed response from
// arriving: dial failures, refused connections, timeouts and non-2xx statuses.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc %s: transport: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RPCError is an error envelope returned by the node.
type RPCError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error %d: %s (%v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// ProtocolError is a response that could not be understood.
type ProtocolError struct {
	Method string
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("rpc %s: malformed response: %v", e.Method, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
