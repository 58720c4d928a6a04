package models

import (
	"errors"
	"fmt"
)

// ErrorCode is a string type for consistent error codes.
type ErrorCode string

// Error codes reported by the bridge.
const (
	ErrorCodeMalformedMessage  ErrorCode = "malformed_message"
	ErrorCodeUndecodableBytes  ErrorCode = "undecodable_bytes"
	ErrorCodeForwardingFailure ErrorCode = "forwarding_failure"
	ErrorCodeInvalidPacket     ErrorCode = "invalid_packet"
)

// Sentinel errors, wrapped with details via fmt.Errorf("%w: ...").
var (
	ErrMalformedMessage  = errors.New("message too short")
	ErrUndecodableBytes  = errors.New("datagram is not valid UTF-8 text")
	ErrForwardingFailure = errors.New("forwarding failed")
	ErrInvalidPacket     = errors.New("invalid LoRa packet")
)

// BridgeError carries a code next to the underlying error.
type BridgeError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error makes BridgeError implement the error interface.
func (e *BridgeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *BridgeError) Unwrap() error {
	return e.Err
}

// NewBridgeError is a constructor for BridgeError.
func NewBridgeError(code ErrorCode, message string, err error) *BridgeError {
	return &BridgeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first BridgeError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
