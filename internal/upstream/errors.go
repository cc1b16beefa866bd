package upstream

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the single failure kind surfaced by Client. Network, non-2xx and
// JSON decode failures all collapse into it. Status is 0 when no response
// was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the human-readable text for err, for display in an alert.
func Message(err error) string {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func statusError(status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("Error: %d", status)
	}
	return &Error{Status: status, Message: msg}
}

func transportError(err error) *Error {
	return &Error{Message: fmt.Sprintf("request failed: %v", err), Err: err}
}

func decodeError(status int, err error) *Error {
	return &Error{Status: status, Message: fmt.Sprintf("invalid response: %v", err), Err: err}
}
