package rest

import (
	"fmt"
)

// Err is an error with the http status code it should be served with. Message is shown to the client as is.
type Err struct {
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func (e *Err) Error() string {
	return e.Message
}

// NewErrf creates an *Err with a formatted message.
func NewErrf(statusCode int, format string, args ...any) error {
	return &Err{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}
