package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an item in store is not found.
	ErrNotFound = errors.New("not found")
)

// Artifact is a rendered report file that can be downloaded by name.
type Artifact struct {
	Name        string    `json:"name"`
	Path        string    `json:"-"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}
