package model

import (
	"fmt"
	"io"
)

// Payload is a binary response body that has not been saved yet. The body
// must be closed once it is consumed.
type Payload struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// Close releases the underlying body
func (p *Payload) Close() error {
	if p == nil || p.Body == nil {
		return nil
	}
	return p.Body.Close()
}

// SavedFile describes a payload written to its destination
type SavedFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// BackendError is a non-2xx response from the extraction backend. Detail is
// empty when the body did not carry a usable "detail" field.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}
