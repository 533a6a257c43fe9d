package interfaces

import (
	"context"
	"io"

	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// Saver writes a downloaded payload to its final destination
type Saver interface {
	Save(ctx context.Context, filename string, body io.Reader) (*model.SavedFile, error)
}

// Navigator follows a download link the way a browser would
type Navigator interface {
	Open(ctx context.Context, link string) (*model.SavedFile, error)
}

// Clipboard reads text from the system clipboard
type Clipboard interface {
	ReadText() (string, error)
}
