package interfaces

import (
	"context"

	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// Presenter receives screen snapshots after every state change
type Presenter interface {
	// Present shows the current screen
	Present(ctx context.Context, screen *model.Screen)

	// Alert shows a blocking message
	Alert(ctx context.Context, msg string)
}

// SessionUseCase defines the client orchestration operations
type SessionUseCase interface {
	// Extract submits a post URL for extraction and renders the result
	Extract(ctx context.Context, url string) error

	// SetMode switches the display mode and hides the result panel
	SetMode(ctx context.Context, mode model.Mode)

	// ToggleMode switches to the other display mode
	ToggleMode(ctx context.Context)

	// DownloadZip saves all slideshow images as one zip archive
	DownloadZip(ctx context.Context) (*model.SavedFile, error)

	// ConvertAudio saves the audio track of the last submitted URL
	ConvertAudio(ctx context.Context) (*model.SavedFile, error)

	// ImageLink returns the proxy download link for the image at index
	ImageLink(index int) (string, error)

	// Paste fills the URL input from the clipboard
	Paste(ctx context.Context)

	// Reset clears the input and hides the result panel
	Reset(ctx context.Context)

	// Dispatch runs the handler registered for an action
	Dispatch(ctx context.Context, action model.Action, arg string) (*model.SavedFile, error)

	// Screen returns a snapshot of the current state
	Screen() *model.Screen
}
