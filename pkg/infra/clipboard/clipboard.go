package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/m-mizutani/goerr/v2"
)

// System reads the operating system clipboard
type System struct{}

// New returns a clipboard reader backed by the OS clipboard
func New() *System {
	return &System{}
}

// ReadText returns the current clipboard text
func (s *System) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", goerr.New("clipboard is not supported on this system")
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return "", goerr.Wrap(err, "failed to read clipboard")
	}
	return text, nil
}
