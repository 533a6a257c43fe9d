package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// maxDuplicates bounds the " (n)" suffix search for a free file name
const maxDuplicates = 1000

// Local saves payloads into a directory on the local filesystem
type Local struct {
	dir string
}

// NewLocal creates a saver for the given directory. The directory is created
// on first save.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Save writes body under filename without overwriting existing files. The data
// goes to a temporary file first, so a failed transfer leaves nothing behind.
func (s *Local) Save(ctx context.Context, filename string, body io.Reader) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory", goerr.V("dir", s.dir))
	}

	tmp, err := os.CreateTemp(s.dir, ".tiksnap-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", s.dir))
	}
	tmpPath := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpPath); statErr == nil {
			if removeErr := os.Remove(tmpPath); removeErr != nil {
				logger.Warn("Failed to remove temporary file", "path", tmpPath, "error", removeErr)
			}
		}
	}()

	size, err := io.Copy(tmp, body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to write payload", goerr.V("filename", filename))
	}

	dest, err := s.freePath(baseName(filename))
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return nil, goerr.Wrap(err, "failed to move payload into place", goerr.V("path", dest))
	}

	logger.Debug("Saved payload", "path", dest, "size", size)

	return &model.SavedFile{Path: dest, Size: size}, nil
}

// freePath returns the first path for name that does not exist yet, adding
// " (1)", " (2)", ... before the extension
func (s *Local) freePath(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxDuplicates; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}

	return "", goerr.New("no free file name", goerr.V("name", name), goerr.V("dir", s.dir))
}

// baseName strips any directory part a server-provided name might carry
func baseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." || strings.TrimSpace(base) == "" {
		return "download"
	}
	return base
}
