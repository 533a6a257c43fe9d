package storage

import (
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	gcstorage "cloud.google.com/go/storage"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// GCS saves payloads as objects in a Cloud Storage bucket
type GCS struct {
	client *gcstorage.Client
	bucket string
	prefix string
}

// NewGCS creates a saver writing to gs://bucket/prefix
func NewGCS(client *gcstorage.Client, bucket, prefix string) *GCS {
	return &GCS{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// ParseGCSURL splits gs://bucket/prefix into its parts. ok is false for any
// other location.
func ParseGCSURL(location string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(location, "gs://")
	if !found {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, strings.Trim(prefix, "/"), true
}

// Save streams body into an object named after filename
func (s *GCS) Save(ctx context.Context, filename string, body io.Reader) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	name := path.Join(s.prefix, baseName(filename))
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.ContentType = ct
	}

	size, err := io.Copy(w, body)
	if err != nil {
		_ = w.Close()
		return nil, goerr.Wrap(err, "failed to upload payload",
			goerr.V("bucket", s.bucket),
			goerr.V("object", name),
		)
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", s.bucket),
			goerr.V("object", name),
		)
	}

	location := "gs://" + s.bucket + "/" + name
	logger.Debug("Uploaded payload", "location", location, "size", size)

	return &model.SavedFile{Path: location, Size: size}, nil
}
