package config

import (
	"context"

	gcstorage "cloud.google.com/go/storage"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

// Output holds the location downloads are saved to
type Output struct {
	Location string
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output directory, or gs://bucket/prefix for Cloud Storage",
			Value:       ".",
			Destination: &c.Location,
			Sources:     cli.EnvVars("TIKSNAP_OUTPUT"),
		},
	}
}

// NewSaver creates the saver for the configured location. The returned close
// function releases the storage client, if any.
func (c *Output) NewSaver(ctx context.Context) (interfaces.Saver, func(), error) {
	bucket, prefix, ok := storage.ParseGCSURL(c.Location)
	if !ok {
		ctxlog.From(ctx).Debug("Saving to local directory", "dir", c.Location)
		return storage.NewLocal(c.Location), func() {}, nil
	}

	client, err := gcstorage.NewClient(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("location", c.Location))
	}

	closer := func() {
		if err := client.Close(); err != nil {
			ctxlog.From(ctx).Warn("Failed to close Cloud Storage client", "error", err)
		}
	}

	ctxlog.From(ctx).Debug("Saving to Cloud Storage", "bucket", bucket, "prefix", prefix)
	return storage.NewGCS(client, bucket, prefix), closer, nil
}
