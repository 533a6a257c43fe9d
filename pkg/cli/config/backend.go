package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/infra/backend"
	"github.com/urfave/cli/v3"
)

// DefaultBackendURL is where the extraction backend listens when run locally
const DefaultBackendURL = "http://localhost:8000"

// Backend holds extraction backend configuration
type Backend struct {
	URL string
}

// Flags returns CLI flags for backend configuration
func (c *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the extraction backend",
			Value:       DefaultBackendURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("TIKSNAP_BACKEND_URL"),
		},
	}
}

// New creates the backend client
func (c *Backend) New() (*backend.Client, error) {
	client, err := backend.NewClient(c.URL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend configuration")
	}
	return client, nil
}
