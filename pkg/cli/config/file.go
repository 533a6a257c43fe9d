package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is the optional TOML configuration file. Its values only fill in
// flags that were not given on the command line or through the environment.
type File struct {
	Log struct {
		Level string `toml:"level"`
		JSON  *bool  `toml:"json"`
	} `toml:"log"`

	Backend struct {
		URL string `toml:"url"`
	} `toml:"backend"`

	Output struct {
		Location string `toml:"location"`
	} `toml:"output"`

	Sentry struct {
		DSN string `toml:"dsn" masq:"secret"`
		Env string `toml:"env"`
	} `toml:"sentry"`

	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
}

// ConfigFile holds the path of the configuration file
type ConfigFile struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *ConfigFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("TIKSNAP_CONFIG"),
		},
	}
}

// Load reads the configuration file. Without a path it returns an empty File.
func (c *ConfigFile) Load() (*File, error) {
	if c.Path == "" {
		return &File{}, nil
	}
	return LoadFile(c.Path)
}

// LoadFile parses a TOML configuration file
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// flagSet reports whether a flag was given explicitly
type flagSet interface {
	IsSet(name string) bool
}

// ApplyGlobal copies file values into the global configs for every flag cmd
// did not set
func (f *File) ApplyGlobal(cmd flagSet, logger *Logger, backend *Backend, output *Output, sentry *Sentry) {
	setString(cmd, "log-level", &logger.Level, f.Log.Level)
	if f.Log.JSON != nil && !cmd.IsSet("log-json") {
		logger.JSON = *f.Log.JSON
	}
	setString(cmd, "backend-url", &backend.URL, f.Backend.URL)
	setString(cmd, "output", &output.Location, f.Output.Location)
	setString(cmd, "sentry-dsn", &sentry.DSN, f.Sentry.DSN)
	setString(cmd, "sentry-env", &sentry.Env, f.Sentry.Env)
}

// ApplyServer copies file values into the server config
func (f *File) ApplyServer(cmd flagSet, server *Server) {
	setString(cmd, "addr", &server.Addr, f.Server.Addr)
}

func setString(cmd flagSet, name string, dst *string, value string) {
	if value == "" || cmd.IsSet(name) {
		return
	}
	*dst = value
}
