package config_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/cli/config"
)

func TestLogger_Configure_Levels(t *testing.T) {
	testCases := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "INFO"},
		{level: "Warn"},
		{level: "error"},
		{level: "verbose", wantErr: true},
		{level: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run("level "+tc.level, func(t *testing.T) {
			logger := &config.Logger{Level: tc.level, Output: io.Discard}

			result, err := logger.Configure()
			if tc.wantErr {
				gt.Error(t, err).Contains("invalid log level")
				gt.Value(t, result).Nil()
				return
			}
			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_InvalidLevelValue(t *testing.T) {
	logger := &config.Logger{Level: "loud"}

	_, err := logger.Configure()
	var gerr *goerr.Error
	gt.True(t, errors.As(err, &gerr))
	gt.Value(t, gerr.Values()["level"]).Equal(any("loud"))
}

func TestLogger_Configure_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "warn", JSON: true, Output: &buf}

	result := gt.R1(logger.Configure()).NoError(t)
	result.Info("extraction started")
	result.Warn("zip download failed")

	out := buf.String()
	gt.False(t, strings.Contains(out, "extraction started"))
	gt.True(t, strings.Contains(out, "zip download failed"))
}

func TestLogger_Configure_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "info", Output: &buf}

	result := gt.R1(logger.Configure()).NoError(t)
	result.Info("saved file", "path", "caption.zip")

	gt.True(t, strings.Contains(buf.String(), "saved file"))
	gt.True(t, strings.Contains(buf.String(), "caption.zip"))
}

func TestLogger_Configure_DefaultsToStderr(t *testing.T) {
	r, w := gt.R2(os.Pipe()).NoError(t)
	orig := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = orig })

	logger := &config.Logger{Level: "info", JSON: true}
	result := gt.R1(logger.Configure()).NoError(t)
	result.Info("written to stderr")
	gt.NoError(t, w.Close())

	data := gt.R1(io.ReadAll(r)).NoError(t)
	gt.True(t, strings.Contains(string(data), "written to stderr"))
}

func TestLogger_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "info", JSON: true, Output: &buf}

	result := gt.R1(logger.Configure()).NoError(t)
	result.Info("configured", "sentry", config.Sentry{DSN: "https://key@sentry.example.com/1", Env: "prod"})

	out := buf.String()
	gt.False(t, strings.Contains(out, "key@sentry.example.com"))
	gt.True(t, strings.Contains(out, "prod"))
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}

	names := map[string]bool{}
	for _, flag := range logger.Flags() {
		for _, name := range flag.Names() {
			names[name] = true
		}
	}

	gt.A(t, logger.Flags()).Length(2)
	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}
