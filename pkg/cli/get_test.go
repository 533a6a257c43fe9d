package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/cli/config"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// newEmptyBackend answers every extraction with a result that has nothing to
// render in image mode
func newEmptyBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&model.ExtractionResult{
			Author: "carol",
			Title:  "Nothing here",
			Type:   model.PostTypeUnknown,
		})
	})
	mux.HandleFunc("/api/convert-mp3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ID3-audio"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGlobal(t *testing.T, backendURL string) (*globalConfig, string) {
	t.Helper()
	dir := t.TempDir()
	return &globalConfig{
		backend: config.Backend{URL: backendURL},
		output:  config.Output{Location: dir},
		flush:   func() {},
	}, dir
}

func TestGet_EmptyResult_StillConverts(t *testing.T) {
	srv := newEmptyBackend(t)
	g, dir := newGlobal(t, srv.URL)

	cmd := cmdGet(g)
	gt.NoError(t, cmd.Run(context.Background(), []string{"get", "--mp3", "https://www.tiktok.com/@carol/video/1"}))

	data := gt.R1(os.ReadFile(filepath.Join(dir, "tiktok_audio.mp3"))).NoError(t)
	gt.Equal(t, string(data), "ID3-audio")
}

func TestGet_EmptyResult_FailsWithoutConvert(t *testing.T) {
	srv := newEmptyBackend(t)
	g, _ := newGlobal(t, srv.URL)

	cmd := cmdGet(g)
	err := cmd.Run(context.Background(), []string{"get", "--zip", "https://www.tiktok.com/@carol/video/1"})
	gt.True(t, goerr.HasTag(err, types.ErrTagEmptyResult))
}

func TestGet_BackendFailure_StopsConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	g, dir := newGlobal(t, srv.URL)

	cmd := cmdGet(g)
	err := cmd.Run(context.Background(), []string{"get", "--mp3", "https://www.tiktok.com/@carol/video/1"})
	gt.True(t, goerr.HasTag(err, types.ErrTagBackend))

	entries := gt.R1(os.ReadDir(dir)).NoError(t)
	gt.A(t, entries).Length(0)
}

func TestGet_RequiresURL(t *testing.T) {
	g, _ := newGlobal(t, "http://localhost:8000")

	err := cmdGet(g).Run(context.Background(), []string{"get"})
	gt.True(t, goerr.HasTag(err, types.ErrTagValidation))
}
