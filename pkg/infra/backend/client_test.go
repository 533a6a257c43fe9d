package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/infra/backend"
)

func newClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.NewClient(server.URL)
	gt.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http", url: "http://localhost:8000"},
		{name: "https with trailing slash", url: "https://example.com/"},
		{name: "missing scheme", url: "localhost:8000", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com", wantErr: true},
		{name: "unparsable", url: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backend.NewClient(tt.url)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestClient_Extract_Success(t *testing.T) {
	var gotBody map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/api/extract")
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		gt.Value(t, r.Header.Get("X-Request-ID")).NotEqual("")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","title":"caption","author":"alice","type":"slideshow","images":["a","b"],"video":null,"thumbnail":null}`))
	})

	result, err := client.Extract(context.Background(), "https://www.tiktok.com/@alice/photo/1")
	gt.NoError(t, err)
	gt.Value(t, gotBody["url"]).Equal("https://www.tiktok.com/@alice/photo/1")
	gt.Value(t, result.Author).Equal("alice")
	gt.Value(t, result.Type).Equal(model.PostTypeSlideshow)
	gt.A(t, result.Images).Length(2)
	gt.Value(t, result.Video).Equal("")
	gt.Value(t, result.Thumbnail).Equal("")
}

func TestClient_Extract_BackendError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{name: "json detail", status: http.StatusBadRequest, body: `{"detail":"Không thể lấy thông tin"}`, wantDetail: "Không thể lấy thông tin"},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
		{name: "json without detail", status: http.StatusInternalServerError, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := client.Extract(context.Background(), "https://example.com/post")
			gt.Error(t, err)
			gt.True(t, result == nil)
			gt.True(t, goerr.HasTag(err, types.ErrTagBackend))

			var backendErr *model.BackendError
			gt.True(t, errors.As(err, &backendErr))
			gt.Value(t, backendErr.StatusCode).Equal(tt.status)
			gt.Value(t, backendErr.Detail).Equal(tt.wantDetail)
		})
	}
}

func TestClient_Extract_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := backend.NewClient(baseURL)
	gt.NoError(t, err)

	_, err = client.Extract(context.Background(), "https://example.com/post")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagTransport))

	var urlErr *url.Error
	gt.True(t, errors.As(err, &urlErr))
}

func TestClient_DownloadZip(t *testing.T) {
	var gotBody struct {
		URLs     []string `json:"urls"`
		Filename string   `json:"filename"`
	}
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/api/download-zip")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK-zip-bytes"))
	})

	payload, err := client.DownloadZip(context.Background(), []string{"a", "b"}, "caption.zip")
	gt.NoError(t, err)
	defer payload.Close()

	gt.Value(t, gotBody.URLs).Equal([]string{"a", "b"})
	gt.Value(t, gotBody.Filename).Equal("caption.zip")
	gt.Value(t, payload.Filename).Equal("caption.zip")
	gt.Value(t, payload.ContentType).Equal("application/zip")

	data, err := io.ReadAll(payload.Body)
	gt.NoError(t, err)
	gt.Value(t, string(data)).Equal("PK-zip-bytes")
}

func TestClient_DownloadZip_Error(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})

	payload, err := client.DownloadZip(context.Background(), []string{"a"}, "x.zip")
	gt.Error(t, err)
	gt.True(t, payload == nil)
	gt.True(t, goerr.HasTag(err, types.ErrTagBackend))
}

func TestClient_ConvertMP3(t *testing.T) {
	tests := []struct {
		name         string
		disposition  string
		wantFilename string
	}{
		{name: "plain filename", disposition: `attachment; filename="song.mp3"`, wantFilename: "song.mp3"},
		{name: "extended filename", disposition: `attachment; filename*=UTF-8''track.m4a`, wantFilename: "track.m4a"},
		{name: "no header", disposition: "", wantFilename: backend.DefaultAudioFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				gt.Value(t, r.URL.Path).Equal("/api/convert-mp3")
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				w.Header().Set("Content-Type", "audio/mpeg")
				_, _ = w.Write([]byte("ID3"))
			})

			payload, err := client.ConvertMP3(context.Background(), "https://example.com/post")
			gt.NoError(t, err)
			defer payload.Close()
			gt.Value(t, payload.Filename).Equal(tt.wantFilename)
			gt.Value(t, payload.ContentType).Equal("audio/mpeg")
		})
	}
}

func TestClient_ConvertMP3_Detail(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Không tìm thấy file. Vui lòng thử lại."}`))
	})

	_, err := client.ConvertMP3(context.Background(), "https://example.com/post")
	var backendErr *model.BackendError
	gt.True(t, errors.As(err, &backendErr))
	gt.Value(t, backendErr.Detail).Equal("Không tìm thấy file. Vui lòng thử lại.")
}

func TestClient_ImageDownloadURL(t *testing.T) {
	client, err := backend.NewClient("http://localhost:8000/")
	gt.NoError(t, err)

	link := client.ImageDownloadURL("https://cdn.example.com/img 1.jpg?x=1&y=2", "caption_1.jpg")
	gt.Value(t, link).Equal("http://localhost:8000/api/download-image?url=https%3A%2F%2Fcdn.example.com%2Fimg+1.jpg%3Fx%3D1%26y%3D2&filename=caption_1.jpg")

	u, err := url.Parse(link)
	gt.NoError(t, err)
	gt.Value(t, u.Query().Get("url")).Equal("https://cdn.example.com/img 1.jpg?x=1&y=2")
	gt.Value(t, u.Query().Get("filename")).Equal("caption_1.jpg")
}
