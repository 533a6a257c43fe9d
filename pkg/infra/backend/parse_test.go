package backend_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/infra/backend"
)

func TestParseErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
		wantOK     bool
	}{
		{name: "string detail", body: `{"detail":"Không thể lấy thông tin"}`, wantDetail: "Không thể lấy thông tin", wantOK: true},
		{name: "empty detail", body: `{"detail":""}`},
		{name: "missing detail", body: `{"error":"boom"}`},
		{name: "validation error list", body: `{"detail":[{"loc":["body","url"],"msg":"field required"}]}`},
		{name: "not json", body: `<html>Bad Gateway</html>`},
		{name: "empty body", body: ``},
		{name: "json array", body: `["detail"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, ok := backend.ParseErrorDetail([]byte(tt.body))
			gt.Value(t, ok).Equal(tt.wantOK)
			gt.Value(t, detail).Equal(tt.wantDetail)
		})
	}
}

func TestFilenameFromContentDisposition(t *testing.T) {
	const fallback = "tiktok_audio.mp3"

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: fallback},
		{name: "quoted plain form", header: `attachment; filename="song.mp3"`, want: "song.mp3"},
		{name: "unquoted plain form", header: `attachment; filename=song.mp3`, want: "song.mp3"},
		{name: "plain form takes rest of line", header: `attachment; filename="a.mp3"; size=10`, want: "a.mp3; size=10"},
		{name: "plain form wins over extended form", header: `attachment; filename="a.mp3"; filename*=UTF-8''b.mp3`, want: "a.mp3; filename*=UTF-8''b.mp3"},
		{name: "extended form decoded", header: `attachment; filename*=UTF-8''b%C3%A0i%20h%C3%A1t.m4a`, want: "bài hát.m4a"},
		{name: "empty plain value", header: `attachment; filename=`, want: fallback},
		{name: "only quotes", header: `attachment; filename=""`, want: fallback},
		{name: "inline without filename", header: `inline`, want: fallback},
		{name: "broken extended form", header: `attachment; filename*=`, want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, backend.FilenameFromContentDisposition(tt.header, fallback)).Equal(tt.want)
		})
	}
}
