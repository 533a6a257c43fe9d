package backend

import (
	"encoding/json"
	"mime"
	"strings"
)

// DefaultAudioFilename is used when the convert response names no file
const DefaultAudioFilename = "tiktok_audio.mp3"

// ParseErrorDetail returns the "detail" field of a JSON error body. It never
// fails: a body that is not JSON, or whose detail is missing, empty or not a
// string, yields ok == false.
func ParseErrorDetail(body []byte) (detail string, ok bool) {
	var resp struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}

	s, isString := resp.Detail.(string)
	if !isString || s == "" {
		return "", false
	}
	return s, true
}

// FilenameFromContentDisposition picks the save name out of a
// Content-Disposition header value.
//
// The plain form wins: everything after the first "filename=" up to the end of
// the line, with every double quote removed. Without a plain form the RFC 5987
// "filename*=" form is decoded. Anything else yields fallback.
func FilenameFromContentDisposition(header, fallback string) string {
	if header == "" {
		return fallback
	}

	const plainKey = "filename="
	if idx := strings.Index(header, plainKey); idx >= 0 {
		value := header[idx+len(plainKey):]
		if nl := strings.IndexAny(value, "\r\n"); nl >= 0 {
			value = value[:nl]
		}
		if value != "" {
			if name := strings.ReplaceAll(value, `"`, ""); name != "" {
				return name
			}
		}
	}

	if strings.Contains(header, "filename*=") {
		if _, params, err := mime.ParseMediaType(header); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}

	return fallback
}
