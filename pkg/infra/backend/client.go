package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

const (
	pathExtract       = "/api/extract"
	pathDownloadZip   = "/api/download-zip"
	pathDownloadImage = "/api/download-image"
	pathConvertMP3    = "/api/convert-mp3"

	// maxErrorBody bounds how much of an error response is read for "detail"
	maxErrorBody = 1 << 20
)

// Client talks to the extraction backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse backend URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend URL must be http or https", goerr.V("url", baseURL))
	}

	client := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		// No timeout: requests last as long as the transport allows
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

type urlRequest struct {
	URL string `json:"url"`
}

type zipRequest struct {
	URLs     []string `json:"urls"`
	Filename string   `json:"filename"`
}

// Extract requests metadata and asset URLs for a post URL
func (c *Client) Extract(ctx context.Context, postURL string) (*model.ExtractionResult, error) {
	resp, err := c.post(ctx, pathExtract, &urlRequest{URL: postURL})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, pathExtract); err != nil {
		return nil, err
	}

	var result model.ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode extraction result",
			goerr.T(types.ErrTagBackend),
			goerr.V("path", pathExtract),
		)
	}

	return &result, nil
}

// DownloadZip requests a zip archive of the given asset URLs. The returned
// payload carries the requested filename and must be closed by the caller.
func (c *Client) DownloadZip(ctx context.Context, urls []string, filename string) (*model.Payload, error) {
	resp, err := c.post(ctx, pathDownloadZip, &zipRequest{URLs: urls, Filename: filename})
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp, pathDownloadZip); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return &model.Payload{
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// ConvertMP3 requests the audio track of a post URL. The filename comes from
// Content-Disposition when the backend sends one.
func (c *Client) ConvertMP3(ctx context.Context, postURL string) (*model.Payload, error) {
	resp, err := c.post(ctx, pathConvertMP3, &urlRequest{URL: postURL})
	if err != nil {
		return nil, err
	}

	if err := checkStatus(resp, pathConvertMP3); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return &model.Payload{
		Filename:    FilenameFromContentDisposition(resp.Header.Get("Content-Disposition"), DefaultAudioFilename),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// ImageDownloadURL builds the proxy link for a single asset. Parameter order
// is url then filename.
func (c *Client) ImageDownloadURL(assetURL, filename string) string {
	return c.baseURL + pathDownloadImage +
		"?url=" + url.QueryEscape(assetURL) +
		"&filename=" + url.QueryEscape(filename)
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	logger := ctxlog.From(ctx)

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal request body", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger.Debug("Sending backend request", "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request",
			goerr.T(types.ErrTagTransport),
			goerr.V("path", path),
			goerr.V("request_id", requestID),
		)
	}

	logger.Debug("Received backend response",
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	return resp, nil
}

// checkStatus turns a non-2xx response into a tagged *model.BackendError
func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail, _ := ParseErrorDetail(body)

	return goerr.Wrap(&model.BackendError{StatusCode: resp.StatusCode, Detail: detail},
		"backend request failed",
		goerr.T(types.ErrTagBackend),
		goerr.V("path", path),
		goerr.V("status", resp.StatusCode),
	)
}
