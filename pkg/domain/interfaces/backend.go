package interfaces

import (
	"context"

	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

// Backend defines the operations of the extraction backend
type Backend interface {
	// Extract requests metadata and asset URLs for a post URL
	Extract(ctx context.Context, url string) (*model.ExtractionResult, error)

	// DownloadZip requests a zip archive of the given asset URLs
	DownloadZip(ctx context.Context, urls []string, filename string) (*model.Payload, error)

	// ConvertMP3 requests the audio track of a post URL
	ConvertMP3(ctx context.Context, url string) (*model.Payload, error)

	// ImageDownloadURL builds the proxy link that downloads a single asset
	// under the given filename. It performs no request.
	ImageDownloadURL(assetURL, filename string) string
}
