package browser

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/infra/backend"
)

// defaultImageFilename is used when neither the response nor the link name
// the file
const defaultImageFilename = "image.jpg"

// Navigator follows download links and saves what they return, standing in
// for a browser handling a "save as" response
type Navigator struct {
	httpClient *http.Client
	saver      interfaces.Saver
}

// New creates a Navigator that saves through saver
func New(httpClient *http.Client, saver interfaces.Saver) *Navigator {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Navigator{
		httpClient: httpClient,
		saver:      saver,
	}
}

// Open downloads link and saves the body
func (n *Navigator) Open(ctx context.Context, link string) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	u, err := url.Parse(link)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid link", goerr.V("link", link))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("link", link))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open link",
			goerr.T(types.ErrTagTransport),
			goerr.V("link", link),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(&model.BackendError{StatusCode: resp.StatusCode}, "link returned an error",
			goerr.T(types.ErrTagBackend),
			goerr.V("link", link),
		)
	}

	fallback := u.Query().Get("filename")
	if fallback == "" {
		fallback = defaultImageFilename
	}
	name := backend.FilenameFromContentDisposition(resp.Header.Get("Content-Disposition"), fallback)

	saved, err := n.saver.Save(ctx, name, resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save linked file", goerr.V("link", link))
	}

	logger.Info("Saved linked file", "path", saved.Path, "size", saved.Size)
	return saved, nil
}
