package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// RenderHook runs after a render or trigger change has been published
type RenderHook func(ctx context.Context, screen *model.Screen)

// Option is a functional option for Session configuration
type Option func(*Session)

// WithPresenter sets the presenter that receives every screen update
func WithPresenter(p interfaces.Presenter) Option {
	return func(s *Session) {
		s.presenter = p
	}
}

// WithClipboard sets the clipboard used by Paste
func WithClipboard(c interfaces.Clipboard) Option {
	return func(s *Session) {
		s.clipboard = c
	}
}

// WithRenderHook registers a hook invoked after content changes
func WithRenderHook(h RenderHook) Option {
	return func(s *Session) {
		s.hooks = append(s.hooks, h)
	}
}

type handler func(ctx context.Context, arg string) (*model.SavedFile, error)

// Session orchestrates the requests of one client session and owns its state
type Session struct {
	backend   interfaces.Backend
	saver     interfaces.Saver
	presenter interfaces.Presenter
	clipboard interfaces.Clipboard
	hooks     []RenderHook
	guard     *inflight
	handlers  map[model.Action]handler

	mu    sync.Mutex
	state model.Session
	ui    model.UIState
	view  *model.View
}

var _ interfaces.SessionUseCase = (*Session)(nil)

// NewSession creates a session in the default mode
func NewSession(backend interfaces.Backend, saver interfaces.Saver, opts ...Option) *Session {
	s := &Session{
		backend: backend,
		saver:   saver,
		guard:   newInflight(),
		state:   model.NewSession(),
		ui: model.UIState{
			Zip:     model.Trigger{Label: labelZip},
			Convert: model.Trigger{Label: labelConvert},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[model.Action]handler{
		model.ActionSubmitExtract: func(ctx context.Context, arg string) (*model.SavedFile, error) {
			if arg == "" {
				arg = s.Screen().UI.Input
			}
			return nil, s.Extract(ctx, arg)
		},
		model.ActionToggleMode: func(ctx context.Context, _ string) (*model.SavedFile, error) {
			s.ToggleMode(ctx)
			return nil, nil
		},
		model.ActionSetMode: func(ctx context.Context, arg string) (*model.SavedFile, error) {
			mode, err := model.ParseMode(arg)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid mode", goerr.T(types.ErrTagValidation))
			}
			s.SetMode(ctx, mode)
			return nil, nil
		},
		model.ActionDownloadZip: func(ctx context.Context, _ string) (*model.SavedFile, error) {
			return s.DownloadZip(ctx)
		},
		model.ActionConvertAudio: func(ctx context.Context, _ string) (*model.SavedFile, error) {
			return s.ConvertAudio(ctx)
		},
		model.ActionResetSession: func(ctx context.Context, _ string) (*model.SavedFile, error) {
			s.Reset(ctx)
			return nil, nil
		},
		model.ActionPaste: func(ctx context.Context, _ string) (*model.SavedFile, error) {
			s.Paste(ctx)
			return nil, nil
		},
	}

	return s
}

// Dispatch runs the handler registered for action
func (s *Session) Dispatch(ctx context.Context, action model.Action, arg string) (*model.SavedFile, error) {
	h, ok := s.handlers[action]
	if !ok {
		return nil, goerr.New("unknown action",
			goerr.T(types.ErrTagValidation),
			goerr.V("action", action),
		)
	}
	return h(ctx, arg)
}

// Screen returns a snapshot of the current state
func (s *Session) Screen() *model.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// InFlight reports whether action is currently outstanding
func (s *Session) InFlight(action model.Action) bool {
	return s.guard.running(action)
}

// SetMode switches the display mode and hides the result panel. It issues no
// request and keeps the result and source URL.
func (s *Session) SetMode(ctx context.Context, mode model.Mode) {
	s.update(ctx, func() {
		s.state = s.state.WithMode(mode)
		s.ui.PanelVisible = false
	})
	ctxlog.From(ctx).Debug("Mode switched", "mode", mode)
}

// ToggleMode switches to the other display mode
func (s *Session) ToggleMode(ctx context.Context) {
	s.SetMode(ctx, s.Screen().Session.Mode.Other())
}

// Extract submits url for extraction and renders the result. The previous
// result survives a failure, but the panel stays hidden until the next success.
func (s *Session) Extract(ctx context.Context, rawURL string) error {
	logger := ctxlog.From(ctx)

	// The submit control is disabled while an extraction runs, so any input is
	// ignored then, including an empty one
	if s.guard.running(model.ActionSubmitExtract) {
		logger.Debug("Extraction ignored while another is running", "url", rawURL)
		return goerr.New("extraction already in flight", goerr.T(types.ErrTagBusy))
	}

	postURL := strings.TrimSpace(rawURL)
	if postURL == "" {
		s.update(ctx, func() {
			s.ui.Input = rawURL
			s.ui.Error = msgEmptyURL
		})
		return goerr.New("url is empty", goerr.T(types.ErrTagValidation))
	}

	if err := s.guard.acquire(model.ActionSubmitExtract); err != nil {
		logger.Debug("Extraction ignored while another is running", "url", postURL)
		return err
	}
	defer s.guard.release(model.ActionSubmitExtract)

	s.update(ctx, func() {
		s.ui.Input = rawURL
		s.ui.Error = ""
		s.ui.PanelVisible = false
		s.ui.Loading = true
		s.state = s.state.WithSubmitted(postURL)
	})
	defer s.update(ctx, func() {
		s.ui.Loading = false
	})

	logger.Info("Extracting post", "url", postURL)

	result, err := s.backend.Extract(ctx, postURL)
	if err != nil {
		s.update(ctx, func() {
			s.ui.Error = userMessage(err, msgExtractFailed)
		})
		return goerr.Wrap(err, "failed to extract post", goerr.V("url", postURL))
	}

	view := s.render(ctx, result)
	if !view.Visible() {
		return goerr.New(view.Error,
			goerr.T(types.ErrTagEmptyResult),
			goerr.V("url", postURL),
			goerr.V("type", result.Type),
		)
	}

	logger.Info("Extraction rendered",
		"type", result.Type,
		"images", len(result.Images),
		"has_video", result.HasVideo(),
	)
	return nil
}

// DownloadZip saves every slideshow image as one archive named after the
// title. Without images it does nothing.
func (s *Session) DownloadZip(ctx context.Context) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	result := s.Screen().Session.Result
	if !result.HasImages() {
		logger.Debug("No images to download as zip")
		return nil, nil
	}

	if err := s.guard.acquire(model.ActionDownloadZip); err != nil {
		logger.Debug("Zip download ignored while another is running")
		return nil, err
	}
	defer s.guard.release(model.ActionDownloadZip)

	s.update(ctx, func() {
		s.ui.Zip = model.Trigger{Label: labelZipping, InFlight: true}
	})
	defer s.restoreTrigger(ctx, func() {
		s.ui.Zip = model.Trigger{Label: labelZip}
	})

	zipName := ZipFilename(result.Title)
	logger.Info("Downloading images as zip", "filename", zipName, "count", len(result.Images))

	payload, err := s.backend.DownloadZip(ctx, result.Images, zipName)
	if err != nil {
		s.alert(ctx, msgZipAlertPrefix+zipMessage(err))
		return nil, goerr.Wrap(err, "failed to download zip", goerr.V("filename", zipName))
	}
	defer closePayload(ctx, payload)

	saved, err := s.saver.Save(ctx, zipName, payload.Body)
	if err != nil {
		s.alert(ctx, msgZipAlertPrefix+err.Error())
		return nil, goerr.Wrap(err, "failed to save zip", goerr.V("filename", zipName))
	}

	logger.Info("Saved zip", "path", saved.Path, "size", saved.Size)
	return saved, nil
}

// ConvertAudio saves the audio track of the last submitted URL. It depends on
// the source URL only, not on the rendered result.
func (s *Session) ConvertAudio(ctx context.Context) (*model.SavedFile, error) {
	logger := ctxlog.From(ctx)

	sourceURL := s.Screen().Session.SourceURL
	if sourceURL == "" {
		s.update(ctx, func() {
			s.ui.Error = msgNoSourceURL
		})
		return nil, goerr.New("no source URL to convert", goerr.T(types.ErrTagValidation))
	}

	if err := s.guard.acquire(model.ActionConvertAudio); err != nil {
		logger.Debug("Conversion ignored while another is running")
		return nil, err
	}
	defer s.guard.release(model.ActionConvertAudio)

	s.update(ctx, func() {
		s.ui.Convert = model.Trigger{Label: labelConverting, InFlight: true}
	})
	defer s.restoreTrigger(ctx, func() {
		s.ui.Convert = model.Trigger{Label: labelConvert}
	})

	logger.Info("Converting to audio", "url", sourceURL)

	payload, err := s.backend.ConvertMP3(ctx, sourceURL)
	if err != nil {
		s.update(ctx, func() {
			s.ui.Error = msgConvertPrefix + userMessage(err, msgConvertFailed)
		})
		return nil, goerr.Wrap(err, "failed to convert audio", goerr.V("url", sourceURL))
	}
	defer closePayload(ctx, payload)

	saved, err := s.saver.Save(ctx, payload.Filename, payload.Body)
	if err != nil {
		s.update(ctx, func() {
			s.ui.Error = msgConvertPrefix + err.Error()
		})
		return nil, goerr.Wrap(err, "failed to save audio", goerr.V("filename", payload.Filename))
	}

	logger.Info("Saved audio", "path", saved.Path, "size", saved.Size)
	return saved, nil
}

// ImageLink returns the proxy download link of the image at a 0-based index.
// Following the link is left to the caller.
func (s *Session) ImageLink(index int) (string, error) {
	result := s.Screen().Session.Result
	if !result.HasImages() || index < 0 || index >= len(result.Images) {
		return "", goerr.New("no image at index",
			goerr.T(types.ErrTagValidation),
			goerr.V("index", index),
		)
	}
	return s.backend.ImageDownloadURL(result.Images[index], ImageFilename(result.Title, index)), nil
}

// Paste fills the URL input from the clipboard. Failures are logged only.
func (s *Session) Paste(ctx context.Context) {
	logger := ctxlog.From(ctx)

	if s.clipboard == nil {
		logger.Warn("Clipboard is not available")
		return
	}

	text, err := s.clipboard.ReadText()
	if err != nil {
		logger.Error("Failed to read clipboard", "error", err)
		return
	}

	s.update(ctx, func() {
		s.ui.Input = text
	})
}

// Reset clears the input and hides the result panel for a new download
func (s *Session) Reset(ctx context.Context) {
	s.update(ctx, func() {
		s.ui.Input = ""
		s.ui.PanelVisible = false
	})
}

// render stores result and publishes the rendered view. The panel is only
// revealed when the view has something to show.
func (s *Session) render(ctx context.Context, result *model.ExtractionResult) *model.View {
	var view *model.View
	s.update(ctx, func() {
		s.state = s.state.WithResult(result)
		view = Render(s.state, s.backend.ImageDownloadURL)
		s.view = view
		s.ui.Revision++
		if view.Visible() {
			s.ui.PanelVisible = true
		} else {
			s.ui.PanelVisible = false
			s.ui.Error = view.Error
		}
	})

	if view.Visible() {
		s.runHooks(ctx)
	}
	return view
}

func (s *Session) restoreTrigger(ctx context.Context, fn func()) {
	s.update(ctx, fn)
	s.runHooks(ctx)
}

func (s *Session) runHooks(ctx context.Context) {
	if len(s.hooks) == 0 {
		return
	}
	screen := s.Screen()
	for _, h := range s.hooks {
		h(ctx, screen)
	}
}

func (s *Session) alert(ctx context.Context, msg string) {
	s.mu.Lock()
	s.ui.Alert = msg
	s.mu.Unlock()

	if s.presenter != nil {
		s.presenter.Alert(ctx, msg)
	}
}

// update applies fn under the state lock and publishes the new screen
func (s *Session) update(ctx context.Context, fn func()) {
	s.mu.Lock()
	fn()
	screen := s.snapshot()
	s.mu.Unlock()

	if s.presenter != nil {
		s.presenter.Present(ctx, screen)
	}
}

// snapshot must be called with s.mu held
func (s *Session) snapshot() *model.Screen {
	return &model.Screen{
		Session: s.state,
		UI:      s.ui,
		View:    s.view,
	}
}

func closePayload(ctx context.Context, p *model.Payload) {
	if err := p.Close(); err != nil {
		ctxlog.From(ctx).Warn("Failed to release payload", "error", err)
	}
}

// userMessage picks what to show for a failed request: the backend's detail,
// the transport error's own message, or fallback
func userMessage(err error, fallback string) string {
	var backendErr *model.BackendError
	if errors.As(err, &backendErr) {
		if backendErr.Detail != "" {
			return backendErr.Detail
		}
		return fallback
	}

	if goerr.HasTag(err, types.ErrTagTransport) {
		return transportMessage(err)
	}

	return fallback
}

// zipMessage ignores the response body: the zip endpoint may answer with
// anything on failure
func zipMessage(err error) string {
	if goerr.HasTag(err, types.ErrTagTransport) {
		return transportMessage(err)
	}
	return msgZipFailed
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Error()
	}
	return err.Error()
}
