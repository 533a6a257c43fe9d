package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
	"github.com/tiksnap/tiksnap/pkg/utils/errutil"
)

// SessionHandler exposes the session operations over HTTP
type SessionHandler struct {
	sessionUC interfaces.SessionUseCase
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionUC interfaces.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC}
}

type extractRequest struct {
	URL string `json:"url"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type savedResponse struct {
	Saved  *model.SavedFile `json:"saved,omitempty"`
	Screen *model.Screen    `json:"screen"`
}

// GetScreen returns the current screen
func (h *SessionHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.sessionUC.Screen())
}

// Extract submits a post URL
func (h *SessionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.sessionUC.Extract(operationContext(r), req.URL)
	h.respond(w, r, "Extraction failed", nil, err)
}

// SetMode switches the display mode
func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, err := h.sessionUC.Dispatch(operationContext(r), model.ActionSetMode, req.Mode)
	h.respond(w, r, "Mode switch failed", nil, err)
}

// Toggle switches to the other display mode
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.sessionUC.ToggleMode(operationContext(r))
	h.respond(w, r, "", nil, nil)
}

// DownloadZip saves the slideshow images as one archive
func (h *SessionHandler) DownloadZip(w http.ResponseWriter, r *http.Request) {
	saved, err := h.sessionUC.DownloadZip(operationContext(r))
	h.respond(w, r, "Zip download failed", saved, err)
}

// ConvertAudio saves the audio track of the last submitted URL
func (h *SessionHandler) ConvertAudio(w http.ResponseWriter, r *http.Request) {
	saved, err := h.sessionUC.ConvertAudio(operationContext(r))
	h.respond(w, r, "Audio conversion failed", saved, err)
}

// Reset clears the input for a new download
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.sessionUC.Reset(operationContext(r))
	h.respond(w, r, "", nil, nil)
}

// Image redirects to the proxy download link of a 0-based image index
func (h *SessionHandler) Image(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		err = goerr.Wrap(err, "image index must be an integer",
			goerr.T(types.ErrTagValidation),
			goerr.V("index", raw),
		)
		writeError(ctx, w, err, http.StatusBadRequest, nil)
		return
	}

	link, err := h.sessionUC.ImageLink(index)
	if err != nil {
		writeError(ctx, w, err, http.StatusNotFound, nil)
		return
	}

	http.Redirect(w, r, link, http.StatusFound)
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, msg string, saved *model.SavedFile, err error) {
	ctx := r.Context()
	screen := h.sessionUC.Screen()

	if err != nil {
		errutil.Handle(ctx, msg, err)

		status := statusOf(err)
		if status == http.StatusOK {
			writeJSON(ctx, w, status, &savedResponse{Screen: screen})
			return
		}
		writeError(ctx, w, err, status, screen)
		return
	}

	writeJSON(ctx, w, http.StatusOK, &savedResponse{Saved: saved, Screen: screen})
}

// operationContext detaches a started operation from the client connection
func operationContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		err = goerr.Wrap(err, "invalid JSON body", goerr.T(types.ErrTagValidation))
		writeError(r.Context(), w, err, http.StatusBadRequest, nil)
		return false
	}
	return true
}
