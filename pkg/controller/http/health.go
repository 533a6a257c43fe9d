package http

import (
	"net/http"

	"github.com/tiksnap/tiksnap/pkg/domain/interfaces"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(sessionUC interfaces.SessionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:  "healthy",
			Service: "tiksnap",
			Version: types.Version,
			Mode:    sessionUC.Screen().Session.Mode,
		}

		writeJSON(r.Context(), w, http.StatusOK, status)
	}
}
