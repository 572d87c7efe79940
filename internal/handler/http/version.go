package http

import (
	"io"
	"net/http"
)

// getServerVersion answers with the plain-text app version. The build commit
// travels in the X-Build-Commit header.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	appInfo := h.services.AppInfoService

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Build-Commit", appInfo.GetBuildInfo(r.Context()).BuildCommit())
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, appInfo.GetAppVersion(r.Context()))
}
