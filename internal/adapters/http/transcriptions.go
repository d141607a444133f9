package httpadapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"deliverypulse/internal/core/domain"
)

func (rt *Router) uploadTranscription(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	projectID := strings.TrimSpace(r.FormValue("project_id"))
	if projectID == "" {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "upload transcription",
			fmt.Errorf("multipart field 'project_id' is required")))
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "upload transcription",
			fmt.Errorf("multipart field 'file' is required")))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("read upload: %w", err))
		return
	}

	tr, err := rt.ingestor.Upload(r.Context(), projectID, fileHeader.Filename, content, requestUser(r))
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(rt.service, string(tr.FileKind))
	}
	writeJSON(w, http.StatusAccepted, tr)
}

func (rt *Router) transcriptionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/transcriptions/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		tr, err := rt.transcriptions.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tr)
	case http.MethodDelete:
		rt.deleteTranscription(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

// deleteTranscription removes the row and its stored source file. A
// missing file is not an error; the row is authoritative.
func (rt *Router) deleteTranscription(w http.ResponseWriter, r *http.Request, id string) {
	tr, err := rt.transcriptions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := rt.transcriptions.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := rt.storage.Delete(r.Context(), tr.FilePath); err != nil {
		rt.logger.Warn("delete_upload_file_failed", "transcription_id", id, "path", tr.FilePath, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}
