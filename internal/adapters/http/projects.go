package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"deliverypulse/internal/core/domain"
)

type projectRequest struct {
	Name     string `json:"name"`
	ClientID string `json:"client_id"`
}

func (rt *Router) projectsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.listProjects(w, r)
	case http.MethodPost:
		rt.createProject(w, r)
	default:
		methodNotAllowed(w)
	}
}

// projectSubtree serves /v1/projects/{id} and the two nested
// collections, statuses and transcriptions.
func (rt *Router) projectSubtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v1/projects/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		rt.projectByID(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "statuses":
		rt.projectStatuses(w, r, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "transcriptions":
		rt.projectTranscriptions(w, r, parts[0])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) projectByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		project, err := rt.projects.GetWithClient(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
	case http.MethodPut:
		rt.updateProject(w, r, id)
	case http.MethodDelete:
		if err := rt.projects.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) listProjects(w http.ResponseWriter, r *http.Request) {
	var clientIDs []string
	if raw := strings.TrimSpace(r.URL.Query().Get("client_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				clientIDs = append(clientIDs, id)
			}
		}
	}

	projects, err := rt.projects.List(r.Context(), clientIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (rt *Router) createProject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeProjectRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ClientID:  req.ClientID,
		CreatedBy: requestUser(r),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rt.projects.Create(r.Context(), project); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (rt *Router) updateProject(w http.ResponseWriter, r *http.Request, id string) {
	req, err := decodeProjectRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := rt.projects.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	project.Name = req.Name
	project.ClientID = req.ClientID
	project.UpdatedAt = time.Now().UTC()
	if err := rt.projects.Update(r.Context(), project); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (rt *Router) projectStatuses(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		statuses, err := rt.statuses.ListByProject(r.Context(), projectID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statuses)
	case http.MethodPost:
		rt.createStatus(w, r, projectID)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) createStatus(w http.ResponseWriter, r *http.Request, projectID string) {
	var fields domain.StatusFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, domain.WrapError(domain.ErrInvalidInput, "decode status", err))
		return
	}

	status := &domain.ProjectStatus{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		StatusFields: fields,
		UpdatedBy:    requestUser(r),
	}
	if err := rt.statuses.Create(r.Context(), status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

func (rt *Router) projectTranscriptions(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	transcriptions, err := rt.transcriptions.ListByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcriptions)
}

func decodeProjectRequest(r *http.Request) (projectRequest, error) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, domain.WrapError(domain.ErrInvalidInput, "decode project", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.Name == "" || req.ClientID == "" {
		return req, domain.WrapError(domain.ErrInvalidInput, "decode project", fmt.Errorf("name and client_id are required"))
	}
	return req, nil
}
