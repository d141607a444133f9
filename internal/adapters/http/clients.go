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

type clientRequest struct {
	Name string `json:"name"`
}

func (rt *Router) clientsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.listClients(w, r)
	case http.MethodPost:
		rt.createClient(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) clientByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/clients/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		client, err := rt.clients.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, client)
	case http.MethodPut:
		rt.updateClient(w, r, id)
	case http.MethodDelete:
		if err := rt.clients.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) listClients(w http.ResponseWriter, r *http.Request) {
	clients, err := rt.clients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (rt *Router) createClient(w http.ResponseWriter, r *http.Request) {
	req, err := decodeClientRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rt.clients.Create(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (rt *Router) updateClient(w http.ResponseWriter, r *http.Request, id string) {
	req, err := decodeClientRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	client, err := rt.clients.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	client.Name = req.Name
	client.UpdatedAt = time.Now().UTC()
	if err := rt.clients.Update(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func decodeClientRequest(r *http.Request) (clientRequest, error) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, domain.WrapError(domain.ErrInvalidInput, "decode client", err)
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, domain.WrapError(domain.ErrInvalidInput, "decode client", fmt.Errorf("name is required"))
	}
	return req, nil
}
