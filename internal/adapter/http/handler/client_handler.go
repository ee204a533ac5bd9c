package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// ClientHandler handles client directory HTTP requests.
type ClientHandler struct {
	clientUC *usecase.ClientUseCase
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientUC *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{clientUC: clientUC}
}

// Create adds a client.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	client, err := h.clientUC.Create(r.Context(), s.OrganizationID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create client", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientFromDomain(client))
}

// List lists the organization's clients ordered by name.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	clients, err := h.clientUC.List(r.Context(), s.OrganizationID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list clients", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientsFromDomain(clients))
}

// Get retrieves a client by ID.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	client, err := h.clientUC.Get(r.Context(), s.OrganizationID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Update replaces a client's payload.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	client, err := h.clientUC.Update(r.Context(), s.OrganizationID, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Delete removes a client. Services linked to the client keep their embedded
// snapshot and lose only the reference.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	if err := h.clientUC.Delete(r.Context(), s.OrganizationID, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete client", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
