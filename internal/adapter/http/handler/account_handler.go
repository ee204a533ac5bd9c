package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/auradigitalchile/agendamiento-fletes/internal/adapter/http/dto"
	"github.com/auradigitalchile/agendamiento-fletes/internal/domain"
	"github.com/auradigitalchile/agendamiento-fletes/internal/usecase"
)

// AccountHandler handles transfer account HTTP requests.
type AccountHandler struct {
	accountUC *usecase.TransferAccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.TransferAccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create adds a transfer account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Create(r.Context(), s.OrganizationID, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transfer account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List lists transfer accounts. ?all=true includes inactive accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var err error
	var accounts []*domain.TransferAccount
	if r.URL.Query().Get("all") == "true" {
		accounts, err = h.accountUC.ListAll(r.Context(), s.OrganizationID)
	} else {
		accounts, err = h.accountUC.ListActive(r.Context(), s.OrganizationID)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transfer accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Update renames and/or toggles a transfer account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Update(r.Context(), s.OrganizationID, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transfer account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an unreferenced transfer account. A 409 carries the count of
// movements blocking the delete.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	if err := h.accountUC.Delete(r.Context(), s.OrganizationID, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transfer account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
