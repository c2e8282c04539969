package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expenses/internal/core"
)

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListExpenses(w, r)
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed",
			"error", err,
			"operation", "list")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in core.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.store.Create(r.Context(), in)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create expense failed",
			"error", err,
			"expense_description", in.Description,
			"operation", "create")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Expense created",
		"expense_id", created.ID,
		"expense_description", created.Description,
		"amount", created.Amount,
		"category", created.Category,
		"operation", "create")

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed",
			"error", err,
			"expense_id", id,
			"operation", "delete")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	slog.InfoContext(r.Context(), "Expense deleted",
		"expense_id", id,
		"operation", "delete")

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func (s *Server) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
