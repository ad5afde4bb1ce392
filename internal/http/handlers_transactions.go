package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pranithapadala/FinWell/internal/core"
	"github.com/pranithapadala/FinWell/internal/services"
	"github.com/pranithapadala/FinWell/internal/storage"
)

type createTransactionRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	txs, err := s.dashboard.Transactions(r.Context(), month)
	if err != nil {
		s.writeDashboardError(w, r, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.transactions.Create(r.Context(), services.TransactionDraft{
		Date:     req.Date,
		Category: sanitizeInput(req.Category),
		Type:     req.Type,
		Amount:   req.Amount,
		Note:     sanitizeInput(req.Note),
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDate):
			writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		case errors.Is(err, core.ErrInvalidType):
			writeError(w, http.StatusUnprocessableEntity, "invalid type, expected INCOME or EXPENSE")
		case errors.Is(err, core.ErrInvalidAmount):
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		default:
			slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
