package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/service"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Payments

func (h *LedgerHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.PaymentInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.ledger.AddPayment(r.Context(), ownerID, mux.Vars(r)["rentalID"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *LedgerHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.PaymentPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	vars := mux.Vars(r)
	p, err := h.ledger.UpdatePayment(r.Context(), ownerID, vars["rentalID"], vars["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *LedgerHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)
	if err := h.ledger.DeletePayment(r.Context(), ownerID, vars["rentalID"], vars["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LedgerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.ledger.ListPayments(r.Context(), ownerID, mux.Vars(r)["rentalID"], r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Expenses

func (h *LedgerHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.ExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}
	e, err := h.ledger.AddExpense(r.Context(), ownerID, mux.Vars(r)["rentalID"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *LedgerHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.ExpensePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	vars := mux.Vars(r)
	e, err := h.ledger.UpdateExpense(r.Context(), ownerID, vars["rentalID"], vars["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *LedgerHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)
	if err := h.ledger.DeleteExpense(r.Context(), ownerID, vars["rentalID"], vars["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LedgerHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.ledger.ListExpenses(r.Context(), ownerID, mux.Vars(r)["rentalID"], r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Dues

func (h *LedgerHandler) AddDue(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.DueInput
	if !decodeBody(w, r, &in) {
		return
	}
	d, err := h.ledger.AddDue(r.Context(), ownerID, mux.Vars(r)["rentalID"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *LedgerHandler) UpdateDue(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var patch domain.DuePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	vars := mux.Vars(r)
	d, err := h.ledger.UpdateDue(r.Context(), ownerID, vars["rentalID"], vars["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *LedgerHandler) DeleteDue(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	vars := mux.Vars(r)
	if err := h.ledger.DeleteDue(r.Context(), ownerID, vars["rentalID"], vars["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LedgerHandler) ListDues(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.ledger.ListDues(r.Context(), ownerID, mux.Vars(r)["rentalID"], r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
