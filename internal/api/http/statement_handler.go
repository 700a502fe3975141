package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/service"
)

type StatementHandler struct {
	statements service.StatementService
}

func NewStatementHandler(statements service.StatementService) *StatementHandler {
	return &StatementHandler{statements: statements}
}

func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := h.statements.GetStatement(r.Context(), ownerID, mux.Vars(r)["rentalID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Export streams the statement workbook as an attachment.
func (h *StatementHandler) Export(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, name, err := h.statements.ExportXLSX(r.Context(), ownerID, mux.Vars(r)["rentalID"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
