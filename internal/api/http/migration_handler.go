package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/service"
)

type MigrationHandler struct {
	migrations service.MigrationService
}

func NewMigrationHandler(migrations service.MigrationService) *MigrationHandler {
	return &MigrationHandler{migrations: migrations}
}

// Pending lists the caller's rentals still on the legacy ledger format.
func (h *MigrationHandler) Pending(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.migrations.ListUnmigrated(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *MigrationHandler) MigrateOne(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rentalID := mux.Vars(r)["rentalID"]
	if err := h.migrations.MigrateRental(r.Context(), ownerID, rentalID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"rental_id": rentalID, "status": "migrated"})
}

type migrateAllResponse struct {
	Migrated []string `json:"migrated"`
	Failed   string   `json:"failed,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// MigrateAll converts every pending rental. A partial failure still
// reports the rentals that were converted before the stop.
func (h *MigrationHandler) MigrateAll(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userIDFrom(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	migrated, err := h.migrations.MigrateAll(r.Context(), ownerID)
	if err != nil {
		var partial *domain.PartialMigrationError
		if errors.As(err, &partial) {
			writeJSON(w, http.StatusInternalServerError, migrateAllResponse{
				Migrated: partial.Migrated,
				Failed:   partial.RentalID,
				Error:    partial.Err.Error(),
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, migrateAllResponse{Migrated: migrated})
}
