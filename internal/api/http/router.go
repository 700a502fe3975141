package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentledger-backend/internal/security"
	"rentledger-backend/internal/service"
	"rentledger-backend/internal/storage"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Asset     *AssetHandler
	Contact   *ContactHandler
	Rental    *RentalHandler
	Ledger    *LedgerHandler
	Statement *StatementHandler
	Migration *MigrationHandler
}

// NewHandlers wires handlers from the service layer.
func NewHandlers(auth service.AuthService, assets service.AssetService, contacts service.ContactService,
	rentals service.RentalService, ledger service.LedgerService, statements service.StatementService,
	migrations service.MigrationService) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(auth),
		Asset:     NewAssetHandler(assets),
		Contact:   NewContactHandler(contacts),
		Rental:    NewRentalHandler(rentals),
		Ledger:    NewLedgerHandler(ledger),
		Statement: NewStatementHandler(statements),
		Migration: NewMigrationHandler(migrations),
	}
}

// NewRouter mounts all API routes. Everything under /api/v1 except auth
// requires a valid access token. When localFiles is non-nil, uploaded
// photos are served from disk at /files/.
func NewRouter(h *Handlers, tokens security.TokenManager, localFiles *storage.LocalStorage) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	auth := r.PathPrefix("/api/v1/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods("POST")
	auth.HandleFunc("/login", h.Auth.Login).Methods("POST")
	auth.HandleFunc("/firebase", h.Auth.LoginWithIDToken).Methods("POST")
	auth.HandleFunc("/refresh", h.Auth.Refresh).Methods("POST")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/assets", h.Asset.Create).Methods("POST")
	api.HandleFunc("/assets", h.Asset.List).Methods("GET")
	api.HandleFunc("/assets/{id}", h.Asset.Get).Methods("GET")
	api.HandleFunc("/assets/{id}", h.Asset.Update).Methods("PUT")
	api.HandleFunc("/assets/{id}", h.Asset.Delete).Methods("DELETE")

	api.HandleFunc("/contacts", h.Contact.Create).Methods("POST")
	api.HandleFunc("/contacts", h.Contact.List).Methods("GET")
	api.HandleFunc("/contacts/photos", h.Contact.UploadPhoto).Methods("POST")
	api.HandleFunc("/contacts/{id}", h.Contact.Get).Methods("GET")
	api.HandleFunc("/contacts/{id}", h.Contact.Update).Methods("PUT")
	api.HandleFunc("/contacts/{id}", h.Contact.Delete).Methods("DELETE")

	api.HandleFunc("/rentals", h.Rental.Create).Methods("POST")
	api.HandleFunc("/rentals", h.Rental.List).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.Rental.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.Rental.Update).Methods("PUT")
	api.HandleFunc("/rentals/{id}", h.Rental.Delete).Methods("DELETE")

	api.HandleFunc("/rentals/{rentalID}/payments", h.Ledger.AddPayment).Methods("POST")
	api.HandleFunc("/rentals/{rentalID}/payments", h.Ledger.ListPayments).Methods("GET")
	api.HandleFunc("/rentals/{rentalID}/payments/{id}", h.Ledger.UpdatePayment).Methods("PATCH")
	api.HandleFunc("/rentals/{rentalID}/payments/{id}", h.Ledger.DeletePayment).Methods("DELETE")

	api.HandleFunc("/rentals/{rentalID}/expenses", h.Ledger.AddExpense).Methods("POST")
	api.HandleFunc("/rentals/{rentalID}/expenses", h.Ledger.ListExpenses).Methods("GET")
	api.HandleFunc("/rentals/{rentalID}/expenses/{id}", h.Ledger.UpdateExpense).Methods("PATCH")
	api.HandleFunc("/rentals/{rentalID}/expenses/{id}", h.Ledger.DeleteExpense).Methods("DELETE")

	api.HandleFunc("/rentals/{rentalID}/dues", h.Ledger.AddDue).Methods("POST")
	api.HandleFunc("/rentals/{rentalID}/dues", h.Ledger.ListDues).Methods("GET")
	api.HandleFunc("/rentals/{rentalID}/dues/{id}", h.Ledger.UpdateDue).Methods("PATCH")
	api.HandleFunc("/rentals/{rentalID}/dues/{id}", h.Ledger.DeleteDue).Methods("DELETE")

	api.HandleFunc("/rentals/{rentalID}/statement", h.Statement.Get).Methods("GET")
	api.HandleFunc("/rentals/{rentalID}/statement.xlsx", h.Statement.Export).Methods("GET")

	api.HandleFunc("/migrations/pending", h.Migration.Pending).Methods("GET")
	api.HandleFunc("/migrations/run", h.Migration.MigrateAll).Methods("POST")
	api.HandleFunc("/migrations/run/{rentalID}", h.Migration.MigrateOne).Methods("POST")

	if localFiles != nil {
		r.PathPrefix("/files/").Handler(
			http.StripPrefix("/files/", http.FileServer(http.Dir(localFiles.Dir()))))
	}

	return r
}
