package service

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"rentledger-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	// LoginWithIDToken exchanges a Firebase ID token for local tokens,
	// provisioning the user on first sight.
	LoginWithIDToken(ctx context.Context, idToken string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type AssetService interface {
	CreateAsset(ctx context.Context, ownerID string, in AssetInput) (*domain.Asset, error)
	GetAsset(ctx context.Context, ownerID, id string) (*domain.Asset, error)
	ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error)
	UpdateAsset(ctx context.Context, ownerID, id string, in AssetInput) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, ownerID, id string) error
}

type ContactService interface {
	CreateContact(ctx context.Context, ownerID string, in ContactInput) (*domain.Contact, error)
	GetContact(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context, ownerID string) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, ownerID, id string, in ContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, ownerID, id string) error
	UploadPhoto(ctx context.Context, ownerID, filename, contentType string, data io.Reader, size int64) (*domain.Photo, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, ownerID string, in RentalInput) (*domain.Rental, error)
	GetRental(ctx context.Context, ownerID, id string) (*domain.Rental, error)
	ListRentals(ctx context.Context, ownerID string) ([]domain.Rental, error)
	UpdateRental(ctx context.Context, ownerID, id string, in RentalInput) (*domain.Rental, error)
	DeleteRental(ctx context.Context, ownerID, id string) error
}

type LedgerService interface {
	AddPayment(ctx context.Context, ownerID, rentalID string, in PaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, ownerID, rentalID, paymentID string, patch domain.PaymentPatch) (*domain.Payment, error)
	DeletePayment(ctx context.Context, ownerID, rentalID, paymentID string) error
	ListPayments(ctx context.Context, ownerID, rentalID, cursor string) (*PaymentPage, error)

	AddExpense(ctx context.Context, ownerID, rentalID string, in ExpenseInput) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, rentalID, expenseID string, patch domain.ExpensePatch) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, rentalID, expenseID string) error
	ListExpenses(ctx context.Context, ownerID, rentalID, cursor string) (*ExpensePage, error)

	AddDue(ctx context.Context, ownerID, rentalID string, in DueInput) (*domain.Due, error)
	UpdateDue(ctx context.Context, ownerID, rentalID, dueID string, patch domain.DuePatch) (*domain.Due, error)
	DeleteDue(ctx context.Context, ownerID, rentalID, dueID string) error
	ListDues(ctx context.Context, ownerID, rentalID, cursor string) (*DuePage, error)
}

type MigrationService interface {
	ListUnmigrated(ctx context.Context, ownerID string) ([]domain.Rental, error)
	MigrateRental(ctx context.Context, ownerID, rentalID string) error
	// MigrateAll converts the owner's legacy rentals one at a time and
	// stops at the first failure, returning the ids migrated so far and
	// a *domain.PartialMigrationError naming the rental that failed.
	MigrateAll(ctx context.Context, ownerID string) ([]string, error)
}

type StatementService interface {
	GetStatement(ctx context.Context, ownerID, rentalID string) (*Statement, error)
	ExportXLSX(ctx context.Context, ownerID, rentalID string) ([]byte, string, error)
}

type EmailService interface {
	SendPaymentDueReminder(ctx context.Context, email, name, assetName string, rate decimal.Decimal, dueDate time.Time) error
}

// Input payloads.

type AssetInput struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	RegistrationNumber string `json:"registration_number"`
}

type ContactInput struct {
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	RelativeName   string         `json:"relative_name"`
	AlternatePhone string         `json:"alternate_phone"`
	Note           string         `json:"note"`
	IDCard1        *domain.IDCard `json:"id_card1,omitempty"`
	IDCard2        *domain.IDCard `json:"id_card2,omitempty"`
}

type RentalInput struct {
	AssetID         string              `json:"asset_id"`
	ContactID       string              `json:"contact_id"`
	Rate            decimal.Decimal     `json:"rate"`
	RateType        domain.RateType     `json:"rate_type"`
	StartDate       time.Time           `json:"start_date"`
	NextPaymentDate time.Time           `json:"next_payment_date"`
	BadgeColor      domain.BadgeColor   `json:"badge_color"`
	BadgeCharacter  string              `json:"badge_character"`
	Status          domain.RentalStatus `json:"status"`
}

type PaymentInput struct {
	Amount decimal.Decimal      `json:"amount"`
	Date   time.Time            `json:"date"`
	Status domain.PaymentStatus `json:"status"`
	Notes  string               `json:"notes"`
}

type ExpenseInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

type DueInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Page results. NextCursor is an opaque token for the follow-up call;
// HasMore tells the client whether that call is worth making.

type PaymentPage struct {
	Items      []domain.Payment `json:"items"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

type ExpensePage struct {
	Items      []domain.Expense `json:"items"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

type DuePage struct {
	Items      []domain.Due `json:"items"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// Statement is the complete unpaginated ledger history of one rental,
// for export.
type Statement struct {
	Rental   *domain.Rental   `json:"rental"`
	Payments []domain.Payment `json:"payments"`
	Expenses []domain.Expense `json:"expenses"`
	Dues     []domain.Due     `json:"dues"`
}
