package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PageSize is the number of ledger entries returned per page.
const PageSize = 15

// BatchLimit caps how many row writes a single transaction may carry
// during migration and cascade deletes. One below the historical
// 500-operation write-unit ceiling, leaving room for a trailing
// aggregate update.
const BatchLimit = 499

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending
}

type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Status PaymentStatus   `json:"status"`
	Notes  string          `json:"notes,omitempty"`
}

// Contribution is the payment's share of the rental's totalPayments:
// the amount when paid, zero when pending.
func (p Payment) Contribution() decimal.Decimal {
	if p.Status == PaymentStatusPaid {
		return p.Amount
	}
	return decimal.Zero
}

type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

type Due struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// PaymentPatch is a field-level partial update. Nil fields keep the
// stored value. Only Amount and Status can change the parent aggregate.
type PaymentPatch struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Date   *time.Time       `json:"date,omitempty"`
	Status *PaymentStatus   `json:"status,omitempty"`
	Notes  *string          `json:"notes,omitempty"`
}

// Apply merges the patch over the stored payment and returns the result.
func (p PaymentPatch) Apply(old Payment) Payment {
	merged := old
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.Notes != nil {
		merged.Notes = *p.Notes
	}
	return merged
}

type ExpensePatch struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (p ExpensePatch) Apply(old Expense) Expense {
	merged := old
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	return merged
}

type DuePatch struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (p DuePatch) Apply(old Due) Due {
	merged := old
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	return merged
}

// Cursor continues a reverse-chronological page after the given entry.
// The id is the secondary sort key so that same-date entries paginate
// deterministically.
type Cursor struct {
	Date time.Time `json:"date"`
	ID   string    `json:"id"`
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses a token produced by Encode. An empty token means
// "first page" and yields a nil cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	return &c, nil
}

// EntryKind tags a ledger entry with its destination table.
type EntryKind string

const (
	KindPayment EntryKind = "payment"
	KindExpense EntryKind = "expense"
	KindDue     EntryKind = "due"
)

// LegacyLedger is the embedded pre-normalization ledger of one rental,
// already decoded from either legacy encoding (array or keyed map) into
// plain slices.
type LegacyLedger struct {
	RentalID    string
	DataVersion int
	Payments    []Payment
	Expenses    []Expense
	Dues        []Due
}

// MigrationItem is one unit of the migration worklist: a legacy entry
// tagged with the child table it is bound for. Exactly one of the three
// entry fields is set, matching Kind.
type MigrationItem struct {
	Kind    EntryKind
	Payment *Payment
	Expense *Expense
	Due     *Due
}
