package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateType string

const (
	RateTypeDaily   RateType = "daily"
	RateTypeMonthly RateType = "monthly"
)

func (t RateType) Valid() bool {
	return t == RateTypeDaily || t == RateTypeMonthly
}

type RentalStatus string

const (
	RentalStatusActive RentalStatus = "active"
	RentalStatusEnded  RentalStatus = "ended"
)

func (s RentalStatus) Valid() bool {
	return s == RentalStatusActive || s == RentalStatusEnded
}

type BadgeColor string

const (
	BadgeBlue        BadgeColor = "blue"
	BadgeGreen       BadgeColor = "green"
	BadgeRed         BadgeColor = "red"
	BadgeYellow      BadgeColor = "yellow"
	BadgePurple      BadgeColor = "purple"
	BadgeOrange      BadgeColor = "orange"
	BadgeTeal        BadgeColor = "teal"
	BadgePink        BadgeColor = "pink"
	BadgeBlack       BadgeColor = "black"
	BadgeGrey        BadgeColor = "grey"
	BadgeMaroon      BadgeColor = "maroon"
	BadgeLightYellow BadgeColor = "lightyellow"
	BadgeDarkGreen   BadgeColor = "darkgreen"
)

func (c BadgeColor) Valid() bool {
	switch c {
	case BadgeBlue, BadgeGreen, BadgeRed, BadgeYellow, BadgePurple, BadgeOrange,
		BadgeTeal, BadgePink, BadgeBlack, BadgeGrey, BadgeMaroon, BadgeLightYellow, BadgeDarkGreen:
		return true
	}
	return false
}

// DataVersionNormalized marks rentals whose ledger entries live in the
// per-kind child tables. Anything below it (or unset) still carries the
// legacy embedded ledger on the rental row itself.
const DataVersionNormalized = 2

// Rental is the aggregate root of the ledger. The four total fields are
// derived caches over the child tables and are maintained in the same
// transaction as every child mutation.
type Rental struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	AssetID         string          `json:"asset_id"`
	ContactID       string          `json:"contact_id"`
	Rate            decimal.Decimal `json:"rate"`
	RateType        RateType        `json:"rate_type"`
	StartDate       time.Time       `json:"start_date"`
	NextPaymentDate time.Time       `json:"next_payment_date"`
	BadgeColor      BadgeColor      `json:"badge_color"`
	BadgeCharacter  string          `json:"badge_character"`
	Status          RentalStatus    `json:"status"`
	TotalPayments   decimal.Decimal `json:"total_payments"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalDues       decimal.Decimal `json:"total_dues"`
	NetIncome       decimal.Decimal `json:"net_income"`
	DataVersion     int             `json:"data_version"`
	CreatedOn       time.Time       `json:"created_on"`
}

// Normalized reports whether the rental's ledger has been moved out of
// the legacy embedded representation.
func (r *Rental) Normalized() bool {
	return r.DataVersion >= DataVersionNormalized
}

// AggregateTotals is a from-scratch recomputation of the rental's four
// cached aggregate fields.
type AggregateTotals struct {
	TotalPayments decimal.Decimal
	TotalExpenses decimal.Decimal
	TotalDues     decimal.Decimal
	NetIncome     decimal.Decimal
}

// ComputeTotals sums the given entries the same way the incremental
// maintenance does: only paid payments count, expenses and dues count
// unconditionally, net income ignores dues.
func ComputeTotals(payments []Payment, expenses []Expense, dues []Due) AggregateTotals {
	var t AggregateTotals
	for _, p := range payments {
		t.TotalPayments = t.TotalPayments.Add(p.Contribution())
	}
	for _, e := range expenses {
		t.TotalExpenses = t.TotalExpenses.Add(e.Amount)
	}
	for _, d := range dues {
		t.TotalDues = t.TotalDues.Add(d.Amount)
	}
	t.NetIncome = t.TotalPayments.Sub(t.TotalExpenses)
	return t
}
