package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrDueNotFound     = errors.New("due not found")

	ErrUnauthenticated = errors.New("no authenticated user")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrRentalNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrExpenseNotFound) ||
		errors.Is(err, ErrDueNotFound)
}

// PartialMigrationError reports a batch migration that stopped at one
// rental. Rentals listed in Migrated are durably converted and stay
// that way; the failing rental keeps its legacy representation.
type PartialMigrationError struct {
	RentalID string
	Migrated []string
	Err      error
}

func (e *PartialMigrationError) Error() string {
	return fmt.Sprintf("migration failed at rental %s after %d migrated: %v", e.RentalID, len(e.Migrated), e.Err)
}

func (e *PartialMigrationError) Unwrap() error {
	return e.Err
}
