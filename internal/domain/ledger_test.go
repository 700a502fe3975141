package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestPaymentContribution(t *testing.T) {
	paid := Payment{Amount: d("100"), Status: PaymentStatusPaid}
	pending := Payment{Amount: d("50"), Status: PaymentStatusPending}

	assert.True(t, paid.Contribution().Equal(d("100")))
	assert.True(t, pending.Contribution().IsZero())
}

func TestComputeTotals(t *testing.T) {
	payments := []Payment{
		{Amount: d("100"), Status: PaymentStatusPaid},
		{Amount: d("50"), Status: PaymentStatusPending},
	}
	expenses := []Expense{{Amount: d("30")}}
	dues := []Due{{Amount: d("20")}}

	totals := ComputeTotals(payments, expenses, dues)

	assert.True(t, totals.TotalPayments.Equal(d("100")), "pending payments must not count")
	assert.True(t, totals.TotalExpenses.Equal(d("30")))
	assert.True(t, totals.TotalDues.Equal(d("20")))
	assert.True(t, totals.NetIncome.Equal(d("70")), "net income ignores dues")
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, nil, nil)
	assert.True(t, totals.TotalPayments.IsZero())
	assert.True(t, totals.NetIncome.IsZero())
}

func TestPaymentPatchApply(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := Payment{ID: "p1", Amount: d("100"), Date: date, Status: PaymentStatusPending, Notes: "march"}

	newAmount := d("120")
	newStatus := PaymentStatusPaid
	merged := PaymentPatch{Amount: &newAmount, Status: &newStatus}.Apply(old)

	assert.Equal(t, "p1", merged.ID)
	assert.True(t, merged.Amount.Equal(d("120")))
	assert.Equal(t, PaymentStatusPaid, merged.Status)
	assert.Equal(t, date, merged.Date, "unpatched fields keep stored values")
	assert.Equal(t, "march", merged.Notes)
}

func TestCursorRoundtrip(t *testing.T) {
	c := Cursor{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), ID: "abc-123"}

	decoded, err := DecodeCursor(c.Encode())
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.True(t, decoded.Date.Equal(c.Date))
	assert.Equal(t, c.ID, decoded.ID)
}

func TestDecodeCursorEmpty(t *testing.T) {
	c, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDecodeCursorMalformed(t *testing.T) {
	_, err := DecodeCursor("not base64 at all!!!")
	assert.Error(t, err)

	// Valid base64, invalid JSON.
	_, err = DecodeCursor("bm90LWpzb24")
	assert.Error(t, err)
}

func TestRentalNormalized(t *testing.T) {
	assert.False(t, (&Rental{DataVersion: 0}).Normalized())
	assert.False(t, (&Rental{DataVersion: 1}).Normalized())
	assert.True(t, (&Rental{DataVersion: DataVersionNormalized}).Normalized())
}
