package summary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okaya/ledgerdesk/internal/model"
)

func tx(typ, amount string) model.Transaction {
	return model.Transaction{Type: typ, Amount: amount}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	require.Zero(t, got.Count)
	require.True(t, got.Income.IsZero())
	require.True(t, got.Expense.IsZero())
	require.True(t, got.Net.IsZero())
}

func TestComputeMixed(t *testing.T) {
	got := Compute([]model.Transaction{
		tx(model.TypeIncome, "1500.00"),
		tx(model.TypeIncome, "250.50"),
		tx(model.TypeExpense, "99.99"),
	})
	require.Equal(t, 3, got.Count)
	require.Equal(t, "1750.50", got.Income.StringFixed(2))
	require.Equal(t, "99.99", got.Expense.StringFixed(2))
	require.Equal(t, "1650.51", got.Net.StringFixed(2))
}

func TestComputeSkipsUnparseableAmounts(t *testing.T) {
	got := Compute([]model.Transaction{
		tx(model.TypeIncome, "100"),
		tx(model.TypeExpense, "oops"),
		tx(model.TypeExpense, ""),
	})
	require.Equal(t, 3, got.Count)
	require.Equal(t, "100.00", got.Income.StringFixed(2))
	require.True(t, got.Expense.IsZero())
	require.Equal(t, "100.00", got.Net.StringFixed(2))
}
