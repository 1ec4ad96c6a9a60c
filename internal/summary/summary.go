// Package summary derives the totals shown above the table. Totals are
// recomputed from scratch on every successful load and never cached across
// reloads.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/okaya/ledgerdesk/internal/model"
)

// Totals holds the derived summary figures for one record set.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// Compute sums the loaded set. A missing or unparseable amount counts as
// zero; the output never contains anything but finite decimals.
func Compute(records []model.Transaction) Totals {
	t := Totals{Count: len(records)}
	for _, r := range records {
		amt, err := decimal.NewFromString(r.Amount)
		if err != nil {
			continue
		}
		switch r.Type {
		case model.TypeIncome:
			t.Income = t.Income.Add(amt)
		case model.TypeExpense:
			t.Expense = t.Expense.Add(amt)
		}
	}
	t.Net = t.Income.Sub(t.Expense)
	return t
}
