package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	sub := int64(4)
	return Draft{
		Amount:        "125.50",
		Type:          TypeExpense,
		Date:          "2026-02-10 14:30",
		PaymentMethod: 2,
		Subcategory:   &sub,
		Description:   "groceries",
	}
}

func TestDraftValidateOK(t *testing.T) {
	require.NoError(t, validDraft().Validate(time.UTC))
}

func TestDraftValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"zero amount", func(d *Draft) { d.Amount = "0" }, "amount"},
		{"negative amount", func(d *Draft) { d.Amount = "-5" }, "amount"},
		{"non-numeric amount", func(d *Draft) { d.Amount = "abc" }, "amount"},
		{"bad type", func(d *Draft) { d.Type = "TRANSFER" }, "type"},
		{"bad date", func(d *Draft) { d.Date = "10.02.2026" }, "transaction_date"},
		{"no payment method", func(d *Draft) { d.PaymentMethod = 0 }, "payment_method"},
		{"no subcategory", func(d *Draft) { d.Subcategory = nil }, "subcategory"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			err := d.Validate(time.UTC)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestDraftPayloadNewSubcategoryNameWins(t *testing.T) {
	d := validDraft()
	d.SubcategoryName = "Yeni Kategori"

	body := d.Payload(time.UTC)
	require.Equal(t, "Yeni Kategori", body["subcategory_name"])
	_, hasID := body["subcategory"]
	require.False(t, hasID)
}

func TestDraftPayloadConvertsDateToUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	d := validDraft()
	body := d.Payload(loc)
	require.Equal(t, "2026-02-10T11:30:00Z", body["transaction_date"])
	require.Equal(t, "125.50", body["amount"])
	require.Equal(t, int64(2), body["payment_method"])
	require.Equal(t, int64(4), body["subcategory"])
}

func TestParseDraftDateLayouts(t *testing.T) {
	for _, raw := range []string{"2026-02-10", "2026-02-10 14:30", "2026-02-10T14:30"} {
		_, err := ParseDraftDate(raw, time.UTC)
		require.NoError(t, err, raw)
	}
	_, err := ParseDraftDate("Feb 10", time.UTC)
	require.Error(t, err)
}
