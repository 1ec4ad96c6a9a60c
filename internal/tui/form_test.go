package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okaya/ledgerdesk/internal/model"
	"github.com/okaya/ledgerdesk/internal/refdata"
)

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			press(t, a, "space")
			continue
		}
		press(t, a, string(r))
	}
}

func TestFilterFormApplyReloads(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)

	press(t, a, "f")
	require.Equal(t, modalFilter, a.modal)

	// first field is date_from
	typeText(t, a, "2026-01-01")
	gen := a.gen
	cmd := press(t, a, "enter")
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, "2026-01-01", a.profile.DateFrom)
	require.NotNil(t, cmd)
	require.Greater(t, a.gen, gen)
}

func TestFilterFormRejectsBadDate(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)

	press(t, a, "f")
	typeText(t, a, "soon")
	require.Nil(t, press(t, a, "enter"))
	require.Equal(t, modalFilter, a.modal)
	require.Contains(t, a.status, "date_from")
}

func TestFilterFormEscCancels(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)

	press(t, a, "f")
	typeText(t, a, "2026-01-01")
	press(t, a, "esc")
	require.Equal(t, modalNone, a.modal)
	require.Empty(t, a.profile.DateFrom)
}

func TestRecordFormValidationKeepsModalOpen(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)

	press(t, a, "n")
	require.Equal(t, modalRecord, a.modal)
	require.Equal(t, model.TypeExpense, a.form.fields[fieldType])

	// amount left empty
	require.Nil(t, press(t, a, "enter"))
	require.Equal(t, modalRecord, a.modal)
	require.Contains(t, a.formErr, "amount")
}

func TestRecordFormResolvesReferences(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)
	a.deps.Refs = &refdata.Cache{
		PaymentMethods: []model.Reference{{ID: 2, Name: "Credit Card"}},
		Subcategories:  []model.Reference{{ID: 10, Name: "Groceries"}},
	}

	press(t, a, "n")
	a.form.fields[fieldAmount] = "42.00"
	a.form.fields[fieldPayment] = "credit card"
	a.form.fields[fieldSubcategory] = "grocries" // fuzzy
	cmd := press(t, a, "enter")
	require.Equal(t, modalNone, a.modal)
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(savedMsg)
	require.True(t, ok)
}

func TestEditSeedsFormFromRow(t *testing.T) {
	svc := &fakeService{}
	a := newTestApp(t, svc, model.RoleAdmin)
	r := row(7, model.TypeIncome, "99.00")
	r.PaymentMethodName = "Cash"
	r.SubcategoryLabel = "Salary"
	r.Description = "april"
	loadRows(t, a, []model.Transaction{r})

	press(t, a, "e")
	require.Equal(t, modalRecord, a.modal)
	require.Equal(t, int64(7), a.editingID)
	require.Equal(t, "99.00", a.form.fields[fieldAmount])
	require.Equal(t, model.TypeIncome, a.form.fields[fieldType])
	require.Equal(t, "Cash", a.form.fields[fieldPayment])
	require.Equal(t, "Salary", a.form.fields[fieldSubcategory])
	require.Equal(t, "april", a.form.fields[fieldDescription])
}
