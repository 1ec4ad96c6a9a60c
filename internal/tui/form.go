package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okaya/ledgerdesk/internal/filter"
	"github.com/okaya/ledgerdesk/internal/model"
)

// recordForm holds the raw field text of the create/edit form. Resolution to
// ids and decimals happens on submit, not per keystroke.
type recordForm struct {
	fields [6]string
	cursor int
}

const (
	fieldAmount = iota
	fieldType
	fieldDate
	fieldPayment
	fieldSubcategory
	fieldDescription
)

var recordFieldLabels = [6]string{
	"amount", "type", "date", "payment method", "subcategory", "description",
}

func (f *recordForm) value() *string { return &f.fields[f.cursor] }

// openRecordForm seeds the form for create (row == nil) or edit.
func (a *App) openRecordForm(row *model.Transaction) {
	a.form = recordForm{}
	a.formErr = ""
	a.editingID = 0
	if row == nil {
		a.form.fields[fieldType] = model.TypeExpense
		a.form.fields[fieldDate] = time.Now().In(a.tz).Format("2006-01-02 15:04")
	} else {
		a.editingID = row.ID
		a.form.fields[fieldAmount] = row.Amount
		a.form.fields[fieldType] = row.Type
		a.form.fields[fieldDate] = row.TransactionDate.In(a.tz).Format("2006-01-02 15:04")
		a.form.fields[fieldPayment] = row.PaymentMethodName
		if a.form.fields[fieldPayment] == "" {
			a.form.fields[fieldPayment] = strconv.FormatInt(row.PaymentMethod, 10)
		}
		a.form.fields[fieldSubcategory] = row.SubcategoryLabel
		a.form.fields[fieldDescription] = row.Description
	}
	a.modal = modalRecord
}

func (a *App) handleRecordKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		return a, nil
	case tea.KeyUp, tea.KeyShiftTab:
		if a.form.cursor > 0 {
			a.form.cursor--
		}
		return a, nil
	case tea.KeyDown, tea.KeyTab:
		if a.form.cursor < len(a.form.fields)-1 {
			a.form.cursor++
		}
		return a, nil
	case tea.KeyEnter:
		return a.submitRecordForm()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		v := a.form.value()
		if len(*v) > 0 {
			*v = (*v)[:len(*v)-1]
		}
		return a, nil
	case tea.KeySpace:
		*a.form.value() += " "
		return a, nil
	case tea.KeyRunes:
		*a.form.value() += string(m.Runes)
		return a, nil
	}
	return a, nil
}

// submitRecordForm resolves the typed fields into a draft and sends it. A
// validation failure keeps the form open with the message shown inline.
func (a *App) submitRecordForm() (tea.Model, tea.Cmd) {
	draft := model.Draft{
		Amount:      strings.TrimSpace(a.form.fields[fieldAmount]),
		Type:        strings.ToUpper(strings.TrimSpace(a.form.fields[fieldType])),
		Date:        strings.TrimSpace(a.form.fields[fieldDate]),
		Description: strings.TrimSpace(a.form.fields[fieldDescription]),
	}
	draft.PaymentMethod = a.resolvePaymentMethod(a.form.fields[fieldPayment])

	sub := strings.TrimSpace(a.form.fields[fieldSubcategory])
	if sub != "" {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			draft.Subcategory = &id
		} else if a.deps.Refs != nil {
			if ref, ok := a.deps.Refs.MatchSubcategory(sub); ok {
				draft.Subcategory = &ref.ID
			} else {
				draft.SubcategoryName = sub
			}
		} else {
			draft.SubcategoryName = sub
		}
	}

	if err := draft.Validate(a.tz); err != nil {
		a.formErr = err.Error()
		return a, nil
	}
	id := a.editingID
	a.modal = modalNone
	a.status = "saving..."
	return a, a.saveDraftCmd(id, draft)
}

// resolvePaymentMethod accepts an id or a reference-list name.
func (a *App) resolvePaymentMethod(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id
	}
	if a.deps.Refs == nil {
		return 0
	}
	for _, r := range a.deps.Refs.PaymentMethods {
		if strings.EqualFold(r.Name, raw) {
			return r.ID
		}
	}
	return 0
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		return a, nil
	case tea.KeyUp, tea.KeyShiftTab:
		if a.formCursor > 0 {
			a.formCursor--
		}
		return a, nil
	case tea.KeyDown, tea.KeyTab:
		if a.formCursor < len(filter.Fields)-1 {
			a.formCursor++
		}
		return a, nil
	case tea.KeyEnter:
		if err := a.formProfile.Validate(a.tz); err != nil {
			a.status = err.Error()
			return a, nil
		}
		a.modal = modalNone
		a.profile = a.formProfile
		a.saveProfile()
		return a, a.reload()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		field := filter.Fields[a.formCursor]
		v := a.formProfile.Get(field)
		if len(v) > 0 {
			a.formProfile.Set(field, v[:len(v)-1])
		}
		return a, nil
	case tea.KeySpace:
		field := filter.Fields[a.formCursor]
		a.formProfile.Set(field, a.formProfile.Get(field)+" ")
		return a, nil
	case tea.KeyRunes:
		field := filter.Fields[a.formCursor]
		a.formProfile.Set(field, a.formProfile.Get(field)+string(m.Runes))
		return a, nil
	}
	return a, nil
}
