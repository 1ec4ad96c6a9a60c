package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/okaya/ledgerdesk/internal/filter"
	"github.com/okaya/ledgerdesk/internal/ledger"
	"github.com/okaya/ledgerdesk/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	deletedStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true)
)

func (a *App) View() string {
	body := a.renderList()
	switch a.modal {
	case modalFilter:
		body += "\n\n" + a.renderFilterForm()
	case modalRecord:
		body += "\n\n" + a.renderRecordForm()
	case modalConfirm:
		body += "\n\n" + a.renderConfirm()
	}
	return body
}

func (a *App) renderList() string {
	title := "Transactions"
	if a.profile.ShowDeleted {
		title = "Deleted Transactions"
	}
	out := titleStyle.Render(title) + "\n"
	out += a.renderSummary() + "\n"
	if fs := a.filterSummary(); fs != "" {
		out += "Filters: " + fs + "\n"
	}

	if a.loading {
		out += "loading...\n"
	} else if len(a.rows) == 0 {
		out += "(no records match)\n"
	}
	for i, r := range a.rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		check := "[ ]"
		if a.selected.Has(r.ID) {
			check = "[x]"
		}
		sign := "+"
		if r.Type != model.TypeIncome {
			sign = "-"
		}
		line := fmt.Sprintf("%s %s %s  %-7s %s%s%s  %-16s %-16s %s",
			marker, check,
			r.TransactionDate.In(a.tz).Format(a.dateFormat),
			r.Type, sign, a.currency, r.Amount,
			truncate(r.PaymentMethodName, 16),
			truncate(r.SubcategoryLabel, 16),
			truncate(r.Description, 40),
		)
		if !r.IsActive {
			line = deletedStyle.Render(line)
		} else if i == a.cursor {
			line = cursorStyle.Render(line)
		}
		out += line + "\n"
	}

	out += "\n" + a.renderFooter()
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSummary() string {
	return fmt.Sprintf("Income %s%s  Expense %s%s  Net %s%s  (%d records, %d checked)",
		a.currency, a.totals.Income.StringFixed(2),
		a.currency, a.totals.Expense.StringFixed(2),
		a.currency, a.totals.Net.StringFixed(2),
		a.totals.Count, a.selected.Size(),
	)
}

func (a *App) filterSummary() string {
	var parts []string
	for _, f := range filter.Fields {
		if v := a.profile.Get(f); v != "" {
			parts = append(parts, f+"="+v)
		}
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderFooter() string {
	k := a.keys
	bindings := []string{
		help(k.Toggle), help(k.SelectAll), help(k.Filter), help(k.ClearFilter),
		help(k.ShowDeleted), help(k.Reload),
	}
	if a.profile.ShowDeleted {
		if a.caps.CanRestore {
			bindings = append(bindings, help(k.Restore))
		}
		if a.caps.IsAdmin() {
			bindings = append(bindings, help(k.HardDelete))
		}
	} else {
		bindings = append(bindings, help(k.New), help(k.Edit), help(k.Delete))
	}
	if a.caps.CanExport {
		bindings = append(bindings, help(k.Export))
	}
	bindings = append(bindings, help(k.Quit))
	return strings.Join(bindings, "  ")
}

func (a *App) renderFilterForm() string {
	out := titleStyle.Render("Filters") + "\n"
	for i, f := range filter.Fields {
		marker := " "
		if i == a.formCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-15s %s\n", marker, f, a.formProfile.Get(f))
	}
	out += "[enter] Apply  [tab] Next field  [esc] Cancel"
	return out
}

func (a *App) renderRecordForm() string {
	title := "New transaction"
	if a.editingID != 0 {
		title = fmt.Sprintf("Edit transaction #%d", a.editingID)
	}
	out := titleStyle.Render(title) + "\n"
	for i, label := range recordFieldLabels {
		marker := " "
		if i == a.form.cursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-15s %s\n", marker, label, a.form.fields[i])
	}
	if a.formErr != "" {
		out += "! " + a.formErr + "\n"
	}
	out += "[enter] Save  [tab] Next field  [esc] Cancel"
	return out
}

func (a *App) renderConfirm() string {
	var q string
	switch a.pendingOp {
	case ledger.OpHardDelete:
		q = fmt.Sprintf("Permanently delete %d record(s)? This cannot be undone.", len(a.pendingIDs))
	default:
		q = fmt.Sprintf("Delete %d record(s)?", len(a.pendingIDs))
	}
	return titleStyle.Render("Confirm") + "\n" + q + "\n[y] Yes  [n] No"
}

func help(b key.Binding) string {
	h := b.Help()
	return "[" + h.Key + "] " + h.Desc
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
