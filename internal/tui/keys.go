package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okaya/ledgerdesk/internal/filter"
	"github.com/okaya/ledgerdesk/internal/ledger"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	Reload      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	ShowDeleted key.Binding
	Delete      key.Binding
	Restore     key.Binding
	HardDelete  key.Binding
	New         key.Binding
	Edit        key.Binding
	Export      key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "check all")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		ShowDeleted: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "deleted view")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Restore:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore")),
		HardDelete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "hard delete")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Export:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "export csv")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (a *App) handleListKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(m, a.keys.Toggle):
		if len(a.rows) > 0 {
			a.selected.Toggle(a.rows[a.cursor].ID)
		}

	case key.Matches(m, a.keys.SelectAll):
		ids := a.visibleIDs()
		a.selected.SetAll(ids, a.selected.Size() != len(ids))

	case key.Matches(m, a.keys.Reload):
		return a, a.reload()

	case key.Matches(m, a.keys.Filter):
		a.formProfile = a.profile
		a.formCursor = 0
		a.modal = modalFilter

	case key.Matches(m, a.keys.ClearFilter):
		show := a.profile.ShowDeleted
		a.profile = filter.Default()
		a.profile.ShowDeleted = show
		if a.deps.Profiles != nil {
			_ = a.deps.Profiles.Clear()
		}
		a.status = "filters cleared"
		return a, a.reload()

	case key.Matches(m, a.keys.ShowDeleted):
		// The selection is meaningless across the view flip.
		a.profile.ShowDeleted = !a.profile.ShowDeleted
		a.selected.Clear()
		a.cursor = 0
		a.saveProfile()
		return a, a.reload()

	case key.Matches(m, a.keys.Delete):
		if a.profile.ShowDeleted {
			a.status = "already deleted; u restores, D removes permanently"
			return a, nil
		}
		ids := a.targets()
		if len(ids) == 0 {
			return a, nil
		}
		if len(ids) > 1 {
			a.confirm(ledger.OpSoftDelete, ids)
			return a, nil
		}
		a.status = "working..."
		return a, a.bulkCmd(ids, ledger.OpSoftDelete)

	case key.Matches(m, a.keys.Restore):
		if !a.profile.ShowDeleted {
			return a, nil
		}
		ids := a.targets()
		if len(ids) == 0 {
			return a, nil
		}
		a.status = "working..."
		return a, a.bulkCmd(ids, ledger.OpRestore)

	case key.Matches(m, a.keys.HardDelete):
		// Only offered in the deleted view; destructive, always confirmed.
		if !a.profile.ShowDeleted {
			return a, nil
		}
		ids := a.targets()
		if len(ids) == 0 {
			return a, nil
		}
		a.confirm(ledger.OpHardDelete, ids)

	case key.Matches(m, a.keys.New):
		if a.profile.ShowDeleted {
			return a, nil
		}
		a.openRecordForm(nil)

	case key.Matches(m, a.keys.Edit):
		if a.profile.ShowDeleted || len(a.rows) == 0 {
			return a, nil
		}
		row := a.rows[a.cursor]
		a.openRecordForm(&row)

	case key.Matches(m, a.keys.Export):
		return a, a.startExport()
	}
	return a, nil
}

func (a *App) startExport() tea.Cmd {
	if len(a.rows) == 0 {
		a.status = "nothing to export"
		return nil
	}
	query := a.profile.Query(a.tz).Encode()
	if !a.deps.Exports.Attempt(a.ctx, query) {
		if !a.caps.CanExport {
			a.status = "export is not permitted for this session"
		} else {
			a.status = "export limit reached, try again in a minute"
		}
		return nil
	}
	a.status = "exporting..."
	return a.exportCmd()
}

func (a *App) saveProfile() {
	if a.deps.Profiles == nil {
		return
	}
	if err := a.deps.Profiles.Save(a.profile); err != nil {
		a.status = "warning: filters not saved: " + err.Error()
	}
}
