// Package tui is the terminal frontend: one bubbletea model over the filter
// profile, the loaded record set, the selection, and the modal stack.
package tui

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okaya/ledgerdesk/internal/config"
	"github.com/okaya/ledgerdesk/internal/export"
	"github.com/okaya/ledgerdesk/internal/filter"
	"github.com/okaya/ledgerdesk/internal/ledger"
	"github.com/okaya/ledgerdesk/internal/model"
	"github.com/okaya/ledgerdesk/internal/refdata"
	"github.com/okaya/ledgerdesk/internal/selection"
	"github.com/okaya/ledgerdesk/internal/summary"
)

// API is the slice of the ledger service the UI calls directly. Lifecycle
// transitions go through the controller instead.
type API interface {
	ListTransactions(ctx context.Context, query url.Values) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, payload map[string]any) error
	UpdateTransaction(ctx context.Context, id int64, payload map[string]any) error
}

// Deps ties the app to the rest of the program. Profiles and Refs may be nil.
type Deps struct {
	API      API
	Records  *ledger.Controller
	Exports  *export.Limiter
	Profiles *filter.Store
	Refs     *refdata.Cache
}

type modalState string

const (
	modalNone    modalState = ""
	modalFilter  modalState = "filter"
	modalRecord  modalState = "record"
	modalConfirm modalState = "confirm"
)

// App is the bubbletea model.
type App struct {
	ctx  context.Context
	deps Deps
	caps model.Capabilities
	keys keyMap

	profile  filter.Profile
	selected *selection.Set
	rows     []model.Transaction
	totals   summary.Totals
	cursor   int

	// gen stamps each fetch; a load result from an older gen is dropped so a
	// slow response can never overwrite a newer one.
	gen     int
	loading bool

	status     string
	tz         *time.Location
	currency   string
	dateFormat string
	exportDir  string

	modal modalState

	// filter form
	formProfile filter.Profile
	formCursor  int

	// record form
	form      recordForm
	formErr   string
	editingID int64 // 0 = creating

	// pending confirmation
	pendingOp  ledger.Op
	pendingIDs []int64
}

// New builds the app. The persisted filter profile is loaded here so the
// first fetch already applies it.
func New(ctx context.Context, cfg config.Config, deps Deps, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	profile := filter.Default()
	if deps.Profiles != nil {
		profile = deps.Profiles.Load()
	}
	return &App{
		ctx:        ctx,
		deps:       deps,
		caps:       cfg.SessionCapabilities(),
		keys:       newKeyMap(),
		profile:    profile,
		selected:   selection.New(),
		tz:         tz,
		currency:   cfg.UI.CurrencySymbol,
		dateFormat: cfg.UI.DateFormat,
		exportDir:  ".",
	}
}

func (a *App) Init() tea.Cmd {
	return a.reload()
}

// reload starts a fetch for the current predicate. Every call bumps the
// generation, so whatever was in flight becomes stale.
func (a *App) reload() tea.Cmd {
	a.gen++
	a.loading = true
	gen := a.gen
	query := a.profile.Query(a.tz)
	return func() tea.Msg {
		rows, err := a.deps.API.ListTransactions(a.ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return recordsMsg{gen: gen, rows: rows}
	}
}

func (a *App) bulkCmd(ids []int64, op ledger.Op) tea.Cmd {
	return func() tea.Msg {
		out, err := a.deps.Records.Bulk(a.ctx, ids, op)
		if err != nil {
			return errMsg{err}
		}
		return bulkDoneMsg{op: op, out: out}
	}
}

func (a *App) saveDraftCmd(id int64, draft model.Draft) tea.Cmd {
	payload := draft.Payload(a.tz)
	return func() tea.Msg {
		if id == 0 {
			if err := a.deps.API.CreateTransaction(a.ctx, payload); err != nil {
				return errMsg{err}
			}
			return savedMsg{created: true}
		}
		if err := a.deps.API.UpdateTransaction(a.ctx, id, payload); err != nil {
			return errMsg{err}
		}
		return savedMsg{}
	}
}

func (a *App) exportCmd() tea.Cmd {
	rows := a.rows
	dir := a.exportDir
	tz := a.tz
	name := fmt.Sprintf("transactions_%s.csv", time.Now().In(tz).Format("20060102_1504"))
	return func() tea.Msg {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("create %s: %w", path, err)}
		}
		defer f.Close()

		w := csv.NewWriter(f)
		_ = w.Write([]string{"id", "date", "type", "amount", "payment_method", "subcategory", "description", "active"})
		for _, r := range rows {
			_ = w.Write([]string{
				fmt.Sprint(r.ID),
				r.TransactionDate.In(tz).Format("2006-01-02 15:04"),
				r.Type,
				r.Amount,
				r.PaymentMethodName,
				r.SubcategoryLabel,
				r.Description,
				fmt.Sprint(r.IsActive),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return errMsg{fmt.Errorf("write %s: %w", path, err)}
		}
		return exportDoneMsg{path: path, rows: len(rows)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch a.modal {
		case modalFilter:
			return a.handleFilterKey(m)
		case modalRecord:
			return a.handleRecordKey(m)
		case modalConfirm:
			return a.handleConfirmKey(m)
		}
		return a.handleListKey(m)

	case recordsMsg:
		if m.gen != a.gen {
			return a, nil // stale fetch, a newer one is in flight or landed
		}
		a.loading = false
		a.rows = m.rows
		a.totals = summary.Compute(m.rows)
		a.selected.Clear()
		if a.cursor >= len(a.rows) {
			a.cursor = 0
		}
		return a, nil

	case bulkDoneMsg:
		a.status = m.out.Message(m.op)
		// The displayed set is stale either way; reload unconditionally.
		return a, a.reload()

	case savedMsg:
		if m.created {
			a.status = "record created"
		} else {
			a.status = "record updated"
		}
		return a, a.reload()

	case exportDoneMsg:
		a.status = fmt.Sprintf("exported %d rows to %s", m.rows, m.path)
		return a, nil

	case errMsg:
		a.loading = false
		a.status = "error: " + m.Error()
		return a, nil
	}
	return a, nil
}

// targets resolves what a lifecycle key acts on: the checked rows, or the
// cursor row when nothing is checked.
func (a *App) targets() []int64 {
	if a.selected.Size() > 0 {
		return a.selected.IDs()
	}
	if len(a.rows) == 0 {
		return nil
	}
	return []int64{a.rows[a.cursor].ID}
}

func (a *App) visibleIDs() []int64 {
	ids := make([]int64, 0, len(a.rows))
	for _, r := range a.rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func (a *App) confirm(op ledger.Op, ids []int64) {
	a.pendingOp = op
	a.pendingIDs = ids
	a.modal = modalConfirm
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		op, ids := a.pendingOp, a.pendingIDs
		a.modal = modalNone
		a.pendingIDs = nil
		a.status = "working..."
		return a, a.bulkCmd(ids, op)
	case "n", "N", "esc":
		a.modal = modalNone
		a.pendingIDs = nil
	}
	return a, nil
}

// messages
type recordsMsg struct {
	gen  int
	rows []model.Transaction
}

type bulkDoneMsg struct {
	op  ledger.Op
	out ledger.Outcome
}

type savedMsg struct{ created bool }

type exportDoneMsg struct {
	path string
	rows int
}

type errMsg struct{ error }
