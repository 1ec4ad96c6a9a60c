// Package ledger executes record lifecycle transitions — soft delete,
// restore, hard delete — for one or many records, enforcing the session's
// capability flags before anything touches the network.
package ledger

import (
	"context"
	"fmt"

	"github.com/okaya/ledgerdesk/internal/model"
)

// Op names one lifecycle transition.
type Op string

const (
	OpSoftDelete Op = "soft_delete"
	OpRestore    Op = "restore"
	OpHardDelete Op = "hard_delete"
)

// PermissionError is raised client-side when a capability is missing. It
// short-circuits before any network call.
type PermissionError struct {
	Op Op
}

func (e *PermissionError) Error() string {
	switch e.Op {
	case OpRestore:
		return "restore requires the restore permission"
	case OpHardDelete:
		return "only Admin can hard delete"
	}
	return fmt.Sprintf("%s: permission denied", e.Op)
}

// RecordAPI is the slice of the ledger API the controller needs.
type RecordAPI interface {
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

// ActivityLogger receives a durable trace of completed operations. Optional;
// failures are ignored.
type ActivityLogger interface {
	LogActivity(ctx context.Context, action string, objectID string, succeeded, failed int, detail string) error
}

// Outcome aggregates a multi-record operation. Every attempted id lands in
// exactly one bucket; nothing is partially applied in silence.
type Outcome struct {
	Succeeded int
	Failed    int
}

// Message renders the combined user-facing report.
func (o Outcome) Message(op Op) string {
	verb := map[Op]string{
		OpSoftDelete: "deleted",
		OpRestore:    "restored",
		OpHardDelete: "permanently deleted",
	}[op]
	if o.Failed == 0 {
		return fmt.Sprintf("%d %s", o.Succeeded, verb)
	}
	return fmt.Sprintf("%d %s, %d failed", o.Succeeded, verb, o.Failed)
}

// Controller runs lifecycle transitions under the session capabilities.
type Controller struct {
	api     RecordAPI
	caps    model.Capabilities
	journal ActivityLogger
}

// New builds a controller. journal may be nil.
func New(api RecordAPI, caps model.Capabilities, journal ActivityLogger) *Controller {
	return &Controller{api: api, caps: caps, journal: journal}
}

// check returns the permission error for op, or nil. Soft delete rides on the
// session's base write permission, which the server enforces.
func (c *Controller) check(op Op) error {
	switch op {
	case OpRestore:
		if !c.caps.CanRestore {
			return &PermissionError{Op: op}
		}
	case OpHardDelete:
		if !c.caps.IsAdmin() {
			return &PermissionError{Op: op}
		}
	}
	return nil
}

func (c *Controller) apply(ctx context.Context, op Op, id int64) error {
	switch op {
	case OpSoftDelete:
		return c.api.SoftDelete(ctx, id)
	case OpRestore:
		return c.api.Restore(ctx, id)
	case OpHardDelete:
		return c.api.HardDelete(ctx, id)
	}
	return fmt.Errorf("unknown op %q", op)
}

// SoftDelete transitions an active record to soft-deleted.
func (c *Controller) SoftDelete(ctx context.Context, id int64) error {
	return c.run(ctx, OpSoftDelete, id)
}

// Restore transitions a soft-deleted record back to active. Requires the
// restore capability; without it no request is issued.
func (c *Controller) Restore(ctx context.Context, id int64) error {
	return c.run(ctx, OpRestore, id)
}

// HardDelete removes a record permanently. Admin only; without the
// capability no request is issued. This transition is destructive and
// non-recoverable — callers must confirm with the user first.
func (c *Controller) HardDelete(ctx context.Context, id int64) error {
	return c.run(ctx, OpHardDelete, id)
}

func (c *Controller) run(ctx context.Context, op Op, id int64) error {
	if err := c.check(op); err != nil {
		return err
	}
	err := c.apply(ctx, op, id)
	if c.journal != nil {
		s, f := 1, 0
		detail := ""
		if err != nil {
			s, f = 0, 1
			detail = err.Error()
		}
		_ = c.journal.LogActivity(ctx, string(op), fmt.Sprint(id), s, f, detail)
	}
	return err
}

// Bulk applies op to each id sequentially, one request in flight at a time.
// One id failing never aborts the rest; every id is counted once. The
// capability check happens once, up front, before any request. Callers must
// reload the record set afterwards regardless of the outcome — the displayed
// set is stale either way.
func (c *Controller) Bulk(ctx context.Context, ids []int64, op Op) (Outcome, error) {
	if err := c.check(op); err != nil {
		return Outcome{}, err
	}
	var out Outcome
	var lastErr string
	for _, id := range ids {
		if err := c.apply(ctx, op, id); err != nil {
			out.Failed++
			lastErr = err.Error()
			continue
		}
		out.Succeeded++
	}
	if c.journal != nil {
		_ = c.journal.LogActivity(ctx, "bulk_"+string(op), "*", out.Succeeded, out.Failed, lastErr)
	}
	return out, nil
}
