// Package export gates and audits export actions. Managers get a sliding
// 60-second quota; other roles that may export are never throttled. Every
// attempt that is allowed to proceed is reported to the audit endpoint on a
// best-effort basis.
package export

import (
	"context"
	"time"

	"github.com/okaya/ledgerdesk/internal/model"
)

const (
	// Window is how far back an attempt still counts against the quota.
	Window = 60 * time.Second
	// Capacity is the fixed number of exports allowed per window.
	Capacity = 10
)

// AuditSink receives the fire-and-forget audit record. *api.Client satisfies
// it with LogExport.
type AuditSink interface {
	LogExport(ctx context.Context, query string) error
}

// StampStore persists window timestamps so the quota survives a restart.
// *journal.Store satisfies it; a nil store falls back to process memory.
type StampStore interface {
	ExportStampsSince(ctx context.Context, cutoff time.Time) ([]time.Time, error)
	AddExportStamp(ctx context.Context, at time.Time) error
	PruneExportStamps(ctx context.Context, cutoff time.Time) error
}

// Limiter applies the export quota for the session role.
type Limiter struct {
	caps   model.Capabilities
	audit  AuditSink
	stamps StampStore
	now    func() time.Time

	mem []time.Time // fallback window when no stamp store is configured
}

// New builds a limiter. audit and stamps may be nil.
func New(caps model.Capabilities, audit AuditSink, stamps StampStore) *Limiter {
	return &Limiter{caps: caps, audit: audit, stamps: stamps, now: time.Now}
}

// Attempt decides whether one export may proceed and, when it may, records
// the attempt and emits the audit record for the given predicate. The quota
// applies to Managers only; everyone else with the export capability is
// always allowed. A role without the export capability is always denied.
func (l *Limiter) Attempt(ctx context.Context, query string) bool {
	if !l.caps.CanExport {
		return false
	}
	if l.caps.IsManager() {
		if !l.take(ctx) {
			return false
		}
	}
	if l.audit != nil {
		// Fire and forget: a lost audit record never blocks the export.
		go func() { _ = l.audit.LogExport(context.WithoutCancel(ctx), query) }()
	}
	return true
}

// take purges entries older than the window, then either denies without
// recording or records now and allows.
func (l *Limiter) take(ctx context.Context) bool {
	now := l.now()
	cutoff := now.Add(-Window)

	if l.stamps == nil {
		kept := l.mem[:0]
		for _, t := range l.mem {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		l.mem = kept
		if len(l.mem) >= Capacity {
			return false
		}
		l.mem = append(l.mem, now)
		return true
	}

	_ = l.stamps.PruneExportStamps(ctx, cutoff)
	in, err := l.stamps.ExportStampsSince(ctx, cutoff)
	if err != nil {
		// A broken journal must not lock the operator out of exporting.
		return true
	}
	if len(in) >= Capacity {
		return false
	}
	_ = l.stamps.AddExportStamp(ctx, now)
	return true
}
