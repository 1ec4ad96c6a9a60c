package export

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okaya/ledgerdesk/internal/model"
)

type chanSink struct {
	mu      sync.Mutex
	queries []string
	got     chan struct{}
}

func newChanSink() *chanSink {
	return &chanSink{got: make(chan struct{}, 32)}
}

func (s *chanSink) LogExport(_ context.Context, query string) error {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	s.got <- struct{}{}
	return nil
}

func (s *chanSink) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.got:
	case <-time.After(2 * time.Second):
		t.Fatal("audit record never arrived")
	}
}

func manager() model.Capabilities {
	return model.Capabilities{Role: model.RoleManager, CanExport: true}
}

func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func TestDeniedWithoutCapability(t *testing.T) {
	sink := newChanSink()
	l := New(model.Capabilities{Role: model.RoleUser}, sink, nil)

	require.False(t, l.Attempt(context.Background(), "q"))
	select {
	case <-sink.got:
		t.Fatal("denied attempt must not be audited")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManagerQuotaWindow(t *testing.T) {
	l := New(manager(), nil, nil)
	now, clock := fixedClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	l.now = clock

	ctx := context.Background()
	for i := 0; i < Capacity; i++ {
		require.True(t, l.Attempt(ctx, "q"), "attempt %d should pass", i+1)
		*now = now.Add(time.Second)
	}
	// 11th inside the window: denied, and the denial is not recorded.
	require.False(t, l.Attempt(ctx, "q"))
	require.Len(t, l.mem, Capacity)

	// 61 seconds after the first stamp the window has slid past it.
	*now = now.Add(51 * time.Second)
	require.True(t, l.Attempt(ctx, "q"))
}

func TestAdminNeverThrottled(t *testing.T) {
	l := New(model.Capabilities{Role: model.RoleAdmin, CanExport: true}, nil, nil)
	ctx := context.Background()
	for i := 0; i < Capacity*3; i++ {
		require.True(t, l.Attempt(ctx, "q"))
	}
}

func TestAllowedAttemptIsAudited(t *testing.T) {
	sink := newChanSink()
	l := New(manager(), sink, nil)

	require.True(t, l.Attempt(context.Background(), "type=EXPENSE&page_size=100000"))
	sink.wait(t)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Equal(t, []string{"type=EXPENSE&page_size=100000"}, sink.queries)
}

type fakeStamps struct {
	stamps []time.Time
	broken bool
}

func (f *fakeStamps) ExportStampsSince(_ context.Context, cutoff time.Time) ([]time.Time, error) {
	if f.broken {
		return nil, context.DeadlineExceeded
	}
	var out []time.Time
	for _, s := range f.stamps {
		if s.After(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStamps) AddExportStamp(_ context.Context, at time.Time) error {
	f.stamps = append(f.stamps, at)
	return nil
}

func (f *fakeStamps) PruneExportStamps(_ context.Context, cutoff time.Time) error {
	var kept []time.Time
	for _, s := range f.stamps {
		if s.After(cutoff) {
			kept = append(kept, s)
		}
	}
	f.stamps = kept
	return nil
}

func TestPersistedStampsCountAgainstQuota(t *testing.T) {
	start := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	stamps := &fakeStamps{}
	for i := 0; i < Capacity; i++ {
		stamps.stamps = append(stamps.stamps, start.Add(-time.Duration(i)*time.Second))
	}

	l := New(manager(), nil, stamps)
	_, clock := fixedClock(start)
	l.now = clock

	require.False(t, l.Attempt(context.Background(), "q"))
	require.Len(t, stamps.stamps, Capacity)
}

func TestBrokenStampStoreNeverLocksOut(t *testing.T) {
	l := New(manager(), nil, &fakeStamps{broken: true})
	require.True(t, l.Attempt(context.Background(), "q"))
}
