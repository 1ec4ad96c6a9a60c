package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okaya/ledgerdesk/internal/model"
)

type spyAPI struct {
	calls  []string
	failID int64
}

func (s *spyAPI) op(name string, id int64) error {
	s.calls = append(s.calls, name)
	if id == s.failID {
		return errors.New("server said no")
	}
	return nil
}

func (s *spyAPI) SoftDelete(_ context.Context, id int64) error { return s.op("soft", id) }
func (s *spyAPI) Restore(_ context.Context, id int64) error    { return s.op("restore", id) }
func (s *spyAPI) HardDelete(_ context.Context, id int64) error { return s.op("hard", id) }

type spyLog struct {
	actions []string
	counts  [][2]int
}

func (s *spyLog) LogActivity(_ context.Context, action, _ string, succeeded, failed int, _ string) error {
	s.actions = append(s.actions, action)
	s.counts = append(s.counts, [2]int{succeeded, failed})
	return nil
}

func admin() model.Capabilities {
	return model.Capabilities{Role: model.RoleAdmin, CanExport: true, CanRestore: true}
}

func TestRestoreWithoutCapabilityMakesNoCall(t *testing.T) {
	api := &spyAPI{}
	c := New(api, model.Capabilities{Role: model.RoleUser}, nil)

	err := c.Restore(context.Background(), 1)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, OpRestore, perr.Op)
	require.Empty(t, api.calls)
}

func TestHardDeleteIsAdminOnly(t *testing.T) {
	api := &spyAPI{}
	caps := model.Capabilities{Role: model.RoleManager, CanRestore: true}
	c := New(api, caps, nil)

	err := c.HardDelete(context.Background(), 1)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	require.Empty(t, api.calls)

	require.NoError(t, New(api, admin(), nil).HardDelete(context.Background(), 1))
	require.Equal(t, []string{"hard"}, api.calls)
}

func TestBulkContinuesPastFailures(t *testing.T) {
	api := &spyAPI{failID: 7}
	log := &spyLog{}
	c := New(api, admin(), log)

	out, err := c.Bulk(context.Background(), []int64{3, 7, 9}, OpSoftDelete)
	require.NoError(t, err)
	require.Equal(t, Outcome{Succeeded: 2, Failed: 1}, out)
	require.Len(t, api.calls, 3)

	require.Equal(t, []string{"bulk_soft_delete"}, log.actions)
	require.Equal(t, [2]int{2, 1}, log.counts[0])
}

func TestBulkPermissionFailureIsUpfront(t *testing.T) {
	api := &spyAPI{}
	c := New(api, model.Capabilities{Role: model.RoleUser}, nil)

	_, err := c.Bulk(context.Background(), []int64{1, 2, 3}, OpHardDelete)
	require.Error(t, err)
	require.Empty(t, api.calls)
}

func TestOutcomeMessage(t *testing.T) {
	require.Equal(t, "3 deleted", Outcome{Succeeded: 3}.Message(OpSoftDelete))
	require.Equal(t, "2 restored, 1 failed", Outcome{Succeeded: 2, Failed: 1}.Message(OpRestore))
	require.Equal(t, "1 permanently deleted", Outcome{Succeeded: 1}.Message(OpHardDelete))
}

func TestSingleOpsJournal(t *testing.T) {
	api := &spyAPI{failID: 5}
	log := &spyLog{}
	c := New(api, admin(), log)

	require.NoError(t, c.SoftDelete(context.Background(), 1))
	require.Error(t, c.SoftDelete(context.Background(), 5))

	require.Equal(t, []string{"soft_delete", "soft_delete"}, log.actions)
	require.Equal(t, [2]int{1, 0}, log.counts[0])
	require.Equal(t, [2]int{0, 1}, log.counts[1])
}
