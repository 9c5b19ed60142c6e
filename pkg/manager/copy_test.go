package manager_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/manager"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectUsers(t *testing.T, f *fixture) {
	t.Helper()
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))
	require.NoError(t, f.mgr.AddTarget(user3))
}

func TestExecuteCopy_Success(t *testing.T) {
	f := newFixture(t)
	selectUsers(t, f)
	f.decider.AcceptNext(1)

	result, err := f.mgr.ExecuteCopy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &manager.CopyResult{Requested: 2, Copied: 2}, result)
	assert.Empty(t, f.mgr.Targets())

	src, ok := f.mgr.Source()
	assert.True(t, ok, "source survives a copy")
	assert.Equal(t, user1.Path, src.Path())

	calls := f.gateway.CallsTo("CopySettings")
	require.Len(t, calls, 1)
	assert.Equal(t, "/a/user1.dat", calls[0].Args[0])
	assert.Equal(t, []string{"/a/user2.dat", "/a/user3.dat"}, calls[0].Args[1])

	require.Len(t, f.decider.Confirmed, 1)
	assert.Equal(t, manager.MsgCopyTitle, f.decider.Confirmed[0].Title)
	assert.Equal(t, `Copy settings from "1" to 2 target(s)?`, f.decider.Confirmed[0].Description)

	successes := f.recorder.Filter(notify.LevelSuccess)
	require.Len(t, successes, 1)
	assert.Equal(t, "Successfully copied to 2 target(s)", successes[0].Description)
}

func TestExecuteCopy_FailureKeepsTargets(t *testing.T) {
	f := newFixture(t)
	selectUsers(t, f)
	before := f.mgr.Targets()
	f.decider.AcceptNext(1)
	f.gateway.CopySettingsFunc = func(context.Context, string, []string) (int, error) {
		return 0, stderrors.New("disk full")
	}

	result, err := f.mgr.ExecuteCopy(context.Background())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackend))
	assert.Equal(t, before, f.mgr.Targets())
	assert.False(t, f.mgr.Copying())

	failures := f.recorder.Filter(notify.LevelError)
	require.Len(t, failures, 1)
	assert.Equal(t, manager.MsgCopyFailed, failures[0].Title)
	assert.Contains(t, failures[0].Description, "disk full")
}

func TestExecuteCopy_Declined(t *testing.T) {
	f := newFixture(t)
	selectUsers(t, f)
	f.decider.DeclineNext()

	result, err := f.mgr.ExecuteCopy(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Len(t, f.mgr.Targets(), 2)
	assert.Empty(t, f.gateway.Calls())
	assert.Empty(t, f.recorder.All())
}

func TestExecuteCopy_NothingSelected(t *testing.T) {
	f := newFixture(t)

	result, err := f.mgr.ExecuteCopy(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, f.decider.Confirmed, "no confirmation is requested")

	f.mgr.SetSource(types.EntrySource(user1))
	result, err = f.mgr.ExecuteCopy(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, f.decider.Confirmed)
}

func TestExecuteCopy_ConfirmError(t *testing.T) {
	f := newFixture(t)
	selectUsers(t, f)
	f.decider.ConfirmErr = context.Canceled

	_, err := f.mgr.ExecuteCopy(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.gateway.Calls())
}

func TestExecuteCopy_SecondCopyWhileCopying(t *testing.T) {
	f := newFixture(t)
	selectUsers(t, f)
	f.decider.AcceptNext(2)

	started := make(chan struct{})
	release := make(chan struct{})
	f.gateway.CopySettingsFunc = func(_ context.Context, _ string, targets []string) (int, error) {
		close(started)
		<-release
		return len(targets), nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.mgr.ExecuteCopy(context.Background())
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("copy did not start")
	}
	assert.True(t, f.mgr.Copying())
	assert.False(t, f.mgr.CanCopy())

	_, err := f.mgr.ExecuteCopy(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCopyInProgress))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.mgr.Copying())
	assert.Len(t, f.gateway.CallsTo("CopySettings"), 1)
}

func TestExecuteCopy_SelectionChangedWhileConfirming(t *testing.T) {
	tests := []struct {
		name   string
		change func(t *testing.T, f *fixture)
	}{
		{"target added", func(t *testing.T, f *fixture) { require.NoError(t, f.mgr.AddTarget(user4)) }},
		{"target removed", func(_ *testing.T, f *fixture) { f.mgr.RemoveTarget(user3) }},
		{"source replaced", func(_ *testing.T, f *fixture) { f.mgr.SetSource(types.EntrySource(user4)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			selectUsers(t, f)
			f.decider.AcceptNext(1)
			f.decider.OnConfirm = func(decision.ConfirmOptions) { tt.change(t, f) }

			result, err := f.mgr.ExecuteCopy(context.Background())
			assert.Nil(t, result)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSelectionChanged))
			assert.Empty(t, f.gateway.CallsTo("CopySettings"))
			assert.False(t, f.mgr.Copying())
			assert.NotEmpty(t, f.mgr.Targets(), "targets are left for the user to review")
		})
	}
}
