package manager_test

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTarget_WithoutSource(t *testing.T) {
	f := newFixture(t)

	err := f.mgr.AddTarget(user2)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSourceSelected))
	assert.Empty(t, f.mgr.Targets())
}

func TestAddTarget_KindMismatch(t *testing.T) {
	tests := []struct {
		name   string
		source types.SourceItem
		target types.SettingsEntry
	}{
		{"user source char target", types.EntrySource(user1), char1},
		{"char source user target", types.EntrySource(char1), user1},
		{"user backup char target", types.BackupSource(testutil.Backup("b", user1, 1)), char2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mgr.SetSource(tt.source)
			before := f.mgr.Targets()

			err := f.mgr.AddTarget(tt.target)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrKindMismatch))
			assert.Equal(t, before, f.mgr.Targets())
		})
	}
}

func TestAddTarget_SourcePathRejected(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))

	err := f.mgr.AddTarget(user1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTarget))
	assert.Equal(t, "/a/user1.dat", errors.GetErrorDetails(err)["path"])
}

func TestAddTarget_BackupOntoOriginalAllowed(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.BackupSource(testutil.Backup("b", user1, 1)))

	require.NoError(t, f.mgr.AddTarget(user1))
	assert.True(t, f.mgr.IsTarget(user1))
}

func TestAddTarget_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))

	require.NoError(t, f.mgr.AddTarget(user2))
	require.NoError(t, f.mgr.AddTarget(user2))
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())
}

func TestSelection_EndToEnd(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))

	require.NoError(t, f.mgr.AddTarget(user2))
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())

	err := f.mgr.AddTarget(char1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrKindMismatch))
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())

	err = f.mgr.AddTarget(user1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTarget))
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())

	assert.True(t, f.mgr.CanCopy())
	assert.Equal(t, types.KindUser, f.mgr.SourceKind())
}

func TestSetSource_KindChangeClearsTargets(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))
	require.NoError(t, f.mgr.AddTarget(user3))
	require.Len(t, f.mgr.Targets(), 2)

	f.mgr.SetSource(types.EntrySource(char1))
	assert.Empty(t, f.mgr.Targets())
	assert.Equal(t, types.KindChar, f.mgr.SourceKind())
}

func TestSetSource_SameKindKeepsTargets(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))

	f.mgr.SetSource(types.EntrySource(user3))
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())
}

func TestClearSource_KeepsTargets(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))

	f.mgr.ClearSource()
	_, ok := f.mgr.Source()
	assert.False(t, ok)
	assert.False(t, f.mgr.CanCopy())
	assert.Len(t, f.mgr.Targets(), 1)
}

func TestRemoveAndClearTargets(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))
	require.NoError(t, f.mgr.AddTarget(user3))

	f.mgr.RemoveTarget(user2)
	assert.Equal(t, []types.SettingsEntry{user3}, f.mgr.Targets())
	f.mgr.RemoveTarget(user2)
	assert.Len(t, f.mgr.Targets(), 1)

	f.mgr.ClearTargets()
	assert.Empty(t, f.mgr.Targets())
}

func TestAddAllFromProfile(t *testing.T) {
	profile := testutil.Profile("Default", user1, user2, user3, char1)

	t.Run("adds eligible entries of the source kind", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.SetSource(types.EntrySource(user1))
		require.NoError(t, f.mgr.AddTarget(user2))

		require.NoError(t, f.mgr.AddAllFromProfile(profile, types.KindUser))
		assert.Equal(t, []types.SettingsEntry{user2, user3}, f.mgr.Targets())
	})

	t.Run("other kind is ignored", func(t *testing.T) {
		f := newFixture(t)
		f.mgr.SetSource(types.EntrySource(user1))

		require.NoError(t, f.mgr.AddAllFromProfile(profile, types.KindChar))
		assert.Empty(t, f.mgr.Targets())
	})

	t.Run("requires a source", func(t *testing.T) {
		f := newFixture(t)
		err := f.mgr.AddAllFromProfile(profile, types.KindUser)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoSourceSelected))
	})
}

func TestIsSource(t *testing.T) {
	f := newFixture(t)
	b := testutil.Backup("b", user1, 1)
	f.mgr.SetSource(types.BackupSource(b))

	assert.True(t, f.mgr.IsSource(types.BackupSource(b)))
	assert.False(t, f.mgr.IsSource(types.EntrySource(user1)), "a backup never equals an entry")
	assert.False(t, f.mgr.IsSource(types.SourceItem{}))
}

func TestTargets_ReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))

	got := f.mgr.Targets()
	got[0] = user3
	assert.Equal(t, []types.SettingsEntry{user2}, f.mgr.Targets())
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	f.mgr.SetSource(types.EntrySource(user1))
	require.NoError(t, f.mgr.AddTarget(user2))

	f.mgr.Reset()
	_, ok := f.mgr.Source()
	assert.False(t, ok)
	assert.Empty(t, f.mgr.Targets())
}
