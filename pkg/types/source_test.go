package types_test

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestSourceItem_Variants(t *testing.T) {
	entry := types.SettingsEntry{Path: "/a/core_user_1.dat", ID: "1", Kind: types.KindUser, DisplayName: "main"}
	backup := types.BackupEntry{ID: "daily_100", Path: "/a/backups/daily_char_9_100.bak", Kind: types.KindChar, OriginalID: "9", DisplayName: "daily"}

	var none types.SourceItem
	assert.True(t, none.IsZero())
	assert.Equal(t, types.SourceNone, none.Variant())
	assert.Empty(t, none.Kind())
	assert.Empty(t, none.Path())

	es := types.EntrySource(entry)
	assert.Equal(t, types.SourceEntry, es.Variant())
	assert.False(t, es.IsBackup())
	assert.Equal(t, types.KindUser, es.Kind())
	assert.Equal(t, entry.Path, es.Path())
	assert.Equal(t, "main", es.DisplayName())
	got, ok := es.Entry()
	assert.True(t, ok)
	assert.Equal(t, entry, got)
	_, ok = es.Backup()
	assert.False(t, ok)

	bs := types.BackupSource(backup)
	assert.Equal(t, types.SourceBackup, bs.Variant())
	assert.True(t, bs.IsBackup())
	assert.Equal(t, types.KindChar, bs.Kind())
	assert.Equal(t, backup.Path, bs.Path())
	gotB, ok := bs.Backup()
	assert.True(t, ok)
	assert.Equal(t, backup, gotB)
}

func TestSourceItem_Same(t *testing.T) {
	e1 := types.EntrySource(types.SettingsEntry{Path: "/a/core_user_1.dat", ID: "1"})
	e1Renamed := types.EntrySource(types.SettingsEntry{Path: "/a/core_user_1.dat", ID: "1", DisplayName: "renamed"})
	e2 := types.EntrySource(types.SettingsEntry{Path: "/a/core_user_2.dat", ID: "2"})
	b1 := types.BackupSource(types.BackupEntry{ID: "x_1", Path: "/a/core_user_1.dat"})
	b1Moved := types.BackupSource(types.BackupEntry{ID: "x_1", Path: "/elsewhere.bak"})
	b2 := types.BackupSource(types.BackupEntry{ID: "x_2"})

	tests := []struct {
		name string
		a, b types.SourceItem
		want bool
	}{
		{"entries_same_path", e1, e1Renamed, true},
		{"entries_different_path", e1, e2, false},
		{"backups_same_id", b1, b1Moved, true},
		{"backups_different_id", b1, b2, false},
		{"backup_never_equals_entry_even_with_same_path", b1, e1, false},
		{"none_never_equal", types.SourceItem{}, types.SourceItem{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Same(tt.b))
		})
	}
}
