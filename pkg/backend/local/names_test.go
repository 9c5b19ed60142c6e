package local

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestParseSettingsFileName(t *testing.T) {
	tests := []struct {
		name     string
		wantKind types.SettingsKind
		wantID   string
		wantOK   bool
	}{
		{"core_user_123.dat", types.KindUser, "123", true},
		{"core_char_95465499.dat", types.KindChar, "95465499", true},
		{"core_user_.dat", "", "", false},
		{"core_user_abc.dat", "", "", false},
		{"core_public__.dat", "", "", false},
		{"core_user_123.bak", "", "", false},
		{"prefs.ini", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, ok := parseSettingsFileName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseBackupFileName(t *testing.T) {
	tests := []struct {
		file   string
		want   backupName
		wantOK bool
	}{
		{
			file:   "main_user_123_1700000000.bak",
			want:   backupName{name: "main", kind: types.KindUser, id: "123", timestamp: 1700000000},
			wantOK: true,
		},
		{
			file:   "raid_setup_v2_char_95465499_1700000500.bak",
			want:   backupName{name: "raid_setup_v2", kind: types.KindChar, id: "95465499", timestamp: 1700000500},
			wantOK: true,
		},
		{
			file:   "odd_user_1_notatime.bak",
			want:   backupName{name: "odd", kind: types.KindUser, id: "1", timestamp: 0},
			wantOK: true,
		},
		{file: "main_other_123_1700000000.bak"},
		{file: "user_123_1700000000.bak"},
		{file: "main_user_123_1700000000.dat"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := parseBackupFileName(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackupFileNameRoundTrip(t *testing.T) {
	file := backupFileName("before_patch", types.KindChar, "42", 1700000000)
	assert.Equal(t, "before_patch_char_42_1700000000.bak", file)

	got, ok := parseBackupFileName(file)
	assert.True(t, ok)
	assert.Equal(t, "before_patch", got.name)
	assert.Equal(t, "sisi:Alt:before_patch_char_42_1700000000",
		backupID(got, "/eve/c_ccp_eve_sisi_singularity/settings_Alt/backups/"+file))
}

func TestBackupID_UniquePerFile(t *testing.T) {
	ts := int64(1700000000)
	dir := "/eve/c_ccp_eve_tq_tranquility/settings_Default/backups/"
	a := backupName{name: "pre-import", kind: types.KindUser, id: "111", timestamp: ts}
	b := backupName{name: "pre-import", kind: types.KindUser, id: "222", timestamp: ts}

	idA := backupID(a, dir+backupFileName(a.name, a.kind, a.id, ts))
	idB := backupID(b, dir+backupFileName(b.name, b.kind, b.id, ts))
	assert.Equal(t, "tq:Default:pre-import_user_111_1700000000", idA)
	assert.NotEqual(t, idA, idB)

	// the same account backed up in two profiles
	alt := "/eve/c_ccp_eve_tq_tranquility/settings_Alt/backups/" + backupFileName(a.name, a.kind, a.id, ts)
	assert.NotEqual(t, idA, backupID(a, alt))
}

func TestValidBackupName(t *testing.T) {
	assert.True(t, validBackupName("main"))
	assert.True(t, validBackupName("raid setup_2"))
	assert.False(t, validBackupName(""))
	assert.False(t, validBackupName("  "))
	assert.False(t, validBackupName("../escape"))
	assert.False(t, validBackupName(`a\b`))
}
