package display_test

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/arthur-debert/wrench/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	u1 := testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	c1 := testutil.CharEntry("/eve/tq/settings_Default/core_char_91000001.dat", "91000001")
	c1.DisplayName = "Pilot"
	c1.Character = &types.CharacterDetails{Name: "Pilot", Corporation: "Corp"}
	data := testutil.AppData(nil, testutil.Profile("Default", c1, u1))

	tables := display.Catalog(data, func(e types.SettingsEntry) string {
		if e.Path == u1.Path {
			return display.TagSource
		}
		return ""
	})
	require.Len(t, tables, 1)
	tbl := tables[0]
	assert.Equal(t, "Tranquility (/eve/tq)", tbl.Title)
	require.NotNil(t, tbl.Server)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"Default", "user", "1", "1", "", "source"}, tbl.Rows[0].Cells)
	assert.Equal(t, display.TagSource, tbl.Rows[0].Tag)
	assert.Equal(t, "Pilot [Corp]", tbl.Rows[1].Cells[3])
}

func TestCatalog_Empty(t *testing.T) {
	tables := display.Catalog(nil, nil)
	require.Len(t, tables, 1)
	assert.Equal(t, "No settings found", tables[0].Empty)
	assert.Empty(t, tables[0].Rows)
}

func TestBackups(t *testing.T) {
	u1 := testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	b := testutil.Backup("main", u1, 100)
	b.OriginalName = "Main account"

	tbl := display.Backups([]types.BackupEntry{b})
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"tq:Default:main_user_1_100", "main", "user", "Main account", ""}, tbl.Rows[0].Cells)
}

func TestAnalysis(t *testing.T) {
	tbl := display.Analysis(&types.ImportAnalysis{
		ArchivePath: "/tmp/in.zip",
		New:         []types.ImportFile{{Path: "/a", Kind: types.KindUser, Size: 3}},
		Conflicts:   []types.ImportFile{{Path: "/b", Kind: types.KindChar}},
		Unchanged:   []types.ImportFile{{Path: "/c", Kind: types.KindUser}},
	})
	require.Len(t, tbl.Rows, 3)
	tags := []string{tbl.Rows[0].Tag, tbl.Rows[1].Tag, tbl.Rows[2].Tag}
	assert.Equal(t, []string{display.TagNew, display.TagConflict, display.TagUnchanged}, tags)
	assert.Equal(t, "3", tbl.Rows[0].Cells[3])
}

func TestTables(t *testing.T) {
	_, ok := display.Tables("plain string")
	assert.False(t, ok)

	tables, ok := display.Tables([]types.BackupEntry{})
	require.True(t, ok)
	assert.Len(t, tables, 1)
}

func TestSummaries(t *testing.T) {
	tables, ok := display.Tables(&types.ExportResult{FileCount: 4, Path: "/tmp/out.zip"})
	require.True(t, ok)
	assert.Equal(t, []string{"/tmp/out.zip", "4"}, tables[0].Rows[0].Cells)

	tables, ok = display.Tables(&types.ImportResult{ImportedCount: 2, SkippedCount: 1, BackedUpCount: 1})
	require.True(t, ok)
	assert.Equal(t, []string{"2", "1", "1"}, tables[0].Rows[0].Cells)
}

func TestSelection(t *testing.T) {
	tbl := display.Selection(types.SourceItem{}, nil)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, "Nothing selected", tbl.Empty)

	u1 := testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	u2 := testutil.UserEntry("/eve/tq/settings_Default/core_user_2.dat", "2")
	tbl = display.Selection(types.EntrySource(u1), []types.SettingsEntry{u2})
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, display.TagSource, tbl.Rows[0].Tag)
	assert.Equal(t, u1.Path, tbl.Rows[0].Cells[3])
	assert.Equal(t, display.TagTarget, tbl.Rows[1].Tag)

	b := testutil.Backup("main", u1, 100)
	tbl = display.Selection(types.BackupSource(b), nil)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "source (backup)", tbl.Rows[0].Cells[0])
}
