package wrench

import (
	"testing"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/testutil"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mainUser = testutil.UserEntry("/eve/tq/settings_Default/core_user_1.dat", "1")
	altUser  = testutil.UserEntry("/eve/tq/settings_Alt/core_user_1.dat", "1")
	soloUser = testutil.UserEntry("/eve/tq/settings_Alt/core_user_2.dat", "2")
	alice    = testutil.CharEntry("/eve/tq/settings_Default/core_char_91000001.dat", "91000001")
)

func sampleData() *types.AppData {
	aliased := soloUser
	aliased.Alias = "Trader"
	backup := testutil.Backup("main", mainUser, 100)
	return testutil.AppData(
		[]types.BackupEntry{backup},
		testutil.Profile("Default", mainUser, alice),
		testutil.Profile("Alt", altUser, aliased),
	)
}

func TestResolveEntry(t *testing.T) {
	data := sampleData()

	e, err := resolveEntry(data, mainUser.Path)
	require.NoError(t, err)
	assert.Equal(t, mainUser.Path, e.Path)

	e, err = resolveEntry(data, "91000001")
	require.NoError(t, err)
	assert.Equal(t, alice.Path, e.Path)

	e, err = resolveEntry(data, "trader")
	require.NoError(t, err)
	assert.Equal(t, soloUser.Path, e.Path)

	_, err = resolveEntry(data, "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguous))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["matches"])

	_, err = resolveEntry(data, "404")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestResolveSource(t *testing.T) {
	data := sampleData()

	src, err := resolveSource(data, "tq:Default:main_user_1_100")
	require.NoError(t, err)
	assert.True(t, src.IsBackup())

	src, err = resolveSource(data, alice.Path)
	require.NoError(t, err)
	assert.Equal(t, types.SourceEntry, src.Variant())

	_, err = resolveSource(data, "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguous))

	_, err = resolveSource(data, "nothing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestResolveBackup(t *testing.T) {
	data := sampleData()

	b, err := resolveBackup(data, "tq:Default:main_user_1_100")
	require.NoError(t, err)
	assert.Equal(t, data.Backups[0].Path, b.Path)

	other := testutil.Backup("main", altUser, 100)
	assert.NotEqual(t, data.Backups[0].ID, other.ID, "profile is part of the id")

	// ids of hand-placed files can still collide
	twin := data.Backups[0]
	twin.Path = "/eve/tq/settings_Default/backups/copy/main_user_1_100.bak"
	data.Backups = append(data.Backups, twin)

	_, err = resolveBackup(data, twin.ID)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguous))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["matches"])

	_, err = resolveSource(data, twin.ID)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAmbiguous))

	b, err = resolveBackup(data, twin.Path)
	require.NoError(t, err)
	assert.Equal(t, twin.Path, b.Path)

	_, err = resolveBackup(data, "tq:Default:main_user_1_999")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestResolveServerAndProfile(t *testing.T) {
	data := sampleData()

	for _, ref := range []string{"tranquility", "TQ", "tq", "/eve/tq"} {
		s, err := resolveServer(data, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, types.ServerTranquility, s.Info.ID)
	}
	_, err := resolveServer(data, "sisi")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	p, err := resolveProfile(data, "", "Alt")
	require.NoError(t, err)
	assert.Len(t, p.Accounts, 2)

	p, err = resolveProfile(data, "tq", "Default")
	require.NoError(t, err)
	assert.Len(t, p.Characters, 1)

	_, err = resolveProfile(data, "tq", "Missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestOriginalEntry(t *testing.T) {
	data := sampleData()
	b := data.Backups[0]

	e, err := originalEntry(data, b)
	require.NoError(t, err)
	assert.Equal(t, mainUser.Path, e.Path)

	b.OriginalID = "999"
	_, err = originalEntry(data, b)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "ON", "true", "yes", "1"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"off", "false", "no", "0"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := parseOnOff("sometimes")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
