package types_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerFromFolder(t *testing.T) {
	tests := []struct {
		folder string
		want   types.ServerID
		ok     bool
	}{
		{"c_ccp_eve_tq_tranquility", types.ServerTranquility, true},
		{"C_CCP_EVE_SISI_SINGULARITY", types.ServerSingularity, true},
		{"c_eve_thunderdome", types.ServerThunderdome, true},
		{"eve_serenity_cn", types.ServerSerenity, true},
		{"cache", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			got, ok := types.ServerFromFolder(tt.folder)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerID_StaticInfo(t *testing.T) {
	info := types.NewServerInfo(types.ServerTranquility, "/eve/tq", true)
	assert.Equal(t, "Tranquility", info.Name)
	assert.Equal(t, "TQ", info.ShortName)
	assert.True(t, info.SupportsESI)
	assert.True(t, info.BracketsAlwaysShow)

	assert.Equal(t, "SISI", types.ServerSingularity.ShortName())
	assert.False(t, types.ServerSingularity.SupportsESI())
	assert.Equal(t, "CN", types.ServerSerenity.ShortName())
}

func TestParseSettingsKind(t *testing.T) {
	k, err := types.ParseSettingsKind("char")
	require.NoError(t, err)
	assert.Equal(t, types.KindChar, k)

	k, err = types.ParseSettingsKind("Account")
	require.NoError(t, err)
	assert.Equal(t, types.KindUser, k)

	_, err = types.ParseSettingsKind("prefs")
	assert.Error(t, err)
}

func TestProfileData_Entries(t *testing.T) {
	p := types.ProfileData{
		Accounts:   []types.SettingsEntry{{ID: "1"}},
		Characters: []types.SettingsEntry{{ID: "9"}, {ID: "10"}},
	}
	assert.Len(t, p.Entries(types.KindUser), 1)
	assert.Len(t, p.Entries(types.KindChar), 2)
}

func TestAppData_Lookups(t *testing.T) {
	data := &types.AppData{
		Servers: []types.ServerData{{
			Info: types.NewServerInfo(types.ServerTranquility, "/tq", false),
			Profiles: []types.ProfileData{{
				Name:       "Default",
				Accounts:   []types.SettingsEntry{{Path: "/tq/settings_Default/core_user_1.dat", ID: "1"}},
				Characters: []types.SettingsEntry{{Path: "/tq/settings_Default/core_char_9.dat", ID: "9"}},
			}},
		}},
		Backups: []types.BackupEntry{{ID: "daily_5", Path: "/tq/settings_Default/backups/daily_user_1_5.bak"}},
	}

	assert.True(t, data.HasData())
	assert.Len(t, data.AllEntries(), 2)

	e, ok := data.FindEntry("/tq/settings_Default/core_char_9.dat")
	assert.True(t, ok)
	assert.Equal(t, "9", e.ID)

	_, ok = data.FindProfile(types.ServerTranquility, "Default")
	assert.True(t, ok)
	_, ok = data.FindProfile(types.ServerSerenity, "Default")
	assert.False(t, ok)

	b, ok := data.FindBackup("daily_5")
	assert.True(t, ok)
	assert.Equal(t, "daily_5", b.ID)

	var empty *types.AppData
	assert.False(t, empty.HasData())
	_, ok = empty.FindBackup("daily_5")
	assert.False(t, ok)
}

func TestRelativeTime(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	tests := []struct {
		ago  int64
		want string
	}{
		{0, "just now"},
		{59, "just now"},
		{60, "1m ago"},
		{3599, "59m ago"},
		{3600, "1h ago"},
		{86399, "23h ago"},
		{86400, "1d ago"},
		{-30, "just now"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, types.RelativeTime(now, now.Unix()-tt.ago), "ago=%d", tt.ago)
	}
}
