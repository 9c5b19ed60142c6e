package testutil

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/wrench/pkg/types"
)

// UserEntry returns an account settings entry at path
func UserEntry(path, id string) types.SettingsEntry {
	return entry(path, id, types.KindUser)
}

// CharEntry returns a character settings entry at path
func CharEntry(path, id string) types.SettingsEntry {
	return entry(path, id, types.KindChar)
}

func entry(p, id string, kind types.SettingsKind) types.SettingsEntry {
	return types.SettingsEntry{
		Path:        p,
		ID:          id,
		Kind:        kind,
		Server:      types.ServerTranquility,
		Profile:     path.Base(path.Dir(p)),
		DisplayName: id,
	}
}

// Backup returns a backup of the given entry
func Backup(name string, of types.SettingsEntry, ts int64) types.BackupEntry {
	return types.BackupEntry{
		ID:          fmt.Sprintf("%s:%s:%s_%s_%s_%d", strings.ToLower(of.Server.ShortName()), strings.TrimPrefix(of.Profile, "settings_"), name, of.Kind, of.ID, ts),
		Name:        name,
		Path:        fmt.Sprintf("%s/backups/%s_%s_%s_%d.bak", path.Dir(of.Path), name, of.Kind, of.ID, ts),
		Timestamp:   ts,
		Kind:        of.Kind,
		OriginalID:  of.ID,
		DisplayName: name,
	}
}

// Profile groups entries into a profile, sorting them by kind
func Profile(name string, entries ...types.SettingsEntry) types.ProfileData {
	p := types.ProfileData{Name: name, Accounts: []types.SettingsEntry{}, Characters: []types.SettingsEntry{}}
	for _, e := range entries {
		switch e.Kind {
		case types.KindUser:
			p.Accounts = append(p.Accounts, e)
		case types.KindChar:
			p.Characters = append(p.Characters, e)
		}
	}
	return p
}

// AppData wraps profiles in a single tranquility server
func AppData(backups []types.BackupEntry, profiles ...types.ProfileData) *types.AppData {
	data := &types.AppData{Backups: backups}
	if len(profiles) > 0 {
		data.Servers = []types.ServerData{{
			Info:     types.NewServerInfo(types.ServerTranquility, "/eve/tq", false),
			Profiles: profiles,
		}}
	}
	return data
}
