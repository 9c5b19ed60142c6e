package wrench

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/types"
)

// resolveEntry finds a settings entry by file path or id. An id shared by
// entries in several profiles is ambiguous.
func resolveEntry(data *types.AppData, ref string) (types.SettingsEntry, error) {
	ref = strings.TrimSpace(ref)
	if e, ok := data.FindEntry(cleanPath(ref)); ok {
		return e, nil
	}

	var matches []types.SettingsEntry
	for _, e := range data.AllEntries() {
		if e.ID == ref || (e.Alias != "" && strings.EqualFold(e.Alias, ref)) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return types.SettingsEntry{}, errors.Newf(errors.ErrNotFound, MsgErrEntryNotFound, ref).
			WithDetail("ref", ref)
	case 1:
		return matches[0], nil
	default:
		return types.SettingsEntry{}, errors.Newf(errors.ErrAmbiguous, MsgErrEntryAmbiguous, ref, len(matches)).
			WithDetail("ref", ref).
			WithDetail("matches", len(matches))
	}
}

// resolveEntries resolves every reference, stopping at the first failure
func resolveEntries(data *types.AppData, refs []string) ([]types.SettingsEntry, error) {
	entries := make([]types.SettingsEntry, 0, len(refs))
	for _, ref := range refs {
		e, err := resolveEntry(data, ref)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// resolveBackup finds a backup by file path or id. Ids repeat when profiles
// hold the same account, so an id matching several backups is ambiguous.
func resolveBackup(data *types.AppData, ref string) (types.BackupEntry, error) {
	ref = strings.TrimSpace(ref)
	path := cleanPath(ref)

	var matches []types.BackupEntry
	for _, b := range data.Backups {
		if b.Path == path {
			return b, nil
		}
		if b.ID == ref {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return types.BackupEntry{}, errors.Newf(errors.ErrNotFound, MsgErrBackupNotFound, ref).
			WithDetail("ref", ref)
	case 1:
		return matches[0], nil
	default:
		return types.BackupEntry{}, errors.Newf(errors.ErrAmbiguous, MsgErrBackupAmbiguous, ref, len(matches)).
			WithDetail("ref", ref).
			WithDetail("matches", len(matches))
	}
}

// resolveSource finds an entry or, failing that, a backup
func resolveSource(data *types.AppData, ref string) (types.SourceItem, error) {
	e, err := resolveEntry(data, ref)
	if err == nil {
		return types.EntrySource(e), nil
	}
	if errors.IsErrorCode(err, errors.ErrAmbiguous) {
		return types.SourceItem{}, err
	}
	b, berr := resolveBackup(data, ref)
	switch {
	case berr == nil:
		return types.BackupSource(b), nil
	case errors.IsErrorCode(berr, errors.ErrAmbiguous):
		return types.SourceItem{}, berr
	}
	return types.SourceItem{}, errors.Newf(errors.ErrNotFound, MsgErrSourceNotFound, ref).
		WithDetail("ref", ref)
}

// resolveServer finds an installed server by id, short name or folder path
func resolveServer(data *types.AppData, ref string) (types.ServerData, error) {
	ref = strings.TrimSpace(ref)
	if data != nil {
		for _, s := range data.Servers {
			info := s.Info
			if strings.EqualFold(string(info.ID), ref) ||
				strings.EqualFold(info.ShortName, ref) ||
				info.ServerPath == cleanPath(ref) {
				return s, nil
			}
		}
	}
	return types.ServerData{}, errors.Newf(errors.ErrNotFound, MsgErrServerNotFound, ref).
		WithDetail("ref", ref)
}

// resolveProfile finds a profile by name. With no server given the profile
// is looked up on every server and must be unique.
func resolveProfile(data *types.AppData, server, name string) (types.ProfileData, error) {
	if server != "" {
		s, err := resolveServer(data, server)
		if err != nil {
			return types.ProfileData{}, err
		}
		if p, ok := data.FindProfile(s.Info.ID, name); ok {
			return p, nil
		}
		return types.ProfileData{}, errors.Newf(errors.ErrNotFound, MsgErrProfileNotFound, name, s.Info.Name).
			WithDetail("profile", name)
	}

	var matches []types.ProfileData
	if data != nil {
		for _, s := range data.Servers {
			if p, ok := data.FindProfile(s.Info.ID, name); ok {
				matches = append(matches, p)
			}
		}
	}
	switch len(matches) {
	case 0:
		return types.ProfileData{}, errors.Newf(errors.ErrNotFound, MsgErrProfileNotFound, name, "any server").
			WithDetail("profile", name)
	case 1:
		return matches[0], nil
	default:
		return types.ProfileData{}, errors.Newf(errors.ErrAmbiguous, "profile %q exists on %d servers, use --server", name, len(matches)).
			WithDetail("profile", name)
	}
}

// originalEntry finds the entry a backup was taken from. Backups live in
// the backups folder of the profile holding the original.
func originalEntry(data *types.AppData, b types.BackupEntry) (types.SettingsEntry, error) {
	profileDir := filepath.Dir(filepath.Dir(b.Path))
	for _, e := range data.AllEntries() {
		if e.ID == b.OriginalID && e.Kind == b.Kind && filepath.Dir(e.Path) == profileDir {
			return e, nil
		}
	}
	return types.SettingsEntry{}, errors.Newf(errors.ErrNotFound, MsgErrOriginalUnknown, b.ID).
		WithDetail("backup", b.ID)
}

func cleanPath(ref string) string {
	if ref == "" || !strings.ContainsAny(ref, `/\`) {
		return ref
	}
	if abs, err := filepath.Abs(ref); err == nil {
		return abs
	}
	return filepath.Clean(ref)
}
