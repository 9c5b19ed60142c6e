package local

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/spf13/afero"
)

// GetAppData scans the settings root and returns every server, profile,
// settings entry and backup found. A missing root yields empty data.
func (b *Backend) GetAppData(ctx context.Context, customRoot string) (*types.AppData, error) {
	logger := logging.GetLogger("backend.local")

	root, err := b.Root(customRoot)
	if err != nil {
		return nil, err
	}
	if !b.exists(root) {
		logger.Debug().Str("root", root).Msg("Settings root does not exist")
		return &types.AppData{Servers: []types.ServerData{}, Backups: []types.BackupEntry{}}, nil
	}

	servers, err := b.scanServers(root)
	if err != nil {
		return nil, err
	}
	backups := b.scanBackups(root)

	aliases, err := b.loadAliases()
	if err != nil {
		logger.Warn().Err(err).Msg("Ignoring unreadable aliases file")
		aliases = map[string]string{}
	}
	applyAliases(servers, aliases)

	if err := b.resolveCharacters(ctx, servers); err != nil {
		return nil, err
	}

	enrichBackups(backups, servers)

	logger.Debug().
		Str("root", root).
		Int("servers", len(servers)).
		Int("backups", len(backups)).
		Msg("Scanned settings")

	return &types.AppData{Servers: servers, Backups: backups}, nil
}

func (b *Backend) scanServers(root string) ([]types.ServerData, error) {
	entries, err := afero.ReadDir(b.fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read settings root %s", root)
	}

	profilesByServer := map[types.ServerID][]types.ProfileData{}
	serverPaths := map[types.ServerID]string{}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		server, ok := types.ServerFromFolder(entry.Name())
		if !ok {
			continue
		}
		serverPath := filepath.Join(root, entry.Name())
		serverPaths[server] = serverPath

		profiles, err := b.scanProfiles(serverPath, server)
		if err != nil {
			continue
		}
		profilesByServer[server] = append(profilesByServer[server], profiles...)
	}

	servers := []types.ServerData{}
	for _, server := range types.AllServers() {
		profiles := profilesByServer[server]
		if len(profiles) == 0 {
			continue
		}
		sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
		serverPath := serverPaths[server]
		servers = append(servers, types.ServerData{
			Info:     types.NewServerInfo(server, serverPath, b.readBrackets(serverPath)),
			Profiles: profiles,
		})
	}
	return servers, nil
}

func (b *Backend) scanProfiles(serverPath string, server types.ServerID) ([]types.ProfileData, error) {
	dirs, err := afero.ReadDir(b.fs, serverPath)
	if err != nil {
		return nil, err
	}

	now := b.now()
	var profiles []types.ProfileData
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name, ok := profileName(dir.Name())
		if !ok {
			continue
		}
		profilePath := filepath.Join(serverPath, dir.Name())
		profile := types.ProfileData{
			Name:       name,
			Path:       profilePath,
			Accounts:   []types.SettingsEntry{},
			Characters: []types.SettingsEntry{},
		}

		files, err := afero.ReadDir(b.fs, profilePath)
		if err == nil {
			for _, f := range files {
				if f.IsDir() {
					continue
				}
				kind, id, ok := parseSettingsFileName(f.Name())
				if !ok {
					continue
				}
				mtime := f.ModTime().Unix()
				e := types.SettingsEntry{
					Path:         filepath.Join(profilePath, f.Name()),
					ID:           id,
					Kind:         kind,
					Server:       server,
					Profile:      name,
					DisplayName:  id,
					ModifiedTime: mtime,
					RelativeTime: types.RelativeTime(now, mtime),
				}
				switch kind {
				case types.KindUser:
					profile.Accounts = append(profile.Accounts, e)
				case types.KindChar:
					profile.Characters = append(profile.Characters, e)
				}
			}
		}

		sortByID(profile.Accounts)
		sortByID(profile.Characters)
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func sortByID(entries []types.SettingsEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
}

// scanBackups lists the backups of every profile, newest first. Unreadable
// directories are skipped.
func (b *Backend) scanBackups(root string) []types.BackupEntry {
	backups := []types.BackupEntry{}
	now := b.now()

	serverDirs, err := afero.ReadDir(b.fs, root)
	if err != nil {
		return backups
	}
	for _, serverDir := range serverDirs {
		if !serverDir.IsDir() {
			continue
		}
		serverPath := filepath.Join(root, serverDir.Name())
		profileDirs, err := afero.ReadDir(b.fs, serverPath)
		if err != nil {
			continue
		}
		for _, profileDir := range profileDirs {
			if _, ok := profileName(profileDir.Name()); !ok || !profileDir.IsDir() {
				continue
			}
			dir := filepath.Join(serverPath, profileDir.Name(), backupsDir)
			files, err := afero.ReadDir(b.fs, dir)
			if err != nil {
				continue
			}
			for _, f := range files {
				if f.IsDir() {
					continue
				}
				parsed, ok := parseBackupFileName(f.Name())
				if !ok {
					continue
				}
				backups = append(backups, newBackupEntry(parsed, filepath.Join(dir, f.Name()), now))
			}
		}
	}

	sort.SliceStable(backups, func(i, j int) bool { return backups[i].Timestamp > backups[j].Timestamp })
	return backups
}

func newBackupEntry(parsed backupName, path string, now time.Time) types.BackupEntry {
	return types.BackupEntry{
		ID:           backupID(parsed, path),
		Name:         parsed.name,
		Path:         path,
		Timestamp:    parsed.timestamp,
		Kind:         parsed.kind,
		OriginalID:   parsed.id,
		DisplayName:  parsed.name,
		RelativeTime: types.RelativeTime(now, parsed.timestamp),
	}
}

func applyAliases(servers []types.ServerData, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}
	forEachEntry(servers, func(e *types.SettingsEntry) {
		if alias, ok := aliases[e.ID]; ok {
			e.Alias = alias
			e.DisplayName = alias
		}
	})
}

// resolveCharacters fills character details for ESI-capable servers. Lookup
// failures leave the entry unchanged; only a cancelled context is an error.
func (b *Backend) resolveCharacters(ctx context.Context, servers []types.ServerData) error {
	if b.characters == nil {
		return nil
	}
	logger := logging.GetLogger("backend.local")

	for si := range servers {
		switch servers[si].Info.ID {
		case types.ServerTranquility, types.ServerSingularity:
		default:
			continue
		}
		for pi := range servers[si].Profiles {
			chars := servers[si].Profiles[pi].Characters
			for ci := range chars {
				if err := ctx.Err(); err != nil {
					return err
				}
				id, err := strconv.ParseInt(chars[ci].ID, 10, 64)
				if err != nil || id < minCharacterESID {
					continue
				}
				details, err := b.characters.LookupCharacter(ctx, id)
				if err != nil {
					logger.Debug().Err(err).Int64("character", id).Msg("Character lookup failed")
					continue
				}
				chars[ci].Character = details
				chars[ci].DisplayName = details.Name
			}
		}
	}
	return nil
}

// enrichBackups sets OriginalName from the first entry of the same kind and id
func enrichBackups(backups []types.BackupEntry, servers []types.ServerData) {
	for i := range backups {
	search:
		for _, s := range servers {
			for _, p := range s.Profiles {
				for _, e := range p.Entries(backups[i].Kind) {
					if e.ID == backups[i].OriginalID {
						backups[i].OriginalName = e.DisplayName
						break search
					}
				}
			}
		}
	}
}

func forEachEntry(servers []types.ServerData, fn func(e *types.SettingsEntry)) {
	for si := range servers {
		for pi := range servers[si].Profiles {
			p := &servers[si].Profiles[pi]
			for i := range p.Accounts {
				fn(&p.Accounts[i])
			}
			for i := range p.Characters {
				fn(&p.Characters[i])
			}
		}
	}
}

// readBrackets reports whether any profile of the server enables always-on ship brackets
func (b *Backend) readBrackets(serverPath string) bool {
	dirs, err := afero.ReadDir(b.fs, serverPath)
	if err != nil {
		return false
	}
	for _, dir := range dirs {
		if _, ok := profileName(dir.Name()); !ok || !dir.IsDir() {
			continue
		}
		data, err := afero.ReadFile(b.fs, filepath.Join(serverPath, dir.Name(), prefsFileName))
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if value, ok := strings.CutPrefix(line, bracketsSetting); ok && strings.TrimSpace(value) == "1" {
				return true
			}
		}
	}
	return false
}
