package local

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/wrench/pkg/types"
)

const (
	settingsPrefix   = "core_"
	settingsSuffix   = ".dat"
	profilePrefix    = "settings_"
	backupSuffix     = ".bak"
	backupsDir       = "backups"
	prefsFileName    = "prefs.ini"
	bracketsSetting  = "bracketsAlwaysShowShipText="
	minCharacterESID = 90_000_000
)

// parseSettingsFileName splits core_<kind>_<id>.dat into kind and numeric id
func parseSettingsFileName(name string) (types.SettingsKind, string, bool) {
	if !strings.HasPrefix(name, settingsPrefix) || !strings.HasSuffix(name, settingsSuffix) {
		return "", "", false
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(name, settingsPrefix), settingsSuffix)
	kindToken, id, ok := strings.Cut(stem, "_")
	if !ok || id == "" {
		return "", "", false
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", "", false
	}

	switch types.SettingsKind(kindToken) {
	case types.KindUser:
		return types.KindUser, id, true
	case types.KindChar:
		return types.KindChar, id, true
	default:
		return "", "", false
	}
}

func isSettingsFileName(name string) bool {
	_, _, ok := parseSettingsFileName(name)
	return ok
}

func profileName(dirName string) (string, bool) {
	if !strings.HasPrefix(dirName, profilePrefix) {
		return "", false
	}
	return strings.TrimPrefix(dirName, profilePrefix), true
}

func backupFileName(name string, kind types.SettingsKind, id string, ts int64) string {
	return fmt.Sprintf("%s_%s_%s_%d%s", name, kind, id, ts, backupSuffix)
}

type backupName struct {
	name      string
	kind      types.SettingsKind
	id        string
	timestamp int64
}

// parseBackupFileName reads <name>_<kind>_<id>_<ts>.bak, splitting from the
// right so the name itself may contain underscores
func parseBackupFileName(fileName string) (backupName, bool) {
	if !strings.HasSuffix(fileName, backupSuffix) {
		return backupName{}, false
	}
	stem := strings.TrimSuffix(fileName, backupSuffix)

	parts := rsplitN(stem, "_", 4)
	if len(parts) < 4 {
		return backupName{}, false
	}

	var kind types.SettingsKind
	switch types.SettingsKind(parts[2]) {
	case types.KindUser:
		kind = types.KindUser
	case types.KindChar:
		kind = types.KindChar
	default:
		return backupName{}, false
	}

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		ts = 0
	}

	return backupName{name: parts[3], kind: kind, id: parts[1], timestamp: ts}, true
}

// rsplitN splits s on sep from the right into at most n parts, last part first
func rsplitN(s, sep string, n int) []string {
	var parts []string
	for len(parts) < n-1 {
		i := strings.LastIndex(s, sep)
		if i < 0 {
			break
		}
		parts = append(parts, s[i+len(sep):])
		s = s[:i]
	}
	return append(parts, s)
}

// backupID qualifies the file stem with its server and profile, so two
// backups taken in the same second never share an id:
// tq:Default:pre-import_user_111_1700000000
func backupID(parsed backupName, path string) string {
	stem := strings.TrimSuffix(backupFileName(parsed.name, parsed.kind, parsed.id, parsed.timestamp), backupSuffix)
	profileDir := filepath.Dir(filepath.Dir(path))
	profile, ok := profileName(filepath.Base(profileDir))
	if !ok {
		profile = filepath.Base(profileDir)
	}
	server := filepath.Base(filepath.Dir(profileDir))
	if id, ok := types.ServerFromFolder(server); ok {
		server = id.ShortName()
	}
	return fmt.Sprintf("%s:%s:%s", strings.ToLower(server), profile, stem)
}

func validBackupName(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
