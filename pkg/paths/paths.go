package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/wrench/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for wrench
	EnvConfigDir = "WRENCH_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for wrench
	EnvDataDir = "WRENCH_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for wrench
	EnvStateDir = "WRENCH_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File and directory names. These are not user-configurable.
const (
	AppDirName      = "wrench"
	ConfigFileName  = "config.toml"
	PrefsFileName   = "prefs.toml"
	AliasesFileName = "aliases.json"
	LogFileName     = "wrench.log"

	// BackupsDirName is the per-profile directory holding backup snapshots
	BackupsDirName = "backups"
)

// Paths provides the locations of wrench's own files
type Paths interface {
	ConfigDir() string
	DataDir() string
	StateDir() string
	ConfigFilePath() string
	PrefsPath() string
	AliasesPath() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgState  string
}

// New resolves wrench's directories, honouring the WRENCH_*_DIR overrides
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = expandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.xdgData = expandHome(dir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.xdgState = expandHome(dir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.xdgConfig, &p.xdgData, &p.xdgState} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func (p *paths) ConfigDir() string      { return p.xdgConfig }
func (p *paths) DataDir() string        { return p.xdgData }
func (p *paths) StateDir() string       { return p.xdgState }
func (p *paths) ConfigFilePath() string { return filepath.Join(p.xdgConfig, ConfigFileName) }
func (p *paths) PrefsPath() string      { return filepath.Join(p.xdgConfig, PrefsFileName) }
func (p *paths) AliasesPath() string    { return filepath.Join(p.xdgData, AliasesFileName) }
func (p *paths) LogFilePath() string    { return filepath.Join(p.xdgState, LogFileName) }

// DefaultSettingsRoot returns where the game client stores settings on this OS.
// An empty string means the platform has no known location.
func DefaultSettingsRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	return settingsRootFor(runtime.GOOS, home, xdg.DataHome)
}

func settingsRootFor(goos, home, localAppData string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "CCP", "EVE")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			localAppData = dir
		}
		return filepath.Join(localAppData, "CCP", "EVE")
	case "linux":
		// Steam/Proton prefix
		return filepath.Join(home, ".local", "share", "Steam", "steamapps", "compatdata", "8500",
			"pfx", "drive_c", "users", "steamuser", "AppData", "Local", "CCP", "EVE")
	default:
		return ""
	}
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
