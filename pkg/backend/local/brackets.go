package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/spf13/afero"
)

// SetBracketsAlwaysShow writes the always-show-ship-brackets flag into the
// prefs.ini of every profile of a server, creating the file when missing
func (b *Backend) SetBracketsAlwaysShow(ctx context.Context, serverPath string, enabled bool) error {
	logger := logging.GetLogger("backend.local")

	dirs, err := afero.ReadDir(b.fs, serverPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read server directory %s", serverPath)
	}

	value := "0"
	if enabled {
		value = "1"
	}
	setting := bracketsSetting + value

	for _, dir := range dirs {
		if _, ok := profileName(dir.Name()); !ok || !dir.IsDir() {
			continue
		}
		path := filepath.Join(serverPath, dir.Name(), prefsFileName)
		content, err := b.rewritePrefs(path, setting)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(b.fs, path, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
		}
	}

	logger.Info().Str("server", serverPath).Bool("enabled", enabled).Msg("Updated ship brackets setting")
	b.emitChanged()
	return nil
}

func (b *Backend) rewritePrefs(path, setting string) (string, error) {
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return setting, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	existing := strings.TrimRight(string(data), "\n")
	if existing == "" {
		return setting, nil
	}
	lines := strings.Split(existing, "\n")
	found := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), bracketsSetting) {
			lines[i] = setting
			found = true
		}
	}
	if !found {
		lines = append(lines, setting)
	}
	return strings.Join(lines, "\n"), nil
}
