package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/spf13/afero"
)

// CopySettings copies the source file over each target and returns how many
// copies succeeded. Targets equal to the source are skipped and individual
// failures are counted out rather than aborting the batch.
func (b *Backend) CopySettings(ctx context.Context, sourcePath string, targetPaths []string) (int, error) {
	logger := logging.GetLogger("backend.local")

	data, err := b.readExisting(sourcePath, "source file not found")
	if err != nil {
		return 0, err
	}

	src := filepath.Clean(sourcePath)
	now := b.now()
	count := 0
	for _, target := range targetPaths {
		if err := ctx.Err(); err != nil {
			if count > 0 {
				b.emitChanged()
			}
			return count, err
		}
		dest := filepath.Clean(target)
		if dest == src {
			continue
		}
		if err := afero.WriteFile(b.fs, dest, data, 0644); err != nil {
			logger.Warn().Err(err).Str("target", dest).Msg("Copy failed")
			continue
		}
		if err := b.fs.Chtimes(dest, now, now); err != nil {
			logger.Debug().Err(err).Str("target", dest).Msg("Could not update mtime")
		}
		count++
	}

	logger.Info().Str("source", src).Int("requested", len(targetPaths)).Int("copied", count).Msg("Copied settings")
	if count > 0 {
		b.emitChanged()
	}
	return count, nil
}

// CreateBackup snapshots a settings file into its profile's backups directory
func (b *Backend) CreateBackup(ctx context.Context, sourcePath, name string) (*types.BackupEntry, error) {
	entry, err := b.createBackup(sourcePath, name)
	if err != nil {
		return nil, err
	}
	b.emitChanged()
	return entry, nil
}

func (b *Backend) createBackup(sourcePath, name string) (*types.BackupEntry, error) {
	logger := logging.GetLogger("backend.local")

	data, err := b.readExisting(sourcePath, "source file does not exist")
	if err != nil {
		return nil, err
	}
	kind, id, ok := parseSettingsFileName(filepath.Base(sourcePath))
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidSettingsFile, "invalid settings file: %s", filepath.Base(sourcePath))
	}
	if !validBackupName(name) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid backup name: %q", name)
	}

	dir := filepath.Join(filepath.Dir(sourcePath), backupsDir)
	if err := b.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	now := b.now()
	ts := now.Unix()
	dest := filepath.Join(dir, backupFileName(name, kind, id, ts))
	if err := afero.WriteFile(b.fs, dest, data, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write backup %s", dest)
	}

	logger.Info().Str("source", sourcePath).Str("backup", dest).Msg("Created backup")
	entry := newBackupEntry(backupName{name: name, kind: kind, id: id, timestamp: ts}, dest, now)
	return &entry, nil
}

// DeleteBackup removes a backup file
func (b *Backend) DeleteBackup(ctx context.Context, backupPath string) error {
	logger := logging.GetLogger("backend.local")

	if !b.exists(backupPath) {
		return errors.Newf(errors.ErrFileNotFound, "backup file not found: %s", backupPath)
	}
	if err := b.fs.Remove(backupPath); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to delete backup %s", backupPath)
	}

	logger.Info().Str("backup", backupPath).Msg("Deleted backup")
	b.emitChanged()
	return nil
}

func (b *Backend) readExisting(path, missing string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "%s: %s", missing, path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return data, nil
}
