package manager

import (
	"context"
	"fmt"

	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
)

// CreateBackup asks for a name, prefilled with the entry's display name,
// and snapshots the entry. A cancelled prompt returns nil without a request.
func (m *Manager) CreateBackup(ctx context.Context, entry types.SettingsEntry) (*types.BackupEntry, error) {
	logger := logging.GetLogger("manager.backup")

	name, ok, err := m.decider.Prompt(ctx, decision.PromptOptions{
		Title:        MsgCreateBackupTitle,
		Description:  fmt.Sprintf(MsgCreateBackupDesc, entry.DisplayName),
		Placeholder:  MsgBackupNameHint,
		DefaultValue: entry.DisplayName,
		ConfirmText:  MsgCreateConfirm,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	backup, err := m.gateway.CreateBackup(ctx, entry.Path, name)
	if err != nil {
		logger.Error().Err(err).Str("entry", entry.Path).Msg("Backup failed")
		m.notifier.Error(MsgBackupFailed, err)
		return nil, errors.Wrap(err, errors.ErrBackend, MsgBackupFailed)
	}

	logger.Info().Str("entry", entry.Path).Str("name", name).Msg("Backup created")
	m.notifier.Success(MsgBackupCreated, fmt.Sprintf(MsgBackupCreatedDesc, name))
	return backup, nil
}

// DeleteBackup removes a backup after destructive confirmation. When the
// backup is the current source the source is cleared.
func (m *Manager) DeleteBackup(ctx context.Context, backup types.BackupEntry) (bool, error) {
	logger := logging.GetLogger("manager.backup")

	ok, err := m.decider.Confirm(ctx, decision.ConfirmOptions{
		Title:       MsgDeleteBackupTitle,
		Description: fmt.Sprintf(MsgDeleteBackupDesc, backup.Name),
		ConfirmText: MsgDeleteConfirm,
		Destructive: true,
	})
	if err != nil || !ok {
		return false, err
	}

	if err := m.gateway.DeleteBackup(ctx, backup.Path); err != nil {
		logger.Error().Err(err).Str("backup", backup.Path).Msg("Delete failed")
		m.notifier.Error(MsgDeleteFailed, err)
		return false, errors.Wrap(err, errors.ErrBackend, MsgDeleteFailed)
	}

	m.mu.Lock()
	if m.source.Same(types.BackupSource(backup)) {
		m.source = types.SourceItem{}
	}
	m.mu.Unlock()

	logger.Info().Str("backup", backup.Path).Msg("Backup deleted")
	m.notifier.Success(MsgBackupDeleted, fmt.Sprintf(MsgBackupDeletedDesc, backup.Name))
	return true, nil
}

// RestoreBackup copies a backup back onto the entry it belongs to.
// It works on its arguments only and leaves the selection alone.
func (m *Manager) RestoreBackup(ctx context.Context, entry types.SettingsEntry, backup types.BackupEntry) (bool, error) {
	return m.copyBackup(ctx, backup, entry, backupCopy{
		title:       MsgRestoreBackupTitle,
		description: fmt.Sprintf(MsgRestoreBackupDesc, backup.Name, entry.DisplayName),
		confirm:     MsgRestoreConfirm,
		done:        MsgBackupRestored,
		doneDesc:    fmt.Sprintf(MsgBackupRestoredDesc, backup.Name),
		failed:      MsgRestoreFailed,
	})
}

// ApplyBackup copies a backup onto any target entry.
// It works on its arguments only and leaves the selection alone.
func (m *Manager) ApplyBackup(ctx context.Context, backup types.BackupEntry, target types.SettingsEntry) (bool, error) {
	return m.copyBackup(ctx, backup, target, backupCopy{
		title:       MsgApplyBackupTitle,
		description: fmt.Sprintf(MsgApplyBackupDesc, backup.Name, target.DisplayName),
		confirm:     MsgApplyConfirm,
		done:        MsgBackupApplied,
		doneDesc:    fmt.Sprintf(MsgBackupAppliedDesc, backup.Name, target.DisplayName),
		failed:      MsgApplyFailed,
	})
}

type backupCopy struct {
	title, description, confirm string
	done, doneDesc, failed      string
}

func (m *Manager) copyBackup(ctx context.Context, backup types.BackupEntry, target types.SettingsEntry, msgs backupCopy) (bool, error) {
	logger := logging.GetLogger("manager.backup")

	if backup.Kind != target.Kind {
		return false, errors.New(errors.ErrKindMismatch, MsgKindMismatch).
			WithDetail("source", string(backup.Kind)).
			WithDetail("target", string(target.Kind))
	}

	ok, err := m.decider.Confirm(ctx, decision.ConfirmOptions{
		Title:       msgs.title,
		Description: msgs.description,
		ConfirmText: msgs.confirm,
		Destructive: true,
	})
	if err != nil || !ok {
		return false, err
	}

	if _, err := m.gateway.CopySettings(ctx, backup.Path, []string{target.Path}); err != nil {
		logger.Error().Err(err).Str("backup", backup.Path).Str("target", target.Path).Msg("Backup copy failed")
		m.notifier.Error(msgs.failed, err)
		return false, errors.Wrap(err, errors.ErrBackend, msgs.failed)
	}

	logger.Info().Str("backup", backup.Path).Str("target", target.Path).Msg("Backup copied")
	m.notifier.Success(msgs.done, msgs.doneDesc)
	return true, nil
}

// GetBackupsForEntry returns the cached backups taken from entry
func (m *Manager) GetBackupsForEntry(entry types.SettingsEntry) []types.BackupEntry {
	out := []types.BackupEntry{}
	if m.catalog == nil {
		return out
	}
	data := m.catalog.Data()
	if data == nil {
		return out
	}
	for _, b := range data.Backups {
		if b.Kind == entry.Kind && b.OriginalID == entry.ID {
			out = append(out, b)
		}
	}
	return out
}
