package manager

// User-facing titles and descriptions of decisions and notifications
const (
	MsgCopyTitle          = "Copy Settings"
	MsgCopyDesc           = "Copy settings from %q to %d target(s)?"
	MsgCopyConfirm        = "Copy"
	MsgSettingsCopied     = "Settings copied"
	MsgSettingsCopiedDesc = "Successfully copied to %d target(s)"
	MsgCopyFailed         = "Copy failed"
	MsgSelectionChanged   = "the selection changed before the copy was confirmed, nothing was copied"

	MsgCreateBackupTitle  = "Create Backup"
	MsgCreateBackupDesc   = "Enter a name for this backup of %s"
	MsgBackupNameHint     = "Backup name"
	MsgCreateConfirm      = "Create"
	MsgBackupCreated      = "Backup created"
	MsgBackupCreatedDesc  = "%q has been saved"
	MsgBackupFailed       = "Backup failed"
	MsgDeleteBackupTitle  = "Delete Backup"
	MsgDeleteBackupDesc   = "Are you sure you want to delete %q?"
	MsgDeleteConfirm      = "Delete"
	MsgBackupDeleted      = "Backup deleted"
	MsgBackupDeletedDesc  = "%q has been removed"
	MsgDeleteFailed       = "Delete failed"
	MsgRestoreBackupTitle = "Restore Backup"
	MsgRestoreBackupDesc  = "Restore %q to %s? This will overwrite current settings."
	MsgRestoreConfirm     = "Restore"
	MsgBackupRestored     = "Backup restored"
	MsgBackupRestoredDesc = "%q has been applied"
	MsgRestoreFailed      = "Restore failed"
	MsgApplyBackupTitle   = "Apply Backup"
	MsgApplyBackupDesc    = "Apply %q to %s? This will overwrite current settings."
	MsgApplyConfirm       = "Apply"
	MsgBackupApplied      = "Backup applied"
	MsgBackupAppliedDesc  = "%q has been applied to %s"
	MsgApplyFailed        = "Apply failed"

	MsgSettingsExported     = "Settings exported"
	MsgSettingsExportedDesc = "Exported %d file(s) to %s"
	MsgExportFailed         = "Export failed"
	MsgAnalysisFailed       = "Import analysis failed"
	MsgSettingsImported     = "Settings imported"
	MsgSettingsImportedDesc = "Imported %d file(s), skipped %d, backed up %d"
	MsgImportFailed         = "Import failed"

	MsgSettingUpdated     = "Setting updated"
	MsgSettingUpdatedDesc = "Brackets always show %s"
	MsgUpdateFailed       = "Failed to update setting"
	MsgAliasUpdated       = "Alias updated"
	MsgAliasUpdatedDesc   = "%s is now shown as %q"
	MsgAliasRemoved       = "Alias removed"
	MsgAliasRemovedDesc   = "%s is shown by its default name"
	MsgAliasFailed        = "Failed to update alias"

	MsgNoSourceSelected = "select a source first before adding targets"
	MsgKindMismatch     = "target must be the same type as source"
	MsgInvalidTarget    = "cannot use the same file as source and target"
)
