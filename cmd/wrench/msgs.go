package wrench

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Manage EVE Online client settings files"
	MsgListShort          = "List servers, profiles and settings entries"
	MsgCopyShort          = "Copy one settings entry or backup over others"
	MsgBackupShort        = "Create, list, delete and restore backups"
	MsgBackupCreateShort  = "Snapshot a settings entry"
	MsgBackupListShort    = "List backups, optionally only those of one entry"
	MsgBackupDeleteShort  = "Delete a backup"
	MsgBackupRestoreShort = "Restore a backup onto the entry it was taken from"
	MsgBackupApplyShort   = "Apply a backup onto any entry of the same kind"
	MsgExportShort        = "Export every settings file to a zip archive"
	MsgImportShort        = "Import settings files from a zip archive"
	MsgRootCmdShort       = "Show or change the settings root"
	MsgRootShowShort      = "Show the settings root in use"
	MsgRootSetShort       = "Use a custom settings root"
	MsgRootClearShort     = "Go back to the default settings root"
	MsgBracketsShort      = "Toggle always-shown ship brackets for a server"
	MsgAliasShort         = "Set or clear the display alias of an entry"
	MsgSessionShort       = "Start an interactive session"
	MsgConfigShort        = "Inspect configuration"
	MsgConfigShowShort    = "Show the effective configuration"
	MsgConfigDefaultShort = "Print the built-in default configuration"
	MsgTopicsShort        = "Display available documentation topics"
	MsgTopicsLong         = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort    = "Generate shell completion script"
	MsgVersionShort       = "Print version information"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagYes          = "Answer yes to every confirmation and accept prompt defaults"
	MsgFlagFormat       = "Output format: auto, term, text or json"
	MsgFlagConfig       = "Config file (default is $XDG_CONFIG_HOME/wrench/config.toml)"
	MsgFlagProfile      = "Add every entry of this profile as a target"
	MsgFlagServer       = "Server of the profile given with --profile"
	MsgFlagBackupName   = "Backup name; prompts when omitted"
	MsgFlagOverwrite    = "Overwrite this conflicting file (repeatable)"
	MsgFlagOverwriteAll = "Overwrite every conflicting file"
	MsgFlagKeepAll      = "Keep every conflicting file"
	MsgFlagDryRun       = "Only show what the import would do"
	MsgFlagServers      = "List servers instead of entries"
	MsgFlagClear        = "Remove the alias"

	// Status messages
	MsgRootDefault     = "%s (default)"
	MsgRootCustom      = "%s (custom)"
	MsgRootNone        = "No settings root found"
	MsgNothingCopied   = "Nothing copied."
	MsgImportCancelled = "Import cancelled, nothing changed."
	MsgNoConflicts     = "No conflicting files."
	MsgOverwriteTitle  = "Overwrite File"
	MsgOverwriteDesc   = "%s differs from the archived copy. Overwrite it? The current file is backed up first."
	MsgOverwrite       = "Overwrite"
	MsgKeep            = "Keep"
	MsgVersionFormat   = "wrench version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrEntryNotFound   = "no settings entry matches %q"
	MsgErrEntryAmbiguous  = "%q matches %d entries, use the file path"
	MsgErrBackupNotFound  = "no backup matches %q"
	MsgErrBackupAmbiguous = "%q matches %d backups, use the file path"
	MsgErrSourceNotFound  = "no settings entry or backup matches %q"
	MsgErrServerNotFound  = "no installed server matches %q"
	MsgErrProfileNotFound = "no profile %q on %s"
	MsgErrOriginalUnknown = "cannot tell which entry backup %q belongs to, give the target entry"
	MsgErrOnOff           = "expected on or off, got %q"
	MsgErrNoTargets       = "give at least one target or --profile"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/import-long.txt
	msgImportLongRaw string
	MsgImportLong    = strings.TrimSpace(msgImportLongRaw)

	//go:embed msgs/session-long.txt
	msgSessionLongRaw string
	MsgSessionLong    = strings.TrimSpace(msgSessionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = msgUsageTemplateRaw
)

// Examples
const (
	MsgCopyExample = `  # Copy account settings 1234 over two other accounts
  wrench copy 1234 5678 9012

  # Copy a character's settings to every character of the Alt profile
  wrench copy 95465499 --profile Alt

  # Copy a backup over an entry
  wrench copy main_1700000000 95465499`

	MsgImportExample = `  # See what an archive would change
  wrench import eve-settings.zip --dry-run

  # Import, overwriting one conflicting file
  wrench import eve-settings.zip --overwrite /path/to/core_user_1234.dat`
)
