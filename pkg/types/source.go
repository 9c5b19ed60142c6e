package types

// SourceVariant tags which kind of value a SourceItem holds
type SourceVariant int

const (
	// SourceNone is the zero value: nothing selected
	SourceNone SourceVariant = iota
	// SourceEntry holds a SettingsEntry
	SourceEntry
	// SourceBackup holds a BackupEntry
	SourceBackup
)

// String returns the variant name
func (v SourceVariant) String() string {
	switch v {
	case SourceNone:
		return "none"
	case SourceEntry:
		return "entry"
	case SourceBackup:
		return "backup"
	default:
		return "unknown"
	}
}

// SourceItem is the read side of a copy: either a settings entry or a backup.
// Build it with EntrySource or BackupSource; the zero value means no source.
type SourceItem struct {
	variant SourceVariant
	entry   SettingsEntry
	backup  BackupEntry
}

// EntrySource wraps a settings entry
func EntrySource(e SettingsEntry) SourceItem {
	return SourceItem{variant: SourceEntry, entry: e}
}

// BackupSource wraps a backup
func BackupSource(b BackupEntry) SourceItem {
	return SourceItem{variant: SourceBackup, backup: b}
}

// Variant returns the tag
func (s SourceItem) Variant() SourceVariant { return s.variant }

// IsZero reports whether no item is held
func (s SourceItem) IsZero() bool { return s.variant == SourceNone }

// IsBackup reports whether the item is a backup
func (s SourceItem) IsBackup() bool { return s.variant == SourceBackup }

// Entry returns the wrapped entry
func (s SourceItem) Entry() (SettingsEntry, bool) {
	if s.variant != SourceEntry {
		return SettingsEntry{}, false
	}
	return s.entry, true
}

// Backup returns the wrapped backup
func (s SourceItem) Backup() (BackupEntry, bool) {
	if s.variant != SourceBackup {
		return BackupEntry{}, false
	}
	return s.backup, true
}

// Kind returns the settings kind of the wrapped item
func (s SourceItem) Kind() SettingsKind {
	switch s.variant {
	case SourceEntry:
		return s.entry.Kind
	case SourceBackup:
		return s.backup.Kind
	case SourceNone:
		return ""
	default:
		return ""
	}
}

// Path returns the file path of the wrapped item
func (s SourceItem) Path() string {
	switch s.variant {
	case SourceEntry:
		return s.entry.Path
	case SourceBackup:
		return s.backup.Path
	case SourceNone:
		return ""
	default:
		return ""
	}
}

// DisplayName returns the user-facing name of the wrapped item
func (s SourceItem) DisplayName() string {
	switch s.variant {
	case SourceEntry:
		return s.entry.DisplayName
	case SourceBackup:
		return s.backup.DisplayName
	case SourceNone:
		return ""
	default:
		return ""
	}
}

// Same reports whether two items designate the same source.
// Backups compare by id, entries by path; a backup never equals an entry.
func (s SourceItem) Same(other SourceItem) bool {
	if s.variant != other.variant {
		return false
	}
	switch s.variant {
	case SourceEntry:
		return s.entry.Path == other.entry.Path
	case SourceBackup:
		return s.backup.ID == other.backup.ID
	case SourceNone:
		return false
	default:
		return false
	}
}
