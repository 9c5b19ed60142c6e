package manager

import (
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/types"
)

// SetSource selects the copy source. A change of kind drops every target;
// targets of another kind are filtered out in any case.
func (m *Manager) SetSource(item types.SourceItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind := item.Kind()
	if !m.source.IsZero() && m.source.Kind() != kind {
		m.targets = nil
	}
	kept := m.targets[:0]
	for _, t := range m.targets {
		if t.Kind == kind {
			kept = append(kept, t)
		}
	}
	m.targets = kept
	m.source = item
}

// ClearSource drops the source and leaves the targets alone
func (m *Manager) ClearSource() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = types.SourceItem{}
}

// Source returns the current source
func (m *Manager) Source() (types.SourceItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source, !m.source.IsZero()
}

// AddTarget appends entry to the targets. Adding a target already present is a no-op.
func (m *Manager) AddTarget(entry types.SettingsEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkTarget(entry); err != nil {
		return err
	}
	if !m.hasTarget(entry.Path) {
		m.targets = append(m.targets, entry)
	}
	return nil
}

// AddAllFromProfile adds every eligible entry of one kind from a profile.
// Entries that would be rejected by AddTarget are skipped silently, as is
// the whole call when kind differs from the source kind.
func (m *Manager) AddAllFromProfile(profile types.ProfileData, kind types.SettingsKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source.IsZero() {
		return errors.New(errors.ErrNoSourceSelected, MsgNoSourceSelected)
	}
	if m.source.Kind() != kind {
		return nil
	}
	for _, e := range profile.Entries(kind) {
		if m.checkTarget(e) != nil || m.hasTarget(e.Path) {
			continue
		}
		m.targets = append(m.targets, e)
	}
	return nil
}

// checkTarget validates entry against the source; callers hold mu
func (m *Manager) checkTarget(entry types.SettingsEntry) error {
	if m.source.IsZero() {
		return errors.New(errors.ErrNoSourceSelected, MsgNoSourceSelected)
	}
	if entry.Kind != m.source.Kind() {
		return errors.New(errors.ErrKindMismatch, MsgKindMismatch).
			WithDetail("source", string(m.source.Kind())).
			WithDetail("target", string(entry.Kind))
	}
	switch m.source.Variant() {
	case types.SourceEntry:
		if entry.Path == m.source.Path() {
			return errors.New(errors.ErrInvalidTarget, MsgInvalidTarget).WithDetail("path", entry.Path)
		}
	case types.SourceBackup:
		// a backup may be copied back onto the entry it was taken from
	case types.SourceNone:
	}
	return nil
}

func (m *Manager) hasTarget(path string) bool {
	for _, t := range m.targets {
		if t.Path == path {
			return true
		}
	}
	return false
}

// RemoveTarget removes the target with entry's path
func (m *Manager) RemoveTarget(entry types.SettingsEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.targets[:0]
	for _, t := range m.targets {
		if t.Path != entry.Path {
			kept = append(kept, t)
		}
	}
	m.targets = kept
}

// ClearTargets empties the target list
func (m *Manager) ClearTargets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets = nil
}

// IsSource reports whether item designates the current source
func (m *Manager) IsSource(item types.SourceItem) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source.Same(item)
}

// IsTarget reports whether an entry with the same path is a target
func (m *Manager) IsTarget(entry types.SettingsEntry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasTarget(entry.Path)
}

// Targets returns a copy of the target list
func (m *Manager) Targets() []types.SettingsEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.SettingsEntry, len(m.targets))
	copy(out, m.targets)
	return out
}

// SourceKind returns the kind of the source, empty when none is set
func (m *Manager) SourceKind() types.SettingsKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source.Kind()
}

// CanCopy reports whether a copy could be started now
func (m *Manager) CanCopy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.source.IsZero() && len(m.targets) > 0 && !m.copying
}

// Copying reports whether a copy is being committed
func (m *Manager) Copying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copying
}
