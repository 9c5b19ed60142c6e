// Package manager is the selection and workflow coordinator. It tracks the
// copy source and targets, enforces their compatibility, and drives the
// copy, backup and import/export workflows against a backend gateway.
//
// The coordinator never touches settings files itself. Each workflow asks
// the user through a Decider when needed, issues one gateway request, then
// updates its state and notifies on success, or notifies and leaves state
// as it was on failure. Failures are also returned as ErrBackend errors.
package manager

import (
	"context"
	"sync"

	"github.com/arthur-debert/wrench/pkg/backend"
	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/notify"
	"github.com/arthur-debert/wrench/pkg/types"
)

// Decider asks the user to confirm an action or to enter a value
type Decider interface {
	Confirm(ctx context.Context, opts decision.ConfirmOptions) (bool, error)
	Prompt(ctx context.Context, opts decision.PromptOptions) (string, bool, error)
}

// PathPicker lets the user choose files and directories. A false second
// result means the user cancelled.
type PathPicker interface {
	PickExportDestination(ctx context.Context) (string, bool, error)
	PickImportArchive(ctx context.Context) (string, bool, error)
	PickSettingsRoot(ctx context.Context) (string, bool, error)
}

// Catalog is the read side of the catalog cache used by the workflows
type Catalog interface {
	Data() *types.AppData
	CustomRoot() string
	SetCustomRoot(ctx context.Context, path string) error
}

// Coordinator is the full set of selection and workflow operations
type Coordinator interface {
	SetSource(item types.SourceItem)
	ClearSource()
	Source() (types.SourceItem, bool)
	AddTarget(entry types.SettingsEntry) error
	RemoveTarget(entry types.SettingsEntry)
	ClearTargets()
	AddAllFromProfile(profile types.ProfileData, kind types.SettingsKind) error
	IsSource(item types.SourceItem) bool
	IsTarget(entry types.SettingsEntry) bool
	Targets() []types.SettingsEntry
	SourceKind() types.SettingsKind
	CanCopy() bool
	Copying() bool

	ExecuteCopy(ctx context.Context) (*CopyResult, error)

	CreateBackup(ctx context.Context, entry types.SettingsEntry) (*types.BackupEntry, error)
	DeleteBackup(ctx context.Context, backup types.BackupEntry) (bool, error)
	RestoreBackup(ctx context.Context, entry types.SettingsEntry, backup types.BackupEntry) (bool, error)
	ApplyBackup(ctx context.Context, backup types.BackupEntry, target types.SettingsEntry) (bool, error)
	GetBackupsForEntry(entry types.SettingsEntry) []types.BackupEntry

	ExportSettings(ctx context.Context) (*types.ExportResult, error)
	ImportSettings(ctx context.Context) (*types.ImportAnalysis, error)
	ExecuteImport(ctx context.Context, overwritePaths []string) (*types.ImportResult, error)
	CancelImport() error
	ImportPhase() ImportPhase
	PendingImport() *types.ImportAnalysis

	SetBracketsAlwaysShow(ctx context.Context, serverPath string, enabled bool) error
	SetAlias(ctx context.Context, entry types.SettingsEntry, alias string) error
	SelectCustomRoot(ctx context.Context) (string, error)

	Reset()
}

// Options wires a Manager to its collaborators
type Options struct {
	Gateway  backend.Gateway
	Catalog  Catalog
	Decider  Decider
	Picker   PathPicker
	Notifier notify.Notifier
}

// Manager owns the selection and workflow state of one session. The mutex
// guards state only and is never held across a decision or gateway call.
type Manager struct {
	gateway  backend.Gateway
	catalog  Catalog
	decider  Decider
	picker   PathPicker
	notifier notify.Notifier

	mu      sync.Mutex
	source  types.SourceItem
	targets []types.SettingsEntry
	copying bool

	phase   ImportPhase
	pending *pendingImport
}

var _ Coordinator = (*Manager)(nil)

// New returns a Manager with an empty selection
func New(opts Options) *Manager {
	m := &Manager{
		gateway:  opts.Gateway,
		catalog:  opts.Catalog,
		decider:  opts.Decider,
		picker:   opts.Picker,
		notifier: opts.Notifier,
	}
	if m.notifier == nil {
		m.notifier = notify.Discard{}
	}
	return m
}

// Reset drops the selection and any retained import analysis
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = types.SourceItem{}
	m.targets = nil
	m.phase = PhaseIdle
	m.pending = nil
}

func (m *Manager) customRoot() string {
	if m.catalog == nil {
		return ""
	}
	return m.catalog.CustomRoot()
}
