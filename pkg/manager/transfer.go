package manager

import (
	"context"
	"fmt"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
)

// ImportPhase is the state of the import/export workflow
type ImportPhase int

const (
	PhaseIdle ImportPhase = iota
	PhaseExporting
	PhaseAnalyzing
	PhaseAwaitingDecision
	PhaseCommitting
)

func (p ImportPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExporting:
		return "exporting"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseAwaitingDecision:
		return "awaiting-decision"
	case PhaseCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// inFlight reports whether a gateway request of the workflow is running
func (p ImportPhase) inFlight() bool {
	switch p {
	case PhaseExporting, PhaseAnalyzing, PhaseCommitting:
		return true
	case PhaseIdle, PhaseAwaitingDecision:
		return false
	default:
		return false
	}
}

type pendingImport struct {
	archivePath string
	analysis    *types.ImportAnalysis
}

// ImportPhase returns the current workflow phase
func (m *Manager) ImportPhase() ImportPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// PendingImport returns the retained analysis while awaiting a decision
func (m *Manager) PendingImport() *types.ImportAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return nil
	}
	return m.pending.analysis
}

func (m *Manager) busyError() error {
	return errors.Newf(errors.ErrTransferBusy, "an import or export is already %s", m.phase)
}

// ExportSettings archives the installation to a destination picked by the
// user. A retained import analysis survives the export.
func (m *Manager) ExportSettings(ctx context.Context) (*types.ExportResult, error) {
	logger := logging.GetLogger("manager.transfer")
	defer logging.LogOperationStart(logger, "export")()

	if err := m.checkIdle(); err != nil {
		return nil, err
	}
	dest, ok, err := m.picker.PickExportDestination(ctx)
	if err != nil || !ok {
		return nil, err
	}

	m.mu.Lock()
	if m.phase.inFlight() {
		err := m.busyError()
		m.mu.Unlock()
		return nil, err
	}
	prev := m.phase
	m.phase = PhaseExporting
	m.mu.Unlock()

	result, err := m.gateway.ExportSettings(ctx, m.customRoot(), dest)

	m.mu.Lock()
	m.phase = prev
	m.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Str("dest", dest).Msg("Export failed")
		m.notifier.Error(MsgExportFailed, err)
		return nil, errors.Wrap(err, errors.ErrBackend, MsgExportFailed)
	}

	logger.Info().Str("dest", result.Path).Int("files", result.FileCount).Msg("Exported settings")
	m.notifier.Success(MsgSettingsExported, fmt.Sprintf(MsgSettingsExportedDesc, result.FileCount, result.Path))
	return result, nil
}

// ImportSettings analyzes an archive picked by the user and retains the
// analysis until ExecuteImport or CancelImport. Starting a new import while
// one awaits a decision replaces it; a failed analysis keeps the old one.
func (m *Manager) ImportSettings(ctx context.Context) (*types.ImportAnalysis, error) {
	logger := logging.GetLogger("manager.transfer")
	defer logging.LogOperationStart(logger, "import analysis")()

	if err := m.checkIdle(); err != nil {
		return nil, err
	}
	archive, ok, err := m.picker.PickImportArchive(ctx)
	if err != nil || !ok {
		return nil, err
	}

	m.mu.Lock()
	if m.phase.inFlight() {
		err := m.busyError()
		m.mu.Unlock()
		return nil, err
	}
	prevPhase, prevPending := m.phase, m.pending
	m.phase = PhaseAnalyzing
	m.mu.Unlock()

	analysis, err := m.gateway.AnalyzeImport(ctx, archive, m.customRoot())

	m.mu.Lock()
	if err != nil {
		m.phase, m.pending = prevPhase, prevPending
		m.mu.Unlock()
		logger.Error().Err(err).Str("archive", archive).Msg("Import analysis failed")
		m.notifier.Error(MsgAnalysisFailed, err)
		return nil, errors.Wrap(err, errors.ErrBackend, MsgAnalysisFailed)
	}
	m.pending = &pendingImport{archivePath: archive, analysis: analysis}
	m.phase = PhaseAwaitingDecision
	m.mu.Unlock()

	logger.Info().
		Str("archive", archive).
		Int("new", len(analysis.New)).
		Int("conflicts", len(analysis.Conflicts)).
		Int("unchanged", len(analysis.Unchanged)).
		Msg("Import analyzed")
	return analysis, nil
}

// ExecuteImport commits the retained import, overwriting only the listed
// conflicts. Paths that are not conflicts of the analysis are ignored. The
// retained analysis is discarded whether the commit succeeds or fails.
func (m *Manager) ExecuteImport(ctx context.Context, overwritePaths []string) (*types.ImportResult, error) {
	logger := logging.GetLogger("manager.transfer")
	defer logging.LogOperationStart(logger, "import commit")()

	m.mu.Lock()
	if m.phase.inFlight() {
		err := m.busyError()
		m.mu.Unlock()
		return nil, err
	}
	if m.phase != PhaseAwaitingDecision || m.pending == nil {
		m.mu.Unlock()
		return nil, errors.New(errors.ErrInvalidState, "no import is awaiting a decision")
	}
	pending := m.pending
	m.phase = PhaseCommitting
	m.mu.Unlock()

	overwrite := selectConflicts(pending.analysis, overwritePaths)
	result, err := m.gateway.ExecuteImport(ctx, pending.archivePath, m.customRoot(), overwrite)

	m.mu.Lock()
	m.phase = PhaseIdle
	m.pending = nil
	m.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Str("archive", pending.archivePath).Msg("Import failed")
		m.notifier.Error(MsgImportFailed, err)
		return nil, errors.Wrap(err, errors.ErrBackend, MsgImportFailed)
	}

	logger.Info().
		Int("imported", result.ImportedCount).
		Int("skipped", result.SkippedCount).
		Int("backed_up", result.BackedUpCount).
		Msg("Import complete")
	m.notifier.Success(MsgSettingsImported, fmt.Sprintf(MsgSettingsImportedDesc,
		result.ImportedCount, result.SkippedCount, result.BackedUpCount))
	return result, nil
}

// CancelImport discards the retained analysis without a gateway request
func (m *Manager) CancelImport() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseAwaitingDecision {
		return errors.Newf(errors.ErrInvalidState, "no import is awaiting a decision (%s)", m.phase)
	}
	m.phase = PhaseIdle
	m.pending = nil
	return nil
}

func (m *Manager) checkIdle() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase.inFlight() {
		return m.busyError()
	}
	return nil
}

// selectConflicts keeps the requested paths that are conflicts of the
// analysis, in request order and without duplicates
func selectConflicts(analysis *types.ImportAnalysis, requested []string) []string {
	conflicts := make(map[string]bool)
	for _, p := range analysis.ConflictPaths() {
		conflicts[p] = true
	}
	out := []string{}
	seen := make(map[string]bool)
	for _, p := range requested {
		if conflicts[p] && !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	return out
}
