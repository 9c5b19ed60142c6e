package manager

import (
	"context"
	"fmt"
	"slices"

	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
)

// CopyResult reports a finished copy
type CopyResult struct {
	Requested int
	Copied    int
}

// ExecuteCopy copies the source over every target after confirmation.
// Without a source or targets, or when the user declines, it returns nil
// and nothing changes. Targets are cleared only when the copy succeeds.
// If the selection changes while the user is deciding, nothing is copied.
func (m *Manager) ExecuteCopy(ctx context.Context) (*CopyResult, error) {
	logger := logging.GetLogger("manager.copy")
	defer logging.LogOperationStart(logger, "copy")()

	m.mu.Lock()
	source := m.source
	paths := m.targetPaths()
	m.mu.Unlock()
	if source.IsZero() || len(paths) == 0 {
		return nil, nil
	}

	ok, err := m.decider.Confirm(ctx, decision.ConfirmOptions{
		Title:       MsgCopyTitle,
		Description: fmt.Sprintf(MsgCopyDesc, source.DisplayName(), len(paths)),
		ConfirmText: MsgCopyConfirm,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Debug().Msg("Copy declined")
		return nil, nil
	}

	m.mu.Lock()
	if m.copying {
		m.mu.Unlock()
		return nil, errors.New(errors.ErrCopyInProgress, "a copy is already in progress")
	}
	if !m.source.Same(source) || !slices.Equal(m.targetPaths(), paths) {
		m.mu.Unlock()
		logger.Warn().Msg("Selection changed during confirmation, copy aborted")
		return nil, errors.New(errors.ErrSelectionChanged, MsgSelectionChanged)
	}
	m.copying = true
	m.mu.Unlock()

	logger.Info().Str("source", source.Path()).Int("targets", len(paths)).Msg("Copying settings")
	copied, err := m.gateway.CopySettings(ctx, source.Path(), paths)

	m.mu.Lock()
	m.copying = false
	if err == nil {
		m.targets = nil
	}
	m.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Msg("Copy failed")
		m.notifier.Error(MsgCopyFailed, err)
		return nil, errors.Wrap(err, errors.ErrBackend, MsgCopyFailed)
	}

	logger.Info().Int("copied", copied).Msg("Copy complete")
	m.notifier.Success(MsgSettingsCopied, fmt.Sprintf(MsgSettingsCopiedDesc, copied))
	return &CopyResult{Requested: len(paths), Copied: copied}, nil
}

// targetPaths lists the selected target paths; callers hold m.mu
func (m *Manager) targetPaths() []string {
	paths := make([]string, 0, len(m.targets))
	for _, t := range m.targets {
		paths = append(paths, t.Path)
	}
	return paths
}
