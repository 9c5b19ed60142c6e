package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
)

// SetBracketsAlwaysShow toggles always-on ship bracket labels for a server
func (m *Manager) SetBracketsAlwaysShow(ctx context.Context, serverPath string, enabled bool) error {
	logger := logging.GetLogger("manager.settings")

	if err := m.gateway.SetBracketsAlwaysShow(ctx, serverPath, enabled); err != nil {
		logger.Error().Err(err).Str("server", serverPath).Msg("Bracket setting failed")
		m.notifier.Error(MsgUpdateFailed, err)
		return errors.Wrap(err, errors.ErrBackend, MsgUpdateFailed)
	}

	status := "disabled"
	if enabled {
		status = "enabled"
	}
	logger.Info().Str("server", serverPath).Bool("enabled", enabled).Msg("Bracket setting updated")
	m.notifier.Success(MsgSettingUpdated, fmt.Sprintf(MsgSettingUpdatedDesc, status))
	return nil
}

// SetAlias sets the display alias of an entry's id; an empty alias removes it
func (m *Manager) SetAlias(ctx context.Context, entry types.SettingsEntry, alias string) error {
	logger := logging.GetLogger("manager.settings")

	alias = strings.TrimSpace(alias)
	if err := m.gateway.SetAlias(ctx, entry.ID, alias); err != nil {
		logger.Error().Err(err).Str("id", entry.ID).Msg("Alias update failed")
		m.notifier.Error(MsgAliasFailed, err)
		return errors.Wrap(err, errors.ErrBackend, MsgAliasFailed)
	}

	logger.Info().Str("id", entry.ID).Str("alias", alias).Msg("Alias updated")
	if alias == "" {
		m.notifier.Success(MsgAliasRemoved, fmt.Sprintf(MsgAliasRemovedDesc, entry.ID))
	} else {
		m.notifier.Success(MsgAliasUpdated, fmt.Sprintf(MsgAliasUpdatedDesc, entry.ID, alias))
	}
	return nil
}

// SelectCustomRoot asks the user for a settings directory and makes it the
// catalog root. It returns the chosen path, empty when cancelled.
func (m *Manager) SelectCustomRoot(ctx context.Context) (string, error) {
	path, ok, err := m.picker.PickSettingsRoot(ctx)
	if err != nil || !ok {
		return "", err
	}
	if m.catalog == nil {
		return "", errors.New(errors.ErrInternal, "no catalog configured")
	}
	if err := m.catalog.SetCustomRoot(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}
