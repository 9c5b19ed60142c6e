package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/spf13/afero"
)

// SetAlias stores a display alias for an account or character id. An empty
// alias removes it.
func (b *Backend) SetAlias(ctx context.Context, id, alias string) error {
	logger := logging.GetLogger("backend.local")

	if b.aliasesPath == "" {
		return errors.New(errors.ErrInternal, "aliases file is not configured")
	}

	b.aliasMu.Lock()
	aliases, err := b.loadAliases()
	if err != nil {
		b.aliasMu.Unlock()
		return err
	}
	alias = strings.TrimSpace(alias)
	if alias == "" {
		delete(aliases, id)
	} else {
		aliases[id] = alias
	}
	err = b.saveAliases(aliases)
	b.aliasMu.Unlock()
	if err != nil {
		return err
	}

	logger.Info().Str("id", id).Str("alias", alias).Msg("Updated alias")
	b.emitChanged()
	return nil
}

func (b *Backend) loadAliases() (map[string]string, error) {
	aliases := map[string]string{}
	if b.aliasesPath == "" {
		return aliases, nil
	}

	data, err := afero.ReadFile(b.fs, b.aliasesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return aliases, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", b.aliasesPath)
	}
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", b.aliasesPath)
	}
	return aliases, nil
}

func (b *Backend) saveAliases(aliases map[string]string) error {
	data, err := json.MarshalIndent(aliases, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode aliases")
	}
	if err := b.fs.MkdirAll(filepath.Dir(b.aliasesPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(b.aliasesPath))
	}
	if err := afero.WriteFile(b.fs, b.aliasesPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", b.aliasesPath)
	}
	return nil
}
