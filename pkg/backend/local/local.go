// Package local implements the backend gateway on a filesystem holding the
// game client's settings directories.
//
// Layout under the settings root:
//
//	<root>/<server folder>/settings_<profile>/core_user_<id>.dat
//	<root>/<server folder>/settings_<profile>/core_char_<id>.dat
//	<root>/<server folder>/settings_<profile>/prefs.ini
//	<root>/<server folder>/settings_<profile>/backups/<name>_<kind>_<id>_<ts>.bak
//
// Server folders are recognized by the server name they contain, for
// example c_ccp_eve_tq_tranquility.
package local

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/wrench/pkg/backend"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/spf13/afero"
)

// DefaultImportBackupName names the automatic backups taken before an import overwrites a file
const DefaultImportBackupName = "pre-import"

// CharacterLookup resolves public character details from a character id
type CharacterLookup interface {
	LookupCharacter(ctx context.Context, id int64) (*types.CharacterDetails, error)
}

// Options configures a Backend
type Options struct {
	// FS defaults to the OS filesystem
	FS afero.Fs

	// DefaultRoot is used when no valid custom root is given
	DefaultRoot string

	// AliasesPath is the JSON file mapping ids to user aliases
	AliasesPath string

	// Characters resolves character names; nil disables lookups
	Characters CharacterLookup

	// Now defaults to time.Now
	Now func() time.Time

	// ImportBackupName defaults to DefaultImportBackupName
	ImportBackupName string
}

// Backend is the filesystem gateway
type Backend struct {
	backend.Bus

	fs          afero.Fs
	defaultRoot string
	aliasesPath string
	characters  CharacterLookup
	now         func() time.Time
	importName  string

	aliasMu sync.Mutex
}

var _ backend.Gateway = (*Backend)(nil)

// New returns a Backend
func New(opts Options) *Backend {
	b := &Backend{
		fs:          opts.FS,
		defaultRoot: opts.DefaultRoot,
		aliasesPath: opts.AliasesPath,
		characters:  opts.Characters,
		now:         opts.Now,
		importName:  opts.ImportBackupName,
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.importName == "" {
		b.importName = DefaultImportBackupName
	}
	return b
}

// Root returns the settings root used for customRoot: the custom root when
// it is an existing directory, otherwise the default root.
func (b *Backend) Root(customRoot string) (string, error) {
	if customRoot != "" && b.isDir(customRoot) {
		return filepath.Clean(customRoot), nil
	}
	if b.defaultRoot == "" {
		return "", errors.New(errors.ErrNotFound, "settings directory not found")
	}
	return filepath.Clean(b.defaultRoot), nil
}

func (b *Backend) isDir(path string) bool {
	ok, err := afero.IsDir(b.fs, path)
	return err == nil && ok
}

func (b *Backend) exists(path string) bool {
	ok, err := afero.Exists(b.fs, path)
	return err == nil && ok
}

func (b *Backend) emitChanged() {
	b.Emit(backend.EventDataChanged)
}
