// Package backend defines the command gateway through which the
// coordinator reads and mutates settings files, plus the event bus that
// gateway implementations use to announce external changes.
package backend

import (
	"context"

	"github.com/arthur-debert/wrench/pkg/types"
)

// EventDataChanged is emitted whenever settings files or backups change on disk
const EventDataChanged = "data-changed"

// Gateway is the command surface of a settings backend. Every method is a
// single request; failures are returned as errors and leave no partial state
// the caller has to clean up.
type Gateway interface {
	GetAppData(ctx context.Context, customRoot string) (*types.AppData, error)
	CopySettings(ctx context.Context, sourcePath string, targetPaths []string) (int, error)
	CreateBackup(ctx context.Context, sourcePath, name string) (*types.BackupEntry, error)
	DeleteBackup(ctx context.Context, backupPath string) error
	ExportSettings(ctx context.Context, customRoot, destPath string) (*types.ExportResult, error)
	AnalyzeImport(ctx context.Context, archivePath, customRoot string) (*types.ImportAnalysis, error)
	ExecuteImport(ctx context.Context, archivePath, customRoot string, overwritePaths []string) (*types.ImportResult, error)
	SetBracketsAlwaysShow(ctx context.Context, serverPath string, enabled bool) error
	SetAlias(ctx context.Context, id, alias string) error

	// Subscribe registers handler for event and returns a function removing it
	Subscribe(event string, handler func()) (unsubscribe func())
}
