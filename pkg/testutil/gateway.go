package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/wrench/pkg/backend"
	"github.com/arthur-debert/wrench/pkg/types"
)

// Call is one recorded gateway request
type Call struct {
	Method string
	Args   []interface{}
}

// MockGateway is a backend.Gateway whose behavior is set per method
type MockGateway struct {
	backend.Bus

	GetAppDataFunc            func(ctx context.Context, customRoot string) (*types.AppData, error)
	CopySettingsFunc          func(ctx context.Context, sourcePath string, targetPaths []string) (int, error)
	CreateBackupFunc          func(ctx context.Context, sourcePath, name string) (*types.BackupEntry, error)
	DeleteBackupFunc          func(ctx context.Context, backupPath string) error
	ExportSettingsFunc        func(ctx context.Context, customRoot, destPath string) (*types.ExportResult, error)
	AnalyzeImportFunc         func(ctx context.Context, archivePath, customRoot string) (*types.ImportAnalysis, error)
	ExecuteImportFunc         func(ctx context.Context, archivePath, customRoot string, overwritePaths []string) (*types.ImportResult, error)
	SetBracketsAlwaysShowFunc func(ctx context.Context, serverPath string, enabled bool) error
	SetAliasFunc              func(ctx context.Context, id, alias string) error

	mu    sync.Mutex
	calls []Call
}

var _ backend.Gateway = (*MockGateway)(nil)

// NewMockGateway returns a gateway where every request succeeds
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) record(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Args: args})
}

// Calls returns every recorded request in order
func (m *MockGateway) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns the recorded requests to one method
func (m *MockGateway) CallsTo(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// GetAppData returns empty data by default
func (m *MockGateway) GetAppData(ctx context.Context, customRoot string) (*types.AppData, error) {
	m.record("GetAppData", customRoot)
	if m.GetAppDataFunc != nil {
		return m.GetAppDataFunc(ctx, customRoot)
	}
	return &types.AppData{}, nil
}

// CopySettings reports every target as copied by default
func (m *MockGateway) CopySettings(ctx context.Context, sourcePath string, targetPaths []string) (int, error) {
	m.record("CopySettings", sourcePath, append([]string(nil), targetPaths...))
	if m.CopySettingsFunc != nil {
		return m.CopySettingsFunc(ctx, sourcePath, targetPaths)
	}
	return len(targetPaths), nil
}

// CreateBackup returns a backup named after the request by default
func (m *MockGateway) CreateBackup(ctx context.Context, sourcePath, name string) (*types.BackupEntry, error) {
	m.record("CreateBackup", sourcePath, name)
	if m.CreateBackupFunc != nil {
		return m.CreateBackupFunc(ctx, sourcePath, name)
	}
	return &types.BackupEntry{ID: name + "_0", Name: name, DisplayName: name, Path: sourcePath + ".bak"}, nil
}

// DeleteBackup succeeds by default
func (m *MockGateway) DeleteBackup(ctx context.Context, backupPath string) error {
	m.record("DeleteBackup", backupPath)
	if m.DeleteBackupFunc != nil {
		return m.DeleteBackupFunc(ctx, backupPath)
	}
	return nil
}

// ExportSettings reports an empty archive by default
func (m *MockGateway) ExportSettings(ctx context.Context, customRoot, destPath string) (*types.ExportResult, error) {
	m.record("ExportSettings", customRoot, destPath)
	if m.ExportSettingsFunc != nil {
		return m.ExportSettingsFunc(ctx, customRoot, destPath)
	}
	return &types.ExportResult{Path: destPath}, nil
}

// AnalyzeImport reports an empty archive by default
func (m *MockGateway) AnalyzeImport(ctx context.Context, archivePath, customRoot string) (*types.ImportAnalysis, error) {
	m.record("AnalyzeImport", archivePath, customRoot)
	if m.AnalyzeImportFunc != nil {
		return m.AnalyzeImportFunc(ctx, archivePath, customRoot)
	}
	return &types.ImportAnalysis{ArchivePath: archivePath}, nil
}

// ExecuteImport imports nothing by default
func (m *MockGateway) ExecuteImport(ctx context.Context, archivePath, customRoot string, overwritePaths []string) (*types.ImportResult, error) {
	m.record("ExecuteImport", archivePath, customRoot, append([]string(nil), overwritePaths...))
	if m.ExecuteImportFunc != nil {
		return m.ExecuteImportFunc(ctx, archivePath, customRoot, overwritePaths)
	}
	return &types.ImportResult{}, nil
}

// SetBracketsAlwaysShow succeeds by default
func (m *MockGateway) SetBracketsAlwaysShow(ctx context.Context, serverPath string, enabled bool) error {
	m.record("SetBracketsAlwaysShow", serverPath, enabled)
	if m.SetBracketsAlwaysShowFunc != nil {
		return m.SetBracketsAlwaysShowFunc(ctx, serverPath, enabled)
	}
	return nil
}

// SetAlias succeeds by default
func (m *MockGateway) SetAlias(ctx context.Context, id, alias string) error {
	m.record("SetAlias", id, alias)
	if m.SetAliasFunc != nil {
		return m.SetAliasFunc(ctx, id, alias)
	}
	return nil
}
