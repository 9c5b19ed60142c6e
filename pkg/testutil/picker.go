package testutil

import "context"

// StaticPicker returns fixed paths; an empty path means the user cancelled
type StaticPicker struct {
	ExportDestination string
	ImportArchive     string
	SettingsRoot      string
}

func (p *StaticPicker) PickExportDestination(context.Context) (string, bool, error) {
	return p.ExportDestination, p.ExportDestination != "", nil
}

func (p *StaticPicker) PickImportArchive(context.Context) (string, bool, error) {
	return p.ImportArchive, p.ImportArchive != "", nil
}

func (p *StaticPicker) PickSettingsRoot(context.Context) (string, bool, error) {
	return p.SettingsRoot, p.SettingsRoot != "", nil
}
