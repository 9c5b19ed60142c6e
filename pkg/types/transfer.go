package types

// ImportFile is one settings file found in an import archive
type ImportFile struct {
	// Path is the destination path inside the current installation
	Path string `json:"path"`

	// ArchiveName is the member name inside the archive
	ArchiveName string       `json:"archive_name"`
	Kind        SettingsKind `json:"kind"`
	Size        int64        `json:"size"`
}

// ImportAnalysis classifies the contents of an archive against the installation
type ImportAnalysis struct {
	ArchivePath string       `json:"archive_path"`
	New         []ImportFile `json:"new_files"`
	Conflicts   []ImportFile `json:"conflicts"`
	Unchanged   []ImportFile `json:"unchanged"`
}

// Total returns the number of settings files in the archive
func (a *ImportAnalysis) Total() int {
	if a == nil {
		return 0
	}
	return len(a.New) + len(a.Conflicts) + len(a.Unchanged)
}

// ConflictPaths returns the destination paths of the conflicting files
func (a *ImportAnalysis) ConflictPaths() []string {
	if a == nil {
		return nil
	}
	paths := make([]string, 0, len(a.Conflicts))
	for _, f := range a.Conflicts {
		paths = append(paths, f.Path)
	}
	return paths
}

// ImportResult reports the outcome of an import commit
type ImportResult struct {
	ImportedCount int `json:"imported_count"`
	SkippedCount  int `json:"skipped_count"`
	BackedUpCount int `json:"backed_up_count"`
}

// ExportResult reports the outcome of an export
type ExportResult struct {
	FileCount int    `json:"file_count"`
	Path      string `json:"path"`
}
