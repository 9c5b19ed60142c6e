package local

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/spf13/afero"
)

// ExportSettings writes every settings file under the root into a zip
// archive at destPath. Member names are relative to the root.
func (b *Backend) ExportSettings(ctx context.Context, customRoot, destPath string) (*types.ExportResult, error) {
	logger := logging.GetLogger("backend.local")

	root, err := b.Root(customRoot)
	if err != nil {
		return nil, err
	}
	files, err := b.settingsFiles(root)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := afero.ReadFile(b.fs, filepath.Join(root, rel))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", rel)
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to add %s to archive", rel)
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to add %s to archive", rel)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to finish archive")
	}

	if err := b.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(destPath))
	}
	if err := afero.WriteFile(b.fs, destPath, buf.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write archive %s", destPath)
	}

	logger.Info().Str("root", root).Str("archive", destPath).Int("files", len(files)).Msg("Exported settings")
	return &types.ExportResult{FileCount: len(files), Path: destPath}, nil
}

// settingsFiles lists the settings files of every profile of every known
// server, relative to root
func (b *Backend) settingsFiles(root string) ([]string, error) {
	var files []string
	if !b.exists(root) {
		return files, nil
	}
	serverDirs, err := afero.ReadDir(b.fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read settings root %s", root)
	}
	for _, serverDir := range serverDirs {
		if _, ok := types.ServerFromFolder(serverDir.Name()); !ok || !serverDir.IsDir() {
			continue
		}
		profileDirs, err := afero.ReadDir(b.fs, filepath.Join(root, serverDir.Name()))
		if err != nil {
			continue
		}
		for _, profileDir := range profileDirs {
			if _, ok := profileName(profileDir.Name()); !ok || !profileDir.IsDir() {
				continue
			}
			dir := filepath.Join(serverDir.Name(), profileDir.Name())
			entries, err := afero.ReadDir(b.fs, filepath.Join(root, dir))
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir() && isSettingsFileName(e.Name()) {
					files = append(files, filepath.Join(dir, e.Name()))
				}
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

type memberStatus int

const (
	memberNew memberStatus = iota
	memberConflict
	memberUnchanged
)

type archiveMember struct {
	file   types.ImportFile
	data   []byte
	status memberStatus
}

// AnalyzeImport classifies each settings file of the archive against the
// installation as new, conflicting or unchanged
func (b *Backend) AnalyzeImport(ctx context.Context, archivePath, customRoot string) (*types.ImportAnalysis, error) {
	logger := logging.GetLogger("backend.local")

	root, err := b.Root(customRoot)
	if err != nil {
		return nil, err
	}
	members, err := b.readArchive(ctx, archivePath, root)
	if err != nil {
		return nil, err
	}

	analysis := &types.ImportAnalysis{
		ArchivePath: archivePath,
		New:         []types.ImportFile{},
		Conflicts:   []types.ImportFile{},
		Unchanged:   []types.ImportFile{},
	}
	for _, m := range members {
		switch m.status {
		case memberNew:
			analysis.New = append(analysis.New, m.file)
		case memberConflict:
			analysis.Conflicts = append(analysis.Conflicts, m.file)
		case memberUnchanged:
			analysis.Unchanged = append(analysis.Unchanged, m.file)
		}
	}

	logger.Info().
		Str("archive", archivePath).
		Int("new", len(analysis.New)).
		Int("conflicts", len(analysis.Conflicts)).
		Int("unchanged", len(analysis.Unchanged)).
		Msg("Analyzed import")
	return analysis, nil
}

// ExecuteImport writes new files, overwrites the listed conflicts after
// backing them up, and skips everything else
func (b *Backend) ExecuteImport(ctx context.Context, archivePath, customRoot string, overwritePaths []string) (*types.ImportResult, error) {
	logger := logging.GetLogger("backend.local")

	root, err := b.Root(customRoot)
	if err != nil {
		return nil, err
	}
	members, err := b.readArchive(ctx, archivePath, root)
	if err != nil {
		return nil, err
	}

	overwrite := make(map[string]bool, len(overwritePaths))
	for _, p := range overwritePaths {
		overwrite[filepath.Clean(p)] = true
	}

	result := &types.ImportResult{}
	changed := false
	defer func() {
		if changed {
			b.emitChanged()
		}
	}()

	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch m.status {
		case memberNew:
			if err := b.fs.MkdirAll(filepath.Dir(m.file.Path), 0755); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(m.file.Path))
			}
			if err := afero.WriteFile(b.fs, m.file.Path, m.data, 0644); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", m.file.Path)
			}
			result.ImportedCount++
			changed = true
		case memberConflict:
			if !overwrite[m.file.Path] {
				result.SkippedCount++
				continue
			}
			if _, err := b.createBackup(m.file.Path, b.importName); err != nil {
				return nil, err
			}
			result.BackedUpCount++
			changed = true
			if err := afero.WriteFile(b.fs, m.file.Path, m.data, 0644); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", m.file.Path)
			}
			result.ImportedCount++
		case memberUnchanged:
			result.SkippedCount++
		}
	}

	logger.Info().
		Str("archive", archivePath).
		Int("imported", result.ImportedCount).
		Int("skipped", result.SkippedCount).
		Int("backed_up", result.BackedUpCount).
		Msg("Imported settings")
	return result, nil
}

func (b *Backend) readArchive(ctx context.Context, archivePath, root string) ([]archiveMember, error) {
	f, err := b.fs.Open(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrFileNotFound, "archive not found: %s", archivePath)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", archivePath)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveInvalid, "not a valid archive: %s", archivePath)
	}

	var members []archiveMember
	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if zf.FileInfo().IsDir() {
			continue
		}
		kind, _, ok := parseSettingsFileName(path.Base(zf.Name))
		if !ok {
			continue
		}
		dest, err := memberDestination(root, zf.Name)
		if err != nil {
			return nil, err
		}
		data, err := readMember(zf)
		if err != nil {
			return nil, err
		}

		m := archiveMember{
			file: types.ImportFile{
				Path:        dest,
				ArchiveName: zf.Name,
				Kind:        kind,
				Size:        int64(len(data)),
			},
			data: data,
		}
		existing, err := afero.ReadFile(b.fs, dest)
		switch {
		case os.IsNotExist(err):
			m.status = memberNew
		case err != nil:
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dest)
		case bytes.Equal(existing, data):
			m.status = memberUnchanged
		default:
			m.status = memberConflict
		}
		members = append(members, m)
	}
	return members, nil
}

// memberDestination maps an archive member to a path under root, rejecting
// names that would land outside it
func memberDestination(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrArchiveInvalid, "archive member escapes the settings root: %s", name)
	}
	dest := filepath.Join(root, clean)
	rel, err := filepath.Rel(root, dest)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.Newf(errors.ErrArchiveInvalid, "archive member escapes the settings root: %s", name)
	}
	return dest, nil
}

func readMember(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveInvalid, "failed to open archive member %s", zf.Name)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveInvalid, "failed to read archive member %s", zf.Name)
	}
	return data, nil
}
