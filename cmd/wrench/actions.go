package wrench

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/wrench/pkg/decision"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/arthur-debert/wrench/pkg/paths"
	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/arthur-debert/wrench/pkg/ui/display"
	"github.com/spf13/afero"
)

// Actions shared by the one-shot commands and the session. Each resolves
// its references against the current catalog snapshot, runs one
// coordinator operation and renders the outcome.

func (a *app) data() (*types.AppData, error) {
	if data := a.catalog.Data(); data != nil {
		return data, nil
	}
	if err := a.requireData(); err != nil {
		return nil, err
	}
	return &types.AppData{}, nil
}

// selectionMarker tags entries with their role in the current selection
func (a *app) selectionMarker() display.Marker {
	return func(e types.SettingsEntry) string {
		switch {
		case a.manager.IsSource(types.EntrySource(e)):
			return display.TagSource
		case a.manager.IsTarget(e):
			return display.TagTarget
		default:
			return ""
		}
	}
}

func (a *app) list(servers bool) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	if servers {
		return a.renderer.RenderResult(display.Servers(data))
	}
	if _, ok := a.manager.Source(); !ok && len(a.manager.Targets()) == 0 {
		return a.renderer.RenderResult(data)
	}
	return a.renderer.RenderResult(display.Catalog(data, a.selectionMarker()))
}

// selectSource makes ref the copy source
func (a *app) selectSource(ref string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	source, err := resolveSource(data, ref)
	if err != nil {
		return err
	}
	a.manager.SetSource(source)
	return nil
}

// addTargets adds entries and, when profile is set, every entry of that profile
func (a *app) addTargets(refs []string, profile, server string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	if profile != "" {
		p, err := resolveProfile(data, server, profile)
		if err != nil {
			return err
		}
		if err := a.manager.AddAllFromProfile(p, a.manager.SourceKind()); err != nil {
			return err
		}
	}
	targets, err := resolveEntries(data, refs)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if err := a.manager.AddTarget(t); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) copySelection() error {
	if !a.manager.CanCopy() {
		return errors.New(errors.ErrInvalidInput, MsgErrNoTargets)
	}
	res, err := a.manager.ExecuteCopy(a.ctx)
	if err != nil {
		return err
	}
	if res == nil {
		return a.renderer.RenderMessage(MsgNothingCopied)
	}
	return nil
}

func (a *app) createBackup(ref, name string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	entry, err := resolveEntry(data, ref)
	if err != nil {
		return err
	}
	a.decider.presetPrompt(name)
	b, err := a.manager.CreateBackup(a.ctx, entry)
	if err != nil || b == nil {
		return err
	}
	return a.renderer.RenderResult([]types.BackupEntry{*b})
}

func (a *app) listBackups(ref string) error {
	if ref == "" {
		if _, err := a.data(); err != nil {
			return err
		}
		return a.renderer.RenderResult(a.catalog.Backups())
	}
	data, err := a.data()
	if err != nil {
		return err
	}
	entry, err := resolveEntry(data, ref)
	if err != nil {
		return err
	}
	return a.renderer.RenderResult(a.manager.GetBackupsForEntry(entry))
}

func (a *app) deleteBackup(ref string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	b, err := resolveBackup(data, ref)
	if err != nil {
		return err
	}
	_, err = a.manager.DeleteBackup(a.ctx, b)
	return err
}

// restoreBackup writes a backup onto entryRef, or onto the entry it was
// taken from when entryRef is empty
func (a *app) restoreBackup(ref, entryRef string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	b, err := resolveBackup(data, ref)
	if err != nil {
		return err
	}
	var entry types.SettingsEntry
	if entryRef != "" {
		entry, err = resolveEntry(data, entryRef)
	} else {
		entry, err = originalEntry(data, b)
	}
	if err != nil {
		return err
	}
	_, err = a.manager.RestoreBackup(a.ctx, entry, b)
	return err
}

func (a *app) applyBackup(ref string, targetRefs []string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	b, err := resolveBackup(data, ref)
	if err != nil {
		return err
	}
	targets, err := resolveEntries(data, targetRefs)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if _, err := a.manager.ApplyBackup(a.ctx, b, t); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) export(dest string) error {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid destination")
	}
	if !strings.EqualFold(filepath.Ext(dest), ".zip") {
		dest += ".zip"
	}
	a.picker.setExport(dest)
	res, err := a.manager.ExportSettings(a.ctx)
	if err != nil || res == nil {
		return err
	}
	return a.renderer.RenderResult(res)
}

// analyzeImport compares an archive with the installation and keeps the
// analysis pending for commitImport
func (a *app) analyzeImport(archive string) (*types.ImportAnalysis, error) {
	archive, err := filepath.Abs(archive)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid archive path")
	}
	a.picker.setArchive(archive)
	analysis, err := a.manager.ImportSettings(a.ctx)
	if err != nil || analysis == nil {
		return nil, err
	}
	return analysis, a.renderer.RenderResult(analysis)
}

// importChoice says what to do with conflicting files
type importChoice struct {
	overwrite    []string
	overwriteAll bool
	keepAll      bool
}

// conflictsToOverwrite applies the choice to the pending analysis. With no
// explicit choice every conflict is put to the user.
func (a *app) conflictsToOverwrite(analysis *types.ImportAnalysis, choice importChoice) ([]string, error) {
	logger := logging.GetLogger("cmd.import")

	switch {
	case choice.keepAll:
		return []string{}, nil
	case choice.overwriteAll:
		return analysis.ConflictPaths(), nil
	case len(choice.overwrite) > 0:
		chosen := make([]string, 0, len(choice.overwrite))
		for _, p := range choice.overwrite {
			chosen = append(chosen, cleanPath(p))
		}
		return chosen, nil
	}

	if len(analysis.Conflicts) == 0 {
		return []string{}, a.renderer.RenderMessage(MsgNoConflicts)
	}
	overwrite := []string{}
	for _, f := range analysis.Conflicts {
		ok, err := a.decider.Confirm(a.ctx, decision.ConfirmOptions{
			Title:       MsgOverwriteTitle,
			Description: fmt.Sprintf(MsgOverwriteDesc, f.Path),
			ConfirmText: MsgOverwrite,
			CancelText:  MsgKeep,
			Destructive: true,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", f.Path).Bool("overwrite", ok).Msg("Conflict decided")
		if ok {
			overwrite = append(overwrite, f.Path)
		}
	}
	return overwrite, nil
}

func (a *app) commitImport(choice importChoice) error {
	analysis := a.manager.PendingImport()
	if analysis == nil {
		return errors.New(errors.ErrInvalidState, "no import awaiting a decision")
	}
	overwrite, err := a.conflictsToOverwrite(analysis, choice)
	if err != nil {
		return err
	}
	res, err := a.manager.ExecuteImport(a.ctx, overwrite)
	if err != nil {
		return err
	}
	return a.renderer.RenderResult(res)
}

func (a *app) cancelImport() error {
	if err := a.manager.CancelImport(); err != nil {
		return err
	}
	return a.renderer.RenderMessage(MsgImportCancelled)
}

// showRoot prints the settings root in use
func (a *app) showRoot() error {
	custom := a.catalog.CustomRoot()
	root, err := a.backend.Root(custom)
	switch {
	case err != nil:
		return a.renderer.RenderMessage(MsgRootNone)
	case custom != "" && root == filepath.Clean(custom):
		return a.renderer.RenderMessage(fmt.Sprintf(MsgRootCustom, root))
	default:
		return a.renderer.RenderMessage(fmt.Sprintf(MsgRootDefault, root))
	}
}

func (a *app) setRoot(path string) error {
	abs, err := filepath.Abs(paths.ExpandHome(path))
	if err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid settings root")
	}
	if ok, err := afero.DirExists(a.fs, abs); err != nil || !ok {
		return errors.Newf(errors.ErrNotFound, "directory not found: %s", abs).WithDetail("path", abs)
	}
	a.picker.setSettingsRoot(abs)
	_, err = a.manager.SelectCustomRoot(a.ctx)
	return err
}

func (a *app) clearRoot() error {
	return a.catalog.ClearCustomRoot(a.ctx)
}

func (a *app) setBrackets(serverRef, state string) error {
	enabled, err := parseOnOff(state)
	if err != nil {
		return err
	}
	data, err := a.data()
	if err != nil {
		return err
	}
	server, err := resolveServer(data, serverRef)
	if err != nil {
		return err
	}
	return a.manager.SetBracketsAlwaysShow(a.ctx, server.Info.ServerPath, enabled)
}

func (a *app) setAlias(ref, alias string) error {
	data, err := a.data()
	if err != nil {
		return err
	}
	entry, err := resolveEntry(data, ref)
	if err != nil {
		return err
	}
	return a.manager.SetAlias(a.ctx, entry, alias)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, errors.Newf(errors.ErrInvalidInput, MsgErrOnOff, s).WithDetail("value", s)
	}
}
