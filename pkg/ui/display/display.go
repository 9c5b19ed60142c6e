// Package display turns catalog and workflow results into renderer-neutral
// tables. The terminal and text renderers only differ in how they draw them.
package display

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/wrench/pkg/types"
)

// Row tags used by renderers to pick a style
const (
	TagSource    = "source"
	TagTarget    = "target"
	TagNew       = "new"
	TagConflict  = "conflict"
	TagUnchanged = "unchanged"
)

// Row is one table line with an optional style tag
type Row struct {
	Cells []string
	Tag   string
}

// Table is a titled grid of rows
type Table struct {
	Title  string
	Server *types.ServerInfo
	Header []string
	Rows   []Row
	// Empty is shown instead of the table when there are no rows
	Empty string
}

// Marker tags catalog entries, typically with the current selection
type Marker func(entry types.SettingsEntry) string

// Catalog returns one table per server listing every entry
func Catalog(data *types.AppData, mark Marker) []Table {
	if !data.HasData() || len(data.Servers) == 0 {
		return []Table{{Title: "Settings", Empty: "No settings found"}}
	}

	tables := make([]Table, 0, len(data.Servers))
	for i := range data.Servers {
		server := data.Servers[i]
		info := server.Info
		t := Table{
			Title:  fmt.Sprintf("%s (%s)", info.Name, info.ServerPath),
			Server: &info,
			Header: []string{"Profile", "Kind", "ID", "Name", "Modified", ""},
		}
		for _, p := range server.Profiles {
			for _, e := range append(append([]types.SettingsEntry{}, p.Accounts...), p.Characters...) {
				tag := ""
				if mark != nil {
					tag = mark(e)
				}
				t.Rows = append(t.Rows, Row{
					Cells: []string{p.Name, string(e.Kind), e.ID, entryName(e), e.RelativeTime, tag},
					Tag:   tag,
				})
			}
		}
		tables = append(tables, t)
	}
	return tables
}

func entryName(e types.SettingsEntry) string {
	if e.Character != nil && e.Character.Corporation != "" {
		return fmt.Sprintf("%s [%s]", e.DisplayName, e.Character.Corporation)
	}
	return e.DisplayName
}

// Backups lists backups, newest first as given
func Backups(backups []types.BackupEntry) Table {
	t := Table{
		Title:  "Backups",
		Header: []string{"ID", "Name", "Kind", "Of", "Created"},
		Empty:  "No backups",
	}
	for _, b := range backups {
		of := b.OriginalName
		if of == "" {
			of = b.OriginalID
		}
		t.Rows = append(t.Rows, Row{Cells: []string{b.ID, b.Name, string(b.Kind), of, b.RelativeTime}})
	}
	return t
}

// Analysis lists every archived settings file with its import status
func Analysis(a *types.ImportAnalysis) Table {
	t := Table{
		Title:  fmt.Sprintf("Import of %s", a.ArchivePath),
		Header: []string{"Status", "Kind", "Path", "Size"},
		Empty:  "The archive holds no settings files",
	}
	add := func(tag string, files []types.ImportFile) {
		for _, f := range files {
			t.Rows = append(t.Rows, Row{
				Cells: []string{tag, string(f.Kind), f.Path, strconv.FormatInt(f.Size, 10)},
				Tag:   tag,
			})
		}
	}
	add(TagNew, a.New)
	add(TagConflict, a.Conflicts)
	add(TagUnchanged, a.Unchanged)
	return t
}

// Servers summarizes the installed servers
func Servers(data *types.AppData) Table {
	t := Table{
		Title:  "Servers",
		Header: []string{"Server", "Path", "Profiles", "Brackets always shown"},
		Empty:  "No servers found",
	}
	if data == nil {
		return t
	}
	for _, s := range data.Servers {
		brackets := "no"
		if s.Info.BracketsAlwaysShow {
			brackets = "yes"
		}
		t.Rows = append(t.Rows, Row{Cells: []string{
			s.Info.Name, s.Info.ServerPath, strconv.Itoa(len(s.Profiles)), brackets,
		}})
	}
	return t
}

// Selection shows the copy source and targets
func Selection(source types.SourceItem, targets []types.SettingsEntry) Table {
	t := Table{
		Title:  "Selection",
		Header: []string{"Role", "Kind", "Name", "Path"},
		Empty:  "Nothing selected",
	}
	if !source.IsZero() {
		role := TagSource
		if source.IsBackup() {
			role = "source (backup)"
		}
		t.Rows = append(t.Rows, Row{
			Cells: []string{role, string(source.Kind()), source.DisplayName(), source.Path()},
			Tag:   TagSource,
		})
	}
	for _, e := range targets {
		t.Rows = append(t.Rows, Row{
			Cells: []string{TagTarget, string(e.Kind), entryName(e), e.Path},
			Tag:   TagTarget,
		})
	}
	return t
}

// Export summarizes a finished export
func Export(r *types.ExportResult) Table {
	return Table{
		Title:  "Export",
		Header: []string{"Archive", "Files"},
		Rows:   []Row{{Cells: []string{r.Path, strconv.Itoa(r.FileCount)}}},
	}
}

// Import summarizes a committed import
func Import(r *types.ImportResult) Table {
	return Table{
		Title:  "Import",
		Header: []string{"Imported", "Skipped", "Backed up"},
		Rows: []Row{{Cells: []string{
			strconv.Itoa(r.ImportedCount), strconv.Itoa(r.SkippedCount), strconv.Itoa(r.BackedUpCount),
		}}},
	}
}

// Tables converts a known result type; ok is false for anything else
func Tables(result interface{}) ([]Table, bool) {
	switch v := result.(type) {
	case *types.AppData:
		return Catalog(v, nil), true
	case []types.BackupEntry:
		return []Table{Backups(v)}, true
	case *types.ImportAnalysis:
		return []Table{Analysis(v)}, true
	case *types.ExportResult:
		return []Table{Export(v)}, true
	case *types.ImportResult:
		return []Table{Import(v)}, true
	case Table:
		return []Table{v}, true
	case []Table:
		return v, true
	default:
		return nil, false
	}
}
