package types

// CharacterDetails holds the public identity of a character resolved remotely
type CharacterDetails struct {
	Name        string `json:"name"`
	Corporation string `json:"corporation,omitempty"`
	PortraitURL string `json:"portrait_url"`
}

// SettingsEntry is a single settings file found in an installation.
// Entries are owned by the backend and treated as immutable by the core.
type SettingsEntry struct {
	// Path is the absolute file path and the identity key of the entry
	Path string `json:"path"`

	// ID is the numeric account or character id taken from the file name
	ID string `json:"id"`

	Kind    SettingsKind `json:"kind"`
	Server  ServerID     `json:"server"`
	Profile string       `json:"profile"`

	// DisplayName is the alias, the character name, or the id, in that order
	DisplayName string `json:"display_name"`

	Character *CharacterDetails `json:"character,omitempty"`
	Alias     string            `json:"alias,omitempty"`

	// ModifiedTime is the file mtime in unix seconds
	ModifiedTime int64  `json:"modified_time"`
	RelativeTime string `json:"relative_time"`
}

// BackupEntry is a named snapshot of a settings entry
type BackupEntry struct {
	// ID is "<name>_<timestamp>"
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	Timestamp int64        `json:"timestamp"`
	Kind      SettingsKind `json:"kind"`

	// OriginalID is the id of the entry the backup was taken from
	OriginalID   string `json:"original_id"`
	OriginalName string `json:"original_name,omitempty"`

	DisplayName  string `json:"display_name"`
	RelativeTime string `json:"relative_time"`
}

// ProfileData groups the entries of one settings_<name> directory
type ProfileData struct {
	Name       string          `json:"name"`
	Path       string          `json:"path"`
	Accounts   []SettingsEntry `json:"accounts"`
	Characters []SettingsEntry `json:"characters"`
}

// Entries returns the account or character list depending on kind
func (p ProfileData) Entries(kind SettingsKind) []SettingsEntry {
	if kind == KindChar {
		return p.Characters
	}
	return p.Accounts
}

// ServerData is an installed server with its profiles
type ServerData struct {
	Info     ServerInfo    `json:"info"`
	Profiles []ProfileData `json:"profiles"`
}

// AppData is the aggregate returned by a full catalog fetch
type AppData struct {
	Servers []ServerData  `json:"servers"`
	Backups []BackupEntry `json:"backups"`
}

// HasData reports whether anything was found
func (a *AppData) HasData() bool {
	return a != nil && (len(a.Servers) > 0 || len(a.Backups) > 0)
}

// AllEntries returns every entry across servers and profiles, accounts first within a profile
func (a *AppData) AllEntries() []SettingsEntry {
	if a == nil {
		return nil
	}
	var out []SettingsEntry
	for _, s := range a.Servers {
		for _, p := range s.Profiles {
			out = append(out, p.Accounts...)
			out = append(out, p.Characters...)
		}
	}
	return out
}

// FindEntry returns the entry with the given path
func (a *AppData) FindEntry(path string) (SettingsEntry, bool) {
	for _, e := range a.AllEntries() {
		if e.Path == path {
			return e, true
		}
	}
	return SettingsEntry{}, false
}

// FindProfile returns a profile by server and name
func (a *AppData) FindProfile(server ServerID, name string) (ProfileData, bool) {
	if a == nil {
		return ProfileData{}, false
	}
	for _, s := range a.Servers {
		if s.Info.ID != server {
			continue
		}
		for _, p := range s.Profiles {
			if p.Name == name {
				return p, true
			}
		}
	}
	return ProfileData{}, false
}

// FindBackup returns the backup with the given id or path
func (a *AppData) FindBackup(ref string) (BackupEntry, bool) {
	if a == nil {
		return BackupEntry{}, false
	}
	for _, b := range a.Backups {
		if b.ID == ref || b.Path == ref {
			return b, true
		}
	}
	return BackupEntry{}, false
}
