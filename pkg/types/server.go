package types

import (
	"fmt"
	"strings"
)

// SettingsKind identifies the scope of a settings file
type SettingsKind string

const (
	// KindUser is an account-wide settings file (core_user_<id>.dat)
	KindUser SettingsKind = "user"

	// KindChar is a per-character settings file (core_char_<id>.dat)
	KindChar SettingsKind = "char"
)

// ParseSettingsKind parses the kind token used in file names and on the command line
func ParseSettingsKind(s string) (SettingsKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "account":
		return KindUser, nil
	case "char", "character":
		return KindChar, nil
	default:
		return "", fmt.Errorf("unknown settings kind: %q", s)
	}
}

// ServerID identifies one of the known game servers
type ServerID string

const (
	ServerTranquility ServerID = "tranquility"
	ServerSingularity ServerID = "singularity"
	ServerThunderdome ServerID = "thunderdome"
	ServerSerenity    ServerID = "serenity"
)

// AllServers returns the known servers in display order
func AllServers() []ServerID {
	return []ServerID{ServerTranquility, ServerSingularity, ServerThunderdome, ServerSerenity}
}

// ServerFromFolder maps an installation folder name to a server.
// Folder names embed the server name, e.g. c_ccp_eve_tq_tranquility.
func ServerFromFolder(name string) (ServerID, bool) {
	lower := strings.ToLower(name)
	for _, s := range AllServers() {
		if strings.Contains(lower, string(s)) {
			return s, true
		}
	}
	return "", false
}

// DisplayName returns the capitalized server name
func (s ServerID) DisplayName() string {
	switch s {
	case ServerTranquility:
		return "Tranquility"
	case ServerSingularity:
		return "Singularity"
	case ServerThunderdome:
		return "Thunderdome"
	case ServerSerenity:
		return "Serenity"
	default:
		return string(s)
	}
}

// ShortName returns the abbreviation players use for the server
func (s ServerID) ShortName() string {
	switch s {
	case ServerTranquility:
		return "TQ"
	case ServerSingularity:
		return "SISI"
	case ServerThunderdome:
		return "TD"
	case ServerSerenity:
		return "CN"
	default:
		return string(s)
	}
}

// Color returns the accent color used when rendering the server
func (s ServerID) Color() string {
	switch s {
	case ServerTranquility:
		return "#00d4aa"
	case ServerSingularity:
		return "#f0b429"
	case ServerThunderdome:
		return "#f85149"
	case ServerSerenity:
		return "#a78bfa"
	default:
		return "#808080"
	}
}

// SupportsESI reports whether character ids on this server resolve through ESI
func (s ServerID) SupportsESI() bool {
	return s == ServerTranquility
}

// ServerInfo is the static description of an installed server
type ServerInfo struct {
	ID                 ServerID `json:"id"`
	Name               string   `json:"name"`
	ShortName          string   `json:"short_name"`
	Color              string   `json:"color"`
	SupportsESI        bool     `json:"supports_esi"`
	BracketsAlwaysShow bool     `json:"brackets_always_show"`
	ServerPath         string   `json:"server_path"`
}

// NewServerInfo fills the static fields of ServerInfo for a server
func NewServerInfo(id ServerID, serverPath string, bracketsAlwaysShow bool) ServerInfo {
	return ServerInfo{
		ID:                 id,
		Name:               id.DisplayName(),
		ShortName:          id.ShortName(),
		Color:              id.Color(),
		SupportsESI:        id.SupportsESI(),
		BracketsAlwaysShow: bracketsAlwaysShow,
		ServerPath:         serverPath,
	}
}
