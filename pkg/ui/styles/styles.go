// Package styles holds the lipgloss styles used by terminal output.
//
// Styles have semantic names and adaptive colors loaded from the embedded
// styles.yaml; each server additionally gets a style built from its accent
// color.
package styles

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/arthur-debert/wrench/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginLeft   int    `yaml:"marginLeft,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config is the complete styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	mu       sync.RWMutex
	registry map[string]lipgloss.Style
)

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		initDefaultStyles()
	}
}

func initDefaultStyles() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]lipgloss.Style)
	for _, name := range []string{"Header", "SubHeader", "Success", "Error", "Warning", "Info", "Muted", "Bold", "FilePath"} {
		registry[name] = lipgloss.NewStyle()
	}
}

// LoadStyles replaces the registry with the styles of a YAML file
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return LoadStylesFromData(data)
}

// LoadStylesFromData replaces the registry with the styles of YAML data
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	next := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		next[name] = buildStyle(def, colors)
	}

	mu.Lock()
	registry = next
	mu.Unlock()
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 || def.PaddingRight > 0 {
		style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
	}
	return style
}

// GetStyle returns a named style, or a plain style when the name is unknown
func GetStyle(name string) lipgloss.Style {
	mu.RLock()
	defer mu.RUnlock()
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether a style is registered
func Has(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}

// MergeStyles combines named styles, later ones inheriting from earlier ones
func MergeStyles(names ...string) lipgloss.Style {
	result := lipgloss.NewStyle()
	for _, name := range names {
		result = result.Inherit(GetStyle(name))
	}
	return result
}

// Server returns the bold accent style of a server
func Server(info types.ServerInfo) lipgloss.Style {
	color := info.Color
	if color == "" {
		color = info.ID.Color()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
