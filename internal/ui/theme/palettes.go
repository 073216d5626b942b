package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette is one named colour scheme.
type Palette struct {
	Name    string
	Base    lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Focus   lipgloss.Color
	Break   lipgloss.Color
	Accent  lipgloss.Color
	Warn    lipgloss.Color
}

const DefaultName = "light"

var palettes = map[string]Palette{
	"light": {
		Name: "light", Base: "#fafafa", Mantle: "#eeeeee", Surface: "#d4d4d8", Text: "#27272a",
		Subtext: "#71717a", Focus: "#dc2626", Break: "#16a34a", Accent: "#2563eb", Warn: "#d97706",
	},
	"dark": {
		Name: "dark", Base: "#18181b", Mantle: "#111113", Surface: "#3f3f46", Text: "#e4e4e7",
		Subtext: "#a1a1aa", Focus: "#f87171", Break: "#4ade80", Accent: "#60a5fa", Warn: "#fbbf24",
	},
	"dracula": {
		Name: "dracula", Base: "#282a36", Mantle: "#21222c", Surface: "#44475a", Text: "#f8f8f2",
		Subtext: "#6272a4", Focus: "#ff5555", Break: "#50fa7b", Accent: "#bd93f9", Warn: "#ffb86c",
	},
	"nord": {
		Name: "nord", Base: "#2e3440", Mantle: "#292e39", Surface: "#434c5e", Text: "#eceff4",
		Subtext: "#a3acbf", Focus: "#bf616a", Break: "#a3be8c", Accent: "#88c0d0", Warn: "#ebcb8b",
	},
	"coffee": {
		Name: "coffee", Base: "#f5ede3", Mantle: "#eadbc8", Surface: "#c8ad8d", Text: "#3e2723",
		Subtext: "#795548", Focus: "#8d4925", Break: "#6b8e23", Accent: "#a0522d", Warn: "#b8860b",
	},
	"forest": {
		Name: "forest", Base: "#1b2a1f", Mantle: "#15211a", Surface: "#2f4a37", Text: "#e2efe3",
		Subtext: "#9bb8a0", Focus: "#e07a5f", Break: "#81b29a", Accent: "#a7c957", Warn: "#f2cc8f",
	},
	"synthwave": {
		Name: "synthwave", Base: "#241b2f", Mantle: "#1c1425", Surface: "#495495", Text: "#f8f8ff",
		Subtext: "#b6b1d0", Focus: "#ff2a6d", Break: "#05d9e8", Accent: "#d300c5", Warn: "#fede5d",
	},
	"retro": {
		Name: "retro", Base: "#fdf6e3", Mantle: "#eee8d5", Surface: "#d3cbb2", Text: "#073642",
		Subtext: "#657b83", Focus: "#cb4b16", Break: "#859900", Accent: "#268bd2", Warn: "#b58900",
	},
}

// Names returns the registered palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named palette, or the default one for unknown names.
func Get(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultName]
}

// Next returns the palette name after current, wrapping around.
func Next(current string) string {
	names := Names()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
