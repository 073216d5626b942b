package theme_test

import (
	"testing"

	"pomo/internal/modules/settings/domain"
	"pomo/internal/ui/theme"
)

func TestEverySettingsThemeHasPalette(t *testing.T) {
	t.Parallel()
	for _, name := range domain.ThemeNames {
		if got := theme.Get(name); got.Name != name {
			t.Fatalf("theme %q has no palette", name)
		}
	}
	if len(theme.Names()) != len(domain.ThemeNames) {
		t.Fatalf("palette registry and settings themes differ: %v vs %v", theme.Names(), domain.ThemeNames)
	}
}

func TestGetFallsBackAndNextWraps(t *testing.T) {
	t.Parallel()
	if theme.Get("neon").Name != theme.DefaultName {
		t.Fatalf("unknown theme should fall back to %s", theme.DefaultName)
	}
	names := theme.Names()
	if theme.Next(names[len(names)-1]) != names[0] {
		t.Fatalf("next should wrap around")
	}
	if theme.Next("neon") != names[0] {
		t.Fatalf("unknown theme should restart the cycle")
	}
}
