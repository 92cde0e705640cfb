package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"LocalSketch/internal/config"
)

// variantTheme pins the default theme to one variant regardless of the
// desktop preference.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func newVariantTheme(name string) *variantTheme {
	v := theme.VariantLight
	if name == config.ThemeDark {
		v = theme.VariantDark
	}
	return &variantTheme{Theme: theme.DefaultTheme(), variant: v}
}

func (t *variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func (t *variantTheme) Name() string {
	if t.variant == theme.VariantDark {
		return config.ThemeDark
	}
	return config.ThemeLight
}

func otherTheme(name string) string {
	if name == config.ThemeDark {
		return config.ThemeLight
	}
	return config.ThemeDark
}
