package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// darkTheme pins the app to the dark variant regardless of the desktop
// preference; the canvas colors assume a dark surround.
type darkTheme struct {
	base fyne.Theme
}

func loadTheme(a fyne.App) {
	a.Settings().SetTheme(&darkTheme{base: theme.DefaultTheme()})
}

func (t *darkTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.base.Color(n, theme.VariantDark)
}

func (t *darkTheme) Font(s fyne.TextStyle) fyne.Resource {
	return t.base.Font(s)
}

func (t *darkTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(n)
}

func (t *darkTheme) Size(n fyne.ThemeSizeName) float32 {
	return t.base.Size(n)
}
