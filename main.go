package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"github.com/charmbracelet/log"

	"displays/backend"
	"displays/settings"
)

func main() {
	cfg, err := settings.Load(settings.DefaultPath())
	if err != nil {
		log.Warn("loading settings", "err", err)
	}

	a := app.New()
	loadTheme(a)

	g := newGUI(cfg)
	w := g.makeWindow(a)

	provider, err := backend.Detect(cfg)
	if err != nil {
		log.Error("detecting display server", "err", err)
		dialog.ShowError(err, w)
	} else {
		g.provider = provider
		log.Info("using display backend", "backend", provider.Name())

		g.loadOutputs(w)
		g.setupActions(w)
	}

	w.ShowAndRun()

	if closer, ok := g.provider.(interface{ Close() }); ok {
		closer.Close()
	}
}

// setupActions wires hardware change notifications back into the GUI so the
// arrangement reloads when outputs come and go.
func (g *gui) setupActions(w fyne.Window) {
	watcher, ok := g.provider.(backend.Watcher)
	if !ok {
		return
	}

	err := watcher.Watch(func() {
		fyne.Do(func() {
			g.loadOutputs(w)
		})
	})
	if err != nil {
		fyne.LogError("Could not watch for display changes", err)
	}
}
