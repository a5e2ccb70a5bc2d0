package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"displays/backend"
	"displays/layout"
	"displays/settings"
)

type gui struct {
	cfg      settings.AppSettings
	provider backend.Provider
	session  *layout.Session

	window fyne.Window
	canvas *arrangeCanvas
	tabs   *fyne.Container

	enabled     *widget.Check
	description *widget.Label
	physical    *widget.Label
	scaleEntry  *widget.Entry
	xEntry      *widget.Entry
	yEntry      *widget.Entry
	sizeLabel   *widget.Label
	refresh     *widget.Select
	transform   *widget.Select

	refreshOptions []string

	// updating suppresses widget callbacks while the form is being filled
	// from the model.
	updating bool
}

func newGUI(cfg settings.AppSettings) *gui {
	g := &gui{
		cfg:     cfg,
		session: layout.NewSession(layout.NewArrangement(nil)),
	}
	g.canvas = newArrangeCanvas(g)
	return g
}

func (g *gui) makeWindow(a fyne.App) fyne.Window {
	w := a.NewWindow("Displays")
	g.window = w

	g.tabs = container.NewHBox()

	g.enabled = widget.NewCheck("Enabled", g.onEnabledToggled)
	g.description = widget.NewLabel("")
	g.physical = widget.NewLabel("")
	g.sizeLabel = widget.NewLabel("")

	g.scaleEntry = widget.NewEntry()
	g.scaleEntry.OnChanged = g.onScaleChanged
	g.xEntry = widget.NewEntry()
	g.xEntry.OnChanged = g.onXChanged
	g.yEntry = widget.NewEntry()
	g.yEntry.OnChanged = g.onYChanged

	g.refresh = widget.NewSelect(nil, g.onRefreshSelected)
	g.transform = widget.NewSelect(transformNames(), g.onTransformSelected)

	row := func(label string, items ...fyne.CanvasObject) fyne.CanvasObject {
		all := append([]fyne.CanvasObject{widget.NewLabel(label)}, items...)
		return container.NewHBox(all...)
	}

	sidebar := container.NewVBox(
		container.NewCenter(g.tabs),
		g.enabled,
		row("Description", g.description),
		row("Physical Size", g.physical),
		row("DPI Scale", g.scaleEntry,
			widget.NewButton("-", func() { g.stepScale(-0.05) }),
			widget.NewButton("+", func() { g.stepScale(0.05) })),
		row("Position", g.xEntry,
			widget.NewButton("-", func() { g.stepPosition(-1, 0) }),
			widget.NewButton("+", func() { g.stepPosition(1, 0) }),
			g.yEntry,
			widget.NewButton("-", func() { g.stepPosition(0, -1) }),
			widget.NewButton("+", func() { g.stepPosition(0, 1) })),
		row("Size", g.sizeLabel),
		row("Refresh Rate", g.refresh, widget.NewLabel("Hz")),
		row("Transform", g.transform),
	)

	actions := container.NewHBox(
		widget.NewButton("Apply", g.onApply),
		widget.NewButton("Save", g.onSave),
	)

	side := container.NewBorder(nil, actions, nil, nil, container.NewVScroll(sidebar))

	split := container.NewHSplit(g.canvas, side)
	split.Offset = 0.72

	w.SetContent(split)
	w.Resize(fyne.NewSize(1280, 720))
	g.refreshFields()
	return w
}

// loadOutputs re-enumerates from the display server and starts a fresh
// editing session over the result.
func (g *gui) loadOutputs(w fyne.Window) {
	outputs, err := g.provider.Outputs()
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	g.session = layout.NewSession(layout.NewArrangement(outputs))
	g.rebuildTabs()
	g.refreshFields()
	g.canvas.Refresh()
}

func (g *gui) rebuildTabs() {
	arr := g.session.Arrangement()
	selected, hasSelection := arr.Selected()

	g.tabs.RemoveAll()
	for i := range arr.Outputs {
		btn := widget.NewButton(arr.Outputs[i].Name, func() {
			if g.session.Arrangement().Select(i) {
				g.refreshSelection()
			}
		})
		if hasSelection && i == selected {
			btn.Importance = widget.HighImportance
		}
		g.tabs.Add(btn)
	}
	g.tabs.Refresh()
}

// refreshSelection updates everything that depends on which output is
// selected: tab highlighting, the form, and the canvas styling.
func (g *gui) refreshSelection() {
	g.rebuildTabs()
	g.refreshFields()
	g.canvas.Refresh()
}

// refreshFields fills the form from the selected output.
func (g *gui) refreshFields() {
	g.updating = true
	defer func() { g.updating = false }()

	arr := g.session.Arrangement()
	out := arr.SelectedOutput()
	if out == nil {
		g.enabled.Hide()
		g.description.SetText("")
		g.physical.SetText("")
		g.scaleEntry.SetText("")
		g.xEntry.SetText("")
		g.yEntry.SetText("")
		g.sizeLabel.SetText("")
		g.refresh.Options = nil
		g.refresh.ClearSelected()
		g.transform.ClearSelected()
		return
	}

	if arr.Len() > 1 {
		g.enabled.Show()
		g.enabled.SetChecked(out.Enabled)
	} else {
		g.enabled.Hide()
	}

	g.description.SetText(out.Description)
	if out.PhysicalSize == "" {
		g.physical.SetText("Unknown")
	} else {
		g.physical.SetText(out.PhysicalSize)
	}

	g.scaleEntry.SetText(fmt.Sprintf("%.2f", out.Scale))
	g.setPositionFields(out)

	m := out.CurrentMode()
	g.sizeLabel.SetText(fmt.Sprintf("%d x %d", m.Width, m.Height))

	g.refreshOptions = g.refreshOptions[:0]
	current := ""
	for _, mode := range out.Modes {
		opt := fmt.Sprintf("%.3f", mode.Refresh)
		g.refreshOptions = append(g.refreshOptions, opt)
		if mode.Current {
			current = opt
		}
	}
	g.refresh.Options = g.refreshOptions
	g.refresh.Refresh()
	g.refresh.SetSelected(current)

	g.transform.SetSelected(string(out.Transform))
}

// refreshPositionFields mirrors a drag in progress into the X/Y entries
// without rebuilding the rest of the form.
func (g *gui) refreshPositionFields() {
	g.updating = true
	defer func() { g.updating = false }()

	if out := g.session.Arrangement().SelectedOutput(); out != nil {
		g.setPositionFields(out)
	}
}

func (g *gui) setPositionFields(out *layout.Output) {
	g.xEntry.SetText(strconv.Itoa(out.X))
	g.yEntry.SetText(strconv.Itoa(out.Y))
}

// Text that does not parse, or parses outside the domain, is ignored: the
// model keeps its value and the entry keeps the text for the user to fix.

func (g *gui) onScaleChanged(s string) {
	if g.updating {
		return
	}
	out := g.session.Arrangement().SelectedOutput()
	if out == nil {
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0.1 {
		return
	}
	out.Scale = v
	g.canvas.Refresh()
}

func (g *gui) onXChanged(s string) {
	if g.updating {
		return
	}
	g.setAxis(s, func(out *layout.Output, v int) { out.X = v })
}

func (g *gui) onYChanged(s string) {
	if g.updating {
		return
	}
	g.setAxis(s, func(out *layout.Output, v int) { out.Y = v })
}

func (g *gui) setAxis(s string, assign func(*layout.Output, int)) {
	out := g.session.Arrangement().SelectedOutput()
	if out == nil {
		return
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	if v < 0 {
		v = 0
	}
	assign(out, v)
	g.canvas.Refresh()
}

func (g *gui) stepPosition(dx, dy int) {
	out := g.session.Arrangement().SelectedOutput()
	if out == nil {
		return
	}
	if x := out.X + dx; x >= 0 {
		out.X = x
	}
	if y := out.Y + dy; y >= 0 {
		out.Y = y
	}
	g.refreshPositionFields()
	g.canvas.Refresh()
}

func (g *gui) stepScale(delta float64) {
	out := g.session.Arrangement().SelectedOutput()
	if out == nil {
		return
	}
	if delta < 0 && out.Scale <= 0.1 {
		return
	}
	out.Scale += delta
	g.refreshFields()
	g.canvas.Refresh()
}

func (g *gui) onEnabledToggled(on bool) {
	if g.updating {
		return
	}
	if out := g.session.Arrangement().SelectedOutput(); out != nil {
		out.Enabled = on
		g.canvas.Refresh()
	}
}

func (g *gui) onRefreshSelected(s string) {
	if g.updating {
		return
	}
	out := g.session.Arrangement().SelectedOutput()
	if out == nil {
		return
	}
	for i, opt := range g.refreshOptions {
		if opt == s {
			out.SelectMode(i)
			break
		}
	}
	g.refreshFields()
	g.canvas.Refresh()
}

func (g *gui) onTransformSelected(s string) {
	if g.updating {
		return
	}
	if out := g.session.Arrangement().SelectedOutput(); out != nil {
		out.Transform = layout.Transform(s)
		g.canvas.Refresh()
	}
}

// onApply normalizes the arrangement and pushes it to the live display
// server. Failures surface in a dialog; the in-memory arrangement is not
// rolled forward or back.
func (g *gui) onApply() {
	arr := g.session.Arrangement()
	arr.Normalize()
	g.refreshFields()
	g.canvas.Refresh()

	if g.provider == nil {
		dialog.ShowError(backend.ErrNoBackend, g.window)
		return
	}
	if err := g.provider.Apply(arr.Outputs); err != nil {
		fyne.LogError("Applying arrangement", err)
		dialog.ShowError(err, g.window)
		return
	}
	log.Info("applied arrangement", "outputs", arr.Len())
}

// onSave normalizes and writes the monitors conf file. Saving never applies,
// applying never saves.
func (g *gui) onSave() {
	arr := g.session.Arrangement()
	arr.Normalize()
	g.refreshFields()
	g.canvas.Refresh()

	if err := backend.SaveConf(arr.Outputs, g.cfg); err != nil {
		fyne.LogError("Saving arrangement", err)
		dialog.ShowError(err, g.window)
		return
	}
	log.Info("saved arrangement", "path", g.cfg.MonitorsConfPath)
}

func transformNames() []string {
	names := make([]string, 0, len(layout.Transforms()))
	for _, t := range layout.Transforms() {
		names = append(names, string(t))
	}
	return names
}
