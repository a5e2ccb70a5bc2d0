package main

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"displays/layout"
)

var (
	canvasBackground = color.NRGBA{R: 15, G: 15, B: 15, A: 255}

	fillSelected = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	fillHovered  = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	fillNormal   = color.NRGBA{R: 35, G: 35, B: 35, A: 255}

	strokeSelected = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	strokeHovered  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	strokeNormal   = color.NRGBA{R: 20, G: 20, B: 20, A: 255}

	nameSelected = color.NRGBA{A: 255}
	nameNormal   = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	descSelected = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	descNormal   = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

// arrangeCanvas paints the arrangement and feeds pointer events into the
// layout session. All mutation goes through the session; the canvas itself
// is stateless between events.
type arrangeCanvas struct {
	widget.BaseWidget

	g *gui
}

var (
	_ desktop.Mouseable = (*arrangeCanvas)(nil)
	_ desktop.Hoverable = (*arrangeCanvas)(nil)
	_ fyne.Draggable    = (*arrangeCanvas)(nil)
)

func newArrangeCanvas(g *gui) *arrangeCanvas {
	c := &arrangeCanvas{g: g}
	c.ExtendBaseWidget(c)
	return c
}

func (c *arrangeCanvas) projection() layout.Projection {
	size := c.Size()
	return layout.Project(c.g.session.Arrangement(), float64(size.Width), float64(size.Height))
}

func (c *arrangeCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if _, hit := c.g.session.PointerDown(c.projection(), float64(ev.Position.X), float64(ev.Position.Y)); hit {
		c.g.refreshSelection()
	}
}

func (c *arrangeCanvas) MouseUp(*desktop.MouseEvent) {
	c.g.session.PointerUp()
}

func (c *arrangeCanvas) Dragged(ev *fyne.DragEvent) {
	c.pointerMoved(ev.Position)
}

func (c *arrangeCanvas) DragEnd() {
	c.g.session.PointerUp()
}

func (c *arrangeCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.pointerMoved(ev.Position)
}

func (c *arrangeCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.pointerMoved(ev.Position)
}

func (c *arrangeCanvas) MouseOut() {
	if c.g.session.ClearHover() {
		c.Refresh()
	}
}

func (c *arrangeCanvas) pointerMoved(pos fyne.Position) {
	if !c.g.session.PointerMove(c.projection(), float64(pos.X), float64(pos.Y)) {
		return
	}
	if _, dragging := c.g.session.Dragging(); dragging {
		c.g.refreshPositionFields()
	}
	c.Refresh()
}

func (c *arrangeCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(canvasBackground)
	return &arrangeRenderer{c: c, background: bg, objects: []fyne.CanvasObject{bg}}
}

type arrangeRenderer struct {
	c          *arrangeCanvas
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *arrangeRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild(size)
}

func (r *arrangeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *arrangeRenderer) Refresh() {
	r.background.Resize(r.c.Size())
	r.rebuild(r.c.Size())
	canvas.Refresh(r.c)
}

func (r *arrangeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *arrangeRenderer) Destroy() {}

// rebuild regenerates every rectangle and label from the model. The session
// only triggers a refresh when something visible changed, so this does not
// run per pointer event at rest.
func (r *arrangeRenderer) rebuild(size fyne.Size) {
	objects := []fyne.CanvasObject{r.background}

	sess := r.c.g.session
	arr := sess.Arrangement()
	p := layout.Project(arr, float64(size.Width), float64(size.Height))

	selected, hasSelection := arr.Selected()
	hovered, hasHover := sess.Hovered()

	fontScale := float32(p.Scale)
	if fontScale < 0.5 {
		fontScale = 0.5
	}
	if fontScale > 2.0 {
		fontScale = 2.0
	}

	for i := range arr.Outputs {
		out := &arr.Outputs[i]
		rect := p.OutputRect(out)

		isSelected := hasSelection && i == selected
		isHovered := hasHover && i == hovered

		box := canvas.NewRectangle(fillNormal)
		box.StrokeColor = strokeNormal
		box.StrokeWidth = 2
		switch {
		case isSelected:
			box.FillColor = fillSelected
			box.StrokeColor = strokeSelected
			box.StrokeWidth = 3
		case isHovered:
			box.FillColor = fillHovered
			box.StrokeColor = strokeHovered
		}
		box.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
		box.Resize(fyne.NewSize(float32(rect.W), float32(rect.H)))
		objects = append(objects, box)

		textX := float32(rect.X) + 16
		textY := float32(rect.Y) + 16

		name := canvas.NewText(out.Name, nameNormal)
		if isSelected {
			name.Color = nameSelected
		}
		name.TextSize = 48 * fontScale
		name.Move(fyne.NewPos(textX, textY))
		objects = append(objects, name)
		textY += 50 * fontScale

		descSize := 18 * fontScale
		descColor := descNormal
		if isSelected {
			descColor = descSelected
		}
		for _, line := range wrapText(out.Description, maxLineChars(float32(rect.W), descSize)) {
			t := canvas.NewText(line, descColor)
			t.TextSize = descSize
			t.Move(fyne.NewPos(textX, textY))
			objects = append(objects, t)
			textY += descSize * 1.3
		}
	}

	r.objects = objects
}

func maxLineChars(boxWidth, textSize float32) int {
	charWidth := textSize * 0.6
	chars := int((boxWidth - 32) / charWidth)
	if chars < 10 {
		chars = 10
	}
	return chars
}

// wrapText breaks s into lines of at most max characters on word
// boundaries. Words longer than max get a line of their own.
func wrapText(s string, max int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(s) {
		if current != "" && len(current)+len(word)+1 > max {
			lines = append(lines, current)
			current = word
			continue
		}
		if current != "" {
			current += " "
		}
		current += word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
