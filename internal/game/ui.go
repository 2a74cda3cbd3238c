package game

import (
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"placer/internal/notify"
)

const (
	topBarHeight    = 36
	assetListHeight = 180
	assetRowHeight  = 24
)

// noAsset is an id no catalog uses; focusing it clears focus.
const noAsset = math.MinInt

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 255)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255)
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)

	colorBorderStrong = rl.NewColor(50, 50, 65, 255)

	colorSuccess = rl.NewColor(100, 220, 100, 255)
	colorError   = rl.NewColor(255, 120, 120, 255)
	colorWarning = rl.NewColor(250, 200, 90, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorderStrong))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func drawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}

func (a *App) drawTopBar() {
	w := a.screenW
	rl.DrawRectangle(0, 0, w, topBarHeight, colorBgPanel)
	rl.DrawLine(0, topBarHeight-1, w, topBarHeight-1, colorBorderStrong)
	drawText("Catalog", 10, 10, 16, colorTextMuted)
	drawText("Drag an asset into the scene. RMB orbit/arrange, wheel zoom, Esc cancel.",
		int32(a.catalog.Rect.W)+10, 10, 16, colorTextMuted)

	if !a.placement.CanUndo() {
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: float32(w - 90), Y: 6, Width: 80, Height: 24}, "Undo") {
		a.placement.Undo()
	}
	gui.Enable()
}

func (a *App) drawToast(now time.Time) {
	n, ok := a.notes.Current(now)
	if !ok {
		return
	}
	col := colorTextSecondary
	switch n.Type {
	case notify.Success:
		col = colorSuccess
	case notify.Error:
		col = colorError
	case notify.Warning:
		col = colorWarning
	}
	textW := rl.MeasureText(n.Message, 16)
	x := int32(a.placement.Rect.X) + (int32(a.placement.Rect.W)-textW)/2
	y := int32(topBarHeight + 12)
	rl.DrawRectangle(x-12, y-5, textW+24, 26, rl.Fade(colorBgElement, 0.9))
	rl.DrawRectangleLines(x-12, y-5, textW+24, 26, col)
	drawText(n.Message, x, y, 16, col)
}

func (a *App) assetListRect() rl.Rectangle {
	return rl.Rectangle{
		X:      0,
		Y:      a.catalog.Rect.Y + a.catalog.Rect.H,
		Width:  a.catalog.Rect.W,
		Height: float32(a.screenH) - (a.catalog.Rect.Y + a.catalog.Rect.H),
	}
}

// drawAssetList lists every catalog asset under the previews. Hovering a row
// focuses the asset; the checkbox shows or hides its preview.
func (a *App) drawAssetList() {
	r := a.assetListRect()
	rl.DrawRectangleRec(r, colorBgPanel)
	rl.DrawLine(int32(r.X), int32(r.Y), int32(r.X+r.Width), int32(r.Y), colorBorderStrong)

	mouse := rl.GetMousePosition()
	hovered, hovering := noAsset, false
	y := r.Y + 6
	for _, as := range a.registry.All() {
		if y+assetRowHeight > r.Y+r.Height {
			break
		}
		row := rl.Rectangle{X: r.X, Y: y, Width: r.Width, Height: assetRowHeight}
		if rl.CheckCollisionPointRec(mouse, row) {
			hovered, hovering = as.ID, true
			rl.DrawRectangleRec(row, colorBgHover)
		}

		visible := gui.CheckBox(rl.Rectangle{X: r.X + 10, Y: y + 4, Width: 16, Height: 16}, "", as.Visible)
		if visible != as.Visible {
			if err := a.registry.SetVisible(as.ID, visible); err != nil {
				a.logger.Warn("toggle visibility", "asset", as.ID, "err", err)
			}
		}

		col := colorTextSecondary
		if as.Focused {
			col = colorAccentLight
		}
		drawText(as.Name, int32(r.X)+34, int32(y)+5, 14, col)
		y += assetRowHeight
	}

	if hovered != a.listHovered || hovering != a.listHovering {
		a.listHovered, a.listHovering = hovered, hovering
		a.catalog.Focus(hovered)
	}
}
