package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"placer/internal/assets"
	"placer/internal/broadcast"
	"placer/internal/config"
	"placer/internal/drag"
	"placer/internal/highlight"
	"placer/internal/notify"
	"placer/internal/placement"
	"placer/internal/viewport"
)

// App is the interactive editor: a catalog panel on the left and the
// placement scene on the right, sharing one broadcast.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *assets.Registry
	updates  <-chan []*assets.Asset

	channel   *broadcast.Channel
	notes     *notify.Center
	catalog   *viewport.Catalog
	placement *viewport.Placement
	areaColor color.RGBA

	catalogView   *view
	placementView *view
	screenW       int32
	screenH       int32
	DebugMode     bool

	primary   viewport.PointerTracker
	secondary viewport.PointerTracker

	listHovered  int
	listHovering bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New wires the viewports. updates may be nil when the catalog is not
// watched.
func New(cfg config.Config, reg *assets.Registry, updates <-chan []*assets.Asset, logger *slog.Logger) (*App, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	areaColor, err := cfg.AreaColor()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		registry:  reg,
		updates:   updates,
		channel:   broadcast.New(),
		notes:     notify.NewCenter(cfg.NotificationDuration()),
		areaColor: areaColor,
		screenW:   int32(cfg.Window.Width),
		screenH:   int32(cfg.Window.Height),

		listHovered: noAsset,
	}
	catRect, mainRect := a.layout()

	hl := highlight.NewController(palette, cfg.Highlight.Opacity, cfg.Highlight.RenderOrder)
	a.catalog = viewport.NewCatalog(catRect, reg, a.channel, hl)
	a.placement = viewport.NewPlacement(viewport.PlacementConfig{
		Rect:         mainRect,
		Registry:     reg,
		Broadcast:    a.channel,
		Highlight:    hl,
		Validator:    placement.NewValidator(policy),
		Notify:       a.notes,
		Logger:       logger,
		Grid:         cfg.GridSpec(),
		Volume:       cfg.VolumeOptions(),
		PlaneHeight:  cfg.Placement.PlaneHeight,
		LockVertical: cfg.Placement.LockVertical,
	})
	a.placement.Dragger.Committed.AddListener(func(p drag.Placement) {
		a.logger.Debug("placed", "id", p.ID, "asset", p.AssetID)
	})
	a.notes.Subscribe(func(n notify.Notification) {
		a.logger.Debug("notification", "type", n.Type.String(), "message", n.Message)
	})
	return a, nil
}

// layout splits the window into the catalog panel and the scene.
func (a *App) layout() (catalog, scene viewport.Rect) {
	cw := float32(a.cfg.Window.CatalogWidth)
	w, h := float32(a.screenW), float32(a.screenH)
	if cw > w/2 {
		cw = w / 2
	}
	ch := h - topBarHeight - assetListHeight
	if ch < 1 {
		ch = 1
	}
	catalog = viewport.Rect{X: 0, Y: topBarHeight, W: cw, H: ch}
	scene = viewport.Rect{X: cw, Y: topBarHeight, W: w - cw, H: h - topBarHeight}
	return
}

func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.screenW, a.screenH, a.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(a.cfg.Window.TargetFPS))
	rl.SetExitKey(0)
	initRayguiStyle()

	catRect, mainRect := a.layout()
	a.catalogView = newView(catRect)
	a.placementView = newView(mainRect)
	defer a.catalogView.unload()
	defer a.placementView.unload()
	defer a.catalog.Close()
	defer a.placement.Close()

	a.logger.Info("editor started", "assets", a.registry.Len())

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	updateStart := time.Now()

	a.applyCatalogUpdates()
	a.handleResize()

	mouse := rl.GetMousePosition()
	ptr := a.primary.Sample(mouse.X, mouse.Y, rl.IsMouseButtonDown(rl.MouseLeftButton))
	alt := a.secondary.Sample(mouse.X, mouse.Y, rl.IsMouseButtonDown(rl.MouseRightButton))
	// The scene goes first so a release there commits with this frame's
	// pointer before the catalog clears the broadcast.
	a.placement.Update(ptr)
	a.catalog.Update(ptr)
	a.catalog.Arrange(alt)

	// A button let go outside the window is never reported.
	if !rl.IsWindowFocused() && a.placement.Dragger.State() == drag.Dragging {
		a.placement.Dragger.Release()
	}

	a.updateCamera(mouse)

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.placement.Dragger.Cancel()
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyZ) {
		a.placement.Undo()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.DebugMode = !a.DebugMode
	}

	a.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// applyCatalogUpdates swaps in catalogs reloaded by the watcher. It never
// blocks the frame.
func (a *App) applyCatalogUpdates() {
	if a.updates == nil {
		return
	}
	select {
	case list, ok := <-a.updates:
		if !ok {
			a.updates = nil
			return
		}
		if err := a.registry.Replace(list); err != nil {
			a.notes.Errorf("Catalog reload failed: %v", err)
			a.logger.Warn("catalog replace failed", "err", err)
			return
		}
		a.notes.Infof("Catalog reloaded (%d assets)", len(list))
	default:
	}
}

func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.screenW = int32(rl.GetScreenWidth())
	a.screenH = int32(rl.GetScreenHeight())
	catRect, mainRect := a.layout()
	a.catalog.Resize(catRect)
	a.placement.Resize(mainRect)
	a.catalogView.resize(catRect)
	a.placementView.resize(mainRect)
}

// updateCamera orbits the scene camera with the right mouse button and zooms
// with the wheel, only while the pointer is over the scene.
func (a *App) updateCamera(mouse rl.Vector2) {
	if _, in := a.placement.Rect.NDC(mouse.X, mouse.Y); !in {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		a.placement.Camera.Orbit(d.X*0.3, d.Y*0.3)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.placement.Camera.Zoom(wheel, 2)
	}
}

func (a *App) Draw() {
	drawStart := time.Now()

	a.catalogView.render(a.catalog.Camera, func() {
		drawScene(a.catalog.Scene)
	})
	a.placementView.render(a.placement.Camera, func() {
		rl.DrawGrid(20, 1)
		drawScene(a.placement.Scene)
		drawVolumes(a.placement.Volumes(), a.areaColor)
	})

	rl.BeginDrawing()
	rl.ClearBackground(colorBgDark)
	a.catalogView.blit()
	a.placementView.blit()
	rl.DrawLine(int32(a.catalog.Rect.W), topBarHeight, int32(a.catalog.Rect.W), a.screenH, colorBorderStrong)
	a.DrawUI()
	rl.EndDrawing()

	a.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
}

func (a *App) DrawUI() {
	a.drawTopBar()
	a.drawAssetList()
	a.drawToast(time.Now())

	if a.DebugMode {
		rl.DrawFPS(10, topBarHeight+10)
		s := a.placement.Dragger.State()
		drawText(fmt.Sprintf("State:   %s", s), 10, topBarHeight+35, 16, colorAccentLight)
		drawText(fmt.Sprintf("Placed:  %d", len(a.placement.Dragger.Placements())), 10, topBarHeight+55, 16, colorAccentLight)
		drawText(fmt.Sprintf("Update:  %.2f ms", a.updateMs), 10, topBarHeight+75, 16, rl.Green)
		drawText(fmt.Sprintf("Draw:    %.2f ms", a.drawMs), 10, topBarHeight+95, 16, rl.Green)
		drawText(fmt.Sprintf("Listen:  %d", a.channel.Subscribers()), 10, topBarHeight+115, 16, colorAccentLight)
	}
}
