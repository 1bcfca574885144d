// Package app runs the viewer's window, event loop and redraw scheduling.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/assetwatch"
	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/picking"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/screenshot"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
)

// idleDelay is how long the loop sleeps when nothing needs drawing.
const idleDelay = 5 // ms

// App is the running viewer.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	pick     *renderer.PickBackend
	watcher  *assetwatch.Watcher
	shots    *screenshot.Capture

	viewer   *viewer.Viewer
	pipeline *viewer.Pipeline
	ctl      *controller

	running bool
	dirty   bool
}

// New opens the window and prepares sc for display.
func New(cfg *config.Config, sc *scene.Scene) (*App, error) {
	bindings, err := ParseBindings(cfg.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	a := &App{
		cfg:   cfg,
		input: input.New(),
		shots: screenshot.New(cfg.Viewer.ScreenshotDir, "meshview"),
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(dw, dh)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.Upload(sc)
	a.pipeline = viewer.NewPipeline(a.renderer)

	a.viewer = viewer.New(sc, a.pickBackend(), viewer.Options{
		MoveStep:      cfg.Viewer.MoveStep,
		RotationSpeed: cfg.Viewer.RotationSpeed,
		PickSize:      cfg.Viewer.PickSize,
	})
	a.viewer.Resize(a.window.Size())
	a.window.ShowModel(sc.Name)
	a.ctl = &controller{viewer: a.viewer, bindings: bindings}

	if cfg.Viewer.Watch {
		a.watcher, err = assetwatch.New(cfg.Viewer.Model, assetwatch.DefaultDebounce)
		if err != nil {
			logger.Warn("model watching disabled", zap.Error(err))
		}
	}

	logger.Info("viewer initialized",
		zap.String("scene", sc.Name),
		zap.Int("meshes", sc.MeshCount()),
		zap.Int("triangles", sc.TriangleCount()),
	)
	return a, nil
}

func (a *App) pickBackend() picking.Backend {
	if a.cfg.Viewer.PickBackend == config.PickBackendCPU {
		return picking.CPUBackend{}
	}
	pb, err := a.renderer.NewPickBackend(a.cfg.Viewer.PickSize)
	if err != nil {
		logger.Warn("GPU picking unavailable, using CPU", zap.Error(err))
		return picking.CPUBackend{}
	}
	a.pick = pb
	return pb
}

// Run processes events until the window closes or Quit runs.
func (a *App) Run() error {
	a.running = true
	a.dirty = true

	logger.Info("starting event loop")

	for a.running {
		now := time.Now()

		quit := a.input.Update()
		for _, ev := range a.input.Events() {
			if ev.Type == input.EventWindowResize {
				a.renderer.Resize(a.window.DrawableSize())
			}
			if a.ctl.handle(ev, now) {
				a.dirty = true
			}
		}
		if quit || a.viewer.QuitRequested() {
			a.running = false
			break
		}

		a.pollReload()

		if a.viewer.Idle(now) {
			a.dirty = true
		}

		if !a.dirty {
			sdl.Delay(idleDelay)
			continue
		}
		a.draw()
	}

	return nil
}

// draw renders one frame and presents it.
func (a *App) draw() {
	a.dirty = false
	if !a.viewer.Render(a.pipeline) {
		return
	}
	if a.ctl.screenshot {
		a.ctl.screenshot = false
		a.saveScreenshot()
	}
	a.window.SwapBuffers()
}

func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadScreen()
	name, err := a.shots.Save(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// pollReload applies a pending model change. A failed import keeps the
// current scene.
func (a *App) pollReload() {
	if a.watcher == nil {
		return
	}
	select {
	case path := <-a.watcher.Changes():
		sc, err := scene.Import(path)
		if err != nil {
			logger.Error("reload failed, keeping current scene",
				zap.String("path", path),
				zap.Error(err),
			)
			return
		}
		a.renderer.Upload(sc)
		a.viewer.Reload(sc)
		a.window.ShowModel(sc.Name)
		a.dirty = true
	default:
	}
}

// Close releases all resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing watcher", zap.Error(err))
		}
	}
	if a.pick != nil {
		a.pick.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
