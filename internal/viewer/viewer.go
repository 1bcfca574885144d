// Package viewer holds the interactive state of the mesh viewer and the
// handlers that mutate it.
//
// A Viewer aggregates the scene, per-mesh state, selection, camera, lights,
// animation and picking. Every handler runs on the event loop and returns
// whether the change needs a redraw; the caller coalesces those into one
// frame per loop iteration.
package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/picking"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// MouseButton identifies a mouse button.
type MouseButton int

// Mouse buttons.
const (
	ButtonLeft MouseButton = iota + 1
	ButtonMiddle
	ButtonRight
)

// Modifiers is a set of held modifier keys.
type Modifiers uint8

// Modifier flags.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Options are the tunables a Viewer is created with.
type Options struct {
	MoveStep      float32 // Offset change per move command
	RotationSpeed float32 // Animation speed, degrees per second
	PickSize      int     // Side of the pick box in pixels
}

// DefaultOptions returns the stock tunables.
func DefaultOptions() Options {
	return Options{
		MoveStep:      1,
		RotationSpeed: DefaultRotationSpeed,
		PickSize:      picking.DefaultSize,
	}
}

// Viewer is the viewer state plus its input handlers.
type Viewer struct {
	scene     *scene.Scene
	store     *StateStore
	selection *Selection
	camera    *camera.Orbit
	lights    *lighting.Bank
	animator  *Animator
	picker    *picking.Engine
	viewport  picking.Viewport
	moveStep  float32

	dragging     bool
	lastX, lastY int
	quit         bool
}

// New creates a viewer for sc. Picking goes through backend.
func New(sc *scene.Scene, backend picking.Backend, opts Options) *Viewer {
	v := &Viewer{
		selection: NewSelection(sc.MeshCount()),
		camera:    camera.NewOrbit(),
		lights:    lighting.NewBank(),
		animator:  NewAnimator(opts.RotationSpeed),
		picker:    picking.NewEngine(backend, opts.PickSize),
		moveStep:  opts.MoveStep,
	}
	v.load(sc)
	return v
}

// Scene returns the loaded scene.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Store returns the per-mesh state.
func (v *Viewer) Store() *StateStore { return v.store }

// Selection returns the selection set.
func (v *Viewer) Selection() *Selection { return v.selection }

// Camera returns the orbit camera.
func (v *Viewer) Camera() *camera.Orbit { return v.camera }

// Lights returns the light bank.
func (v *Viewer) Lights() *lighting.Bank { return v.lights }

// Animator returns the animation driver.
func (v *Viewer) Animator() *Animator { return v.animator }

// Viewport returns the current window size.
func (v *Viewer) Viewport() picking.Viewport { return v.viewport }

// QuitRequested reports whether the Quit command ran.
func (v *Viewer) QuitRequested() bool { return v.quit }

// SetPickBackend swaps the hit-test implementation.
func (v *Viewer) SetPickBackend(b picking.Backend) {
	v.picker.SetBackend(b)
}

// Reload replaces the scene. Mesh state returns to defaults and the
// selection is emptied; selection mode, camera and lights are kept.
func (v *Viewer) Reload(sc *scene.Scene) bool {
	v.load(sc)
	v.selection.Reset(sc.MeshCount())
	logger.Info("scene reloaded",
		zap.String("name", sc.Name),
		zap.Int("meshes", sc.MeshCount()),
	)
	return true
}

func (v *Viewer) load(sc *scene.Scene) {
	v.scene = sc
	v.store = NewStateStore(sc.MeshCount())
	if b, ok := sc.Bounds(); ok {
		v.camera.FitDistance(b.MaxExtent())
	}
}

// Resize records the new window size.
func (v *Viewer) Resize(width, height int) bool {
	v.viewport = picking.Viewport{Width: width, Height: height}
	return true
}

// MouseDown handles a button press at window position (x, y).
func (v *Viewer) MouseDown(button MouseButton, x, y int, mods Modifiers) bool {
	switch button {
	case ButtonLeft:
		if v.selection.ModeActive {
			v.pick(x, y, mods&ModShift != 0)
			return true
		}
		v.dragging = true
		v.lastX, v.lastY = x, y
		return false
	case ButtonRight:
		v.camera.HandleZoom(1)
		return true
	}
	return false
}

// MouseUp handles a button release.
func (v *Viewer) MouseUp(button MouseButton, x, y int) bool {
	switch button {
	case ButtonLeft:
		v.dragging = false
		return false
	case ButtonRight:
		v.camera.HandleZoom(-1)
		return true
	}
	return false
}

// MouseMove handles pointer motion. It rotates the camera while dragging.
func (v *Viewer) MouseMove(x, y int) bool {
	if !v.dragging {
		return false
	}
	v.camera.HandleDrag(float32(x-v.lastX), float32(y-v.lastY))
	v.lastX, v.lastY = x, y
	return true
}

// Wheel zooms one step; positive direction zooms in.
func (v *Viewer) Wheel(direction int) bool {
	if direction == 0 {
		return false
	}
	v.camera.HandleZoom(direction)
	return true
}

// Idle advances the animation.
func (v *Viewer) Idle(now time.Time) bool {
	return v.animator.Tick(now, v.selection, v.store)
}

// Execute runs a command.
func (v *Viewer) Execute(cmd Command, now time.Time) bool {
	switch cmd {
	case ToggleSelectionMode:
		v.selection.ToggleMode()
		logger.Debug("selection mode", zap.Bool("active", v.selection.ModeActive))
	case MoveUp:
		v.move(math.Vec3{Y: v.moveStep}, 0, -1)
	case MoveDown:
		v.move(math.Vec3{Y: -v.moveStep}, 0, 1)
	case MoveLeft:
		v.move(math.Vec3{X: -v.moveStep}, 1, 0)
	case MoveRight:
		v.move(math.Vec3{X: v.moveStep}, -1, 0)
	case ToggleVisibility:
		for _, i := range v.selection.Members() {
			must(v.store.ToggleVisible(i))
		}
	case ColorRed:
		v.paint(Red)
	case ColorGreen:
		v.paint(Green)
	case ColorBlue:
		v.paint(Blue)
	case ToggleAnimation:
		running := v.animator.Toggle(now)
		logger.Debug("animation", zap.Bool("running", running))
	case ToggleLight0, ToggleLight1, ToggleLight2, ToggleLight3:
		if err := v.lights.Toggle(int(cmd - ToggleLight0)); err != nil {
			logger.Error("toggle light", zap.Error(err))
			return false
		}
	case ResetCamera:
		v.camera.Reset()
	case Quit:
		v.quit = true
		return false
	default:
		return false
	}
	return true
}

// move shifts the selected meshes, or pans the camera when selection mode
// is off or nothing is selected.
func (v *Viewer) move(delta math.Vec3, panX, panY float32) {
	if !v.selection.ModeActive || v.selection.Len() == 0 {
		v.camera.Pan(panX*camera.PanStep, panY*camera.PanStep)
		return
	}
	for _, i := range v.selection.Members() {
		must(v.store.Move(i, delta))
	}
}

func (v *Viewer) paint(c RGBA) {
	for _, i := range v.selection.Members() {
		must(v.store.SetColor(i, c))
	}
}

func (v *Viewer) pick(x, y int, additive bool) {
	if v.viewport.Empty() {
		return
	}
	id, hit, err := v.picker.Pick(x, y, v.viewport, v.camera, v.PickTargets())
	if err != nil {
		logger.Error("pick failed", zap.Error(err))
		return
	}
	if err := v.selection.ClickSelect(id, hit, additive); err != nil {
		logger.Error("pick returned unknown mesh", zap.Error(err))
		return
	}
	logger.Debug("selection",
		zap.Bool("hit", hit),
		zap.Int("mesh", id),
		zap.Ints("members", v.selection.Members()),
	)
}

// PickTargets lists the visible meshes in ascending index order with their
// current model matrices. The last hit wins, so overlapping meshes resolve
// to the highest index regardless of the node tree.
func (v *Viewer) PickTargets() []picking.Target {
	var targets []picking.Target
	for i := 0; i < v.store.Len(); i++ {
		st, err := v.store.Get(i)
		must(err)
		if !st.Visible {
			continue
		}
		m := v.scene.Mesh(i)
		targets = append(targets, picking.Target{
			ID:        i,
			Model:     st.Model(),
			Positions: m.Positions,
			Faces:     m.Faces,
		})
	}
	return targets
}

// Frame assembles the pipeline input for the current state. ok is false
// when the viewport has no pixels and the frame should be skipped.
func (v *Viewer) Frame() (f Frame, ok bool) {
	if v.viewport.Empty() {
		return Frame{}, false
	}
	return Frame{
		Scene:      v.scene,
		Store:      v.store,
		Selection:  v.selection,
		Lights:     v.lights,
		View:       v.camera.ViewMatrix(),
		Projection: DisplayProjection(v.viewport.Aspect()),
	}, true
}

// Render draws the current state through p. It returns false when the
// frame was skipped.
func (v *Viewer) Render(p *Pipeline) bool {
	f, ok := v.Frame()
	if !ok {
		return false
	}
	p.Render(f)
	return true
}
