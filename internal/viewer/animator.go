package viewer

import "time"

// DefaultRotationSpeed is the animation speed in degrees per second.
const DefaultRotationSpeed = 100

// Animator spins the selected meshes about their vertical axis.
// Each tick overwrites the rotation with elapsed*Speed, so restarting the
// animation restarts the sweep from zero.
type Animator struct {
	Speed float32 // Degrees per second

	running bool
	start   time.Time
}

// NewAnimator creates a stopped animator.
func NewAnimator(speed float32) *Animator {
	return &Animator{Speed: speed}
}

// Running reports whether the animation is on.
func (a *Animator) Running() bool {
	return a.running
}

// Toggle starts or stops the animation and returns the new state.
// Starting records now as the time origin.
func (a *Animator) Toggle(now time.Time) bool {
	a.running = !a.running
	if a.running {
		a.start = now
	}
	return a.running
}

// Tick updates the rotation of every selected mesh and reports whether
// anything changed. It does nothing while stopped or with an empty selection.
func (a *Animator) Tick(now time.Time, sel *Selection, store *StateStore) bool {
	if !a.running || sel.Len() == 0 {
		return false
	}

	angle := float32(now.Sub(a.start).Seconds() * float64(a.Speed))
	for _, i := range sel.Members() {
		must(store.SetRotation(i, angle))
	}
	return true
}
