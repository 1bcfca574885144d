package viewer

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshview/pkg/math"
)

// ErrOutOfRange is returned for a mesh index outside the loaded scene.
var ErrOutOfRange = errors.New("mesh index out of range")

// RGBA is a color with float components. Values are stored as given.
type RGBA [4]float32

// Preset colors.
var (
	White = RGBA{1, 1, 1, 1}
	Black = RGBA{0, 0, 0, 1}
	Red   = RGBA{1, 0, 0, 1}
	Green = RGBA{0, 1, 0, 1}
	Blue  = RGBA{0, 0, 1, 1}
)

// MeshState is the user-editable state of one mesh.
type MeshState struct {
	Visible   bool
	Color     RGBA
	Offset    math.Vec3
	RotationY float32 // Degrees about the vertical axis
}

// DefaultMeshState returns the state every mesh starts with after a load.
func DefaultMeshState() MeshState {
	return MeshState{Visible: true, Color: White}
}

// Model returns translate(Offset) * rotateY(RotationY).
func (s MeshState) Model() math.Mat4 {
	return math.Translate(s.Offset.X, s.Offset.Y, s.Offset.Z).
		Mul(math.RotateY(math.Radians(s.RotationY)))
}

// StateStore holds one MeshState per mesh index. Entries are created at load
// time and live until the store is replaced.
type StateStore struct {
	states []MeshState
}

// NewStateStore creates count entries in their default state.
func NewStateStore(count int) *StateStore {
	s := &StateStore{states: make([]MeshState, count)}
	for i := range s.states {
		s.states[i] = DefaultMeshState()
	}
	return s
}

// Len returns the number of entries.
func (s *StateStore) Len() int {
	return len(s.states)
}

// Get returns a copy of mesh i's state.
func (s *StateStore) Get(i int) (MeshState, error) {
	st, err := s.at(i)
	if err != nil {
		return MeshState{}, err
	}
	return *st, nil
}

// SetVisible shows or hides mesh i.
func (s *StateStore) SetVisible(i int, visible bool) error {
	st, err := s.at(i)
	if err != nil {
		return err
	}
	st.Visible = visible
	return nil
}

// ToggleVisible flips mesh i's visibility.
func (s *StateStore) ToggleVisible(i int) error {
	st, err := s.at(i)
	if err != nil {
		return err
	}
	st.Visible = !st.Visible
	return nil
}

// SetColor replaces mesh i's color.
func (s *StateStore) SetColor(i int, c RGBA) error {
	st, err := s.at(i)
	if err != nil {
		return err
	}
	st.Color = c
	return nil
}

// Move adds delta to mesh i's offset.
func (s *StateStore) Move(i int, delta math.Vec3) error {
	st, err := s.at(i)
	if err != nil {
		return err
	}
	st.Offset = st.Offset.Add(delta)
	return nil
}

// SetRotation sets mesh i's absolute rotation in degrees.
func (s *StateStore) SetRotation(i int, degrees float32) error {
	st, err := s.at(i)
	if err != nil {
		return err
	}
	st.RotationY = degrees
	return nil
}

func (s *StateStore) at(i int) (*MeshState, error) {
	if i < 0 || i >= len(s.states) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, i, len(s.states))
	}
	return &s.states[i], nil
}

// must panics on a state access error. Indices handed to the store by the
// viewer always come from the loaded scene.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
