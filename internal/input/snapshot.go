package input

import "github.com/tomz197/neonrush/internal/physics"

// NoBuy marks a snapshot without a purchase request.
const NoBuy = -1

// Snapshot is the input for one frame. Direction fields are levels, the rest
// are edges that fire once per key press.
type Snapshot struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Dash       bool
	Pause      bool
	Reset      bool
	Shop       bool
	Quit       bool
	Fullscreen bool

	// Buy is the zero-based upgrade index requested this frame (key 1 is
	// index 0), or NoBuy.
	Buy int
}

// None returns an idle snapshot.
func None() Snapshot {
	return Snapshot{Buy: NoBuy}
}

// Intent returns the movement direction as a unit vector, or zero when no
// direction (or two opposing ones) is held.
func (s Snapshot) Intent() physics.Vec2 {
	var v physics.Vec2
	if s.Left {
		v.X--
	}
	if s.Right {
		v.X++
	}
	if s.Up {
		v.Y--
	}
	if s.Down {
		v.Y++
	}
	return v.Normalize()
}

// Active reports whether any key was held or pressed this frame.
func (s Snapshot) Active() bool {
	return s.Left || s.Right || s.Up || s.Down ||
		s.Dash || s.Pause || s.Reset || s.Shop || s.Quit || s.Fullscreen ||
		s.Buy != NoBuy
}
