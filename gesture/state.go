package gesture

import "time"

// State is a snapshot of the tracked gesture's kinematics. It is replaced
// wholesale on every update; callbacks receive it by value.
type State struct {
	// Time of the last update, used for velocity
	Time time.Time `json:"-"`

	// XY is the current absolute position
	XY Point `json:"xy"`

	// Initial is the position at grant time
	Initial Point `json:"initial"`

	// Previous is the position before the current update
	Previous Point `json:"previous"`

	// Delta is XY - Initial
	Delta Point `json:"delta"`

	// Direction is the normalized instantaneous displacement
	Direction Point `json:"direction"`

	// Local is LastLocal + Delta: position continuous across gesture segments
	Local Point `json:"local"`

	// LastLocal is the Local value carried over from the previous
	// completed or terminated gesture
	LastLocal Point `json:"lastLocal"`

	// Velocity is the instantaneous speed, displacement over elapsed seconds
	Velocity float64 `json:"velocity"`

	// Distance is the Euclidean norm of Delta
	Distance float64 `json:"distance"`

	// First is true only on the update immediately following a grant
	First bool `json:"first"`
}

// granted returns the snapshot seeded at claim-grant time. LastLocal is the
// only field carried over from the previous gesture segment.
func (s State) granted(p Point, t time.Time) State {
	return State{
		Time:      t,
		XY:        p,
		Initial:   p,
		Previous:  p,
		Local:     s.LastLocal,
		LastLocal: s.LastLocal,
		First:     true,
	}
}

// moved recomputes the full snapshot from a new absolute position
func (s State) moved(p Point, t time.Time) State {
	step := p.Sub(s.XY)
	delta := p.Sub(s.Initial)
	stepLen := step.Length()

	// divisor substitution on zero displacement: direction collapses to
	// (0,0) rather than carrying the previous value
	div := stepLen
	if div == 0 {
		div = 1
	}

	// zero elapsed time must not produce Inf/NaN; reuse the last velocity
	velocity := s.Velocity
	if elapsed := t.Sub(s.Time).Seconds(); elapsed != 0 {
		velocity = stepLen / elapsed
	}

	return State{
		Time:      t,
		XY:        p,
		Initial:   s.Initial,
		Previous:  s.XY,
		Delta:     delta,
		Direction: Point{X: step.X / div, Y: step.Y / div},
		Local:     s.LastLocal.Add(delta),
		LastLocal: s.LastLocal,
		Velocity:  velocity,
		Distance:  delta.Length(),
		First:     false,
	}
}

// ended persists the accumulated local offset so the next gesture segment
// continues from it
func (s State) ended() State {
	s.First = false
	s.LastLocal = s.Local
	return s
}
