package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures notification invocations in order
type recorder struct {
	calls  []string
	states []State
}

func (r *recorder) callbacks(accept func(State, *Event) bool) *Callbacks {
	note := func(name string) func(State, *Event) {
		return func(s State, e *Event) {
			r.calls = append(r.calls, name)
			r.states = append(r.states, s)
		}
	}
	return &Callbacks{
		OnStartShouldSet: accept,
		OnMoveShouldSet:  accept,
		OnGrant:          note("grant"),
		OnMove:           note("move"),
		OnRelease:        note("release"),
		OnTerminate:      note("terminate"),
	}
}

func (r *recorder) last() State {
	return r.states[len(r.states)-1]
}

func accept(State, *Event) bool { return true }
func reject(State, *Event) bool { return false }

func touchAt(x, y float64, at time.Time) *Event {
	return &Event{Touches: []Point{{X: x, Y: y}}, Time: at}
}

func TestEngineStartGrant(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{ID: "card", Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))

	require.Equal(t, []string{"grant"}, rec.calls)
	assert.True(t, g.Holds())
	assert.True(t, rec.last().First)
	assert.Equal(t, Point{}, rec.last().XY)
	assert.Equal(t, Point{}, rec.last().Initial)
}

func TestEngineStartRejectedIsIgnored(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(reject))

	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(5, 5, t0.Add(time.Millisecond)))

	assert.Empty(t, rec.calls)
	assert.Nil(t, a.Current())
	assert.Equal(t, State{}, g.State(), "no state mutation without a claim")
}

func TestEngineNoCallbacksMeansReject(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})

	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(5, 5, t0.Add(time.Millisecond)))
	g.TouchEnd(touchAt(5, 5, t0.Add(2*time.Millisecond)))

	assert.Nil(t, a.Current())
}

func TestEngineFirstFlagLaw(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(1, 0, t0.Add(10*time.Millisecond)))
	g.TouchMove(touchAt(2, 0, t0.Add(20*time.Millisecond)))
	g.TouchEnd(touchAt(2, 0, t0.Add(30*time.Millisecond)))

	require.Equal(t, []string{"grant", "move", "move", "release"}, rec.calls)
	assert.True(t, rec.states[0].First)
	for _, s := range rec.states[1:] {
		assert.False(t, s.First)
	}
}

func TestEngineUsurpTerminatesBeforeGrant(t *testing.T) {
	a := NewArbiter()

	ga := NewEngine(Options{ID: "list", Arbiter: a})
	gb := NewEngine(Options{ID: "card", Arbiter: a})

	var order []string
	ra := &recorder{}
	ga.SetCallbacks(&Callbacks{
		OnStartShouldSet: accept,
		OnGrant:          func(State, *Event) { order = append(order, "a-grant") },
		OnTerminate: func(s State, e *Event) {
			order = append(order, "a-terminate")
			ra.states = append(ra.states, s)
		},
	})
	gb.SetCallbacks(&Callbacks{
		OnMoveShouldSet: accept,
		OnGrant:         func(State, *Event) { order = append(order, "b-grant") },
		OnMove:          func(State, *Event) { order = append(order, "b-move") },
	})

	ga.TouchStart(touchAt(0, 0, t0))
	require.True(t, ga.Holds())

	// b's move query approves: it usurps a, then processes the move
	gb.TouchMove(touchAt(5, 0, t0.Add(10*time.Millisecond)))

	assert.Equal(t, []string{"a-grant", "a-terminate", "b-grant", "b-move"}, order)
	assert.False(t, ga.Holds())
	assert.True(t, gb.Holds())
}

func TestEngineMoveIgnoredForNonHolder(t *testing.T) {
	a := NewArbiter()
	holder := NewEngine(Options{ID: "holder", Arbiter: a})
	other := NewEngine(Options{ID: "other", Arbiter: a})

	holderRec := &recorder{}
	holder.SetCallbacks(holderRec.callbacks(accept))
	otherRec := &recorder{}
	other.SetCallbacks(otherRec.callbacks(reject))

	holder.TouchStart(touchAt(0, 0, t0))
	other.TouchMove(touchAt(9, 9, t0.Add(time.Millisecond)))

	assert.Empty(t, otherRec.calls)
	assert.Equal(t, State{}, other.State())
	assert.True(t, holder.Holds())
}

func TestEngineEndIgnoredForNonHolder(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchEnd(touchAt(0, 0, t0))
	assert.Empty(t, rec.calls)
}

func TestEngineReentrantGrantIsIdempotent(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})

	grants := 0
	g.SetCallbacks(&Callbacks{
		OnStartShouldSet:        accept,
		OnStartShouldSetCapture: accept,
		OnGrant:                 func(State, *Event) { grants++ },
	})

	// capture and bubble start queries both approve; only one grant fires
	e := touchAt(0, 0, t0)
	g.TouchStartCapture(e)
	g.TouchStart(e)

	assert.Equal(t, 1, grants)
}

func TestEngineCaptureMoveProcessesOnce(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})

	moves := 0
	g.SetCallbacks(&Callbacks{
		OnMoveShouldSetCapture: accept,
		OnMove:                 func(State, *Event) { moves++ },
	})

	// the same raw event reaches both phases; the move runs once
	e := touchAt(5, 5, t0)
	g.TouchMoveCapture(e)
	g.TouchMove(e)

	assert.Equal(t, 1, moves)
	assert.True(t, g.Holds())
}

func TestEngineLocalContinuity(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	// drag 10 units, release, then drag 5 more: local accumulates to 15
	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(10, 0, t0.Add(100*time.Millisecond)))
	g.TouchEnd(touchAt(10, 0, t0.Add(200*time.Millisecond)))

	g.TouchStart(touchAt(50, 0, t0.Add(time.Second)))
	g.TouchMove(touchAt(55, 0, t0.Add(time.Second+100*time.Millisecond)))

	assert.Equal(t, Point{X: 15, Y: 0}, rec.last().Local)
}

// Scenario from the drag-continuation behavior: grant at (0,0), move to
// (3,4), release, regrant at (10,10), move to (11,10)
func TestEngineDragScenario(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))
	grant := rec.last()
	assert.Equal(t, Point{}, grant.XY)
	assert.Equal(t, Point{}, grant.Initial)

	g.TouchMove(touchAt(3, 4, t0.Add(50*time.Millisecond)))
	move := rec.last()
	assert.Equal(t, Point{X: 3, Y: 4}, move.Delta)
	assert.InDelta(t, 5.0, move.Distance, 1e-9)

	g.TouchEnd(touchAt(3, 4, t0.Add(100*time.Millisecond)))
	assert.Equal(t, Point{X: 3, Y: 4}, rec.last().LastLocal)

	g.TouchStart(touchAt(10, 10, t0.Add(time.Second)))
	regrant := rec.last()
	assert.Equal(t, Point{X: 10, Y: 10}, regrant.Initial)
	assert.Equal(t, Point{X: 3, Y: 4}, regrant.LastLocal)

	g.TouchMove(touchAt(11, 10, t0.Add(time.Second+50*time.Millisecond)))
	assert.Equal(t, Point{X: 4, Y: 4}, rec.last().Local)
}

func TestEngineTerminatePersistsLocal(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(7, 0, t0.Add(10*time.Millisecond)))

	a.Terminate()

	require.Equal(t, []string{"grant", "move", "terminate"}, rec.calls)
	assert.Equal(t, Point{X: 7, Y: 0}, rec.last().LastLocal)
	assert.False(t, g.Holds())
}

func TestEngineCallbackSwapMidGesture(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	first := &recorder{}
	g.SetCallbacks(first.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))
	g.TouchMove(touchAt(1, 0, t0.Add(10*time.Millisecond)))

	// swapping callbacks must not lose in-flight state; the latest set is
	// read at dispatch time
	second := &recorder{}
	g.SetCallbacks(second.callbacks(accept))
	g.TouchMove(touchAt(2, 0, t0.Add(20*time.Millisecond)))

	assert.Equal(t, []string{"grant", "move"}, first.calls)
	require.Equal(t, []string{"move"}, second.calls)
	assert.Equal(t, Point{X: 2, Y: 0}, second.last().Delta)
}

func TestEngineMouseGating(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(&Event{Touches: []Point{{X: 1, Y: 1}}, Source: SourceMouse, Time: t0})
	assert.Empty(t, rec.calls, "mouse events ignored unless EnableMouse")

	withMouse := NewEngine(Options{Arbiter: a, EnableMouse: true})
	mrec := &recorder{}
	withMouse.SetCallbacks(mrec.callbacks(accept))

	withMouse.TouchStart(&Event{Touches: []Point{{X: 1, Y: 1}}, Source: SourceMouse, Time: t0})
	assert.Equal(t, []string{"grant"}, mrec.calls)
}

func TestEngineSuppressesCancelableEvents(t *testing.T) {
	a := NewArbiter()
	g := NewEngine(Options{Arbiter: a})
	g.SetCallbacks((&recorder{}).callbacks(accept))

	suppressed := 0
	start := touchAt(0, 0, t0)
	start.Cancelable = true
	start.SuppressDefault = func() { suppressed++ }
	g.TouchStart(start)
	assert.Equal(t, 1, suppressed)

	end := touchAt(0, 0, t0.Add(time.Millisecond))
	end.Cancelable = true
	end.SuppressDefault = func() { suppressed++ }
	g.TouchEnd(end)
	assert.Equal(t, 2, suppressed)
}

func TestEngineRandomIDIsStable(t *testing.T) {
	g := NewEngine(Options{Arbiter: NewArbiter()})
	require.NotEmpty(t, g.ID())
	assert.Equal(t, g.ID(), g.ID())

	other := NewEngine(Options{Arbiter: NewArbiter()})
	assert.NotEqual(t, g.ID(), other.ID())
}

func TestTerminateCurrentResponder(t *testing.T) {
	g := NewEngine(Options{ID: "default-owner"})
	rec := &recorder{}
	g.SetCallbacks(rec.callbacks(accept))

	g.TouchStart(touchAt(0, 0, t0))
	require.NotNil(t, GetCurrentResponder())
	assert.Equal(t, "default-owner", GetCurrentResponder().OwnerID)

	TerminateCurrentResponder()
	assert.Nil(t, GetCurrentResponder())
	assert.Equal(t, []string{"grant", "terminate"}, rec.calls)
}
