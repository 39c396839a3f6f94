package gesture

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Options configures a new Engine
type Options struct {
	// ID identifies this engine for claim arbitration. Defaults to a
	// random uuid, stable for the engine's lifetime.
	ID string

	// EnableMouse accepts events from the secondary pointer device in
	// addition to the primary touch source
	EnableMouse bool

	// Arbiter resolves claims between engines. Defaults to the shared
	// Default() arbiter.
	Arbiter *Arbiter
}

// Engine is a single gesture recognizer instance. It negotiates for the
// active claim through its arbiter and tracks the kinematics of the gesture
// while it holds the claim.
//
// Events must be delivered from one goroutine at a time; the engine assumes
// each raw event is handled to completion before the next arrives.
type Engine struct {
	id          string
	enableMouse bool
	arbiter     *Arbiter

	callbacks atomic.Pointer[Callbacks]

	state State

	// handled marks the last event processed as a move, so that capture
	// and bubble handlers observing the same event process it once
	handled *Event
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) *Engine {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Arbiter == nil {
		opts.Arbiter = Default()
	}
	return &Engine{
		id:          opts.ID,
		enableMouse: opts.EnableMouse,
		arbiter:     opts.Arbiter,
	}
}

// ID returns the engine's identifier
func (g *Engine) ID() string {
	return g.id
}

// State returns the current kinematics snapshot
func (g *Engine) State() State {
	return g.state
}

// SetCallbacks replaces the engine's callback set. In-flight gesture state
// is preserved; the new callbacks take effect on the next dispatch.
func (g *Engine) SetCallbacks(c *Callbacks) {
	g.callbacks.Store(c)
}

// Holds reports whether this engine currently holds the claim
func (g *Engine) Holds() bool {
	claim := g.arbiter.Current()
	return claim != nil && claim.OwnerID == g.id
}

// Terminate force-releases this engine's claim through its arbiter. No-op
// when another engine holds it.
func (g *Engine) Terminate() {
	if g.Holds() {
		g.arbiter.Terminate()
	}
}

// Handlers is the event-binding surface handed to the host event-delivery
// mechanism. Capture variants belong on the capture phase (outer-in),
// the others on the bubble phase (inner-out).
type Handlers struct {
	TouchStart        func(*Event)
	TouchStartCapture func(*Event)
	TouchMove         func(*Event)
	TouchMoveCapture  func(*Event)
	TouchEnd          func(*Event)
	TouchEndCapture   func(*Event)
}

// Handlers returns the named handler set for this engine
func (g *Engine) Handlers() Handlers {
	return Handlers{
		TouchStart:        g.TouchStart,
		TouchStartCapture: g.TouchStartCapture,
		TouchMove:         g.TouchMove,
		TouchMoveCapture:  g.TouchMoveCapture,
		TouchEnd:          g.TouchEnd,
		TouchEndCapture:   g.TouchEndCapture,
	}
}

// TouchStartCapture runs the start-capture query and claims on approval
func (g *Engine) TouchStartCapture(e *Event) {
	if e.fromMouse() && !g.enableMouse {
		return
	}
	if g.callbacks.Load().startShouldSetCapture(g.state, e) {
		g.tryGrant(e)
	}
}

// TouchStart runs the start-bubble query and claims on approval. It is not
// gated on the capture query's result; a grant attempt while this engine
// already holds the claim is idempotent.
func (g *Engine) TouchStart(e *Event) {
	if e.fromMouse() && !g.enableMouse {
		return
	}
	e.suppress()
	if g.callbacks.Load().startShouldSet(g.state, e) {
		g.tryGrant(e)
	}
}

// TouchMoveCapture runs the move-capture query for a non-holder; on
// approval the engine usurps the current holder and processes the move
func (g *Engine) TouchMoveCapture(e *Event) {
	if e.fromMouse() && !g.enableMouse {
		return
	}
	if g.Holds() {
		return
	}
	if g.callbacks.Load().moveShouldSetCapture(g.state, e) {
		g.tryGrant(e)
		g.processMove(e)
	}
}

// TouchMove processes a move for the current holder, or runs the
// move-bubble query with usurp-then-grant behavior for a non-holder. An
// event already processed by the capture handler is not processed again.
func (g *Engine) TouchMove(e *Event) {
	if e.fromMouse() && !g.enableMouse {
		return
	}
	if g.handled == e {
		return
	}
	if g.Holds() {
		g.processMove(e)
		return
	}
	if g.callbacks.Load().moveShouldSet(g.state, e) {
		g.tryGrant(e)
		g.processMove(e)
	}
}

// TouchEndCapture behaves exactly like TouchEnd; once either phase handles
// the end, the claim is gone and the other phase ignores the event
func (g *Engine) TouchEndCapture(e *Event) {
	g.TouchEnd(e)
}

// TouchEnd releases the claim and persists the local offset for the next
// gesture segment. Ignored when this engine is not the holder.
func (g *Engine) TouchEnd(e *Event) {
	if e.fromMouse() && !g.enableMouse {
		return
	}
	if !g.Holds() {
		return
	}
	e.suppress()
	g.arbiter.Release(g.id)
	g.state = g.state.ended()
	g.callbacks.Load().release(g.state, e)
}

// tryGrant asks the arbiter for the claim, pre-empting any other holder.
// On a fresh grant it seeds the kinematics snapshot and fires the grant
// notification; a re-entrant grant by the same owner changes nothing.
func (g *Engine) tryGrant(e *Event) {
	if !g.arbiter.Grant(g.id, e, g.forceTerminate) {
		return
	}
	g.state = g.state.granted(e.Point(), e.timestamp())
	g.callbacks.Load().grant(g.state, e)
}

// processMove recomputes the kinematics snapshot and fires the move
// notification. Zero-displacement moves still update time and re-notify.
func (g *Engine) processMove(e *Event) {
	g.state = g.state.moved(e.Point(), e.timestamp())
	g.handled = e
	g.callbacks.Load().move(g.state, e)
}

// forceTerminate is installed as the claim's forced-release callback. It
// runs when another engine usurps the claim or the arbiter is terminated;
// the event is nil for explicit termination.
func (g *Engine) forceTerminate(e *Event) {
	g.state = g.state.ended()
	g.callbacks.Load().terminate(g.state, e)
}
