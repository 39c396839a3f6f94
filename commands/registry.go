package commands

import (
	"fmt"
	"sync"
	"time"

	"github.com/bmcmahen/panresponder/gesture"
	"github.com/bmcmahen/panresponder/history"
	"github.com/bmcmahen/panresponder/types"
	"github.com/bmcmahen/panresponder/utils"
)

// NotificationSink receives engine notifications as they fire, e.g. for
// fan-out to websocket subscribers
type NotificationSink func(types.GestureNotification)

// EngineRegistry owns the live engines, their shared arbiter and delivery
// hub, and the completed-gesture history. Pointer dispatch is serialized:
// each event is handled to completion before the next.
type EngineRegistry struct {
	mu       sync.Mutex
	arbiter  *gesture.Arbiter
	hub      *gesture.Hub
	specs    map[string]types.RecognizerSpec
	history  *history.Store
	lastDown gesture.Point

	sinkMu sync.Mutex
	sink   NotificationSink
}

// NewEngineRegistry creates a registry with its own isolated arbiter
func NewEngineRegistry(historySize int) (*EngineRegistry, error) {
	store, err := history.NewStore(historySize)
	if err != nil {
		return nil, err
	}
	return &EngineRegistry{
		arbiter: gesture.NewArbiter(),
		hub:     gesture.NewHub(),
		specs:   make(map[string]types.RecognizerSpec),
		history: store,
	}, nil
}

// SetSink installs the notification sink. May be called at any time.
func (r *EngineRegistry) SetSink(sink NotificationSink) {
	r.sinkMu.Lock()
	defer r.sinkMu.Unlock()
	r.sink = sink
}

func (r *EngineRegistry) notify(n types.GestureNotification) {
	r.sinkMu.Lock()
	sink := r.sink
	r.sinkMu.Unlock()
	if sink != nil {
		sink(n)
	}
}

// Create builds an engine from a recognizer spec and attaches it as the
// innermost element of the hub. Returns the engine id.
func (r *EngineRegistry) Create(spec types.RecognizerSpec) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if spec.ID != "" {
		if _, exists := r.specs[spec.ID]; exists {
			return "", fmt.Errorf("engine %q already exists", spec.ID)
		}
	}

	g := gesture.NewEngine(gesture.Options{
		ID:          spec.ID,
		EnableMouse: spec.EnableMouse,
		Arbiter:     r.arbiter,
	})
	g.SetCallbacks(r.buildCallbacks(g.ID(), spec))

	r.specs[g.ID()] = spec
	r.hub.Attach(g)
	utils.Verbose("engine %s attached (%d total)", g.ID(), len(r.specs))
	return g.ID(), nil
}

// Remove detaches and forgets an engine, releasing its claim if held
func (r *EngineRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[id]; !exists {
		return fmt.Errorf("engine not found: %s", id)
	}
	for _, g := range r.hub.Engines() {
		if g.ID() == id {
			g.Terminate()
			break
		}
	}
	r.hub.Detach(id)
	delete(r.specs, id)
	return nil
}

// EngineInfo describes one attached engine
type EngineInfo struct {
	ID     string               `json:"id"`
	Holder bool                 `json:"holder"`
	Spec   types.RecognizerSpec `json:"spec"`
}

// List returns the attached engines in attach order
func (r *EngineRegistry) List() []EngineInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]EngineInfo, 0, len(r.specs))
	for _, g := range r.hub.Engines() {
		infos = append(infos, EngineInfo{
			ID:     g.ID(),
			Holder: g.Holds(),
			Spec:   r.specs[g.ID()],
		})
	}
	return infos
}

// Pointer routes one pointer event through the hub. Dispatch runs under the
// registry lock, so events are strictly serialized.
func (r *EngineRegistry) Pointer(ev types.PointerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := gesture.Point{X: ev.X, Y: ev.Y}
	e := &gesture.Event{
		Touches:    []gesture.Point{p},
		Cancelable: ev.Cancelable,
		Source:     gesture.Source(ev.Source),
	}
	if ev.TimestampMs != 0 {
		e.Time = time.UnixMilli(ev.TimestampMs)
	}

	switch ev.Type {
	case types.PointerDown:
		r.lastDown = p
		r.hub.Start(e)
	case types.PointerMove:
		r.hub.Move(e)
	case types.PointerUp:
		r.hub.End(e)
	default:
		return fmt.Errorf("unknown pointer event type %q", ev.Type)
	}
	return nil
}

// Responder returns the owner id of the current claim, or "" when none
func (r *EngineRegistry) Responder() string {
	if claim := r.arbiter.Current(); claim != nil {
		return claim.OwnerID
	}
	return ""
}

// Terminate force-clears the current claim, whoever holds it. Runs under
// the dispatch lock: the holder's forced-release updates its engine state,
// which must not interleave with an in-flight pointer dispatch.
func (r *EngineRegistry) Terminate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.arbiter.Terminate()
}

// Recent returns up to n completed gestures, newest first
func (r *EngineRegistry) Recent(n int) []history.Record {
	return r.history.Recent(n)
}

// buildCallbacks translates a declarative recognizer spec into engine
// callbacks. Move queries honor the spec's drag dead zone, measured from
// the last contact-down position; the closure reads lastDown without
// locking because it runs inside Pointer's dispatch.
func (r *EngineRegistry) buildCallbacks(id string, spec types.RecognizerSpec) *gesture.Callbacks {
	startQuery := func(ok bool) func(gesture.State, *gesture.Event) bool {
		if !ok {
			return nil
		}
		return func(gesture.State, *gesture.Event) bool { return true }
	}
	moveQuery := func(ok bool) func(gesture.State, *gesture.Event) bool {
		if !ok {
			return nil
		}
		return func(_ gesture.State, e *gesture.Event) bool {
			return e.Point().Sub(r.lastDown).Length() >= spec.MoveThreshold
		}
	}
	note := func(kind string) func(gesture.State, *gesture.Event) {
		return func(s gesture.State, _ *gesture.Event) {
			r.notify(types.GestureNotification{EngineID: id, Kind: kind, State: s})
		}
	}
	record := func(kind string, outcome history.Outcome) func(gesture.State, *gesture.Event) {
		notify := note(kind)
		return func(s gesture.State, e *gesture.Event) {
			r.history.Add(history.Record{
				EngineID: id,
				Outcome:  outcome,
				EndedAt:  time.Now(),
				Distance: s.Distance,
				Velocity: s.Velocity,
				Local:    s.Local,
			})
			notify(s, e)
		}
	}

	return &gesture.Callbacks{
		OnStartShouldSet:        startQuery(spec.StartShouldSet),
		OnStartShouldSetCapture: startQuery(spec.StartShouldSetCapture),
		OnMoveShouldSet:         moveQuery(spec.MoveShouldSet),
		OnMoveShouldSetCapture:  moveQuery(spec.MoveShouldSetCapture),
		OnGrant:                 note(types.NotifyGrant),
		OnMove:                  note(types.NotifyMove),
		OnRelease:               record(types.NotifyRelease, history.OutcomeReleased),
		OnTerminate:             record(types.NotifyTerminate, history.OutcomeTerminated),
	}
}
