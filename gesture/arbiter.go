package gesture

import "sync"

// Claim is the exclusive right of one engine to receive move/end events
// until released or usurped. At most one exists per Arbiter.
type Claim struct {
	// OwnerID identifies the engine holding the claim
	OwnerID string

	// forcedRelease is invoked when another engine usurps the claim or the
	// arbiter is explicitly terminated. The event may be nil.
	forcedRelease func(*Event)
}

// Arbiter tracks which one engine, among all that share it, currently holds
// the active gesture claim. It is safe for concurrent use; claim callbacks
// run outside the lock.
type Arbiter struct {
	mu    sync.Mutex
	claim *Claim
}

// NewArbiter creates an isolated arbiter. Engines default to the shared
// Default() arbiter; tests typically inject their own.
func NewArbiter() *Arbiter {
	return &Arbiter{}
}

var defaultArbiter = NewArbiter()

// Default returns the process-wide shared arbiter
func Default() *Arbiter {
	return defaultArbiter
}

// Current returns the active claim, or nil
func (a *Arbiter) Current() *Claim {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.claim
}

// Grant installs a claim for owner, forcibly releasing any claim held by a
// different owner first. It returns false when owner already holds the
// claim (re-entrant grant, no-op). The triggering event is passed to the
// previous holder's forced-release callback and may be nil.
func (a *Arbiter) Grant(owner string, e *Event, forcedRelease func(*Event)) bool {
	a.mu.Lock()
	if a.claim != nil && a.claim.OwnerID == owner {
		a.mu.Unlock()
		return false
	}
	previous := a.claim
	a.claim = &Claim{OwnerID: owner, forcedRelease: forcedRelease}
	a.mu.Unlock()

	if previous != nil && previous.forcedRelease != nil {
		previous.forcedRelease(e)
	}
	return true
}

// Release clears the claim only if it currently belongs to owner. A stale
// release from a no-longer-active owner is a silent no-op.
func (a *Arbiter) Release(owner string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.claim != nil && a.claim.OwnerID == owner {
		a.claim = nil
	}
}

// Terminate force-clears the claim, invoking the holder's forced-release
// callback with no event. No-op when no claim exists.
func (a *Arbiter) Terminate() {
	a.mu.Lock()
	previous := a.claim
	a.claim = nil
	a.mu.Unlock()

	if previous != nil && previous.forcedRelease != nil {
		previous.forcedRelease(nil)
	}
}

// GetCurrentResponder returns the claim held on the default arbiter, or nil
func GetCurrentResponder() *Claim {
	return defaultArbiter.Current()
}

// TerminateCurrentResponder force-clears the default arbiter's claim,
// invoking the holder's terminate notification
func TerminateCurrentResponder() {
	defaultArbiter.Terminate()
}
