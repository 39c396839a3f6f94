package gesture

// Callbacks configures how an engine negotiates for and reports a gesture.
// Every field is optional: a nil query rejects, a nil notification is a
// no-op. The set can be swapped at any time without losing in-flight
// gesture state; the engine reads the latest set on each dispatch.
type Callbacks struct {
	// Queries. Return true to claim the gesture for this engine.
	OnStartShouldSet        func(State, *Event) bool
	OnStartShouldSetCapture func(State, *Event) bool
	OnMoveShouldSet         func(State, *Event) bool
	OnMoveShouldSetCapture  func(State, *Event) bool

	// Notifications. OnTerminate must tolerate a nil event: usurpation and
	// explicit termination carry no triggering event of their own.
	OnGrant     func(State, *Event)
	OnMove      func(State, *Event)
	OnRelease   func(State, *Event)
	OnTerminate func(State, *Event)
}

func (c *Callbacks) startShouldSet(s State, e *Event) bool {
	return c != nil && c.OnStartShouldSet != nil && c.OnStartShouldSet(s, e)
}

func (c *Callbacks) startShouldSetCapture(s State, e *Event) bool {
	return c != nil && c.OnStartShouldSetCapture != nil && c.OnStartShouldSetCapture(s, e)
}

func (c *Callbacks) moveShouldSet(s State, e *Event) bool {
	return c != nil && c.OnMoveShouldSet != nil && c.OnMoveShouldSet(s, e)
}

func (c *Callbacks) moveShouldSetCapture(s State, e *Event) bool {
	return c != nil && c.OnMoveShouldSetCapture != nil && c.OnMoveShouldSetCapture(s, e)
}

func (c *Callbacks) grant(s State, e *Event) {
	if c != nil && c.OnGrant != nil {
		c.OnGrant(s, e)
	}
}

func (c *Callbacks) move(s State, e *Event) {
	if c != nil && c.OnMove != nil {
		c.OnMove(s, e)
	}
}

func (c *Callbacks) release(s State, e *Event) {
	if c != nil && c.OnRelease != nil {
		c.OnRelease(s, e)
	}
}

func (c *Callbacks) terminate(s State, e *Event) {
	if c != nil && c.OnTerminate != nil {
		c.OnTerminate(s, e)
	}
}
