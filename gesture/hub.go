package gesture

// Hub emulates a two-phase event-delivery mechanism for a set of engines.
// Engines are kept in attach order, index 0 being the outermost element;
// start and move events run the capture phase outer-in and then the bubble
// phase inner-out, end events are offered to every engine (non-holders
// ignore them).
//
// Hosts with a real event system attach each engine's Handlers() to it
// directly and do not need a Hub.
type Hub struct {
	engines []*Engine
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{}
}

// Attach adds an engine as the innermost element
func (h *Hub) Attach(g *Engine) {
	h.engines = append(h.engines, g)
}

// Detach removes an engine from delivery
func (h *Hub) Detach(id string) {
	for i, g := range h.engines {
		if g.ID() == id {
			h.engines = append(h.engines[:i], h.engines[i+1:]...)
			return
		}
	}
}

// Engines returns the attached engines in attach order
func (h *Hub) Engines() []*Engine {
	return h.engines
}

// Start delivers a contact-begin event through both phases
func (h *Hub) Start(e *Event) {
	for _, g := range h.engines {
		g.TouchStartCapture(e)
	}
	for i := len(h.engines) - 1; i >= 0; i-- {
		h.engines[i].TouchStart(e)
	}
}

// Move delivers a contact-move event through both phases
func (h *Hub) Move(e *Event) {
	for _, g := range h.engines {
		g.TouchMoveCapture(e)
	}
	for i := len(h.engines) - 1; i >= 0; i-- {
		h.engines[i].TouchMove(e)
	}
}

// End delivers a contact-end event; only the claim holder reacts
func (h *Hub) End(e *Event) {
	for _, g := range h.engines {
		g.TouchEndCapture(e)
	}
	for i := len(h.engines) - 1; i >= 0; i-- {
		h.engines[i].TouchEnd(e)
	}
}
