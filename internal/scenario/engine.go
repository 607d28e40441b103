package scenario

// Engine tracks scenario progress across simulation ticks. It is not safe
// for concurrent use; the simulator drives it from its tick loop.
type Engine struct {
	s         *Scenario
	current   string
	ticks     int
	delivered int
}

// NewEngine starts an engine at the scenario's first phase.
func NewEngine(s *Scenario) *Engine {
	e := &Engine{s: s}
	if len(s.Phases) > 0 {
		e.current = s.Phases[0].Name
	}
	return e
}

// Current returns the active phase.
func (e *Engine) Current() *Phase {
	p, _ := e.s.Phase(e.current)
	return p
}

// Start returns the link actions of the initial phase.
func (e *Engine) Start() []LinkAction {
	if p := e.Current(); p != nil {
		return p.LinkActions
	}
	return nil
}

// Tick records one simulation tick and its delivered packet count, advancing
// the scenario when a trigger fires. It returns the link actions of a newly
// entered phase, or nil when the phase is unchanged.
func (e *Engine) Tick(delivered int) []LinkAction {
	e.ticks++
	e.delivered += delivered

	events := []Event{
		{Type: EventTicksElapsed, Value: e.ticks},
		{Type: EventPacketsDelivered, Value: e.delivered},
	}
	for _, ev := range events {
		next, ok := e.s.NextPhase(e.current, ev)
		if !ok {
			continue
		}
		if p, found := e.s.Phase(next); found {
			e.current = next
			return p.LinkActions
		}
	}
	return nil
}
