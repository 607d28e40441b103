package sim

import (
	"strings"

	"netsim/internal/scenario"
)

// SetScenario attaches a scenario engine and applies the actions of its
// initial phase. The engine is driven by the tick loop afterwards.
func (s *Simulator) SetScenario(e *scenario.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scn = e
	s.applyLinkActions(e.Start())
}

// ScenarioPhase returns the name of the active scenario phase, or an empty
// string when no scenario is attached.
func (s *Simulator) ScenarioPhase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scn == nil {
		return ""
	}
	if p := s.scn.Current(); p != nil {
		return p.Name
	}
	return ""
}

// advanceScenario feeds one tick into the scenario engine. Caller holds the
// lock.
func (s *Simulator) advanceScenario(delivered int) {
	if s.scn == nil {
		return
	}
	s.applyLinkActions(s.scn.Tick(delivered))
}

func (s *Simulator) applyLinkActions(actions []scenario.LinkAction) {
	for _, a := range actions {
		switch a.Action {
		case scenario.ActionDown:
			s.takeLinkDown(a.From, a.To)
			s.takeLinkDown(a.To, a.From)
		case scenario.ActionUp:
			s.bringLinkUp(a.From, a.To)
			s.bringLinkUp(a.To, a.From)
		}
	}
}

// takeLinkDown removes a directed arc, remembering the link so it can come
// back later. Missing arcs are ignored.
func (s *Simulator) takeLinkDown(from, to string) {
	for _, arc := range s.topo.Arcs(from) {
		if arc.To == to {
			s.downed[from+"->"+to] = arc.Edge
			break
		}
	}
	s.topo.RemoveEdge(from, to)
}

// bringLinkUp restores a previously downed directed arc.
func (s *Simulator) bringLinkUp(from, to string) {
	link, ok := s.downed[from+"->"+to]
	if !ok {
		return
	}
	delete(s.downed, from+"->"+to)
	s.topo.AddEdge(from, to, link)
}

// DownedLinks lists the directed arcs currently taken down by a scenario.
func (s *Simulator) DownedLinks() []LinkInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []LinkInfo
	for key, link := range s.downed {
		from, to, _ := strings.Cut(key, "->")
		out = append(out, LinkInfo{
			From:          from,
			To:            to,
			LatencyMs:     link.LatencyMs,
			BandwidthMbps: link.BandwidthMbps,
			Reliability:   link.Reliability,
		})
	}
	return out
}
