package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines changing network conditions as ordered phases with an
// overall description.
type Scenario struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase describes one stage of network conditions and the triggers that move
// the scenario along.
type Phase struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	LinkActions []LinkAction `yaml:"link_actions,omitempty"`
	Triggers    []Trigger    `yaml:"triggers,omitempty"`
}

// Link action verbs.
const (
	ActionDown = "down"
	ActionUp   = "up"
)

// LinkAction takes a link down or brings it back up when its phase begins.
type LinkAction struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Action string `yaml:"action"`
}

// Trigger moves the scenario to another phase based on an event.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Trigger event types.
const (
	EventTicksElapsed     = "ticks_elapsed"
	EventPacketsDelivered = "packets_delivered"
)

// Event represents a runtime occurrence that may advance the scenario.
type Event struct {
	Type  string
	Value int
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(s.Phases) == 0 {
		return nil, fmt.Errorf("scenario %s declares no phases", path)
	}
	return &s, nil
}

// Phase returns the named phase.
func (s *Scenario) Phase(name string) (*Phase, bool) {
	for i := range s.Phases {
		if s.Phases[i].Name == name {
			return &s.Phases[i], true
		}
	}
	return nil, false
}

// NextPhase returns the name of the next phase given the current phase and
// event. If no trigger matches, ok will be false.
func (s *Scenario) NextPhase(current string, ev Event) (next string, ok bool) {
	for _, p := range s.Phases {
		if p.Name != current {
			continue
		}
		for _, tr := range p.Triggers {
			if tr.Event == ev.Type && ev.Value >= tr.Value {
				return tr.Next, true
			}
		}
	}
	return "", false
}
