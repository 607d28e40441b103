package scenario

// BuiltIn returns predefined condition arcs usable without a scenario file.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"backbone-outage": {
			Name:        "Backbone Outage",
			Description: "The inter-router backbone fails mid-run and recovers later, forcing traffic onto whatever alternatives exist.",
			Phases: []Phase{
				{
					Name:        "steady",
					Description: "All links healthy.",
					Triggers:    []Trigger{{Event: EventTicksElapsed, Value: 10, Next: "outage"}},
				},
				{
					Name:        "outage",
					Description: "Backbone link R1-R2 is down.",
					LinkActions: []LinkAction{{From: "R1", To: "R2", Action: ActionDown}},
					Triggers:    []Trigger{{Event: EventTicksElapsed, Value: 30, Next: "recovery"}},
				},
				{
					Name:        "recovery",
					Description: "Backbone restored.",
					LinkActions: []LinkAction{{From: "R1", To: "R2", Action: ActionUp}},
				},
			},
		},
		"flapping-edge": {
			Name:        "Flapping Edge",
			Description: "An access link repeatedly drops and returns, exercising reroute behaviour under instability.",
			Phases: []Phase{
				{
					Name:        "steady",
					Description: "All links healthy.",
					Triggers:    []Trigger{{Event: EventPacketsDelivered, Value: 20, Next: "drop"}},
				},
				{
					Name:        "drop",
					Description: "Access link H1-S1 down.",
					LinkActions: []LinkAction{{From: "H1", To: "S1", Action: ActionDown}},
					Triggers:    []Trigger{{Event: EventTicksElapsed, Value: 20, Next: "restore"}},
				},
				{
					Name:        "restore",
					Description: "Access link back up.",
					LinkActions: []LinkAction{{From: "H1", To: "S1", Action: ActionUp}},
				},
			},
		},
	}
}
