// Device contract and the concrete device kinds attachable to a topology.
package network

import "fmt"

// Device is the capability contract for anything that can join the topology.
// The simulator keys its graph and registry by Name and uses Kind only for
// reporting; it never owns a device's lifetime.
type Device interface {
	Name() string
	Kind() string
}

// Device kind labels.
const (
	KindRouter = "router"
	KindSwitch = "switch"
	KindHost   = "host"
)

// Router forwards packets between networks.
type Router struct {
	name string
}

// NewRouter creates a router device.
func NewRouter(name string) *Router { return &Router{name: name} }

func (r *Router) Name() string { return r.name }
func (r *Router) Kind() string { return KindRouter }

// Switch forwards frames within a network segment.
type Switch struct {
	name string
}

// NewSwitch creates a switch device.
func NewSwitch(name string) *Switch { return &Switch{name: name} }

func (s *Switch) Name() string { return s.name }
func (s *Switch) Kind() string { return KindSwitch }

// Host is an endpoint that sources and sinks traffic.
type Host struct {
	name string
}

// NewHost creates a host device.
func NewHost(name string) *Host { return &Host{name: name} }

func (h *Host) Name() string { return h.name }
func (h *Host) Kind() string { return KindHost }

// NewDevice creates a device of the given kind. Used when instantiating a
// topology from configuration.
func NewDevice(name, kind string) (Device, error) {
	switch kind {
	case KindRouter:
		return NewRouter(name), nil
	case KindSwitch:
		return NewSwitch(name), nil
	case KindHost:
		return NewHost(name), nil
	default:
		return nil, fmt.Errorf("unknown device kind %q", kind)
	}
}
