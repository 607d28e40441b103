package network

import "github.com/google/uuid"

// Packet is one unit of traffic replayed along a route. TTL and the hop
// history are the only mutable state: TTL counts down once per hop and Hops
// is append-only. A packet is never reset after creation.
type Packet struct {
	ID   string
	Src  string
	Dst  string
	TTL  int
	Size int
	Hops []string
}

// NewPacket creates a packet with a fresh UUID identity.
func NewPacket(src, dst string, size, ttl int) *Packet {
	return &Packet{
		ID:   uuid.New().String(),
		Src:  src,
		Dst:  dst,
		TTL:  ttl,
		Size: size,
	}
}

// DecTTL decrements the time-to-live counter by one.
func (p *Packet) DecTTL() { p.TTL-- }

// AddHop appends a node name to the packet's hop history.
func (p *Packet) AddHop(node string) { p.Hops = append(p.Hops, node) }
