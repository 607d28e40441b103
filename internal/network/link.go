package network

// Link describes the physical characteristics of a connection between two
// devices. Reliability is informational only; it does not enter the cost
// function.
type Link struct {
	LatencyMs     float64 `json:"latency_ms"`
	BandwidthMbps float64 `json:"bandwidth_mbps"`
	Reliability   float64 `json:"reliability"`
}

// unusableCost stands in for a zero-bandwidth link so that such links are
// effectively never chosen instead of dividing by zero.
const unusableCost = 1e9

// CostForBytes returns the transmission time in seconds for a payload of the
// given size: propagation latency plus serialization time at the link's
// bandwidth.
func (l Link) CostForBytes(bytes int) float64 {
	latency := l.LatencyMs / 1000.0
	if l.BandwidthMbps <= 0 {
		return latency + unusableCost
	}
	return latency + float64(bytes)*8.0/(l.BandwidthMbps*1e6)
}
