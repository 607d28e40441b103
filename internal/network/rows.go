// Record types emitted by the simulator, with greptime table mapping.
package network

import (
	"os"
	"time"
)

// Transmission outcome values.
const (
	StatusDelivered  = "delivered"
	StatusTTLExpired = "ttl_expired"
	StatusNoRoute    = "no_route"
)

// TransmissionRow summarizes one packet transmission end to end.
type TransmissionRow struct {
	SimID     string    `json:"sim_id"`     // TAG
	PacketID  string    `json:"packet_id"`  // TAG
	Src       string    `json:"src"`        // FIELD
	Dst       string    `json:"dst"`        // FIELD
	Path      []string  `json:"path"`       // FIELD (JSON)
	HopCount  int       `json:"hop_count"`  // FIELD
	SizeBytes int       `json:"size_bytes"` // FIELD
	TTLLeft   int       `json:"ttl_left"`   // FIELD
	Seconds   float64   `json:"seconds"`    // FIELD
	Status    string    `json:"status"`     // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

// HopRow records a single link traversal during a transmission.
type HopRow struct {
	SimID     string    `json:"sim_id"`    // TAG
	PacketID  string    `json:"packet_id"` // TAG
	From      string    `json:"from"`      // FIELD
	To        string    `json:"to"`        // FIELD
	Seconds   float64   `json:"seconds"`   // FIELD
	TTLLeft   int       `json:"ttl_left"`  // FIELD
	Timestamp time.Time `json:"ts"`        // TIME INDEX
}

// TransmissionTableName holds the table name used when writing transmissions
// to GreptimeDB. It defaults to "transmissions" but can be overridden via the
// NETSIM_TRANSMISSION_TABLE environment variable.
var TransmissionTableName = func() string {
	if env := os.Getenv("NETSIM_TRANSMISSION_TABLE"); env != "" {
		return env
	}
	return "transmissions"
}()

// HopTableName is the GreptimeDB table for per-hop records, overridable via
// NETSIM_HOP_TABLE.
var HopTableName = func() string {
	if env := os.Getenv("NETSIM_HOP_TABLE"); env != "" {
		return env
	}
	return "packet_hops"
}()

func (TransmissionRow) TableName() string { return TransmissionTableName }

func (HopRow) TableName() string { return HopTableName }
