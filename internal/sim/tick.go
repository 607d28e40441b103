package sim

import (
	"context"
	"time"

	"netsim/internal/logging"
	"netsim/internal/network"
)

// Flows without an explicit TTL fall back to this.
const defaultTTL = 64

// Run starts the traffic loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "flows", len(s.flows))
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// tick transmits every configured flow once and writes the results.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)
	var batch []network.TransmissionRow
	var hops []network.HopRow

	s.mu.Lock()
	delivered := 0
	for _, f := range s.flows {
		count := f.PacketsPerTick
		if count <= 0 {
			count = 1
		}
		ttl := f.TTL
		if ttl <= 0 {
			ttl = defaultTTL
		}
		for i := 0; i < count; i++ {
			row, hrows := s.transmit(f.Src, f.Dst, f.SizeBytes, ttl)
			if row.Status == network.StatusDelivered {
				delivered++
			}
			batch = append(batch, row)
			hops = append(hops, hrows...)
		}
	}
	s.advanceScenario(delivered)
	s.mu.Unlock()

	if s.writer != nil {
		// Batch support if writer implements WriteBatch
		if bw, ok := s.writer.(batchWriter); ok {
			if err := bw.WriteBatch(batch); err != nil {
				log.Error("batch write failed", "err", err)
			}
		} else {
			for _, row := range batch {
				if err := s.writer.Write(row); err != nil {
					log.Error("write failed", "packet_id", row.PacketID, "err", err)
				}
			}
		}
	}

	if len(hops) > 0 && s.hopWriter != nil {
		if bw, ok := s.hopWriter.(batchHopWriter); ok {
			if err := bw.WriteHops(hops); err != nil {
				log.Error("hop batch write failed", "err", err)
			}
		} else {
			for _, h := range hops {
				if err := s.hopWriter.WriteHop(h); err != nil {
					log.Error("hop write failed", "err", err)
				}
			}
		}
	}
}
