package sim

import "netsim/internal/network"

// MultiWriter fans out transmission and hop rows to multiple writers.
type MultiWriter struct {
	writers    []TransmissionWriter
	hopWriters []HopWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TransmissionWriter, hws []HopWriter) *MultiWriter {
	return &MultiWriter{writers: tws, hopWriters: hws}
}

// Write sends a transmission row to all writers.
func (mw *MultiWriter) Write(row network.TransmissionRow) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple transmission rows to all writers, using batch
// mode when supported.
func (mw *MultiWriter) WriteBatch(rows []network.TransmissionRow) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteHop sends a hop row to all hop writers.
func (mw *MultiWriter) WriteHop(h network.HopRow) error {
	for _, w := range mw.hopWriters {
		if err := w.WriteHop(h); err != nil {
			return err
		}
	}
	return nil
}

// WriteHops sends multiple hop rows to all hop writers, using batch mode
// when supported.
func (mw *MultiWriter) WriteHops(rows []network.HopRow) error {
	for _, w := range mw.hopWriters {
		if bw, ok := w.(batchHopWriter); ok {
			if err := bw.WriteHops(rows); err != nil {
				return err
			}
			continue
		}
		for _, h := range rows {
			if err := w.WriteHop(h); err != nil {
				return err
			}
		}
	}
	return nil
}
