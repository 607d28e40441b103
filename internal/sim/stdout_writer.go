// Writer implementation printing transmission records to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"netsim/internal/network"
)

// StdoutWriter prints transmission and hop rows as JSON lines.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to os.Stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{out: os.Stdout}
}

// Write outputs a single transmission row.
func (w *StdoutWriter) Write(row network.TransmissionRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteBatch outputs multiple transmission rows.
func (w *StdoutWriter) WriteBatch(rows []network.TransmissionRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteHop outputs a single hop row.
func (w *StdoutWriter) WriteHop(h network.HopRow) error {
	data, _ := json.Marshal(h)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteHops outputs multiple hop rows.
func (w *StdoutWriter) WriteHops(rows []network.HopRow) error {
	for _, h := range rows {
		_ = w.WriteHop(h)
	}
	return nil
}
