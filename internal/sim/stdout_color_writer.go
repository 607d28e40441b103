// ColorStdoutWriter prints human-friendly, colorized transmission records.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"netsim/internal/config"
	"netsim/internal/network"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

var flowPalette = []string{colorGreen, colorYellow, colorBlue, colorMagenta, colorCyan}

// ColorStdoutWriter prints transmission rows using ANSI colors, preceded by
// a one-time topology overview.
type ColorStdoutWriter struct {
	cfg        *config.TopologyConfig
	out        io.Writer
	once       sync.Once
	flowColors map[string]string
	colorIdx   int
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.TopologyConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{
		cfg:        cfg,
		out:        os.Stdout,
		flowColors: make(map[string]string),
	}
}

func (w *ColorStdoutWriter) getFlowColor(src, dst string) string {
	key := src + "->" + dst
	if c, ok := w.flowColors[key]; ok {
		return c
	}
	c := flowPalette[w.colorIdx%len(flowPalette)]
	w.flowColors[key] = c
	w.colorIdx++
	return c
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Topology:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tKind\n")
	for _, d := range w.cfg.Devices {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, d.Kind)
	}
	tw.Flush()

	fmt.Fprintln(w.out, "\nLinks:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "From\tTo\tLatency (ms)\tBandwidth (Mbps)\tReliability\tBidir\n")
	for _, l := range w.cfg.Links {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.1f\t%.3f\t%t\n",
			l.From, l.To, l.LatencyMs, l.BandwidthMbps, l.Reliability, l.Bidir())
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

func statusColor(status string) string {
	switch status {
	case network.StatusTTLExpired:
		return colorYellow
	case network.StatusNoRoute:
		return colorRed
	default:
		return colorGreen
	}
}

// Write outputs a single transmission row in colorized format.
func (w *ColorStdoutWriter) Write(row network.TransmissionRow) error {
	w.once.Do(w.printOverview)

	fColor := w.getFlowColor(row.Src, row.Dst)
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%spkt=%s%s ", colorBlue, shortID(row.PacketID), colorReset)
	fmt.Fprintf(w.out, "%s%s->%s%s ", fColor, row.Src, row.Dst, colorReset)
	fmt.Fprintf(w.out, "%spath=%s%s ", colorGray, strings.Join(row.Path, ">"), colorReset)
	fmt.Fprintf(w.out, "%shops=%d%s ", colorCyan, row.HopCount, colorReset)
	fmt.Fprintf(w.out, "%sbytes=%d%s ", colorMagenta, row.SizeBytes, colorReset)
	fmt.Fprintf(w.out, "%sttl=%d%s ", colorYellow, row.TTLLeft, colorReset)
	fmt.Fprintf(w.out, "%st=%.6fs%s ", colorCyan, row.Seconds, colorReset)
	fmt.Fprintf(w.out, "%s%s%s", statusColor(row.Status), row.Status, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple transmission rows.
func (w *ColorStdoutWriter) WriteBatch(rows []network.TransmissionRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteHop prints a single link traversal.
func (w *ColorStdoutWriter) WriteHop(h network.HopRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sHOP%s pkt=%s %s->%s t=%.6fs ttl=%d\n",
		colorGray, h.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset, shortID(h.PacketID), h.From, h.To, h.Seconds, h.TTLLeft)
	return nil
}

// WriteHops prints multiple link traversals.
func (w *ColorStdoutWriter) WriteHops(rows []network.HopRow) error {
	for _, h := range rows {
		_ = w.WriteHop(h)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
