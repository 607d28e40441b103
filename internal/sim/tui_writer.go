package sim

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"netsim/internal/config"
	"netsim/internal/network"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// rowMsg carries a transmission row for the stats table.
type rowMsg struct{ network.TransmissionRow }

const maxLogLines = 200

// TUIWriter renders transmissions in a live bubbletea view.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.TopologyConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TransmissionWriter.
func (w *TUIWriter) Write(row network.TransmissionRow) error {
	line := fmt.Sprintf("%s[%s]%s %s%s->%s%s hops=%d bytes=%d ttl=%d t=%.6fs %s%s%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, row.Src, row.Dst, colorReset,
		row.HopCount, row.SizeBytes, row.TTLLeft, row.Seconds,
		statusColor(row.Status), row.Status, colorReset)
	w.program.Send(logMsg{line: line})
	w.program.Send(rowMsg{row})
	return nil
}

// WriteBatch implements the batch upgrade.
func (w *TUIWriter) WriteBatch(rows []network.TransmissionRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteHop implements HopWriter; hops feed the log pane only.
func (w *TUIWriter) WriteHop(h network.HopRow) error {
	line := fmt.Sprintf("%s[%s]%s HOP %s->%s t=%.6fs ttl=%d",
		colorGray, h.Timestamp.Format(time.RFC3339), colorReset,
		h.From, h.To, h.Seconds, h.TTLLeft)
	w.program.Send(logMsg{line: line})
	return nil
}

// WriteHops sends multiple hop rows.
func (w *TUIWriter) WriteHops(rows []network.HopRow) error {
	for _, h := range rows {
		_ = w.WriteHop(h)
	}
	return nil
}

// Close stops the program without signalling the process.
func (w *TUIWriter) Close() {
	w.sendSignal.Store(false)
	if p, ok := w.program.(*tea.Program); ok {
		p.Quit()
		<-w.done
	}
}

// flowStat aggregates per src->dst pair counters for the table.
type flowStat struct {
	key       string
	sent      int
	delivered int
	failed    int
	lastSecs  float64
}

type tuiModel struct {
	cfg      *config.TopologyConfig
	vp       viewport.Model
	tbl      table.Model
	lines    []string
	stats    map[string]*flowStat
	order    []string
	width    int
	height   int
	ready    bool
	titleSty lipgloss.Style
	paneSty  lipgloss.Style
}

func newTUIModel(cfg *config.TopologyConfig) tuiModel {
	cols := []table.Column{
		{Title: "Flow", Width: 18},
		{Title: "Sent", Width: 6},
		{Title: "Delivered", Width: 10},
		{Title: "Failed", Width: 7},
		{Title: "Last (s)", Width: 12},
	}
	tbl := table.New(table.WithColumns(cols), table.WithHeight(8))
	return tuiModel{
		cfg:      cfg,
		tbl:      tbl,
		stats:    make(map[string]*flowStat),
		titleSty: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		paneSty:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.height - m.tbl.Height() - 6
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(m.width-4, logHeight)
			m.ready = true
		} else {
			m.vp.Width = m.width - 4
			m.vp.Height = logHeight
		}
		m.refreshViewport()
	case logMsg:
		m.lines = append(m.lines, msg.line)
		if len(m.lines) > maxLogLines {
			m.lines = m.lines[len(m.lines)-maxLogLines:]
		}
		m.refreshViewport()
	case rowMsg:
		m.applyRow(msg.TransmissionRow)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *tuiModel) applyRow(row network.TransmissionRow) {
	key := row.Src + "->" + row.Dst
	st, ok := m.stats[key]
	if !ok {
		st = &flowStat{key: key}
		m.stats[key] = st
		m.order = append(m.order, key)
	}
	st.sent++
	if row.Status == network.StatusDelivered {
		st.delivered++
	} else {
		st.failed++
	}
	st.lastSecs = row.Seconds

	rows := make([]table.Row, 0, len(m.order))
	for _, k := range m.order {
		s := m.stats[k]
		rows = append(rows, table.Row{
			s.key,
			strconv.Itoa(s.sent),
			strconv.Itoa(s.delivered),
			strconv.Itoa(s.failed),
			fmt.Sprintf("%.6f", s.lastSecs),
		})
	}
	m.tbl.SetRows(rows)
}

func (m *tuiModel) refreshViewport() {
	if !m.ready {
		return
	}
	var content string
	for _, l := range m.lines {
		content += wordwrap.String(l, m.vp.Width) + "\n"
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}
	title := "netsim"
	if m.cfg != nil && m.cfg.Name != "" {
		title = "netsim — " + m.cfg.Name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.titleSty.Render(title),
		m.paneSty.Render(m.tbl.View()),
		m.paneSty.Render(m.vp.View()),
		lipgloss.NewStyle().Faint(true).Render("q to quit"),
	)
}
