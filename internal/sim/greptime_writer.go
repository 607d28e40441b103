package sim

import (
	"context"
	"encoding/json"
	"log"

	"netsim/internal/network"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes transmission and hop records to GreptimeDB via
// the ingester client.
type GreptimeDBWriter struct {
	client     greptimeClient
	transTable string
	hopTable   string
}

// NewGreptimeDBWriter creates a GreptimeDB writer. Empty table names fall
// back to the defaults in the network package; an empty hopTable disables
// hop records.
func NewGreptimeDBWriter(host, database, transTable, hopTable string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if transTable == "" {
		transTable = network.TransmissionTableName
	}
	return &GreptimeDBWriter{client: client, transTable: transTable, hopTable: hopTable}, nil
}

// Write inserts a single transmission row.
func (w *GreptimeDBWriter) Write(row network.TransmissionRow) error {
	return w.WriteBatch([]network.TransmissionRow{row})
}

// WriteBatch inserts multiple transmission rows.
func (w *GreptimeDBWriter) WriteBatch(rows []network.TransmissionRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.transTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("sim_id", types.STRING)
	tbl.AddTagColumn("packet_id", types.STRING)
	tbl.AddFieldColumn("src", types.STRING)
	tbl.AddFieldColumn("dst", types.STRING)
	tbl.AddFieldColumn("path", types.JSON)
	tbl.AddFieldColumn("hop_count", types.INT64)
	tbl.AddFieldColumn("size_bytes", types.INT64)
	tbl.AddFieldColumn("ttl_left", types.INT64)
	tbl.AddFieldColumn("seconds", types.FLOAT64)
	tbl.AddFieldColumn("status", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		pathJSON, err := json.Marshal(r.Path)
		if err != nil {
			return err
		}
		err = tbl.AddRow(r.SimID, r.PacketID, r.Src, r.Dst, string(pathJSON),
			int64(r.HopCount), int64(r.SizeBytes), int64(r.TTLLeft), r.Seconds,
			r.Status, r.Timestamp)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] write failed: %v", err)
		return err
	}
	return nil
}

// WriteHop inserts a single hop row, if the hop table is configured.
func (w *GreptimeDBWriter) WriteHop(h network.HopRow) error {
	return w.WriteHops([]network.HopRow{h})
}

// WriteHops inserts multiple hop rows.
func (w *GreptimeDBWriter) WriteHops(rows []network.HopRow) error {
	if len(rows) == 0 || w.hopTable == "" {
		return nil
	}

	tbl, err := table.New(w.hopTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("sim_id", types.STRING)
	tbl.AddTagColumn("packet_id", types.STRING)
	tbl.AddFieldColumn("from", types.STRING)
	tbl.AddFieldColumn("to", types.STRING)
	tbl.AddFieldColumn("seconds", types.FLOAT64)
	tbl.AddFieldColumn("ttl_left", types.INT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, h := range rows {
		err := tbl.AddRow(h.SimID, h.PacketID, h.From, h.To, h.Seconds,
			int64(h.TTLLeft), h.Timestamp)
		if err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		log.Printf("[GreptimeDBWriter] hop write failed: %v", err)
		return err
	}
	return nil
}
