package sim

import (
	"encoding/json"
	"os"

	"netsim/internal/network"
)

// FileWriter writes transmission and hop records to JSONL files.
type FileWriter struct {
	transFile *os.File
	hopFile   *os.File
	transEnc  *json.Encoder
	hopEnc    *json.Encoder
}

// NewFileWriter creates a FileWriter. hopPath may be empty to skip the hop
// log.
func NewFileWriter(transmissionPath, hopPath string) (*FileWriter, error) {
	tf, err := os.Create(transmissionPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{transFile: tf, transEnc: json.NewEncoder(tf)}
	if hopPath != "" {
		hf, err := os.Create(hopPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.hopFile = hf
		fw.hopEnc = json.NewEncoder(hf)
	}
	return fw, nil
}

// Write logs a single transmission row.
func (f *FileWriter) Write(row network.TransmissionRow) error {
	return f.transEnc.Encode(row)
}

// WriteBatch logs multiple transmission rows.
func (f *FileWriter) WriteBatch(rows []network.TransmissionRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteHop logs a single hop row, if enabled.
func (f *FileWriter) WriteHop(h network.HopRow) error {
	if f.hopEnc == nil {
		return nil
	}
	return f.hopEnc.Encode(h)
}

// WriteHops logs multiple hop rows.
func (f *FileWriter) WriteHops(rows []network.HopRow) error {
	for _, h := range rows {
		if err := f.WriteHop(h); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.transFile != nil {
		if e := f.transFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.hopFile != nil {
		if e := f.hopFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
