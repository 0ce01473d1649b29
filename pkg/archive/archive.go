// Package archive serializes the pipeline's annotations to a
// compressed on-disk archive so downstream generators can consume a
// completed link+repack run without re-executing it. Payloads are
// snappy-compressed JSON framed with a crc32 checksum; a corrupt or
// truncated archive is detected on read, never silently accepted.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Archive framing constants
const (
	// Magic identifies an annotation archive file
	Magic uint32 = 0x4F465041 // "OFPA"
	// Version is the current archive format version
	Version uint16 = 1
)

// Archive sentinel errors
var (
	ErrBadMagic    = errors.New("not an annotation archive")
	ErrBadVersion  = errors.New("unsupported archive version")
	ErrBadChecksum = errors.New("archive checksum mismatch")
	ErrTruncated   = errors.New("archive truncated")
)

// Document is the exported view of one pipeline run. It carries the
// results downstream generators need, keyed by stable names rather
// than in-process pointers.
type Document struct {
	RunID string `json:"run_id"`

	// GSB summary
	NumGSBs       int `json:"num_gsbs"`
	NumUniqueGSBs int `json:"num_unique_gsbs"`

	// Mux library
	MuxEntries []MuxEntry `json:"mux_entries"`

	// Tile directs
	Directs []DirectEntry `json:"directs"`

	// Placement: block name to location
	Placement map[string]Location `json:"placement"`

	// Net occupancy: net name to RR node IDs
	NetNodes map[string][]int `json:"net_nodes"`

	// Physical truth tables: atom name to cube lines
	TruthTables map[string][]string `json:"truth_tables,omitempty"`

	// Simulation setting after annotation
	OperatingClockFrequencyHz float64 `json:"operating_clock_frequency_hz"`
	NumClockCycles            int     `json:"num_clock_cycles"`
}

// MuxEntry is one canonical mux structure in the export.
type MuxEntry struct {
	ID         int    `json:"id"`
	Model      string `json:"model"`
	Size       int    `json:"size"`
	Topology   string `json:"topology"`
	NumLevels  int    `json:"num_levels"`
	NumMemBits int    `json:"num_mem_bits"`
}

// DirectEntry is one resolved tile-to-tile connection.
type DirectEntry struct {
	Rule     string `json:"rule"`
	FromX    int    `json:"from_x"`
	FromY    int    `json:"from_y"`
	FromPort string `json:"from_port"`
	ToX      int    `json:"to_x"`
	ToY      int    `json:"to_y"`
	ToPort   string `json:"to_port"`
}

// Location is a placed block position.
type Location struct {
	X       int `json:"x"`
	Y       int `json:"y"`
	SubTile int `json:"sub_tile"`
}

// encode marshals the document payload.
func (d *Document) encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archive document: %w", err)
	}
	return data, nil
}

// decodeDocument unmarshals a document payload.
func decodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archive document: %w", err)
	}
	return &doc, nil
}
