package mileage

import (
	"fmt"
	"strings"
)

// RawRow is one unparsed mileage-table row: the mileage cell and the
// free-text node/connection description.
type RawRow struct {
	Mileage string
	Node    string
}

// RawSection is a labeled slice of a raw table whose source was split
// into named sub-tables.
type RawSection struct {
	Label string
	Rows  []RawRow
}

// RawTable is the unparsed tabular data for one ELR, as produced by a
// retrieval collaborator. Exactly one of Rows or Sections is set.
type RawTable struct {
	ELR      string
	Line     string
	Note     string
	Rows     []RawRow
	Sections []RawSection
}

// Waypoint is one structured mileage-table row.
type Waypoint struct {
	Mileage     MileageCell `json:"mileage"`
	Node        string      `json:"node"`
	Connections []string    `json:"connections"`
}

// Table is a structured mileage table. Every row carries exactly
// ConnCols connection entries, empty-string padded.
type Table struct {
	ConnCols int        `json:"connectionColumns"`
	Rows     []Waypoint `json:"rows"`
}

// Section pairs a Table with the label it carried in the raw source,
// e.g. an alternate historical alignment.
type Section struct {
	Label string `json:"label"`
	Table Table  `json:"table"`
}

// MileageFile is the full parsed artifact for one ELR. It is immutable
// once created and re-derivable from the raw table at any time. Data
// is a tagged variant: Single for the common unsectioned case,
// Sections when the raw table was split into labeled sub-tables.
type MileageFile struct {
	ELR      string    `json:"elr"`
	Line     string    `json:"line"`
	Note     string    `json:"note,omitempty"`
	Single   *Table    `json:"data,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// PreferredTable selects the table a connection scan should walk: the
// single table when unsectioned, otherwise the first section whose
// label starts with "Usual" or "New", otherwise the first section.
func (f *MileageFile) PreferredTable() *Table {
	if f.Single != nil {
		return f.Single
	}
	for i := range f.Sections {
		label := f.Sections[i].Label
		if strings.HasPrefix(label, "Usual") || strings.HasPrefix(label, "New") {
			return &f.Sections[i].Table
		}
	}
	if len(f.Sections) > 0 {
		return &f.Sections[0].Table
	}
	return nil
}

// StructuralMismatchError reports a raw table whose mileage and
// node/connection columns parsed to different row counts. The table is
// unparsable rather than silently truncated.
type StructuralMismatchError struct {
	ELR         string
	Label       string
	MileageRows int
	NodeRows    int
}

func (e *StructuralMismatchError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("mileage file %s section %q: mileage column has %d rows, node column has %d",
			e.ELR, e.Label, e.MileageRows, e.NodeRows)
	}
	return fmt.Sprintf("mileage file %s: mileage column has %d rows, node column has %d",
		e.ELR, e.MileageRows, e.NodeRows)
}
