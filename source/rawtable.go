package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

var annotationStripper = strings.NewReplacer("(", "", ")", "", "~", "")

// isMileageLike reports whether a raw mileage cell holds a (possibly
// annotated or blank) numeric literal, as opposed to a note or a
// section label. Blank cells are data rows with unknown mileage.
func isMileageLike(cell string) bool {
	s := strings.TrimSpace(annotationStripper.Replace(cell))
	if s == "" {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ParseRawText splits the tab-separated body of a mileage file into a
// RawTable. The header row names the line. Body rows whose mileage
// column is not numeric are structural: a single such row is the file
// note; two or more are section labels slicing the table into labeled
// sub-tables, with an empty labeled slice demoted to the note.
func ParseRawText(elr, text string) (*mileage.RawTable, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty mileage table")
	}

	lineName := ""
	if header := strings.SplitN(lines[0], "\t", 2); len(header) == 2 {
		lineName = strings.TrimSpace(header[1])
	}
	rows := make([]mileage.RawRow, 0, len(lines)-1)
	for _, l := range lines[1:] {
		parts := strings.SplitN(l, "\t", 2)
		r := mileage.RawRow{Mileage: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			r.Node = strings.TrimSpace(parts[1])
		}
		rows = append(rows, r)
	}

	raw := &mileage.RawTable{ELR: elr, Line: lineName}
	var labelIdx []int
	for i, r := range rows {
		if !isMileageLike(r.Mileage) {
			labelIdx = append(labelIdx, i)
		}
	}
	switch len(labelIdx) {
	case 0:
		raw.Rows = rows
	case 1:
		i := labelIdx[0]
		raw.Note = rows[i].Mileage
		raw.Rows = append(rows[:i:i], rows[i+1:]...)
	default:
		for k, i := range labelIdx {
			end := len(rows)
			if k+1 < len(labelIdx) {
				end = labelIdx[k+1]
			}
			sec := mileage.RawSection{Label: rows[i].Mileage, Rows: rows[i+1 : end]}
			if len(sec.Rows) == 0 && len(labelIdx) > 2 {
				raw.Note = sec.Label
				continue
			}
			raw.Sections = append(raw.Sections, sec)
		}
	}
	return raw, nil
}
