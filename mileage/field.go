package mileage

import "strings"

// MileageNote classifies how a raw mileage cell was annotated.
type MileageNote string

const (
	NoteNone        MileageNote = ""
	NoteUnknown     MileageNote = "Unknown"
	NoteApproximate MileageNote = "Approximate"
	NoteReference   MileageNote = "Reference"
)

// MileageCell is a normalized mileage column entry: the bare
// miles.chains literal (empty when the source left the cell blank)
// plus the annotation stripped from it.
type MileageCell struct {
	Value string      `json:"value"`
	Note  MileageNote `json:"note,omitempty"`
}

// ParseMileageCell classifies and normalizes one raw mileage cell.
// Rules apply in priority order: blank, parenthesized (a reference to
// a point on another line), tilde-prefixed (approximate), plain.
func ParseMileageCell(raw string) MileageCell {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return MileageCell{Note: NoteUnknown}
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		return MileageCell{Value: normalizeValue(s[1 : len(s)-1]), Note: NoteReference}
	case strings.HasPrefix(s, "~"):
		return MileageCell{Value: normalizeValue(s[1:]), Note: NoteApproximate}
	default:
		return MileageCell{Value: s}
	}
}

// normalizeValue strips residual annotation from the inner text of an
// already-classified cell. Each step shortens the input, so the
// recursion terminates.
func normalizeValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return normalizeValue(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "~") {
		return normalizeValue(s[1:])
	}
	return s
}

// ParseMileageColumn normalizes a whole mileage column. Columns that
// carry no annotations pass through with empty notes.
func ParseMileageColumn(cells []string) []MileageCell {
	out := make([]MileageCell, len(cells))
	for i, c := range cells {
		out[i] = ParseMileageCell(c)
	}
	return out
}
