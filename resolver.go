// Package railwaycodes answers cross-reference queries over parsed
// ELR mileage files: given two line references known to connect, find
// the mileage on each line at the point where they meet.
package railwaycodes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

// MileageFileStore supplies parsed mileage files by ELR. Implemented
// by store.FileStore; tests substitute fakes.
type MileageFileStore interface {
	MileageFile(elr string) (*mileage.MileageFile, error)
}

var (
	// inlineMileageRE matches a connection that states the point's
	// mileage on the other line, e.g. "Glazebrook Junction (3.42)".
	inlineMileageRE = regexp.MustCompile(`\w \((\d+\.\d+)\)`)
	// linkTokenRE captures the token ahead of a stated mileage, e.g.
	// "GGL" in "GGL (3.42)".
	linkTokenRE = regexp.MustCompile(`(\w+) \(\d+\.\d+\)`)
)

// Resolver answers connection-point queries between two lines by
// scanning their mileage tables, loading link lines' tables on demand.
type Resolver struct {
	store MileageFileStore
}

// NewResolver creates a resolver over the given store.
func NewResolver(store MileageFileStore) *Resolver {
	return &Resolver{store: store}
}

// ResolveConnection finds the mileage on each of two connecting lines
// at their shared connection point. Both mileages are returned, or
// neither: a nil pair with a nil error means the search exhausted the
// start line's table without a match. Failures loading the start or
// end line's table propagate; link-line candidates that fail to load
// are skipped.
//
// The scan is deterministic: connection columns in declared order,
// rows ascending within each column, first match wins. A connection
// stating the other line's mileage inline resolves directly; an exact
// ELR match opens the end line's table for the symmetric scan; any
// other ELR-shaped token is probed as a one-hop link line whose table
// must mention both ends.
func (r *Resolver) ResolveConnection(startELR, endELR string) (*mileage.Mileage, *mileage.Mileage, error) {
	startFile, err := r.store.MileageFile(startELR)
	if err != nil {
		return nil, nil, fmt.Errorf("start line %s: %w", startELR, err)
	}
	st := startFile.PreferredTable()
	if st == nil {
		return nil, nil, fmt.Errorf("start line %s: empty mileage file", startELR)
	}
	for col := 0; col < st.ConnCols; col++ {
		for _, row := range st.Rows {
			conn := row.Connections[col]
			if conn == "" {
				continue
			}
			if strings.Contains(conn, endELR) {
				sm, em, ok, err := r.matchEnd(row, conn, startELR, endELR)
				if err != nil {
					return nil, nil, err
				}
				if ok {
					return sm, em, nil
				}
				continue
			}
			if sm, em, ok := r.matchViaLink(conn, startELR, endELR); ok {
				return sm, em, nil
			}
		}
	}
	return nil, nil, nil
}

// matchEnd applies the direct and exact-match rules to a start-table
// connection mentioning the end line. Candidates anchored to a row
// with an unknown mileage fail without ending the scan.
func (r *Resolver) matchEnd(row mileage.Waypoint, conn, startELR, endELR string) (*mileage.Mileage, *mileage.Mileage, bool, error) {
	sm, ok := rowMileage(row)
	if !ok {
		return nil, nil, false, nil
	}
	if m := inlineMileageRE.FindStringSubmatch(conn); m != nil {
		em, err := mileage.ParseMileage(m[1])
		if err != nil {
			return nil, nil, false, nil
		}
		return &sm, &em, true, nil
	}
	if conn != endELR {
		return nil, nil, false, nil
	}
	endFile, err := r.store.MileageFile(endELR)
	if err != nil {
		return nil, nil, false, fmt.Errorf("end line %s: %w", endELR, err)
	}
	et := endFile.PreferredTable()
	if et == nil {
		return nil, nil, false, fmt.Errorf("end line %s: empty mileage file", endELR)
	}
	if em, ok := scanContains(et, startELR); ok {
		return &sm, &em, true, nil
	}
	return nil, nil, false, nil
}

// matchViaLink probes a connection naming some other line as a
// one-hop intermediary: the link line's own table must mention both
// ends. Unavailable or unparsable link lines never fail the query.
func (r *Resolver) matchViaLink(conn, startELR, endELR string) (*mileage.Mileage, *mileage.Mileage, bool) {
	link := conn
	if m := linkTokenRE.FindStringSubmatch(conn); m != nil {
		link = m[1]
	}
	if !mileage.IsELR(link) || link == startELR {
		return nil, nil, false
	}
	linkFile, err := r.store.MileageFile(link)
	if err != nil {
		return nil, nil, false
	}
	lt := linkFile.PreferredTable()
	if lt == nil {
		return nil, nil, false
	}
	sm, okStart := scanContains(lt, startELR)
	em, okEnd := scanEnd(lt, endELR)
	if okStart && okEnd {
		return &sm, &em, true
	}
	return nil, nil, false
}

// scanContains finds the first connection cell containing the token,
// column-major, and returns that row's own mileage.
func scanContains(t *mileage.Table, token string) (mileage.Mileage, bool) {
	for col := 0; col < t.ConnCols; col++ {
		for _, row := range t.Rows {
			c := row.Connections[col]
			if c == "" || !strings.Contains(c, token) {
				continue
			}
			if m, ok := rowMileage(row); ok {
				return m, true
			}
		}
	}
	return mileage.Mileage{}, false
}

// scanEnd is scanContains with the direct-mileage and exact-match
// sub-rules applied to the matching cell.
func scanEnd(t *mileage.Table, endELR string) (mileage.Mileage, bool) {
	for col := 0; col < t.ConnCols; col++ {
		for _, row := range t.Rows {
			c := row.Connections[col]
			if c == "" || !strings.Contains(c, endELR) {
				continue
			}
			if m := inlineMileageRE.FindStringSubmatch(c); m != nil {
				if em, err := mileage.ParseMileage(m[1]); err == nil {
					return em, true
				}
				continue
			}
			if c == endELR {
				if m, ok := rowMileage(row); ok {
					return m, true
				}
			}
		}
	}
	return mileage.Mileage{}, false
}

// rowMileage parses a waypoint's own mileage cell. Rows whose mileage
// is unknown cannot anchor a match.
func rowMileage(row mileage.Waypoint) (mileage.Mileage, bool) {
	m, err := mileage.ParseMileage(row.Mileage.Value)
	if err != nil {
		return mileage.Mileage{}, false
	}
	return m, true
}
