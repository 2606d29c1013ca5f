package mileage

import (
	"regexp"
	"strings"
)

// NodeRow is one parsed node/connection description. Within a parsed
// table every row carries the same number of connection entries,
// right-padded with empty strings.
type NodeRow struct {
	Node        string
	Connections []string
}

var (
	// "A with X/B with Y" and "A with X and B with Y": two waypoints,
	// each carrying its own short-code connection clause.
	pairedBothRE = regexp.MustCompile(
		`^(.+?) with (` + elrPattern + `(?: \(\d+\.\d+\))?)(?:/| and )(.+?) with (` + elrPattern + `(?: \(\d+\.\d+\))?)$`)
	// "A/B with X" and "A and B with X": two waypoints sharing one
	// connection clause.
	pairedSharedRE = regexp.MustCompile(
		`^(.+?)(?:/| and )(.+?) with (` + elrPattern + `(?: \(\d+\.\d+\))?)$`)
)

// rewritePairedNodes canonicalizes a description naming two waypoints
// into the single-clause form "A/B with X and Y", duplicating a shared
// clause per node. The patterns are anchored and accept only
// ELR-shaped clause tokens, so canonical output never matches again.
func rewritePairedNodes(s string) string {
	if m := pairedBothRE.FindStringSubmatch(s); m != nil {
		return m[1] + "/" + m[3] + " with " + m[2] + " and " + m[4]
	}
	if m := pairedSharedRE.FindStringSubmatch(s); m != nil {
		return m[1] + "/" + m[2] + " with " + m[3] + " and " + m[3]
	}
	return s
}

// Fixed rewrites for known source quirks: the freight-terminal stub
// must not split as a connection, a curve qualifier carries no
// structure, and one erroneous length annotation is stripped outright.
var nodeReplacer = strings.NewReplacer(
	" with Freightliner terminal", " & Freightliner Terminal",
	" with curve to", " with",
	" (0.37 long)", "",
)

// ParseNodeColumn splits free-text waypoint descriptions into a node
// name plus a rectangular set of connection entries. Rows are never
// dropped; connection text that resists splitting is retained verbatim
// as a single entry.
func ParseNodeColumn(descs []string) []NodeRow {
	type row struct {
		node  string
		conns []string // nil when the row has no connection clause
	}
	rows := make([]row, len(descs))
	for i, d := range descs {
		d = nodeReplacer.Replace(rewritePairedNodes(d))
		parts := strings.SplitN(d, " with ", 2)
		r := row{node: parts[0]}
		if len(parts) == 2 {
			conns := strings.Split(parts[1], " and ")
			if len(conns) > 2 {
				// at most two top-level connections: the first two
				// elements group as one, the remainder as the other
				conns = []string{
					strings.Join(conns[:2], " and "),
					strings.Join(conns[2:], " and "),
				}
			}
			r.conns = conns
		}
		rows[i] = r
	}

	// Rows holding more than one connection fan out on trailing
	// qualifiers and comma-separated lists.
	for i, r := range rows {
		if len(r.conns) <= 1 {
			continue
		}
		flat := make([]string, 0, len(r.conns))
		for _, c := range r.conns {
			c = strings.TrimSuffix(strings.TrimSpace(c), ",")
			c = strings.TrimPrefix(c, "later ")
			flat = append(flat, strings.Split(c, ", ")...)
		}
		rows[i].conns = flat
	}

	width := 1
	for _, r := range rows {
		if len(r.conns) > width {
			width = len(r.conns)
		}
	}
	out := make([]NodeRow, len(rows))
	for i, r := range rows {
		conns := make([]string, width)
		copy(conns, r.conns)
		out[i] = NodeRow{Node: r.node, Connections: conns}
	}
	return out
}
