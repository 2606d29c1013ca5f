// Package mileage parses the published mileage tables of Engineer's
// Line References (ELRs) into structured records.
//
// A raw mileage table has two columns: a mileage cell (a miles.chains
// literal, possibly annotated) and a free-text description naming a
// waypoint and the lines connecting at it. The parsers here normalize
// both columns and assemble them into a rectangular table per ELR,
// or per labeled section when a line's table carries alternate
// alignments.
//
// Annotation conventions in the source data:
//   - a mileage in parentheses, e.g. "(8.67)", marks a point that
//     physically belongs to a different line, listed for reference;
//   - a leading tilde, e.g. "~3.05", marks an approximate mileage;
//   - a blank cell means the mileage is unknown.
package mileage
