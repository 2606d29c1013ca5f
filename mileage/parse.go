package mileage

// AssembleTable joins the two column parsers' outputs by positional
// row alignment. Both inputs must describe the same rows in the same
// order; a count disagreement means the raw table is unparsable.
func AssembleTable(elr, label string, cells []MileageCell, nodes []NodeRow) (Table, error) {
	if len(cells) != len(nodes) {
		return Table{}, &StructuralMismatchError{
			ELR:         elr,
			Label:       label,
			MileageRows: len(cells),
			NodeRows:    len(nodes),
		}
	}
	t := Table{Rows: make([]Waypoint, len(cells))}
	for i := range cells {
		t.Rows[i] = Waypoint{
			Mileage:     cells[i],
			Node:        nodes[i].Node,
			Connections: nodes[i].Connections,
		}
	}
	if len(nodes) > 0 {
		t.ConnCols = len(nodes[0].Connections)
	}
	return t, nil
}

func parseRows(elr, label string, rows []RawRow) (Table, error) {
	mileCol := make([]string, len(rows))
	nodeCol := make([]string, len(rows))
	for i, r := range rows {
		mileCol[i] = r.Mileage
		nodeCol[i] = r.Node
	}
	return AssembleTable(elr, label, ParseMileageColumn(mileCol), ParseNodeColumn(nodeCol))
}

// ParseTable turns a raw mileage table into its structured
// MileageFile, running the column parsers independently per section
// and preserving section labels.
func ParseTable(raw *RawTable) (*MileageFile, error) {
	f := &MileageFile{ELR: raw.ELR, Line: raw.Line, Note: raw.Note}
	if len(raw.Sections) > 0 {
		f.Sections = make([]Section, 0, len(raw.Sections))
		for _, s := range raw.Sections {
			t, err := parseRows(raw.ELR, s.Label, s.Rows)
			if err != nil {
				return nil, err
			}
			f.Sections = append(f.Sections, Section{Label: s.Label, Table: t})
		}
		return f, nil
	}
	t, err := parseRows(raw.ELR, "", raw.Rows)
	if err != nil {
		return nil, err
	}
	f.Single = &t
	return f, nil
}
