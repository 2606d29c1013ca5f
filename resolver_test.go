package railwaycodes

import (
	"errors"
	"testing"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

type fakeStore struct {
	files map[string]*mileage.MileageFile
	errs  map[string]error
	loads map[string]int
}

func (f *fakeStore) MileageFile(elr string) (*mileage.MileageFile, error) {
	if f.loads == nil {
		f.loads = map[string]int{}
	}
	f.loads[elr]++
	if err, ok := f.errs[elr]; ok {
		return nil, err
	}
	file, ok := f.files[elr]
	if !ok {
		return nil, errors.New("no mileage file for " + elr)
	}
	return file, nil
}

func parseFile(t *testing.T, elr string, rows [][2]string) *mileage.MileageFile {
	t.Helper()
	raw := &mileage.RawTable{ELR: elr}
	for _, r := range rows {
		raw.Rows = append(raw.Rows, mileage.RawRow{Mileage: r[0], Node: r[1]})
	}
	f, err := mileage.ParseTable(raw)
	if err != nil {
		t.Fatalf("ParseTable(%s): %v", elr, err)
	}
	return f
}

func mustResolve(t *testing.T, r *Resolver, start, end string) (mileage.Mileage, mileage.Mileage) {
	t.Helper()
	sm, em, err := r.ResolveConnection(start, end)
	if err != nil {
		t.Fatalf("ResolveConnection(%s, %s): %v", start, end, err)
	}
	if sm == nil || em == nil {
		t.Fatalf("ResolveConnection(%s, %s): no connection point found", start, end)
	}
	return *sm, *em
}

func TestResolveConnectionDirect(t *testing.T) {
	// The connection states the end line's mileage inline; its own
	// table is never opened.
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"XTD": parseFile(t, "XTD", [][2]string{
			{"0.00", "Tyne Dock Bottom"},
			{"12.34", "Trafford Park Junction with CGJ (3.42)"},
		}),
	}}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "XTD", "CGJ")
	if sm != (mileage.Mileage{Miles: 12, Chains: 34}) {
		t.Errorf("start mileage = %v, want 12.34", sm)
	}
	if em != (mileage.Mileage{Miles: 3, Chains: 42}) {
		t.Errorf("end mileage = %v, want 3.42", em)
	}
	if em.Decimal() != 3.525 {
		t.Errorf("end decimal = %v, want 3.525", em.Decimal())
	}
	if fs.loads["CGJ"] != 0 {
		t.Errorf("end table opened %d times for a direct hit", fs.loads["CGJ"])
	}
}

func TestResolveConnectionExactMatch(t *testing.T) {
	// A bare ELR connection opens the end line's table and scans it
	// back for the start line.
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"MSJ": parseFile(t, "MSJ", [][2]string{
			{"0.00", "Manchester Oxford Road"},
			{"5.20", "Castlefield Junction with DCL"},
		}),
		"DCL": parseFile(t, "DCL", [][2]string{
			{"0.00", "Deansgate"},
			{"0.64", "Castlefield Junction with MSJ"},
		}),
	}}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "MSJ", "DCL")
	if sm != (mileage.Mileage{Miles: 5, Chains: 20}) {
		t.Errorf("start mileage = %v, want 5.20", sm)
	}
	if em != (mileage.Mileage{Chains: 64}) {
		t.Errorf("end mileage = %v, want 0.64", em)
	}
}

func TestResolveConnectionViaLink(t *testing.T) {
	// Neither table names the other directly; a link line mentioned in
	// the start table names both, and both mileages come from it.
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"XTD": parseFile(t, "XTD", [][2]string{
			{"2.10", "Bar Junction with LNK (1.00)"},
		}),
		"LNK": parseFile(t, "LNK", [][2]string{
			{"1.00", "Bar Junction with XTD"},
			{"4.32", "Baz Junction with DCL (7.15)"},
		}),
	}}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "XTD", "DCL")
	if sm != (mileage.Mileage{Miles: 1, Chains: 0}) {
		t.Errorf("start mileage = %v, want 1.00", sm)
	}
	if em != (mileage.Mileage{Miles: 7, Chains: 15}) {
		t.Errorf("end mileage = %v, want 7.15", em)
	}
	if fs.loads["DCL"] != 0 {
		t.Errorf("end table opened %d times for a link hit", fs.loads["DCL"])
	}
}

func TestResolveConnectionLinkFailureSkipped(t *testing.T) {
	// A link candidate whose table cannot be loaded is skipped without
	// failing the query.
	fs := &fakeStore{
		files: map[string]*mileage.MileageFile{
			"XTD": parseFile(t, "XTD", [][2]string{
				{"2.10", "Bar Junction with BAD"},
			}),
		},
		errs: map[string]error{"BAD": errors.New("boom")},
	}
	r := NewResolver(fs)

	sm, em, err := r.ResolveConnection("XTD", "DCL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm != nil || em != nil {
		t.Errorf("expected no match, got %v / %v", sm, em)
	}
	if fs.loads["BAD"] != 1 {
		t.Errorf("link table loaded %d times, want 1", fs.loads["BAD"])
	}
}

func TestResolveConnectionNotFound(t *testing.T) {
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"XTD": parseFile(t, "XTD", [][2]string{
			{"0.00", "Tyne Dock Bottom"},
			{"1.10", "Pontop Crossing"},
		}),
	}}
	r := NewResolver(fs)

	sm, em, err := r.ResolveConnection("XTD", "DCL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm != nil || em != nil {
		t.Errorf("expected nil pair, got %v / %v", sm, em)
	}
}

func TestResolveConnectionErrorPropagation(t *testing.T) {
	startErr := errors.New("start unavailable")
	endErr := errors.New("end unavailable")
	fs := &fakeStore{
		files: map[string]*mileage.MileageFile{
			"MSJ": parseFile(t, "MSJ", [][2]string{
				{"5.20", "Castlefield Junction with DCL"},
			}),
		},
		errs: map[string]error{"XTD": startErr, "DCL": endErr},
	}
	r := NewResolver(fs)

	if _, _, err := r.ResolveConnection("XTD", "DCL"); !errors.Is(err, startErr) {
		t.Errorf("start failure: got %v, want %v", err, startErr)
	}
	if _, _, err := r.ResolveConnection("MSJ", "DCL"); !errors.Is(err, endErr) {
		t.Errorf("end failure: got %v, want %v", err, endErr)
	}
}

func TestResolveConnectionFirstMatchWins(t *testing.T) {
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"XTD": parseFile(t, "XTD", [][2]string{
			{"1.00", "First Junction with DCL (2.00)"},
			{"3.00", "Second Junction with DCL (4.00)"},
		}),
	}}
	r := NewResolver(fs)

	sm1, em1 := mustResolve(t, r, "XTD", "DCL")
	if sm1 != (mileage.Mileage{Miles: 1}) || em1 != (mileage.Mileage{Miles: 2}) {
		t.Errorf("got %v / %v, want 1.00 / 2.00", sm1, em1)
	}
	sm2, em2 := mustResolve(t, r, "XTD", "DCL")
	if sm1 != sm2 || em1 != em2 {
		t.Errorf("repeat query differed: %v/%v vs %v/%v", sm1, em1, sm2, em2)
	}
}

func TestResolveConnectionColumnMajorOrder(t *testing.T) {
	// Scanning walks the first connection column through every row
	// before moving on, so the second-row hit in column one beats the
	// first-row hit in column two.
	fs := &fakeStore{
		files: map[string]*mileage.MileageFile{
			"XTD": parseFile(t, "XTD", [][2]string{
				{"0.10", "Foo Junction with AAA and DCL (9.00)"},
				{"7.00", "Bar Junction with DCL (2.00)"},
			}),
		},
		errs: map[string]error{"AAA": errors.New("unavailable")},
	}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "XTD", "DCL")
	if sm != (mileage.Mileage{Miles: 7}) || em != (mileage.Mileage{Miles: 2}) {
		t.Errorf("got %v / %v, want 7.00 / 2.00", sm, em)
	}
}

func TestResolveConnectionUnknownMileageRowFails(t *testing.T) {
	// A candidate anchored to a row with unknown mileage fails and the
	// scan moves on.
	fs := &fakeStore{files: map[string]*mileage.MileageFile{
		"XTD": parseFile(t, "XTD", [][2]string{
			{"", "Foo Junction with DCL (2.00)"},
			{"5.00", "Bar Junction with DCL (3.00)"},
		}),
	}}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "XTD", "DCL")
	if sm != (mileage.Mileage{Miles: 5}) || em != (mileage.Mileage{Miles: 3}) {
		t.Errorf("got %v / %v, want 5.00 / 3.00", sm, em)
	}
}

func TestResolveConnectionSectionedStart(t *testing.T) {
	raw := &mileage.RawTable{
		ELR: "ANL",
		Sections: []mileage.RawSection{
			{Label: "Original route", Rows: []mileage.RawRow{
				{Mileage: "0.00", Node: "Anglesey Sidings"},
			}},
			{Label: "Usual route", Rows: []mileage.RawRow{
				{Mileage: "1.10", Node: "Chasewater Junction with DCL (2.00)"},
			}},
		},
	}
	f, err := mileage.ParseTable(raw)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	fs := &fakeStore{files: map[string]*mileage.MileageFile{"ANL": f}}
	r := NewResolver(fs)

	sm, em := mustResolve(t, r, "ANL", "DCL")
	if sm != (mileage.Mileage{Miles: 1, Chains: 10}) || em != (mileage.Mileage{Miles: 2}) {
		t.Errorf("got %v / %v, want 1.10 / 2.00", sm, em)
	}
}
