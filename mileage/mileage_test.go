package mileage

import (
	"fmt"
	"math"
	"testing"
)

func TestParseMileage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Mileage
		wantErr bool
	}{
		{name: "two-digit chains", in: "12.34", want: Mileage{Miles: 12, Chains: 34}},
		{name: "zero", in: "0.00", want: Mileage{}},
		{name: "truncated trailing zero", in: "12.3", want: Mileage{Miles: 12, Chains: 30}},
		{name: "whitespace", in: " 3.42 ", want: Mileage{Miles: 3, Chains: 42}},
		{name: "empty", in: "", wantErr: true},
		{name: "not a literal", in: "Usual route", wantErr: true},
		{name: "annotated", in: "~3.05", wantErr: true},
		{name: "too many digits", in: "3.123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMileage(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMileage(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMileage(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMileage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMileageRoundTrip(t *testing.T) {
	// Every canonical miles.chains literal with chains < 100 survives
	// a parse/format cycle unchanged.
	for miles := 0; miles <= 3; miles++ {
		for chains := 0; chains < 100; chains++ {
			lit := fmt.Sprintf("%d.%02d", miles, chains)
			m, err := ParseMileage(lit)
			if err != nil {
				t.Fatalf("ParseMileage(%q): %v", lit, err)
			}
			if m.String() != lit {
				t.Errorf("round trip %q -> %q", lit, m.String())
			}
		}
	}
}

func TestMileageDecimal(t *testing.T) {
	tests := []struct {
		in   Mileage
		want float64
	}{
		{Mileage{Miles: 3, Chains: 42}, 3.525},
		{Mileage{Miles: 12, Chains: 0}, 12},
		{Mileage{Miles: 0, Chains: 40}, 0.5},
		{Mileage{Miles: 1, Chains: 20}, 1.25},
	}
	for _, tt := range tests {
		if got := tt.in.Decimal(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v.Decimal() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsELR(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ANL", true},
		{"ANI2", true},
		{"XTD", true},
		{"AN", false},
		{"ANLX", false},
		{"ANL23", false},
		{"anl", false},
		{"", false},
		{"A1L", false},
	}
	for _, tt := range tests {
		if got := IsELR(tt.in); got != tt.want {
			t.Errorf("IsELR(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
