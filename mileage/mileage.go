package mileage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChainsPerMile is the number of chains in one statute mile.
const ChainsPerMile = 80

const elrPattern = `[A-Z]{3}[0-9]?`

var (
	elrRE            = regexp.MustCompile(`^` + elrPattern + `$`)
	mileageLiteralRE = regexp.MustCompile(`^\d+\.\d{1,2}$`)
)

// IsELR reports whether s has the line-reference shape: three capital
// letters optionally followed by a digit.
func IsELR(s string) bool { return elrRE.MatchString(s) }

// Mileage is a miles.chains position, e.g. "12.34" meaning 12 miles
// 34 chains. The fractional part is a chain count, not a decimal.
type Mileage struct {
	Miles  int `json:"miles"`
	Chains int `json:"chains"`
}

// ParseMileage parses a miles.chains literal such as "12.34".
// A single digit after the point is read as a truncated two-digit
// chain field ("12.3" is 12 miles 30 chains), matching how numeric
// table readers drop trailing zeros.
func ParseMileage(s string) (Mileage, error) {
	s = strings.TrimSpace(s)
	if !mileageLiteralRE.MatchString(s) {
		return Mileage{}, fmt.Errorf("invalid miles.chains literal %q", s)
	}
	parts := strings.SplitN(s, ".", 2)
	miles, _ := strconv.Atoi(parts[0])
	chains, _ := strconv.Atoi(parts[1])
	if len(parts[1]) == 1 {
		chains *= 10
	}
	return Mileage{Miles: miles, Chains: chains}, nil
}

// Decimal converts the position to decimal miles.
func (m Mileage) Decimal() float64 {
	return float64(m.Miles) + float64(m.Chains)/ChainsPerMile
}

// String formats the position back to its canonical miles.chains
// literal with a two-digit chain field.
func (m Mileage) String() string {
	return fmt.Sprintf("%d.%02d", m.Miles, m.Chains)
}
