package railwaycodes

import (
	"strings"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

// QueryError reports an invalid API query parameter.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// normalizeELR validates and canonicalizes an ELR query parameter.
func normalizeELR(param, name string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(param))
	if s == "" {
		return "", &QueryError{Msg: "You must provide " + name + "."}
	}
	if !mileage.IsELR(s) {
		return "", &QueryError{Msg: "Not a valid ELR: " + param}
	}
	return s, nil
}
