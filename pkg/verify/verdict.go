// Package verify implements the mock photo compliance classifier and the
// compliance verdict shared by the classifier and the thermal synthesizer.
//
// No genuine computer vision happens here. The classifier hashes the photo
// content to seed a generator for realistic-looking numbers, while the
// verdict itself is driven entirely by filename keywords. That asymmetry is
// a documented demo property, not a bug: content changes the percentages,
// never the outcome.
package verify

import (
	"encoding/json"
	"strings"

	"github.com/kisan-depin/dmrv/pkg/errors"
)

// Verdict is the binary compliance classification.
type Verdict int

// The two compliance verdicts. Every verdict-dependent branch in the
// pipeline switches on this type rather than on scattered booleans.
const (
	Compliant Verdict = iota
	Violation
)

// String returns the wire form of the verdict.
func (v Verdict) String() string {
	if v == Violation {
		return "VIOLATION"
	}
	return "COMPLIANT"
}

// IsViolation reports whether the verdict is VIOLATION.
func (v Verdict) IsViolation() bool {
	return v == Violation
}

// ParseVerdict converts a wire string into a Verdict (case-insensitive).
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMPLIANT":
		return Compliant, nil
	case "VIOLATION":
		return Violation, nil
	default:
		return Compliant, errors.New(errors.ErrCodeInvalidVerdict,
			"invalid verdict: %q (must be COMPLIANT or VIOLATION)", s)
	}
}

// MarshalJSON encodes the verdict as its wire string.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a wire string into the verdict.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
