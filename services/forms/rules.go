package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate backs the format checks. Rules are plain data evaluated by the
// interpreter below; validator/v10 supplies the email/phone/url primitives.
var validate = validator.New()

// Format names a well-known value format checked via validator/v10,
// except FormatYear which the interpreter handles itself.
type Format string

const (
	FormatNone  Format = ""
	FormatEmail Format = "email"
	FormatPhone Format = "e164"
	FormatURL   Format = "url"
	FormatYear  Format = "year"
)

// Rule is the declarative constraint set for a single field. Evaluation is
// pure and synchronous; no rule performs I/O.
type Rule struct {
	Required bool

	// String length bounds in runes. Zero means unbounded.
	MinLen int
	MaxLen int

	// Numeric range for number-as-string values.
	Min *float64
	Max *float64

	Format  Format
	Pattern *regexp.Regexp

	// EqualsField requires the value to match another field in the same
	// section (e.g. account number confirmation).
	EqualsField string

	// RequireFile demands a non-empty file handle.
	RequireFile bool
}

// Evaluate checks value against the rule and returns human-readable
// problems; an empty slice means the field passes. all carries the whole
// section value map for cross-field rules.
func (r Rule) Evaluate(value any, all Values) []string {
	var errs []string

	if blank(value) {
		if r.Required || r.RequireFile {
			errs = append(errs, "is required")
		}
		// Optional and absent: nothing else to check.
		return errs
	}

	switch v := value.(type) {
	case string:
		errs = append(errs, r.evaluateString(v, all)...)
	case bool:
		// A required toggle must be switched on (legal declarations).
		if r.Required && !v {
			errs = append(errs, "must be accepted")
		}
	case FileHandle:
		// Non-blank handle satisfies presence; nothing further to check,
		// the engine never reads contents.
	case []Values:
		if r.MinLen > 0 && len(v) < r.MinLen {
			errs = append(errs, fmt.Sprintf("needs at least %d entries", r.MinLen))
		}
		if r.MaxLen > 0 && len(v) > r.MaxLen {
			errs = append(errs, fmt.Sprintf("allows at most %d entries", r.MaxLen))
		}
	}

	return errs
}

func (r Rule) evaluateString(s string, all Values) []string {
	var errs []string

	if n := len([]rune(s)); r.MinLen > 0 && n < r.MinLen {
		errs = append(errs, fmt.Sprintf("must be at least %d characters", r.MinLen))
	} else if r.MaxLen > 0 && n > r.MaxLen {
		errs = append(errs, fmt.Sprintf("must be at most %d characters", r.MaxLen))
	}

	if r.Min != nil || r.Max != nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			errs = append(errs, "must be a number")
		} else {
			if r.Min != nil && f < *r.Min {
				errs = append(errs, fmt.Sprintf("must be at least %v", *r.Min))
			}
			if r.Max != nil && f > *r.Max {
				errs = append(errs, fmt.Sprintf("must be at most %v", *r.Max))
			}
		}
	}

	switch r.Format {
	case FormatNone:
	case FormatYear:
		if y, err := strconv.Atoi(s); err != nil || y < 1900 || y > 2100 {
			errs = append(errs, "must be a four-digit year")
		}
	default:
		if err := validate.Var(s, string(r.Format)); err != nil {
			errs = append(errs, formatMessage(r.Format))
		}
	}

	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		errs = append(errs, "has an invalid format")
	}

	if r.EqualsField != "" {
		other, _ := all[r.EqualsField].(string)
		if s != other {
			errs = append(errs, "does not match")
		}
	}

	return errs
}

func formatMessage(f Format) string {
	switch f {
	case FormatEmail:
		return "must be a valid email address"
	case FormatPhone:
		return "must be a valid phone number"
	case FormatURL:
		return "must be a valid URL"
	default:
		return "has an invalid format"
	}
}

// blank reports whether a raw value counts as absent for presence checks.
func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		// Toggles are never absent; required-ness is checked in Evaluate.
		return false
	case FileHandle:
		return v.Name == ""
	case []Values:
		return len(v) == 0
	default:
		return false
	}
}
