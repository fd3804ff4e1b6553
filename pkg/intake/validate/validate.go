// Package validate turns raw user text into the typed, canonical value a
// field specification demands. It is pure: no clock, no store, no logging.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ref-intake-be/internal/entity"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Accepted input layouts for date fields. The resolved value is always
// re-rendered as YYYY-MM-DD regardless of which layout matched.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

const CanonicalDateLayout = "2006-01-02"

// Field validates raw text against a field spec and returns the canonical
// typed value. The error message, when non-nil, is user-correctable and is
// meant to be re-emitted verbatim as the next prompt.
func Field(f *entity.FormField, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch f.Kind {
	case entity.FieldKindText:
		return text(f, raw)
	case entity.FieldKindNumber:
		return number(f, raw)
	case entity.FieldKindDate:
		return date(f, raw)
	case entity.FieldKindChoice:
		return choice(f, raw)
	case entity.FieldKindFile:
		// File fields never accept text. The caller re-prompts without
		// advancing the cursor.
		return nil, fmt.Errorf("%s has to be uploaded as a file, please use the upload button", f.Label)
	default:
		return nil, fmt.Errorf("unsupported field kind %q", f.Kind)
	}
}

func text(f *entity.FormField, raw string) (any, error) {
	if raw == "" {
		if f.Required {
			return nil, fmt.Errorf("I need a value for %s", f.Label)
		}
		return "", nil
	}
	if f.IsEmail && !emailRx.MatchString(raw) {
		return nil, fmt.Errorf("%q doesn't look like an email address, please try again", raw)
	}
	return raw, nil
}

func number(f *entity.FormField, raw string) (any, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%q is not a number, please enter a numeric value for %s", raw, f.Label)
	}
	if f.Min != nil && n < *f.Min {
		return nil, fmt.Errorf("%s must be at least %s", f.Label, formatBound(*f.Min))
	}
	if f.Max != nil && n > *f.Max {
		return nil, fmt.Errorf("%s must be at most %s", f.Label, formatBound(*f.Max))
	}
	return n, nil
}

func date(f *entity.FormField, raw string) (any, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(CanonicalDateLayout), nil
		}
	}
	return nil, fmt.Errorf("I couldn't read %q as a date, please use a format like 2006-01-02", raw)
}

func choice(f *entity.FormField, raw string) (any, error) {
	// A bare 1-based index selects the option at that position.
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1], nil
	}
	for _, opt := range f.Options {
		if strings.EqualFold(opt, raw) {
			return opt, nil
		}
	}
	return nil, fmt.Errorf("please pick one of: %s", strings.Join(f.Options, ", "))
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
