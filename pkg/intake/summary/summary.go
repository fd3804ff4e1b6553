// Package summary renders committed records into the human-readable review
// block. Pure.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"ref-intake-be/internal/entity"
	"ref-intake-be/pkg/store"
)

// FieldLabel carries the declared label for a field id so a renderer can lay
// out raw records without re-deriving the schema.
type FieldLabel struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// FieldOrder returns the schema's {id, label} pairs in declaration order.
func FieldOrder(form *entity.Form) []FieldLabel {
	out := make([]FieldLabel, 0, len(form.Fields))
	for _, f := range form.Fields {
		out = append(out, FieldLabel{Id: f.Id, Label: f.Label})
	}
	return out
}

// Build renders one labeled block per committed record, separated by a blank
// line. Fields with empty values are omitted rather than shown blank; file
// values render as "<name> (<mime>)".
func Build(form *entity.Form, committed []store.Record) string {
	var b strings.Builder
	for k, rec := range committed {
		if k > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Record %d\n", k+1)
		for _, f := range form.Fields {
			v, ok := rec[f.Id]
			if !ok {
				continue
			}
			line := renderValue(v)
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, "%s: %s\n", f.Label, line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}
	if fv, ok := store.AsFileValue(v); ok {
		return fmt.Sprintf("%s (%s)", fv.Name, fv.Mime)
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
