// Package progress computes how far along a session is. Pure.
package progress

import "ref-intake-be/internal/entity"

type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Compute counts one unit per answered field across all target records.
// Done never exceeds Total and is non-decreasing across forward answers for
// a fixed schema; back and restart may decrease it.
func Compute(form *entity.Form, committedCount, fieldCursor int) Progress {
	perRecord := len(form.Fields)
	total := perRecord * form.TargetRecordCount

	done := committedCount*perRecord + fieldCursor
	if done > total {
		done = total
	}
	if done < 0 {
		done = 0
	}
	return Progress{Done: done, Total: total}
}
