package progress

import (
	"testing"

	"ref-intake-be/internal/entity"
)

func testForm(fields, target int) *entity.Form {
	f := &entity.Form{TargetRecordCount: target}
	for i := 0; i < fields; i++ {
		f.Fields = append(f.Fields, entity.FormField{Id: string(rune('a' + i))})
	}
	return f
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		fields    int
		target    int
		committed int
		cursor    int
		wantDone  int
		wantTotal int
	}{
		{name: "fresh session", fields: 3, target: 2, committed: 0, cursor: 0, wantDone: 0, wantTotal: 6},
		{name: "mid first record", fields: 3, target: 2, committed: 0, cursor: 2, wantDone: 2, wantTotal: 6},
		{name: "one record committed", fields: 3, target: 2, committed: 1, cursor: 0, wantDone: 3, wantTotal: 6},
		{name: "all committed", fields: 3, target: 2, committed: 2, cursor: 0, wantDone: 6, wantTotal: 6},
		{name: "done clamped to total", fields: 3, target: 2, committed: 2, cursor: 2, wantDone: 6, wantTotal: 6},
		{name: "negative cursor clamped", fields: 3, target: 2, committed: 0, cursor: -1, wantDone: 0, wantTotal: 6},
		{name: "single record form", fields: 4, target: 1, committed: 0, cursor: 3, wantDone: 3, wantTotal: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(testForm(tt.fields, tt.target), tt.committed, tt.cursor)
			if got.Done != tt.wantDone || got.Total != tt.wantTotal {
				t.Errorf("Compute() = %d/%d, want %d/%d", got.Done, got.Total, tt.wantDone, tt.wantTotal)
			}
		})
	}
}
