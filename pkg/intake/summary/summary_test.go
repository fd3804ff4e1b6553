package summary

import (
	"strings"
	"testing"

	"ref-intake-be/internal/entity"
	"ref-intake-be/pkg/store"
)

var reviewForm = &entity.Form{
	TargetRecordCount: 2,
	Fields: []entity.FormField{
		{Id: "name", Kind: entity.FieldKindText, Label: "Name"},
		{Id: "years", Kind: entity.FieldKindNumber, Label: "Years known"},
		{Id: "photo", Kind: entity.FieldKindFile, Label: "Photo"},
	},
}

func TestBuildRendersRecordsInSchemaOrder(t *testing.T) {
	committed := []store.Record{
		{"years": float64(4), "name": "Ada"},
		{"name": "Grace", "photo": store.FileValue{FileId: "f1", Name: "grace.jpg", Mime: "image/jpeg"}},
	}

	got := Build(reviewForm, committed)
	want := "Record 1\n" +
		"Name: Ada\n" +
		"Years known: 4\n" +
		"\n" +
		"Record 2\n" +
		"Name: Grace\n" +
		"Photo: grace.jpg (image/jpeg)"

	if got != want {
		t.Errorf("Build() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildOmitsEmptyValues(t *testing.T) {
	committed := []store.Record{{"name": "Ada", "years": nil}}

	got := Build(reviewForm, committed)
	if strings.Contains(got, "Years known") {
		t.Errorf("Build() rendered empty value: %q", got)
	}
}

func TestBuildRendersFileValueAfterJSONRoundTrip(t *testing.T) {
	// The session store hands back file values as generic maps.
	committed := []store.Record{{
		"name": "Ada",
		"photo": map[string]any{
			"file_id":    "f2",
			"name":       "ada.png",
			"mime":       "image/png",
			"size_bytes": float64(2048),
		},
	}}

	got := Build(reviewForm, committed)
	if !strings.Contains(got, "Photo: ada.png (image/png)") {
		t.Errorf("Build() = %q, want file line", got)
	}
}

func TestBuildWholeNumbersRenderWithoutDecimals(t *testing.T) {
	got := Build(reviewForm, []store.Record{{"years": float64(12)}})
	if !strings.Contains(got, "Years known: 12") || strings.Contains(got, "12.") {
		t.Errorf("Build() = %q, want bare 12", got)
	}
}

func TestFieldOrderFollowsDeclaration(t *testing.T) {
	order := FieldOrder(reviewForm)
	if len(order) != 3 {
		t.Fatalf("FieldOrder() len = %d, want 3", len(order))
	}
	if order[0].Id != "name" || order[1].Id != "years" || order[2].Id != "photo" {
		t.Errorf("FieldOrder() = %+v, want declaration order", order)
	}
	if order[1].Label != "Years known" {
		t.Errorf("FieldOrder()[1].Label = %q", order[1].Label)
	}
}
