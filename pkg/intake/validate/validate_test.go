package validate

import (
	"testing"

	"ref-intake-be/internal/entity"
)

func fptr(v float64) *float64 { return &v }

func TestFieldText(t *testing.T) {
	tests := []struct {
		name    string
		field   entity.FormField
		raw     string
		want    any
		wantErr bool
	}{
		{
			name:  "plain text passes through trimmed",
			field: entity.FormField{Id: "name", Kind: entity.FieldKindText, Label: "your name", Required: true},
			raw:   "  Ada Lovelace  ",
			want:  "Ada Lovelace",
		},
		{
			name:    "required empty text rejected",
			field:   entity.FormField{Id: "name", Kind: entity.FieldKindText, Label: "your name", Required: true},
			raw:     "   ",
			wantErr: true,
		},
		{
			name:  "optional empty text yields empty string",
			field: entity.FormField{Id: "nick", Kind: entity.FieldKindText, Label: "nickname"},
			raw:   "",
			want:  "",
		},
		{
			name:  "valid email accepted",
			field: entity.FormField{Id: "email", Kind: entity.FieldKindText, Label: "email", IsEmail: true},
			raw:   "ada@example.com",
			want:  "ada@example.com",
		},
		{
			name:    "email without domain rejected",
			field:   entity.FormField{Id: "email", Kind: entity.FieldKindText, Label: "email", IsEmail: true},
			raw:     "ada@example",
			wantErr: true,
		},
		{
			name:    "email with spaces rejected",
			field:   entity.FormField{Id: "email", Kind: entity.FieldKindText, Label: "email", IsEmail: true},
			raw:     "ada lovelace@example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(&tt.field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Field() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Field() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldNumber(t *testing.T) {
	field := entity.FormField{
		Id:    "years",
		Kind:  entity.FieldKindNumber,
		Label: "years known",
		Min:   fptr(0),
		Max:   fptr(80),
	}

	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "integer", raw: "12", want: 12},
		{name: "decimal", raw: "3.5", want: 3.5},
		{name: "at lower bound", raw: "0", want: 0},
		{name: "at upper bound", raw: "80", want: 80},
		{name: "below min", raw: "-1", wantErr: true},
		{name: "above max", raw: "81", wantErr: true},
		{name: "not numeric", raw: "twelve", wantErr: true},
		{name: "NaN rejected", raw: "NaN", wantErr: true},
		{name: "infinity rejected", raw: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(&field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Field(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Field(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFieldDate(t *testing.T) {
	field := entity.FormField{Id: "since", Kind: entity.FieldKindDate, Label: "known since"}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "canonical layout", raw: "2024-03-01", want: "2024-03-01"},
		{name: "slash layout", raw: "2024/03/01", want: "2024-03-01"},
		{name: "day first", raw: "01/03/2024", want: "2024-03-01"},
		{name: "long month name", raw: "March 1, 2024", want: "2024-03-01"},
		{name: "short month name", raw: "Mar 1, 2024", want: "2024-03-01"},
		{name: "day month year words", raw: "1 March 2024", want: "2024-03-01"},
		{name: "gibberish", raw: "sometime last spring", wantErr: true},
		{name: "impossible date", raw: "2024-13-45", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(&field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Field(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Field(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFieldChoice(t *testing.T) {
	field := entity.FormField{
		Id:      "relationship",
		Kind:    entity.FieldKindChoice,
		Label:   "relationship",
		Options: []string{"Friend", "Colleague", "Family"},
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "index selects option", raw: "2", want: "Colleague"},
		{name: "first index", raw: "1", want: "Friend"},
		{name: "exact label", raw: "Family", want: "Family"},
		{name: "case-insensitive label", raw: "fRIEND", want: "Friend"},
		{name: "zero index out of range", raw: "0", wantErr: true},
		{name: "index past end", raw: "4", wantErr: true},
		{name: "unknown label", raw: "Acquaintance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(&field, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Field(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Field(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFieldFileRejectsText(t *testing.T) {
	field := entity.FormField{Id: "photo", Kind: entity.FieldKindFile, Label: "a photo"}

	if _, err := Field(&field, "here you go"); err == nil {
		t.Fatal("expected error for text answer on file field")
	}
}
