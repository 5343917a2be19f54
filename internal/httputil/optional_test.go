package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Field OptionalString `json:"field"`
	}

	tests := []struct {
		name        string
		json        string
		wantPresent bool
		wantValue   *string
	}{
		{
			name:        "absent field",
			json:        `{}`,
			wantPresent: false,
		},
		{
			name:        "null field",
			json:        `{"field": null}`,
			wantPresent: true,
			wantValue:   nil,
		},
		{
			name:        "empty string",
			json:        `{"field": ""}`,
			wantPresent: true,
			wantValue:   ptr(""),
		},
		{
			name:        "value",
			json:        `{"field": "text/plain"}`,
			wantPresent: true,
			wantValue:   ptr("text/plain"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Field.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.Field.Present, tt.wantPresent)
			}
			if (p.Field.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", p.Field.Value, tt.wantValue)
			}
			if tt.wantValue != nil && *p.Field.Value != *tt.wantValue {
				t.Errorf("Value = %q, want %q", *p.Field.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalInt64Unmarshal(t *testing.T) {
	type payload struct {
		Field OptionalInt64 `json:"field"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Field.Present {
		t.Error("absent field reported present")
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"field": null}`), &null); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !null.Field.Present || null.Field.Value != nil {
		t.Errorf("null field: Present=%v Value=%v", null.Field.Present, null.Field.Value)
	}

	var set payload
	if err := json.Unmarshal([]byte(`{"field": 42}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !set.Field.Present || set.Field.Value == nil || *set.Field.Value != 42 {
		t.Errorf("set field: Present=%v Value=%v", set.Field.Present, set.Field.Value)
	}
}

func ptr(s string) *string { return &s }
