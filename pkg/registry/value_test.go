// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"encoding/json"
	"testing"
)

func TestValue_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string is bare", String("t3.micro"), "t3.micro"},
		{"empty string", String(""), ""},
		{"integer number drops fraction", Number(20), "20"},
		{"fractional number", Number(2.5), "2.5"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null is empty", Value{}, ""},
		{"list renders as JSON", List(String("a"), Number(1)), `["a",1]`},
		{"map renders as JSON", Map(map[string]Value{"env": String("dev")}), `{"env":"dev"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.value.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := Map(map[string]Value{
		"name":     String("web"),
		"replicas": Number(3),
		"debug":    Bool(false),
		"zones":    List(String("a"), String("b")),
		"nothing":  {},
	})

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Value
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Kind() != KindMap {
		t.Fatalf("Kind() = %v, want KindMap", decoded.Kind())
	}

	again, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("re-Marshal() error = %v", err)
	}
	if string(raw) != string(again) {
		t.Errorf("round trip changed serialization:\n first = %s\nsecond = %s", raw, again)
	}
}

func TestValue_UnmarshalInfersKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{"null", `null`, KindNull},
		{"string", `"x"`, KindString},
		{"number", `42`, KindNumber},
		{"bool", `true`, KindBool},
		{"array", `[1,2]`, KindList},
		{"object", `{"a":1}`, KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var v Value
			if err := json.Unmarshal([]byte(tt.raw), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
			}
			if v.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.want)
			}
		})
	}
}

func TestFromAny(t *testing.T) {
	t.Parallel()

	v, err := FromAny(map[string]any{"size": 20, "type": "gp3"})
	if err != nil {
		t.Fatalf("FromAny() error = %v", err)
	}
	if v.Kind() != KindMap {
		t.Fatalf("Kind() = %v, want KindMap", v.Kind())
	}
	if got := v.Text(); got != `{"size":20,"type":"gp3"}` {
		t.Errorf("Text() = %q", got)
	}
}
