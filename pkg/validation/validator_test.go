package validation

import (
	"strings"
	"testing"
)

type testSlot struct {
	Name string `yaml:"name" validate:"required,max=32"`
}

type testNode struct {
	Name   string     `yaml:"name" validate:"required,max=64"`
	Header string     `yaml:"header" validate:"omitempty,color"`
	Level  float64    `yaml:"progress" validate:"gte=0,lte=1"`
	Kind   string     `yaml:"kind" validate:"omitempty,oneof=source filter sink"`
	Slots  []testSlot `yaml:"slots" validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		node    testNode
		wantErr []string
	}{
		{name: "valid", node: testNode{Name: "blur", Header: "#3c78c8", Level: 0.5, Kind: "filter"}},
		{name: "valid with alpha", node: testNode{Name: "blur", Header: "3c78c880"}},
		{name: "missing name", node: testNode{}, wantErr: []string{"name: field is required"}},
		{name: "bad color", node: testNode{Name: "x", Header: "red"}, wantErr: []string{"header:", "not a #RRGGBB"}},
		{name: "progress range", node: testNode{Name: "x", Level: 2}, wantErr: []string{"progress: must not exceed 1"}},
		{name: "kind", node: testNode{Name: "x", Kind: "other"}, wantErr: []string{"kind: must be one of"}},
		{
			name:    "nested and multiple",
			node:    testNode{Header: "#12", Slots: []testSlot{{Name: "ok"}, {}}},
			wantErr: []string{"name: field is required", "header:", "slots[1].name: field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.node)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Struct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Struct() = nil, want error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Struct() = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestStructNil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateColor(t *testing.T) {
	for _, ok := range []string{"#000000", "ffffff", "#A1B2C3D4"} {
		if err := ValidateColor(ok); err != nil {
			t.Errorf("ValidateColor(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if err := ValidateColor(bad); err == nil {
			t.Errorf("ValidateColor(%q) = nil, want error", bad)
		}
	}
}

func TestValidateSlotNames(t *testing.T) {
	if err := ValidateSlotNames("inputs", []string{"a", "b"}); err != nil {
		t.Errorf("ValidateSlotNames() = %v", err)
	}
	if err := ValidateSlotNames("inputs", make([]string, MaxSlots+1)); err == nil {
		t.Error("Expected error for too many slots")
	}
	if err := ValidateSlotNames("outputs", []string{strings.Repeat("x", MaxSlotNameLen+1)}); err == nil {
		t.Error("Expected error for long slot name")
	}
	if err := ValidateSlotNames("outputs", []string{"bad\nname"}); err == nil {
		t.Error("Expected error for control characters")
	}
}
