package schema

import (
	"testing"

	"github.com/aretw0/strata/pkg/domain"
)

func TestTemplateElementCount(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
		want int
	}{
		{"fixed vector", Of(7), 7},
		{"fixed matrix", Of(4, 8), 32},
		{"batch scaled", PerBatch(16), 16},
		{"step scaled", PerStep(3, 5), 15},
		{"step with context", PerStep(9).WithContext(2), 9},
	}

	for _, tt := range tests {
		if got := tt.tmpl.ElementCount(); got != tt.want {
			t.Errorf("%s: ElementCount() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTemplateBufferType(t *testing.T) {
	tests := []struct {
		tmpl Template
		want domain.BufferType
	}{
		{Of(4, 8), domain.BufferGlobal},
		{PerBatch(16), domain.BufferBatch},
		{PerStep(16), domain.BufferSequence},
	}

	for _, tt := range tests {
		if got := tt.tmpl.BufferType(); got != tt.want {
			t.Errorf("BufferType() = %v, want %v", got, tt.want)
		}
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    Template
		wantErr bool
	}{
		{"ok fixed", Of(4, 8), false},
		{"ok batch", PerBatch(16), false},
		{"ok step with context", PerStep(16).WithContext(1), false},
		{"zero dim", Of(0), true},
		{"negative dim", Of(-3), true},
		{"no fixed dims", Template{dims: []Dim{Batch}}, true},
		{"time without batch", Template{dims: []Dim{Time, 4}}, true},
		{"wildcard after fixed", Template{dims: []Dim{4, Batch}}, true},
		{"context without time", PerBatch(4).WithContext(1), true},
		{"negative context", PerStep(4).WithContext(-1), true},
	}

	for _, tt := range tests {
		err := tt.tmpl.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestTemplateAttrs(t *testing.T) {
	attrs := PerStep(11).WithContext(3).Attrs()

	shape, ok := attrs["@shape"].([]any)
	if !ok {
		t.Fatalf("@shape missing or wrong type: %v", attrs["@shape"])
	}
	if len(shape) != 3 || shape[0] != "T" || shape[1] != "B" || shape[2] != 11 {
		t.Errorf("@shape = %v, want [T B 11]", shape)
	}
	if attrs["@context_size"] != 3 {
		t.Errorf("@context_size = %v, want 3", attrs["@context_size"])
	}

	if _, ok := Of(4).Attrs()["@context_size"]; ok {
		t.Error("zero context size should be omitted from attrs")
	}
}
