package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWidgetItem_CloneDoesNotShareMetadata(t *testing.T) {
	orig := WidgetItem{ID: "1", Type: "x", Metadata: map[string]string{"a": "1"}}
	c := orig.Clone()
	c.Metadata["a"] = "2"

	if orig.Metadata["a"] != "1" {
		t.Fatalf("original metadata mutated: %v", orig.Metadata)
	}
}

func TestWidgetItem_CloneNilMetadata(t *testing.T) {
	orig := WidgetItem{ID: "1", RawValue: true}
	if diff := cmp.Diff(orig, orig.Clone()); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetItem_WithMetadata(t *testing.T) {
	orig := WidgetItem{ID: "1", RawValue: true, Metadata: map[string]string{"keep": "yes"}}
	got := orig.WithMetadata("inverse", "true")

	want := WidgetItem{ID: "1", RawValue: true, Metadata: map[string]string{"keep": "yes", "inverse": "true"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("WithMetadata mismatch (-want +got):\n%s", diff)
	}
	if _, ok := orig.Metadata["inverse"]; ok {
		t.Fatal("original item should be untouched")
	}
}

func TestWidgetItem_WithMetadataOnNilMap(t *testing.T) {
	got := WidgetItem{}.WithMetadata("display", "progress")
	if v, ok := got.Meta("display"); !ok || v != "progress" {
		t.Fatalf("Meta(display) = %q, %v", v, ok)
	}
}

func TestWidgetItem_MetaNilMap(t *testing.T) {
	if v, ok := (WidgetItem{}).Meta("inverse"); ok || v != "" {
		t.Fatalf("Meta on nil map = %q, %v; want empty, false", v, ok)
	}
}

func TestStatusData_ModelID(t *testing.T) {
	tests := []struct {
		name string
		data *StatusData
		want string
	}{
		{"nil payload", nil, ""},
		{"no model", &StatusData{}, ""},
		{"model", &StatusData{Model: &ModelInfo{ID: "claude-sonnet-4-5"}}, "claude-sonnet-4-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.ModelID(); got != tt.want {
				t.Errorf("ModelID() = %q, want %q", got, tt.want)
			}
		})
	}
}
