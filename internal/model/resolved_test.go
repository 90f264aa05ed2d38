package model

import (
	"encoding/json"
	"testing"
)

func TestEmpty_IsSentinel(t *testing.T) {
	e := Empty()
	if e.Text != "" || !e.Rect.IsZero() {
		t.Errorf("Empty() = %+v, want blank text and zero rect", e)
	}
	if !e.IsEmpty() {
		t.Error("Empty().IsEmpty() = false")
	}
}

func TestNewResolvedText_Pairing(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 100, Height: 30}
	tests := []struct {
		name string
		text string
		rect Rect
		want ResolvedText
	}{
		{"text and rect", "Hello", rect, ResolvedText{Text: "Hello", Rect: rect}},
		{"blank text drops rect", "   ", rect, Empty()},
		{"empty text drops rect", "", rect, Empty()},
		{"zero rect drops text", "Hello", Rect{}, Empty()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewResolvedText(tt.text, tt.rect)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.IsEmpty() != got.Rect.IsZero() {
				t.Errorf("pairing broken: %+v", got)
			}
		})
	}
}

func TestResolvedText_JSONKeys(t *testing.T) {
	data, err := json.Marshal(NewResolvedText("OK", Rect{X: 1, Y: 2, Width: 3, Height: 4}))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"text", "rect"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
}
