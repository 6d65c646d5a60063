package core

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single clause", "coffee 150", []string{"coffee 150"}},
		{"and boundary", "coffee 150 and uber 300", []string{"coffee 150", "uber 300"}},
		{"comma boundary", "coffee 150, uber 300", []string{"coffee 150", "uber 300"}},
		{"ampersand boundary", "coffee 150 & uber 300", []string{"coffee 150", "uber 300"}},
		{"plus boundary", "coffee 150 + uber 300", []string{"coffee 150", "uber 300"}},
		{"mixed boundaries", "chai 20, samosa 30 and auto 50", []string{"chai 20", "samosa 30", "auto 50"}},
		{"uppercase AND", "coffee 150 AND uber 300", []string{"coffee 150", "uber 300"}},
		{"and inside a word is kept", "brand new shoes 900", []string{"brand new shoes 900"}},
		{"blank clauses dropped", "coffee 150,, , uber 300", []string{"coffee 150", "uber 300"}},
		{"whitespace only", "   ", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Segment(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}
