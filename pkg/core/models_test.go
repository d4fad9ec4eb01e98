package core

import (
	"testing"
)

func TestInteraction(t *testing.T) {
	t.Run("structural equality", func(t *testing.T) {
		a := NewInteraction(E1, R1, -1)
		b := NewInteraction(E1, R1, -1)
		if a != b {
			t.Errorf("expected %v == %v", a, b)
		}
		if a == NewInteraction(E1, R1, 1) {
			t.Errorf("interactions with different valence should differ")
		}
	})

	t.Run("usable as map key", func(t *testing.T) {
		m := map[Interaction]int{NewInteraction(E2, R2, 1): 7}
		if got := m[NewInteraction(E2, R2, 1)]; got != 7 {
			t.Errorf("m[e2r2,1] = %d, want 7", got)
		}
	})

	t.Run("string", func(t *testing.T) {
		if got := NewInteraction(E1, R2, 1).String(); got != "e1r2,1" {
			t.Errorf("String() = %q, want %q", got, "e1r2,1")
		}
	})
}

func TestMoodFor(t *testing.T) {
	tests := []struct {
		valence int
		want    Mood
	}{
		{-5, Pained},
		{-1, Pained},
		{0, Pleased},
		{1, Pleased},
	}
	for _, tt := range tests {
		if got := MoodFor(tt.valence); got != tt.want {
			t.Errorf("MoodFor(%d) = %v, want %v", tt.valence, got, tt.want)
		}
	}
}

func TestMoodString(t *testing.T) {
	for mood, want := range map[Mood]string{Pleased: "PLEASED", Pained: "PAINED", Bored: "BORED"} {
		if got := mood.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(mood), got, want)
		}
	}
}
