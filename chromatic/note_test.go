package chromatic

import (
	"errors"
	"math"
	"testing"
)

func TestNoteNameKnownPitches(t *testing.T) {
	cases := []struct {
		offset int
		want   string
	}{
		{0, "A4"},
		{1, "A#4"},
		{2, "B4"},
		{3, "C5"},
		{-9, "C4"},
		{-10, "B3"},
		{12, "A5"},
		{-57, "C-1"},
		{-58, "B-1"},
	}
	for _, tc := range cases {
		if got := NoteName(tc.offset); got != tc.want {
			t.Fatalf("offset %d: got=%q want=%q", tc.offset, got, tc.want)
		}
	}
}

func TestParseNoteRoundTrip(t *testing.T) {
	for offset := -80; offset <= 80; offset++ {
		name := NoteName(offset)
		got, err := ParseNote(name)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", name, err)
		}
		if got != offset {
			t.Fatalf("ParseNote(%q): got=%d want=%d", name, got, offset)
		}
	}
}

func TestParseNoteAccidentalsAndCase(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"a4", 0},
		{" Bb4 ", 1},
		{"c#5", 4},
		{"Cb5", 2},
		{"E3", -17},
	}
	for _, tc := range cases {
		got, err := ParseNote(tc.in)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseNote(%q): got=%d want=%d", tc.in, got, tc.want)
		}
	}
}

func TestParseNoteRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "A", "H4", "A#", "Ax", "4A", "A+4", "C#+5", "A99999999999"} {
		if _, err := ParseNote(in); !errors.Is(err, ErrInvalidNote) {
			t.Fatalf("ParseNote(%q): expected ErrInvalidNote, got %v", in, err)
		}
	}
}

func TestMIDIOffsetMapping(t *testing.T) {
	if got := MIDIToOffset(69); got != 0 {
		t.Fatalf("MIDI 69: got=%d want=0", got)
	}
	if got := MIDIToOffset(60); got != -9 {
		t.Fatalf("MIDI 60: got=%d want=-9", got)
	}
	for note := 0; note < 128; note++ {
		if got := OffsetToMIDI(MIDIToOffset(note)); got != note {
			t.Fatalf("MIDI round trip %d: got=%d", note, got)
		}
	}
	if NoteName(MIDIToOffset(60)) != "C4" {
		t.Fatalf("MIDI 60 should be C4, got %s", NoteName(MIDIToOffset(60)))
	}
}

func TestNoteAtNearIntLimits(t *testing.T) {
	for _, base := range []int{math.MaxInt, math.MinInt + 12} {
		a, b := NoteAt(base), NoteAt(base-12)
		if a.Name != b.Name {
			t.Fatalf("offset %d: octave step changed pitch class %s -> %s", base, b.Name, a.Name)
		}
		if a.Octave-b.Octave != 1 {
			t.Fatalf("offset %d: octave step = %d, want 1", base, a.Octave-b.Octave)
		}
	}
	if got := NoteAt(math.MaxInt); got.Name != "E" || got.Octave != 4+math.MaxInt/12+1 {
		t.Fatalf("NoteAt(MaxInt) = %+v", got)
	}
	if got := NoteAt(math.MinInt); got.Name != "C#" || got.Octave <= math.MinInt/12 {
		t.Fatalf("NoteAt(MinInt) = %+v", got)
	}
}
