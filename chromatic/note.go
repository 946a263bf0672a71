package chromatic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNote is returned by ParseNote for text that is not a note name.
var ErrInvalidNote = errors.New("invalid note")

const (
	// a4MIDINote is the MIDI note number of the reference pitch.
	a4MIDINote = 69
	// a4FromC is the pitch-class index of A counted from C.
	a4FromC = 9
	// maxOctave keeps parsed offsets clear of int overflow.
	maxOctave = math.MaxInt32
)

var pitchClasses = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is a chromatic pitch identified by its offset from A4.
type Note struct {
	Offset int
	Name   string // pitch class, e.g. "C#"
	Octave int    // scientific pitch notation, A4 is octave 4
}

// NoteAt returns the note at the given semitone offset from A4.
func NoteAt(offset int) Note {
	// Split before adding the A offset so offsets near the int limits do not wrap.
	fromC := mod(offset, 12) + a4FromC
	return Note{
		Offset: offset,
		Name:   pitchClasses[fromC%12],
		Octave: 4 + floorDiv(offset, 12) + fromC/12,
	}
}

func (n Note) String() string {
	return n.Name + strconv.Itoa(n.Octave)
}

// NoteName returns the scientific pitch name for an offset, e.g. "A4" for 0.
func NoteName(offset int) string {
	return NoteAt(offset).String()
}

// ParseNote parses names like "A4", "c#5", "Bb3" or "C-1" into an offset from A4.
func ParseNote(s string) (int, error) {
	ss := strings.TrimSpace(s)
	if len(ss) < 2 {
		return 0, fmt.Errorf("%w %q: too short", ErrInvalidNote, s)
	}

	var class int
	switch ss[0] {
	case 'c', 'C':
		class = 0
	case 'd', 'D':
		class = 2
	case 'e', 'E':
		class = 4
	case 'f', 'F':
		class = 5
	case 'g', 'G':
		class = 7
	case 'a', 'A':
		class = 9
	case 'b', 'B':
		class = 11
	default:
		return 0, fmt.Errorf("%w %q: unrecognized letter", ErrInvalidNote, s)
	}

	rest := ss[1:]
	switch rest[0] {
	case '#':
		class++
		rest = rest[1:]
	case 'b':
		class--
		rest = rest[1:]
	}

	if rest == "" || rest[0] == '+' {
		return 0, fmt.Errorf("%w %q: bad octave", ErrInvalidNote, s)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave > maxOctave || octave < -maxOctave {
		return 0, fmt.Errorf("%w %q: bad octave", ErrInvalidNote, s)
	}
	return (octave-4)*12 + class - a4FromC, nil
}

// MIDIToOffset converts a MIDI note number to a semitone offset from A4.
func MIDIToOffset(note int) int {
	return note - a4MIDINote
}

// OffsetToMIDI converts a semitone offset from A4 to a MIDI note number.
func OffsetToMIDI(offset int) int {
	return offset + a4MIDINote
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
