// Package playback renders cadences to sound collaborators. The shipped
// Player writes a Standard MIDI File instead of driving an audio device.
package playback

import (
	"fmt"
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

const (
	// DefaultBPM is used until a chord sequence sets the tempo.
	DefaultBPM = 120.0
	// DefaultBeatsPerChord is the chord length used for cadences.
	DefaultBeatsPerChord = 4

	ticksPerQuarter = 480
	velocity        = 90
	channel         = 0
)

// Player plays chords and notes.
type Player interface {
	PlayChords(chords [][]theory.Note, bpm float64, beatsPerChord int) error
	PlayNotes(notes []theory.Note, seconds float64) error
}

// SMFRecorder is a Player that records into a single-track MIDI file.
type SMFRecorder struct {
	ticks   smf.MetricTicks
	track   smf.Track
	bpm     float64
	started bool
	// rest is the delta carried to the next event.
	rest uint32
}

// NewSMFRecorder returns an empty recorder.
func NewSMFRecorder() *SMFRecorder {
	r := &SMFRecorder{ticks: smf.MetricTicks(ticksPerQuarter), bpm: DefaultBPM}
	r.track.Add(0, smf.MetaMeter(4, 4))
	return r
}

// PlayChords appends each chord as a block lasting beatsPerChord beats.
func (r *SMFRecorder) PlayChords(chords [][]theory.Note, bpm float64, beatsPerChord int) error {
	if bpm <= 0 {
		return fmt.Errorf("invalid tempo %.2f", bpm)
	}
	if beatsPerChord <= 0 {
		beatsPerChord = DefaultBeatsPerChord
	}
	r.setTempo(bpm)
	length := uint32(beatsPerChord) * r.ticks.Ticks4th()
	for _, chord := range chords {
		if err := r.block(chord, length); err != nil {
			return err
		}
	}
	return nil
}

// PlayNotes appends the notes sounding together for the given duration at
// the current tempo.
func (r *SMFRecorder) PlayNotes(notes []theory.Note, seconds float64) error {
	if seconds <= 0 {
		return fmt.Errorf("invalid duration %.2f", seconds)
	}
	r.setTempo(r.bpm)
	beats := seconds * r.bpm / 60
	length := uint32(math.Round(beats * float64(r.ticks.Ticks4th())))
	if length == 0 {
		length = 1
	}
	return r.block(notes, length)
}

// Rest appends silence.
func (r *SMFRecorder) Rest(beats int) {
	if beats > 0 {
		r.rest += uint32(beats) * r.ticks.Ticks4th()
	}
}

// WriteTo writes the recording as a Standard MIDI File.
func (r *SMFRecorder) WriteTo(w io.Writer) (int64, error) {
	tr := make(smf.Track, len(r.track))
	copy(tr, r.track)
	tr.Close(r.rest)
	s := smf.New()
	s.TimeFormat = r.ticks
	if err := s.Add(tr); err != nil {
		return 0, fmt.Errorf("failed to add track: %w", err)
	}
	return s.WriteTo(w)
}

func (r *SMFRecorder) setTempo(bpm float64) {
	if r.started && bpm == r.bpm {
		return
	}
	r.bpm = bpm
	r.started = true
	r.track.Add(r.rest, smf.MetaTempo(bpm))
	r.rest = 0
}

func (r *SMFRecorder) block(notes []theory.Note, length uint32) error {
	if len(notes) == 0 {
		r.rest += length
		return nil
	}
	keys := make([]uint8, len(notes))
	for i, n := range notes {
		if n.MIDI < 0 || n.MIDI > 127 {
			return fmt.Errorf("note %s out of MIDI range", n)
		}
		keys[i] = uint8(n.MIDI)
	}
	for i, key := range keys {
		delta := uint32(0)
		if i == 0 {
			delta = r.rest
		}
		r.track.Add(delta, midi.NoteOn(channel, key, velocity))
	}
	for i, key := range keys {
		delta := uint32(0)
		if i == 0 {
			delta = length
		}
		r.track.Add(delta, midi.NoteOff(channel, key))
	}
	r.rest = 0
	return nil
}

// PlayCadence plays the voicing of every chord in c.
func PlayCadence(p Player, c cadence.Cadence, bpm float64) error {
	chords := make([][]theory.Note, len(c.Chords))
	for i, ch := range c.Chords {
		chords[i] = ch.Voicing()
	}
	return p.PlayChords(chords, bpm, DefaultBeatsPerChord)
}
