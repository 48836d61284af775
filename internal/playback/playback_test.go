package playback_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
	"github.com/verte-zerg/jazzquiz/internal/playback"
	"github.com/verte-zerg/jazzquiz/internal/theory"
)

type noteEvent struct {
	tick uint32
	key  uint8
	on   bool
}

func readEvents(t *testing.T, data []byte) ([]noteEvent, []float64) {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	var events []noteEvent
	var tempos []float64
	var abs uint32
	for _, ev := range s.Tracks[0] {
		abs += ev.Delta
		var ch, key, vel uint8
		var bpm float64
		msg := midi.Message(ev.Message)
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			events = append(events, noteEvent{tick: abs, key: key, on: true})
		case msg.GetNoteEnd(&ch, &key):
			events = append(events, noteEvent{tick: abs, key: key})
		case ev.Message.GetMetaTempo(&bpm):
			tempos = append(tempos, bpm)
		}
	}
	return events, tempos
}

func TestPlayCadenceWritesOneNoteOnPerTone(t *testing.T) {
	c := cadence.Build(theory.MustParseNote("C"), cadence.Major, cadence.Options{})
	rec := playback.NewSMFRecorder()
	require.NoError(t, playback.PlayCadence(rec, c, 100))

	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf)
	require.NoError(t, err)

	events, tempos := readEvents(t, buf.Bytes())
	require.Len(t, tempos, 1)
	require.InDelta(t, 100, tempos[0], 0.01)

	want := 0
	for _, ch := range c.Chords {
		want += len(ch.Tones())
	}
	ons := 0
	for _, ev := range events {
		if ev.on {
			ons++
		}
	}
	require.Equal(t, want, ons)

	// The second chord starts one bar after the first.
	secondRoot := uint8(c.Chords[1].Voicing()[0].MIDI)
	found := false
	for _, ev := range events {
		if ev.on && ev.key == secondRoot && ev.tick == 4*480 {
			found = true
		}
	}
	require.True(t, found, "expected %d to start at tick 1920: %+v", secondRoot, events)
}

func TestPlayNotesLength(t *testing.T) {
	rec := playback.NewSMFRecorder()
	notes := []theory.Note{theory.MustParseNote("C4"), theory.MustParseNote("E4")}
	require.NoError(t, rec.PlayNotes(notes, 1))

	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf)
	require.NoError(t, err)
	events, _ := readEvents(t, buf.Bytes())
	require.Len(t, events, 4)
	// One second at 120 bpm is two beats.
	require.Equal(t, uint32(960), events[2].tick)
	require.False(t, events[2].on)
}

func TestRecorderRejectsBadInput(t *testing.T) {
	rec := playback.NewSMFRecorder()
	require.Error(t, rec.PlayChords(nil, 0, 4))
	require.Error(t, rec.PlayNotes(nil, 0))
	high := theory.NewNote(130, true)
	require.Error(t, rec.PlayChords([][]theory.Note{{high}}, 120, 4))
}

func TestExportCadences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midi", "drill.mid")
	cs := []cadence.Cadence{
		cadence.Build(theory.MustParseNote("F"), cadence.Backdoor, cadence.Options{}),
		cadence.Build(theory.MustParseNote("Db"), cadence.BirdChanges, cadence.Options{}),
	}
	require.NoError(t, playback.ExportCadences(path, cs, 140))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	events, _ := readEvents(t, data)
	ons := 0
	for _, ev := range events {
		if ev.on {
			ons++
		}
	}
	want := 0
	for _, c := range cs {
		for _, ch := range c.Chords {
			want += len(ch.Tones())
		}
	}
	require.Equal(t, want, ons)

	require.Error(t, playback.ExportCadences(path, nil, 120))
}
