package playback

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/jazzquiz/internal/cadence"
)

// ExportCadences writes the cadences back to back, separated by a bar of
// rest, to a MIDI file at path.
func ExportCadences(path string, cadences []cadence.Cadence, bpm float64) error {
	if len(cadences) == 0 {
		return fmt.Errorf("nothing to export")
	}
	rec := NewSMFRecorder()
	for i, c := range cadences {
		if i > 0 {
			rec.Rest(DefaultBeatsPerChord)
		}
		if err := PlayCadence(rec, c, bpm); err != nil {
			return fmt.Errorf("failed to render %s: %w", c, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := rec.WriteTo(f); err != nil {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close on write failure.
			_ = cerr
		}
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
