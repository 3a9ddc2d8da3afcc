package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Diagnostics tracks the score, mean max-Q estimate, and mean
// discounted return of each episode and saves them as a gob encoded
// Series.
type Diagnostics struct {
	Series
	filename string
}

// NewDiagnostics creates and returns a new *Diagnostics Tracker which
// saves to filename
func NewDiagnostics(filename string) *Diagnostics {
	return &Diagnostics{filename: filename}
}

// Track records the diagnostics of a finished episode
func (d *Diagnostics) Track(e Episode) {
	d.Append(e)
}

// Save saves the data tracked by the Diagnostics Tracker to disk
func (d *Diagnostics) Save() error {
	file, err := os.Create(d.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(d.Series); err != nil {
		return fmt.Errorf("save: could not encode diagnostics: %w", err)
	}
	return file.Close()
}
