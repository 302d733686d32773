package sensor

import "context"

// Recorder receives every reading a Recorded source hands out.
type Recorder interface {
	RecordReading(r Reading)
	RecordDoors(d DoorState)
}

// Recorded wraps a Source and copies each successful read to its recorders.
type Recorded struct {
	Source
	recs []Recorder
}

// WithRecorder decorates src. Nil recorders are skipped; with none left,
// src is returned unchanged.
func WithRecorder(src Source, recs ...Recorder) Source {
	var kept []Recorder
	for _, r := range recs {
		if r != nil {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return src
	}
	return &Recorded{Source: src, recs: kept}
}

func (s *Recorded) Read(ctx context.Context) (Reading, error) {
	r, err := s.Source.Read(ctx)
	if err != nil {
		return r, err
	}
	for _, rec := range s.recs {
		rec.RecordReading(r)
	}
	return r, nil
}

func (s *Recorded) ReadDoors(ctx context.Context) (DoorState, error) {
	d, err := s.Source.ReadDoors(ctx)
	if err != nil {
		return d, err
	}
	for _, rec := range s.recs {
		rec.RecordDoors(d)
	}
	return d, nil
}
