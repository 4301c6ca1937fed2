package replay

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Record is one event as written to the CSV log.
type Record struct {
	Seq    int    `csv:"seq"`
	Step   int    `csv:"step"`
	Clock  uint64 `csv:"clock"`
	Kind   string `csv:"kind"`
	ID     string `csv:"id"`
	Entity string `csv:"entity"`
	Player string `csv:"player"`
	X      int64  `csv:"x"`
	Y      int64  `csv:"y"`
	Score  uint32 `csv:"score"`
}

// Recorder captures events as Records. The clock column is read from the
// engine at emission time, which during a Time action is the clock of the
// tick being reported.
type Recorder struct {
	clock    func() uint64
	step     int
	records  []Record
	entities map[engine.ID]engine.EntityKind

	headerWritten bool
	flushed       int
}

// NewRecorder returns a recorder stamping events with e's clock.
func NewRecorder(e *engine.Engine) *Recorder {
	return &Recorder{
		clock:    e.Clock,
		entities: make(map[engine.ID]engine.EntityKind),
	}
}

// Begin marks the start of step i.
func (r *Recorder) Begin(i int) {
	r.step = i
}

// Record appends ev.
func (r *Recorder) Record(ev engine.Event) {
	rec := Record{
		Seq:   len(r.records),
		Step:  r.step,
		Clock: r.clock(),
		Kind:  ev.Kind(),
	}

	switch ev := ev.(type) {
	case engine.CreateEvent:
		r.entities[ev.ID] = ev.Entity
		rec.ID = formatID(ev.ID)
		rec.Entity = ev.Entity.String()
		rec.X, rec.Y = ev.X, ev.Y
	case engine.MoveEvent:
		rec.ID = formatID(ev.ID)
		if kind, ok := r.entities[ev.ID]; ok {
			rec.Entity = kind.String()
		}
		rec.X, rec.Y = ev.X, ev.Y
	case engine.DestroyEvent:
		rec.ID = formatID(ev.ID)
		if kind, ok := r.entities[ev.ID]; ok {
			rec.Entity = kind.String()
		}
		delete(r.entities, ev.ID)
	case engine.GoalEvent:
		rec.Player = ev.Player.String()
		rec.Score = ev.Score
	}

	r.records = append(r.records, rec)
}

// Sink returns a sink that records each event and then passes it to next.
func (r *Recorder) Sink(next engine.Sink) engine.Sink {
	return func(ev engine.Event) {
		r.Record(ev)
		if next != nil {
			next(ev)
		}
	}
}

// Records returns everything captured so far.
func (r *Recorder) Records() []Record {
	return r.records
}

// WriteCSV writes all records, with a header, to w.
func (r *Recorder) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(r.records, w); err != nil {
		return fmt.Errorf("replay: write csv: %w", err)
	}
	return nil
}

// Flush appends the records captured since the previous Flush to w. The
// first call writes the header.
func (r *Recorder) Flush(w io.Writer) error {
	pending := r.records[r.flushed:]
	if len(pending) == 0 {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(pending, w); err != nil {
			return fmt.Errorf("replay: write csv: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(pending, w); err != nil {
			return fmt.Errorf("replay: write csv: %w", err)
		}
	}
	r.flushed = len(r.records)
	return nil
}

// WriteFile writes all records to a new CSV file at path.
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path) //#nosec G304 -- user-selected output path
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := r.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV loads records previously written by WriteCSV.
func ReadCSV(rd io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(rd, &records); err != nil {
		return nil, fmt.Errorf("replay: read csv: %w", err)
	}
	return records, nil
}

func formatID(id engine.ID) string {
	return strconv.FormatUint(uint64(id), 10)
}
