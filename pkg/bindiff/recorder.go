package bindiff

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Render implements Sink.
func (r *Recorder) Render(ev Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Totals returns the bytes the recorded events consume from each stream.
func (r *Recorder) Totals() (int64, int64) {
	var t1, t2 int64
	for _, ev := range r.Events {
		a1, a2 := ev.Advance()
		t1 += a1
		t2 += a2
	}
	return t1, t2
}
