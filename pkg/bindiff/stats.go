package bindiff

// Stats totals diff events per kind. Byte counts are per stream: a
// substitution of n bytes with del and ins tails counts n+del bytes of
// stream 1 and n+ins bytes of stream 2.
type Stats struct {
	Matched      int64
	Deleted      int64
	Inserted     int64
	Substituted1 int64
	Substituted2 int64
	Counts       [4]int
}

// Add accounts for ev.
func (s *Stats) Add(ev Event) {
	if int(ev.Kind) < len(s.Counts) {
		s.Counts[ev.Kind]++
	}
	switch ev.Kind {
	case KindMatch:
		s.Matched += ev.N
	case KindDelete:
		s.Deleted += ev.N
	case KindInsert:
		s.Inserted += ev.N
	case KindSubstitute:
		s.Substituted1 += ev.N + ev.Del
		s.Substituted2 += ev.N + ev.Ins
	}
}

// Identical reports whether every event seen was a match.
func (s *Stats) Identical() bool {
	return s.Deleted == 0 && s.Inserted == 0 && s.Substituted1 == 0 && s.Substituted2 == 0
}

// Events returns the number of events seen.
func (s *Stats) Events() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}
