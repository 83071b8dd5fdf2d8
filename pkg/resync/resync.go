// Package resync finds where two byte streams agree again after they diverge.
//
// All functions are pure with respect to the streams: the only state is the
// cursor pair passed in by the caller. A Meter may be supplied to report
// progress on stderr; it never influences results.
package resync

// Stream is a finite byte sequence with random single-byte access.
// *bytesource.Source satisfies it.
type Stream interface {
	ByteAt(i int64) byte
	Size() int64
}

// Result is the outcome of a resynchronization: Sub bytes substituted on
// both sides, followed by Del bytes present only in stream 1 or Ins bytes
// present only in stream 2.
type Result struct {
	Sub int64
	Ins int64
	Del int64
}

// Options controls the general resynchronization search.
type Options struct {
	// MinMatch is the number of equal bytes required to declare a sync point.
	MinMatch int64

	// Heuristics enables boundary trimming and the accelerated i += i/10 step.
	Heuristics bool

	// Meter receives progress notifications. Nil disables them.
	Meter *Meter
}

// MatchRun returns the length of the run of equal bytes starting at i1 in s1
// and i2 in s2, bounded by the end of either stream.
func MatchRun(s1 Stream, i1 int64, s2 Stream, i2 int64, meter *Meter) int64 {
	size1, size2 := s1.Size(), s2.Size()
	var n int64
	for i1 < size1 && i2 < size2 && s1.ByteAt(i1) == s2.ByteAt(i2) {
		n++
		i1++
		i2++
		meter.matched(i1, i2)
	}
	return n
}

// equalRun reports whether minMatch bytes agree at o1/o2.
func equalRun(s1 Stream, o1 int64, s2 Stream, o2 int64, minMatch int64) bool {
	if s1.Size()-o1 < minMatch || s2.Size()-o2 < minMatch {
		return false
	}
	for k := range minMatch {
		if s1.ByteAt(o1+k) != s2.ByteAt(o2+k) {
			return false
		}
	}
	return true
}

// Synchronize searches for the nearest sync point after the cursors o1/o2.
//
// If one stream is exhausted the rest of the other is reported as a pure
// insertion or deletion. Otherwise candidates are tried in the order given by
// Candidates; the first one with MinMatch equal bytes wins. If none is found
// the common remainder is a substitution and the excess of the longer stream
// is a deletion or insertion.
func Synchronize(s1 Stream, o1 int64, s2 Stream, o2 int64, opts Options) Result {
	size1, size2 := s1.Size(), s2.Size()

	if o1 == size1 {
		return Result{Ins: size2 - o2}
	}
	if o2 == size2 {
		return Result{Del: size1 - o1}
	}

	rem1, rem2 := size1-o1, size2-o2
	maxI := max(rem1, rem2) - opts.MinMatch

	lastI := int64(-1)
	for c := range Candidates(maxI, opts.Heuristics) {
		if c.I != lastI {
			lastI = c.I
			opts.Meter.searching(c.I, opts.Heuristics)
		}

		p1, p2 := c.Offsets(o1, o2)
		if !equalRun(s1, p1, s2, p2, opts.MinMatch) {
			continue
		}

		i, j := c.I, c.J
		if opts.Heuristics {
			for i > 0 && j > 0 {
				q1, q2 := Candidate{Kind: c.Kind, I: i - 1, J: j - 1}.Offsets(o1, o2)
				if s1.ByteAt(q1) != s2.ByteAt(q2) {
					break
				}
				i--
				j--
			}
		}

		if c.Kind == Deletion {
			return Result{Sub: j, Del: i - j}
		}
		return Result{Sub: j, Ins: i - j}
	}

	sub := min(rem1, rem2)
	return Result{Sub: sub, Del: rem1 - sub, Ins: rem2 - sub}
}

// SynchronizeSubstOnly scans forward from o1/o2 while the streams disagree
// and returns the length of the substituted run: the offset just past the
// last mismatch once minMatch equal bytes follow it, or the distance to the
// end of the shorter stream.
func SynchronizeSubstOnly(s1 Stream, o1 int64, s2 Stream, o2 int64, minMatch int64, meter *Meter) int64 {
	size1, size2 := s1.Size(), s2.Size()
	mismatch := int64(-1)
	i := int64(0)
	for i1, i2 := o1, o2; i1 < size1 && i2 < size2 && i-mismatch <= minMatch; i, i1, i2 = i+1, i1+1, i2+1 {
		if s1.ByteAt(i1) != s2.ByteAt(i2) {
			mismatch = i
		}
		meter.scanned(i1, i2)
	}
	if i-mismatch > minMatch {
		return mismatch + 1
	}
	return i
}
