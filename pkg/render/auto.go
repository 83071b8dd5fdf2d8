package render

import (
	"fmt"

	"github.com/yaklabco/qdiff/pkg/resync"
)

// Auto-detection parameters.
const (
	SampleSize        = 10000
	hexThreshold      = 10.0
	formattedNewlines = 1.0
)

// Sample describes the leading bytes of both inputs.
type Sample struct {
	// Bytes is the number of bytes inspected over both inputs.
	Bytes int

	// Newline and NonASCII are percentages of Bytes.
	Newline  float64
	NonASCII float64
}

// SampleStreams inspects up to SampleSize bytes from the start of each stream.
// A byte counts as non-ASCII when it is NUL or above 126.
func SampleStreams(s1, s2 resync.Stream) Sample {
	var newline, nonASCII, n int
	for _, s := range []resync.Stream{s1, s2} {
		limit := min(s.Size(), SampleSize)
		for i := range limit {
			b := s.ByteAt(i)
			if b == '\n' {
				newline++
			}
			if b > 126 || b == 0 {
				nonASCII++
			}
		}
		n += int(limit)
	}

	sample := Sample{Bytes: n}
	if n > 0 {
		sample.Newline = float64(newline) * 100 / float64(n)
		sample.NonASCII = float64(nonASCII) * 100 / float64(n)
	}
	return sample
}

// Mode returns the display mode suggested by the sample.
func (s Sample) Mode() Mode {
	switch {
	case s.NonASCII > hexThreshold:
		return ModeHex
	case s.Newline < formattedNewlines:
		return ModeUnformatted
	default:
		return ModeFormatted
	}
}

// Reason explains the choice made by Mode.
func (s Sample) Reason() string {
	switch s.Mode() {
	case ModeHex:
		return fmt.Sprintf("files contain %.1f%% > %.1f%% non ascii chars", s.NonASCII, hexThreshold)
	case ModeUnformatted:
		return fmt.Sprintf("files contain %.1f%% < %.1f%% newline chars", s.Newline, formattedNewlines)
	default:
		return fmt.Sprintf("files contain %.1f%% >= %.1f%% newline chars", s.Newline, formattedNewlines)
	}
}
