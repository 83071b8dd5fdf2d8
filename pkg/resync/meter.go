package resync

import (
	"fmt"
	"io"
)

// Progress line cadence.
const (
	matchEvery      = 256 * 1024
	searchFirst     = 20
	searchHeuristic = 10
	searchExhaust   = 100
)

// Meter writes carriage-return progress lines during long scans and
// searches. A nil *Meter is valid and silent.
type Meter struct {
	out    io.Writer
	match  int
	scan   int
	search int
}

// NewMeter returns a Meter writing to out (normally stderr).
func NewMeter(out io.Writer) *Meter {
	return &Meter{
		out:    out,
		match:  matchEvery,
		scan:   matchEvery,
		search: searchFirst,
	}
}

func (m *Meter) matched(i1, i2 int64) {
	if m == nil {
		return
	}
	m.match--
	if m.match == 0 {
		m.match = matchEvery
		fmt.Fprintf(m.out, "mat(%5dK,%5dK)  \r", i1>>10, i2>>10)
	}
}

func (m *Meter) scanned(i1, i2 int64) {
	if m == nil {
		return
	}
	m.scan--
	if m.scan == 0 {
		m.scan = matchEvery
		fmt.Fprintf(m.out, "syn(%5dK,%5dK)  \r", i1>>10, i2>>10)
	}
}

func (m *Meter) searching(i int64, heuristics bool) {
	if m == nil {
		return
	}
	m.search--
	if m.search > 0 {
		return
	}
	mode := "exhaustive"
	m.search = searchExhaust
	if heuristics {
		mode = "heuristic"
		m.search = searchHeuristic
	}
	fmt.Fprintf(m.out, "syncing byte range%8d (%s)\r", i, mode)
}
