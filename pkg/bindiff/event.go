// Package bindiff drives the comparison of two byte streams and produces an
// ordered stream of match, deletion, insertion and substitution events.
package bindiff

import "fmt"

// Kind identifies the type of a diff event.
type Kind uint8

const (
	KindMatch Kind = iota
	KindDelete
	KindInsert
	KindSubstitute
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMatch:
		return "match"
	case KindDelete:
		return "deletion"
	case KindInsert:
		return "insertion"
	case KindSubstitute:
		return "substitution"
	default:
		return "unknown"
	}
}

// Event is one step of the diff. N is the byte count of the event; for a
// substitution, N bytes are replaced pairwise and then Del more bytes of
// stream 1 and Ins more bytes of stream 2 follow.
type Event struct {
	Kind Kind
	N    int64
	Ins  int64
	Del  int64
}

// Match returns a Match(n) event.
func Match(n int64) Event { return Event{Kind: KindMatch, N: n} }

// Delete returns a Delete(n) event.
func Delete(n int64) Event { return Event{Kind: KindDelete, N: n} }

// Insert returns an Insert(n) event.
func Insert(n int64) Event { return Event{Kind: KindInsert, N: n} }

// Substitute returns a Substitute(n, ins, del) event.
func Substitute(n, ins, del int64) Event {
	return Event{Kind: KindSubstitute, N: n, Ins: ins, Del: del}
}

// Advance returns how far the event moves the cursor in stream 1 and stream 2.
func (e Event) Advance() (int64, int64) {
	switch e.Kind {
	case KindMatch:
		return e.N, e.N
	case KindDelete:
		return e.N, 0
	case KindInsert:
		return 0, e.N
	case KindSubstitute:
		return e.N + e.Del, e.N + e.Ins
	default:
		panic(fmt.Sprintf("bindiff: unknown event kind %d", e.Kind))
	}
}

// String formats the event as Match(3), Substitute(2,0,1), ...
func (e Event) String() string {
	switch e.Kind {
	case KindMatch:
		return fmt.Sprintf("Match(%d)", e.N)
	case KindDelete:
		return fmt.Sprintf("Delete(%d)", e.N)
	case KindInsert:
		return fmt.Sprintf("Insert(%d)", e.N)
	case KindSubstitute:
		return fmt.Sprintf("Substitute(%d,%d,%d)", e.N, e.Ins, e.Del)
	default:
		return fmt.Sprintf("Event(%d)", e.Kind)
	}
}
