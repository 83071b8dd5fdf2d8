package resync

import "iter"

// CandidateKind says which stream a candidate skips ahead in.
type CandidateKind uint8

const (
	// Deletion skips I bytes of stream 1 and J bytes of stream 2.
	Deletion CandidateKind = iota
	// Insertion skips J bytes of stream 1 and I bytes of stream 2.
	Insertion
)

// String returns the kind name.
func (k CandidateKind) String() string {
	switch k {
	case Deletion:
		return "deletion"
	case Insertion:
		return "insertion"
	default:
		return "unknown"
	}
}

// Candidate is one alignment tried by Synchronize: J substituted bytes
// followed by I-J bytes deleted (or inserted).
type Candidate struct {
	Kind CandidateKind
	I    int64
	J    int64
}

// Offsets returns the positions in stream 1 and stream 2 that the candidate
// aligns, relative to the cursors o1/o2.
func (c Candidate) Offsets(o1, o2 int64) (int64, int64) {
	if c.Kind == Deletion {
		return o1 + c.I, o2 + c.J
	}
	return o1 + c.J, o2 + c.I
}

// Candidates enumerates alignments in search priority order: increasing
// total displacement I, then increasing J, and for equal (I, J) the deletion
// before the insertion. With heuristics, I additionally advances by I/10
// after each exhausted displacement.
func Candidates(maxI int64, heuristics bool) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for i := int64(0); i <= maxI; i++ {
			for j := int64(0); j <= i; j++ {
				if !yield(Candidate{Kind: Deletion, I: i, J: j}) {
					return
				}
				if !yield(Candidate{Kind: Insertion, I: i, J: j}) {
					return
				}
			}
			if heuristics {
				i += i / 10
			}
		}
	}
}
