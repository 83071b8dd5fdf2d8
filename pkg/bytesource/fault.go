package bytesource

import "fmt"

// FaultError describes a failed ByteAt call. It travels as a panic value
// out of the read path and is recovered by Guard.
type FaultError struct {
	Name   string
	Offset int64
	Err    error
}

// Error implements the error interface.
func (e *FaultError) Error() string {
	return fmt.Sprintf("'%s' at offset %d: %v", e.Name, e.Offset, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FaultError) Unwrap() error {
	return e.Err
}

// Guard recovers a *FaultError panic into *errp. Other panics are re-raised.
//
//	func run() (err error) {
//		defer bytesource.Guard(&err)
//		...
//	}
func Guard(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	fault, ok := r.(*FaultError)
	if !ok {
		panic(r)
	}
	*errp = fault
}
