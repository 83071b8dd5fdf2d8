// Package bytesource provides a read-only, randomly indexable view of a file
// backed by a small direct-mapped cache of fixed-size slots.
//
// Memory use is bounded by numSlots*slotSize regardless of the file size.
// The cache is tuned for quasi-sequential access with short backtracking:
// two far-apart regions that map to the same slot evict each other on every
// access.
package bytesource

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
)

// Default cache geometry (1 MiB per source).
const (
	DefaultSlots    = 16
	DefaultSlotSize = 64 * 1024
)

// Large-file cache geometry (16 MiB per source).
const (
	LargeSlots    = 4
	LargeSlotSize = 4 * 1024 * 1024
)

// maxProbeOffset bounds the doubling probe used for files of unknown size.
const maxProbeOffset = int64(1) << 62

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("file does not exist")

	// ErrOpen indicates the input could not be opened for reading.
	ErrOpen = errors.New("cannot open file for reading")

	// ErrGeometry indicates a slot count or slot size that is not a power of two.
	ErrGeometry = errors.New("slot count and slot size must be powers of two")

	// ErrTooLarge indicates that size probing did not find the end of the input.
	ErrTooLarge = errors.New("file has zero size or is too large")

	// ErrSizeUnknown indicates that reading failed while probing an input of
	// unknown size, for example because it cannot seek.
	ErrSizeUnknown = errors.New("cannot determine file size")

	// ErrIndexOutOfRange is raised when ByteAt is called outside [0, Size).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrShortRead is raised when a slot reload cannot read the full block.
	ErrShortRead = errors.New("short read")
)

// Device is the random-access input a Source reads from.
type Device interface {
	io.ReaderAt
	io.Closer
}

// slot is one direct-mapped cache line. tag is the aligned offset the data
// belongs to, or -1 when the slot holds nothing.
type slot struct {
	tag  int64
	data []byte
}

// Source is a fixed-length byte sequence with single-byte random reads.
// It is not safe for concurrent use.
type Source struct {
	name   string
	dev    Device
	size   int64
	probed bool

	slots    []slot
	slotSize int64
	slotBits uint
	slotMask int64 // offset within a slot
	numMask  int64 // slot index
}

// Open opens the file at path. Regular files take their size from stat;
// anything else (pipes, devices) is probed, and Probed reports true.
func Open(path string, numSlots, slotSize int) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat '%s': %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrOpen, path, err)
	}

	size := info.Size()
	if !info.Mode().IsRegular() {
		size = -1
	}

	src, err := New(path, file, size, numSlots, slotSize)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return src, nil
}

// New wraps dev. A negative size makes New discover the length by probing.
func New(name string, dev Device, size int64, numSlots, slotSize int) (*Source, error) {
	if !isPowerOfTwo(numSlots) || !isPowerOfTwo(slotSize) {
		return nil, fmt.Errorf("%w (got %d slots of %d bytes)", ErrGeometry, numSlots, slotSize)
	}

	src := &Source{
		name:     name,
		dev:      dev,
		size:     size,
		slots:    make([]slot, numSlots),
		slotSize: int64(slotSize),
		slotBits: uint(bits.TrailingZeros(uint(slotSize))),
		slotMask: int64(slotSize) - 1,
		numMask:  int64(numSlots) - 1,
	}
	for i := range src.slots {
		src.slots[i].tag = -1
	}

	if size < 0 {
		probedSize, err := probeSize(dev)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", name, err)
		}
		src.size = probedSize
		src.probed = true
	}

	return src, nil
}

// Name returns the path or name the source was created with.
func (s *Source) Name() string { return s.name }

// Size returns the length of the input in bytes.
func (s *Source) Size() int64 { return s.size }

// Probed reports whether the size was discovered by probing rather than stat.
func (s *Source) Probed() bool { return s.probed }

// Close releases the underlying device.
func (s *Source) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}

// ByteAt returns the byte at offset i.
//
// An out-of-range index or a failed reload panics with a *FaultError; use
// Guard at the component boundary to turn it back into an error.
func (s *Source) ByteAt(i int64) byte {
	if uint64(i) >= uint64(s.size) {
		panic(&FaultError{Name: s.name, Offset: i, Err: fmt.Errorf("%w: %d not in [0..%d]", ErrIndexOutOfRange, i, s.size-1)})
	}
	aligned := i &^ s.slotMask
	sl := &s.slots[(i>>s.slotBits)&s.numMask]
	if sl.tag != aligned {
		s.load(sl, aligned)
	}
	return sl.data[i&s.slotMask]
}

// load overwrites sl with the block starting at aligned.
func (s *Source) load(sl *slot, aligned int64) {
	if sl.data == nil {
		sl.data = make([]byte, s.slotSize)
	}
	n := s.slotSize
	if aligned == s.size&^s.slotMask {
		n = s.size & s.slotMask
	}
	got, err := s.dev.ReadAt(sl.data[:n], aligned)
	if int64(got) != n {
		sl.tag = -1
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		panic(&FaultError{Name: s.name, Offset: aligned, Err: fmt.Errorf("%w: %d of %d bytes: %w", ErrShortRead, got, n, err)})
	}
	sl.tag = aligned
}

// probeSize finds the readable length of r by reading single bytes at
// doubling offsets and then bisecting between the last success and the
// first failure. Only end of file counts as a failure; any other read error
// aborts the probe.
func probeSize(r io.ReaderAt) (int64, error) {
	var one [1]byte
	readable := func(off int64) (bool, error) {
		n, err := r.ReadAt(one[:], off)
		switch {
		case n == 1:
			return true, nil
		case err == nil, errors.Is(err, io.EOF):
			return false, nil
		default:
			return false, fmt.Errorf("%w: read at offset %d: %w", ErrSizeUnknown, off, err)
		}
	}

	ok, err := readable(0)
	if err != nil || !ok {
		return 0, err
	}

	hi := int64(1)
	for {
		ok, err := readable(hi)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if hi >= maxProbeOffset {
			return 0, ErrTooLarge
		}
		hi <<= 1
	}

	lo := hi / 2
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		ok, err := readable(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
