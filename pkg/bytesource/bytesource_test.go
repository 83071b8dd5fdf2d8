package bytesource_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qdiff/pkg/bytesource"
)

// memDevice is an in-memory Device that counts ReadAt calls.
type memDevice struct {
	data  []byte
	reads int
}

func (d *memDevice) ReadAt(p []byte, off int64) (int, error) {
	d.reads++
	if off >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n := copy(p, d.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (d *memDevice) Close() error { return nil }

// truncatingDevice claims more data than it can deliver.
type truncatingDevice struct{ memDevice }

func (d *truncatingDevice) ReadAt(p []byte, off int64) (int, error) {
	n, _ := d.memDevice.ReadAt(p, off)
	if n > 1 {
		n--
	}
	return n, nil
}

func patterned(n int) []byte {
	data := make([]byte, n)
	rng := rand.New(rand.NewSource(int64(n)))
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	return data
}

func TestNew_RejectsNonPowerOfTwoGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		numSlots int
		slotSize int
	}{
		{"zero slots", 0, 16},
		{"three slots", 3, 16},
		{"slot size 24", 4, 24},
		{"negative slot size", 4, -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := bytesource.New("x", &memDevice{}, 0, tt.numSlots, tt.slotSize)
			require.ErrorIs(t, err, bytesource.ErrGeometry)
		})
	}
}

func TestByteAt_MatchesContentInAnyOrder(t *testing.T) {
	t.Parallel()

	data := patterned(1000)
	src, err := bytesource.New("mem", &memDevice{data: data}, int64(len(data)), 4, 16)
	require.NoError(t, err)

	// Forward.
	for i := range data {
		require.Equal(t, data[i], src.ByteAt(int64(i)), "forward offset %d", i)
	}

	// Backward.
	for i := len(data) - 1; i >= 0; i-- {
		require.Equal(t, data[i], src.ByteAt(int64(i)), "backward offset %d", i)
	}

	// Scattered, which thrashes a 4x16 cache.
	rng := rand.New(rand.NewSource(7))
	for range 5000 {
		i := rng.Intn(len(data))
		require.Equal(t, data[i], src.ByteAt(int64(i)), "random offset %d", i)
	}
}

func TestByteAt_FinalPartialBlock(t *testing.T) {
	t.Parallel()

	data := patterned(37)
	src, err := bytesource.New("mem", &memDevice{data: data}, int64(len(data)), 2, 16)
	require.NoError(t, err)

	assert.Equal(t, data[36], src.ByteAt(36))
	assert.Equal(t, data[32], src.ByteAt(32))
	assert.Equal(t, data[0], src.ByteAt(0))
}

func TestByteAt_SequentialScanLoadsEachBlockOnce(t *testing.T) {
	t.Parallel()

	data := patterned(256)
	dev := &memDevice{data: data}
	src, err := bytesource.New("mem", dev, int64(len(data)), 4, 16)
	require.NoError(t, err)

	for i := range data {
		src.ByteAt(int64(i))
	}
	assert.Equal(t, 16, dev.reads)
}

func TestByteAt_ConflictingBlocksThrash(t *testing.T) {
	t.Parallel()

	// With 4 slots of 16 bytes, offsets 0 and 64 map to slot 0.
	data := patterned(128)
	dev := &memDevice{data: data}
	src, err := bytesource.New("mem", dev, int64(len(data)), 4, 16)
	require.NoError(t, err)

	for range 10 {
		src.ByteAt(0)
		src.ByteAt(64)
	}
	assert.Equal(t, 20, dev.reads)

	// Offsets 0 and 16 live in different slots and stay cached.
	dev.reads = 0
	src.ByteAt(16)
	for range 10 {
		src.ByteAt(64)
		src.ByteAt(16)
	}
	assert.Equal(t, 1, dev.reads)
}

func TestByteAt_OutOfRangePanicsWithFault(t *testing.T) {
	t.Parallel()

	src, err := bytesource.New("mem", &memDevice{data: []byte("abc")}, 3, 2, 16)
	require.NoError(t, err)

	for _, idx := range []int64{-1, 3, 1 << 40} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d should panic", idx)
				fault, ok := r.(*bytesource.FaultError)
				require.True(t, ok, "panic value should be *FaultError, got %T", r)
				assert.ErrorIs(t, fault, bytesource.ErrIndexOutOfRange)
			}()
			src.ByteAt(idx)
		}()
	}
}

func TestByteAt_ShortReadIsFault(t *testing.T) {
	t.Parallel()

	dev := &truncatingDevice{memDevice{data: patterned(64)}}
	src, err := bytesource.New("short", dev, 64, 2, 16)
	require.NoError(t, err)

	readFirst := func() (err error) {
		defer bytesource.Guard(&err)
		src.ByteAt(0)
		return nil
	}

	err = readFirst()
	require.ErrorIs(t, err, bytesource.ErrShortRead)

	var fault *bytesource.FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "short", fault.Name)
	assert.Equal(t, int64(0), fault.Offset)
}

func TestGuard_RepanicsForeignValues(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "boom", func() {
		var err error
		defer bytesource.Guard(&err)
		panic("boom")
	})
}

func TestNew_ProbesUnknownSize(t *testing.T) {
	t.Parallel()

	sizes := []int{0, 1, 2, 3, 7, 8, 9, 100, 1023, 1024, 1025, 4097}
	for _, size := range sizes {
		src, err := bytesource.New("pipe", &memDevice{data: patterned(size)}, -1, 2, 16)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, int64(size), src.Size(), "probed size for %d bytes", size)
		assert.True(t, src.Probed())
	}
}

// failingDevice serves data below failFrom and returns err at or beyond it.
type failingDevice struct {
	memDevice
	failFrom int64
	err      error
}

func (d *failingDevice) ReadAt(p []byte, off int64) (int, error) {
	if off >= d.failFrom {
		return 0, d.err
	}
	return d.memDevice.ReadAt(p, off)
}

func TestNew_SizeReadErrorIsFatal(t *testing.T) {
	t.Parallel()

	seekErr := errors.New("illegal seek")
	tests := []struct {
		name     string
		failFrom int64
	}{
		{"first byte", 0},
		{"while doubling", 4},
		{"while bisecting", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dev := &failingDevice{memDevice: memDevice{data: patterned(100)}, failFrom: tt.failFrom, err: seekErr}
			_, err := bytesource.New("pipe", dev, -1, 2, 16)
			require.Error(t, err)
			assert.ErrorIs(t, err, bytesource.ErrSizeUnknown)
			assert.ErrorIs(t, err, seekErr)
		})
	}
}

func TestOpen_RegularFileUsesStatSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	data := patterned(70000)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	src, err := bytesource.Open(path, bytesource.DefaultSlots, bytesource.DefaultSlotSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	assert.Equal(t, int64(len(data)), src.Size())
	assert.False(t, src.Probed())
	assert.Equal(t, path, src.Name())

	var got bytes.Buffer
	for i := range src.Size() {
		got.WriteByte(src.ByteAt(i))
	}
	assert.Equal(t, data, got.Bytes())
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := bytesource.Open(filepath.Join(t.TempDir(), "nope"), 2, 16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bytesource.ErrNotFound))
}

type closeCounter struct {
	memDevice
	closes int
}

func (d *closeCounter) Close() error {
	d.closes++
	return nil
}

func TestClose_ReleasesDeviceOnce(t *testing.T) {
	t.Parallel()

	dev := &closeCounter{memDevice: memDevice{data: patterned(100)}}
	src, err := bytesource.New("mem", dev, 100, 2, 16)
	require.NoError(t, err)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 1, dev.closes)
}
