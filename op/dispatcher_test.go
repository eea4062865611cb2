package op

import (
	"testing"

	"github.com/sebffischer/gotensor/dtype"
	"github.com/sebffischer/gotensor/platform"
	"github.com/sebffischer/gotensor/shape"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct{}

func (fakePlatform) Name() string { return "fake" }

// fakeBackend is an in-memory Backend whose Execute simply echoes its first
// input's bytes back as the output handle -- enough to exercise Dispatch's
// contiguity-coercion rewrite without a real numeric kernel.
type fakeBackend struct {
	mem               map[int][]byte
	next              int
	nonContiguousOK   bool
	executedInputs    []shape.Shape
}

func newFakeBackend(nonContiguousOK bool) *fakeBackend {
	return &fakeBackend{mem: make(map[int][]byte), nonContiguousOK: nonContiguousOK}
}

func (b *fakeBackend) ID() string                 { return "fake" }
func (b *fakeBackend) Platform() platform.Platform { return fakePlatform{} }

func (b *fakeBackend) Allocate(n int) (Handle, error) {
	b.next++
	b.mem[b.next] = make([]byte, n)
	return b.next, nil
}

func (b *fakeBackend) Write(h Handle, data []byte) error {
	copy(b.mem[h.(int)], data)
	return nil
}

func (b *fakeBackend) Read(h Handle) ([]byte, error) {
	return b.mem[h.(int)], nil
}

func (b *fakeBackend) Dispose(h Handle) error {
	delete(b.mem, h.(int))
	return nil
}

func (b *fakeBackend) Execute(d Descriptor, inputs []Handle) (Handle, error) {
	b.executedInputs = d.Inputs
	return inputs[0], nil
}

func (b *fakeBackend) SupportsNonContiguous(tag Tag) bool { return b.nonContiguousOK }

func TestDispatchPassesThroughContiguous(t *testing.T) {
	backend := newFakeBackend(false)
	disp := NewDispatcher(backend)

	s, _ := shape.Make(dtype.Int32, 2, 2)
	h, _ := backend.Allocate(s.Size() * 4)
	_ = backend.Write(h, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0})

	d := Descriptor{Op: Neg, Output: s, Inputs: []shape.Shape{s}}
	out, err := disp.Dispatch(d, []Handle{h})
	require.NoError(t, err)
	require.Equal(t, h, out)
	require.True(t, backend.executedInputs[0].CContiguous())
}

func TestDispatchCoercesNonContiguous(t *testing.T) {
	backend := newFakeBackend(false)
	disp := NewDispatcher(backend)

	s, _ := shape.Make(dtype.Int32, 2, 2)
	h, _ := backend.Allocate(s.Size() * 4)
	_ = backend.Write(h, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0})

	transposed, err := shape.Transpose(s)
	require.NoError(t, err)
	require.False(t, transposed.CContiguous())

	d := Descriptor{Op: Neg, Output: transposed, Inputs: []shape.Shape{transposed}}
	out, err := disp.Dispatch(d, []Handle{h})
	require.NoError(t, err)
	require.NotEqual(t, h, out)
	require.True(t, backend.executedInputs[0].CContiguous())

	coerced, err := backend.Read(out)
	require.NoError(t, err)
	// transposed logical order of [[1,2],[3,4]] is [1,3,2,4].
	require.Equal(t, []byte{1, 0, 0, 0, 3, 0, 0, 0, 2, 0, 0, 0, 4, 0, 0, 0}, coerced)
}

func TestDispatchSkipsCoercionWhenSupported(t *testing.T) {
	backend := newFakeBackend(true)
	disp := NewDispatcher(backend)

	s, _ := shape.Make(dtype.Int32, 2, 2)
	transposed, _ := shape.Transpose(s)
	h, _ := backend.Allocate(s.Size() * 4)

	d := Descriptor{Op: Neg, Output: transposed, Inputs: []shape.Shape{transposed}}
	_, err := disp.Dispatch(d, []Handle{h})
	require.NoError(t, err)
	require.False(t, backend.executedInputs[0].CContiguous())
}

func TestDispatchMismatchedInputCount(t *testing.T) {
	backend := newFakeBackend(true)
	disp := NewDispatcher(backend)
	s, _ := shape.Make(dtype.Int32, 2)
	d := Descriptor{Op: Neg, Output: s, Inputs: []shape.Shape{s, s}}
	_, err := disp.Dispatch(d, []Handle{1})
	require.Error(t, err)
}

func TestDispatchBackendError(t *testing.T) {
	backend := &erroringBackend{}
	disp := NewDispatcher(backend)
	s, _ := shape.Make(dtype.Int32, 2)
	d := Descriptor{Op: Neg, Output: s, Inputs: []shape.Shape{s}}
	_, err := disp.Dispatch(d, []Handle{1})
	require.Error(t, err)
}

type erroringBackend struct{ fakeBackend }

func (b *erroringBackend) Execute(d Descriptor, inputs []Handle) (Handle, error) {
	return nil, errTestBackend
}

var errTestBackend = errBackendFailure{}

type errBackendFailure struct{}

func (errBackendFailure) Error() string { return "boom" }
