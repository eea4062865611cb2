// Package cpu implements the reference in-process op.Backend: a plain
// []byte-backed allocator plus the numeric kernels for every op.Tag. It
// fixes little-endian as its buffer byte order (Go's native multi-byte
// encoding on every GOARCH this module targets), consistent process-wide as
// the buffer-encoding contract requires -- the exact byte order is
// otherwise left backend-defined.
package cpu

import (
	"sync"
	"sync/atomic"

	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/platform"
)

// Name is the platform.Platform this backend reports.
const Name = "cpu"

type cpuPlatform struct{}

func (cpuPlatform) Name() string { return Name }

// buffer is the concrete Handle this backend issues: raw bytes plus a
// disposed flag so double-dispose and use-after-dispose are caught rather
// than corrupting memory silently.
type buffer struct {
	data     []byte
	disposed atomic.Bool
}

// Backend is the reference CPU implementation of op.Backend. Workers caps
// the goroutine fan-out of the unary, binary and matmul kernels (see
// exec.go); zero or one means fully sequential. Reductions and softmax
// always run sequentially.
type Backend struct {
	id      string
	mu      sync.Mutex
	live    map[*buffer]bool
	Workers int
}

// New returns a fresh Backend identified by id. Tensors interoperate only
// when their backends report the same id, so two New calls with distinct
// ids never interoperate.
func New(id string) *Backend {
	return &Backend{id: id, live: make(map[*buffer]bool), Workers: defaultWorkers()}
}

func defaultWorkers() int { return 4 }

func (b *Backend) ID() string                 { return b.id }
func (b *Backend) Platform() platform.Platform { return cpuPlatform{} }

func (b *Backend) Allocate(n int) (op.Handle, error) {
	if n < 0 {
		return nil, errs.BufferAlignmentErr(map[string]any{"n": n}, "cpu: cannot allocate negative size %d", n)
	}
	buf := &buffer{data: make([]byte, n)}
	b.mu.Lock()
	b.live[buf] = true
	b.mu.Unlock()
	return buf, nil
}

func (b *Backend) Write(h op.Handle, data []byte) error {
	buf, err := b.resolve(h)
	if err != nil {
		return err
	}
	if len(data) != len(buf.data) {
		return errs.BoundsErr(map[string]any{"have": len(buf.data), "want": len(data)}, "cpu: write size %d does not match buffer size %d", len(data), len(buf.data))
	}
	copy(buf.data, data)
	return nil
}

func (b *Backend) Read(h op.Handle) ([]byte, error) {
	buf, err := b.resolve(h)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(buf.data))
	copy(out, buf.data)
	return out, nil
}

func (b *Backend) Dispose(h op.Handle) error {
	buf, ok := h.(*buffer)
	if !ok {
		return errs.BackendErrorErr(nil, "cpu: dispose given a handle not issued by this backend")
	}
	if buf.disposed.Swap(true) {
		return nil // idempotent
	}
	b.mu.Lock()
	delete(b.live, buf)
	b.mu.Unlock()
	buf.data = nil
	return nil
}

func (b *Backend) resolve(h op.Handle) (*buffer, error) {
	buf, ok := h.(*buffer)
	if !ok {
		return nil, errs.BackendErrorErr(nil, "cpu: handle not issued by this backend")
	}
	if buf.disposed.Load() {
		return nil, errs.UseAfterDisposeErr(nil, "cpu: use of disposed handle")
	}
	return buf, nil
}

// SupportsNonContiguous reports true for the pure metadata ops (reshape,
// view, transpose, permute, slice) -- they never touch element bytes, they
// only reinterpret an existing buffer's dims/strides/offset, so contiguity
// coercion ahead of them would be wasted work. Every arithmetic tag returns
// false: the elementwise/reduction/matmul kernels below assume row-major
// contiguous inputs.
func (b *Backend) SupportsNonContiguous(tag op.Tag) bool {
	switch tag {
	case op.Reshape, op.View, op.Transpose, op.Permute, op.Slice, op.Create:
		return true
	default:
		return false
	}
}
