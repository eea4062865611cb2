package tensor

import (
	"github.com/sebffischer/gotensor/op"
)

// Clone returns a deep copy of t on the same backend, always performed
// through a host read/allocate/write round-trip (never a cheap reference
// bump), matching every other backend-boundary operation's treatment of
// a tensor's bytes as opaque to the facade.
func (t *Tensor) Clone() (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	s, h, err := op.Materialize(t.disp.Backend, t.shape, t.handle)
	if err != nil {
		return Tensor{}, err
	}
	return newTensor(t.disp.Backend, s, h), nil
}

// MoveTo returns a copy of t on backend. If backend has the same ID as t's
// current backend this is equivalent to Clone; otherwise t's bytes are
// repacked into row-major host order (honoring views/strides, same as
// op.Materialize, but without allocating an intermediate handle on the
// source backend) and written fresh on backend.
func (t *Tensor) MoveTo(backend op.Backend) (Tensor, error) {
	if err := t.checkAlive(); err != nil {
		return Tensor{}, err
	}
	if backend.ID() == t.disp.Backend.ID() {
		return t.Clone()
	}
	raw, err := t.disp.Backend.Read(t.handle)
	if err != nil {
		return Tensor{}, err
	}
	elemSize := t.shape.DType.ByteSize()
	packed := make([]byte, t.shape.Size()*elemSize)
	walkShape(t.shape, func(flatOut, srcElem int) {
		srcOff := srcElem * elemSize
		dstOff := flatOut * elemSize
		copy(packed[dstOff:dstOff+elemSize], raw[srcOff:srcOff+elemSize])
	})
	return allocateFilled(backend, t.shape.AsCopy(), packed)
}
