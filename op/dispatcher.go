package op

import (
	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/shape"
)

// Dispatcher runs Descriptors against a Backend, inserting a contiguous-copy
// rewrite pass ahead of Execute when the backend cannot consume a
// non-contiguous input directly. This keeps the "ensure-contiguous-if-needed"
// idiom entirely separate from the op executor: Dispatch only ever builds a
// new Descriptor with replacement inputs, it never edits the backend's own
// Execute logic.
type Dispatcher struct {
	Backend Backend
}

// NewDispatcher returns a Dispatcher bound to backend.
func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{Backend: backend}
}

// Dispatch coerces any non-contiguous input the backend cannot consume into
// a freshly materialized contiguous copy, then calls Backend.Execute with
// the (possibly rewritten) descriptor and input handles.
func (disp *Dispatcher) Dispatch(d Descriptor, inputs []Handle) (Handle, error) {
	if len(d.Inputs) != len(inputs) {
		return nil, errs.ShapeMismatchErr(
			map[string]any{"op": string(d.Op), "descriptors": len(d.Inputs), "handles": len(inputs)},
			"op: descriptor has %d input shapes but %d handles were given", len(d.Inputs), len(inputs),
		)
	}

	coercedShapes := d.Inputs
	coercedHandles := inputs
	rewritten := false

	if !disp.Backend.SupportsNonContiguous(d.Op) {
		coercedShapes = make([]shape.Shape, len(d.Inputs))
		coercedHandles = make([]Handle, len(inputs))
		for i, in := range d.Inputs {
			if in.CContiguous() {
				coercedShapes[i] = in
				coercedHandles[i] = inputs[i]
				continue
			}
			newShape, newHandle, err := Materialize(disp.Backend, in, inputs[i])
			if err != nil {
				return nil, err
			}
			coercedShapes[i] = newShape
			coercedHandles[i] = newHandle
			rewritten = true
		}
	}

	descriptor := d
	if rewritten {
		descriptor = d.WithInputs(coercedShapes)
	}

	out, err := disp.Backend.Execute(descriptor, coercedHandles)
	if err != nil {
		return nil, errs.BackendErrorErr(map[string]any{"op": string(d.Op)}, "op: backend execute failed: %s", err)
	}
	return out, nil
}

// Materialize reads h's bytes through backend, repacks them into row-major
// logical order per s's strides/offset, and writes them to a freshly
// allocated handle. Returns the new contiguous Shape (dims preserved, layout
// reset per shape.AsCopy) and its handle. Used both by the dispatcher's
// contiguity coercion and by tensor.Slice's default materialize-by-default
// behavior (see shape.Slice's ReturnViewIfPossible flag).
func Materialize(backend Backend, s shape.Shape, h Handle) (shape.Shape, Handle, error) {
	raw, err := backend.Read(h)
	if err != nil {
		return shape.Shape{}, nil, errs.BackendErrorErr(map[string]any{"shape": s.String()}, "op: read for materialize failed: %s", err)
	}

	elemSize := s.DType.ByteSize()
	size := s.Size()
	packed := make([]byte, size*elemSize)

	walkStrided(s.Dims, s.Strides, s.Offset, func(flatOut, srcElem int) {
		srcOff := srcElem * elemSize
		dstOff := flatOut * elemSize
		copy(packed[dstOff:dstOff+elemSize], raw[srcOff:srcOff+elemSize])
	})

	newHandle, err := backend.Allocate(len(packed))
	if err != nil {
		return shape.Shape{}, nil, errs.BackendErrorErr(map[string]any{"shape": s.String()}, "op: allocate for materialize failed: %s", err)
	}
	if err := backend.Write(newHandle, packed); err != nil {
		_ = backend.Dispose(newHandle)
		return shape.Shape{}, nil, errs.BackendErrorErr(map[string]any{"shape": s.String()}, "op: write for materialize failed: %s", err)
	}

	return s.AsCopy(), newHandle, nil
}

// walkStrided visits every logical element of a tensor with the given dims,
// strides and offset in row-major order, calling visit(flatOutIndex,
// srcElementIndex) for each. srcElementIndex is the element offset into the
// underlying buffer (offset already applied).
func walkStrided(dims, strides []int, offset int, visit func(flatOut, srcElem int)) {
	rank := len(dims)
	if rank == 0 {
		visit(0, offset)
		return
	}
	size := 1
	for _, d := range dims {
		size *= d
	}
	if size == 0 {
		return
	}

	indices := make([]int, rank)
	for flat := 0; flat < size; flat++ {
		srcElem := offset
		for axis, idx := range indices {
			srcElem += idx * strides[axis]
		}
		visit(flat, srcElem)

		for axis := rank - 1; axis >= 0; axis-- {
			indices[axis]++
			if indices[axis] < dims[axis] {
				break
			}
			indices[axis] = 0
		}
	}
}
