package cpu

import (
	"math"
	"sync"

	"github.com/sebffischer/gotensor/errs"
	"github.com/sebffischer/gotensor/op"
	"github.com/sebffischer/gotensor/shape"
)

// parallelFor splits [0, n) into chunks and runs fn(lo, hi) concurrently
// across at most workers goroutines. workers <= 1 (or n <= 1) runs fn
// sequentially over the whole range.
func parallelFor(n, workers int, fn func(lo, hi int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// Execute runs d against b's in-memory buffers. Every arithmetic kernel
// widens its operands to float64, computes, and narrows back to the output
// dtype -- this module's hard problem is metadata correctness (shape,
// dtype, strides, contiguity), not bit-exact numeric kernels, so a single
// float64 compute path covers every dtype uniformly.
func (b *Backend) Execute(d op.Descriptor, inputs []op.Handle) (op.Handle, error) {
	switch d.Op {
	case op.Create:
		return inputs[0], nil
	case op.Reshape, op.View, op.Transpose, op.Permute:
		return inputs[0], nil
	case op.Slice:
		return inputs[0], nil

	case op.Neg, op.Abs, op.Sin, op.Cos, op.Exp, op.Log, op.Sqrt, op.Square:
		return b.execUnary(d, inputs[0])

	case op.Add, op.Sub, op.Mul, op.Div:
		return b.execBinary(d, inputs[0], inputs[1])

	case op.Sum, op.Mean, op.Max, op.Min:
		return b.execReduce(d, inputs[0])

	case op.Softmax, op.LogSoftmax:
		return b.execSoftmax(d, inputs[0])

	case op.Matmul:
		return b.execMatmul(d, inputs[0], inputs[1])

	default:
		return nil, errs.BackendErrorErr(map[string]any{"op": string(d.Op)}, "cpu: unsupported op %q", d.Op)
	}
}

func unaryFn(tag op.Tag) func(float64) float64 {
	switch tag {
	case op.Neg:
		return func(x float64) float64 { return -x }
	case op.Abs:
		return math.Abs
	case op.Sin:
		return math.Sin
	case op.Cos:
		return math.Cos
	case op.Exp:
		return math.Exp
	case op.Log:
		return math.Log
	case op.Sqrt:
		return math.Sqrt
	case op.Square:
		return func(x float64) float64 { return x * x }
	default:
		return func(x float64) float64 { return x }
	}
}

func (b *Backend) execUnary(d op.Descriptor, h op.Handle) (op.Handle, error) {
	in := d.Inputs[0]
	raw, err := b.Read(h)
	if err != nil {
		return nil, err
	}
	size := d.Output.Size()
	out := make([]byte, size*d.Output.DType.ByteSize())
	fn := unaryFn(d.Op)

	parallelFor(size, b.Workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := fn(loadFloat64(raw, in.DType, i))
			storeFloat64(out, d.Output.DType, i, v)
		}
	})

	handle, err := b.Allocate(len(out))
	if err != nil {
		return nil, err
	}
	if err := b.Write(handle, out); err != nil {
		return nil, err
	}
	return handle, nil
}

func binaryFn(tag op.Tag) func(a, c float64) float64 {
	switch tag {
	case op.Add:
		return func(a, c float64) float64 { return a + c }
	case op.Sub:
		return func(a, c float64) float64 { return a - c }
	case op.Mul:
		return func(a, c float64) float64 { return a * c }
	case op.Div:
		return func(a, c float64) float64 { return a / c }
	default:
		return func(a, c float64) float64 { return a }
	}
}

func (b *Backend) execBinary(d op.Descriptor, ha, hb op.Handle) (op.Handle, error) {
	left, right := d.Inputs[0], d.Inputs[1]
	rawA, err := b.Read(ha)
	if err != nil {
		return nil, err
	}
	rawB, err := b.Read(hb)
	if err != nil {
		return nil, err
	}
	outDims := d.Output.Dims
	size := d.Output.Size()
	out := make([]byte, size*d.Output.DType.ByteSize())
	fn := binaryFn(d.Op)

	leftStrides := shape.CStrides(left.Dims)
	rightStrides := shape.CStrides(right.Dims)

	parallelFor(size, b.Workers, func(lo, hi int) {
		idx := make([]int, len(outDims))
		unflatten(lo, outDims, idx)
		for flat := lo; flat < hi; flat++ {
			ia := broadcastFlatIndex(idx, left.Dims, leftStrides)
			ib := broadcastFlatIndex(idx, right.Dims, rightStrides)
			v := fn(loadFloat64(rawA, left.DType, ia), loadFloat64(rawB, right.DType, ib))
			storeFloat64(out, d.Output.DType, flat, v)
			incrementIndex(idx, outDims)
		}
	})

	handle, err := b.Allocate(len(out))
	if err != nil {
		return nil, err
	}
	if err := b.Write(handle, out); err != nil {
		return nil, err
	}
	return handle, nil
}

// broadcastFlatIndex maps a full-rank output multi-index to inDims' flat
// element index, right-aligning inDims under outIdx and treating an input
// dim of 1 as index 0 (the broadcast rule).
func broadcastFlatIndex(outIdx []int, inDims, inStrides []int) int {
	offset := len(outIdx) - len(inDims)
	flat := 0
	for i, d := range inDims {
		pos := outIdx[offset+i]
		if d == 1 {
			pos = 0
		}
		flat += pos * inStrides[i]
	}
	return flat
}

func unflatten(flat int, dims, idx []int) {
	for i := len(dims) - 1; i >= 0; i-- {
		if dims[i] == 0 {
			idx[i] = 0
			continue
		}
		idx[i] = flat % dims[i]
		flat /= dims[i]
	}
}

func incrementIndex(idx, dims []int) {
	for axis := len(dims) - 1; axis >= 0; axis-- {
		idx[axis]++
		if idx[axis] < dims[axis] {
			return
		}
		idx[axis] = 0
	}
}

func (b *Backend) execReduce(d op.Descriptor, h op.Handle) (op.Handle, error) {
	in := d.Inputs[0]
	params, _ := d.Params.(op.ReduceParams)
	raw, err := b.Read(h)
	if err != nil {
		return nil, err
	}

	rank := in.NumAxes()
	reduced := make([]bool, rank)
	if params.Axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	} else {
		for _, ax := range params.Axes {
			if ax < 0 {
				ax += rank
			}
			reduced[ax] = true
		}
	}

	inStrides := shape.CStrides(in.Dims)
	outSize := d.Output.Size()
	accum := make([]float64, outSize)
	count := make([]int, outSize)
	initialized := make([]bool, outSize)

	outStridesForInput := reduceOutputStrides(in.Dims, reduced, params.KeepDims, d.Output.Dims)

	total := in.Size()
	idx := make([]int, rank)
	for flat := 0; flat < total; flat++ {
		v := loadFloat64(raw, in.DType, flat)
		outFlat := 0
		for axis, i := range idx {
			outFlat += outStridesForInput[axis] * boundedIndex(i, reduced[axis])
		}
		if !initialized[outFlat] {
			switch d.Op {
			case op.Max, op.Min:
				accum[outFlat] = v
			default:
				accum[outFlat] = 0
			}
			initialized[outFlat] = true
		}
		switch d.Op {
		case op.Sum, op.Mean:
			accum[outFlat] += v
		case op.Max:
			if v > accum[outFlat] {
				accum[outFlat] = v
			}
		case op.Min:
			if v < accum[outFlat] {
				accum[outFlat] = v
			}
		}
		count[outFlat]++
		incrementIndex(idx, in.Dims)
	}

	if d.Op == op.Mean {
		for i := range accum {
			if count[i] > 0 {
				accum[i] /= float64(count[i])
			}
		}
	}

	out := make([]byte, outSize*d.Output.DType.ByteSize())
	for i, v := range accum {
		storeFloat64(out, d.Output.DType, i, v)
	}

	handle, err := b.Allocate(len(out))
	if err != nil {
		return nil, err
	}
	if err := b.Write(handle, out); err != nil {
		return nil, err
	}
	return handle, nil
}

// reduceOutputStrides computes, for each input axis, the stride to use when
// accumulating an input flat-index's contribution into the output's
// flattened accumulator array (itself laid out in output's own dims order).
func reduceOutputStrides(inDims []int, reduced []bool, keepDims bool, outDims []int) []int {
	strides := shape.CStrides(outDims)
	result := make([]int, len(inDims))
	outAxis := 0
	for axis := range inDims {
		if reduced[axis] {
			if keepDims {
				result[axis] = strides[outAxis]
				outAxis++
			} else {
				result[axis] = 0
			}
			continue
		}
		result[axis] = strides[outAxis]
		outAxis++
	}
	return result
}

// boundedIndex returns the output-axis index contributed by an input index i:
// a reduced axis always contributes index 0 (whether kept as a size-1 dim or
// dropped -- outStridesForInput already zeroes the dropped case's stride).
func boundedIndex(i int, isReduced bool) int {
	if isReduced {
		return 0
	}
	return i
}

func (b *Backend) execSoftmax(d op.Descriptor, h op.Handle) (op.Handle, error) {
	in := d.Inputs[0]
	params, _ := d.Params.(op.SoftmaxParams)
	raw, err := b.Read(h)
	if err != nil {
		return nil, err
	}

	rank := in.NumAxes()
	axis := params.Axis
	if axis < 0 {
		axis += rank
	}
	strides := shape.CStrides(in.Dims)
	axisDim := in.Dims[axis]
	axisStride := strides[axis]

	out := make([]byte, in.Size()*d.Output.DType.ByteSize())
	outerSize := in.Size() / max1(axisDim)

	// Iterate over every index with the axis dimension fixed to 0, treating
	// the remaining axes as the "outer" loop.
	outerDims := append([]int(nil), in.Dims...)
	outerDims[axis] = 1
	idx := make([]int, rank)
	for outer := 0; outer < outerSize; outer++ {
		base := 0
		for a := range idx {
			base += idx[a] * strides[a]
		}

		maxV := math.Inf(-1)
		for k := 0; k < axisDim; k++ {
			v := loadFloat64(raw, in.DType, base+k*axisStride)
			if v > maxV {
				maxV = v
			}
		}
		sum := 0.0
		exps := make([]float64, axisDim)
		for k := 0; k < axisDim; k++ {
			v := loadFloat64(raw, in.DType, base+k*axisStride)
			e := math.Exp(v - maxV)
			exps[k] = e
			sum += e
		}
		for k := 0; k < axisDim; k++ {
			var result float64
			if d.Op == op.LogSoftmax {
				result = math.Log(exps[k]) - math.Log(sum)
			} else {
				result = exps[k] / sum
			}
			storeFloat64(out, d.Output.DType, base+k*axisStride, result)
		}

		incrementIndex(idx, outerDims)
	}

	handle, err := b.Allocate(len(out))
	if err != nil {
		return nil, err
	}
	if err := b.Write(handle, out); err != nil {
		return nil, err
	}
	return handle, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (b *Backend) execMatmul(d op.Descriptor, ha, hb op.Handle) (op.Handle, error) {
	left, right := d.Inputs[0], d.Inputs[1]
	rawA, err := b.Read(ha)
	if err != nil {
		return nil, err
	}
	rawB, err := b.Read(hb)
	if err != nil {
		return nil, err
	}

	aIs1D := left.NumAxes() == 1
	bIs1D := right.NumAxes() == 1

	k := left.Dims[left.NumAxes()-1]

	m := 1
	if !aIs1D {
		m = left.Dims[left.NumAxes()-2]
	}
	n := 1
	if !bIs1D {
		n = right.Dims[right.NumAxes()-1]
	}

	aStrides := shape.CStrides(left.Dims)
	bStrides := shape.CStrides(right.Dims)

	aBatch := batchDims(left.Dims, aIs1D)
	bBatch := batchDims(right.Dims, bIs1D)
	outBatch := d.Output.Dims[:len(d.Output.Dims)-boolToInt(!aIs1D)-boolToInt(!bIs1D)]

	batchSize := product(outBatch)
	out := make([]byte, d.Output.Size()*d.Output.DType.ByteSize())

	aRowStride := 0
	if !aIs1D {
		aRowStride = aStrides[left.NumAxes()-2]
	}
	aColStride := aStrides[left.NumAxes()-1]
	bRowStride := bStrides[right.NumAxes()-boolToInt(!bIs1D)-1]
	bColStride := 0
	if !bIs1D {
		bColStride = bStrides[right.NumAxes()-1]
	}

	aBatchStrides := aStrides[:len(aBatch)]
	bBatchStrides := bStrides[:len(bBatch)]

	parallelFor(batchSize, b.Workers, func(lo, hi int) {
		outIdx := make([]int, len(outBatch))
		unflatten(lo, outBatch, outIdx)
		for batch := lo; batch < hi; batch++ {
			aBase := batchOffset(outIdx, outBatch, aBatch, aBatchStrides)
			bBase := batchOffset(outIdx, outBatch, bBatch, bBatchStrides)

			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					sum := 0.0
					for kk := 0; kk < k; kk++ {
						av := loadFloat64(rawA, left.DType, aBase+i*aRowStride+kk*aColStride)
						bv := loadFloat64(rawB, right.DType, bBase+kk*bRowStride+j*bColStride)
						sum += av * bv
					}
					outFlat := batch*m*n + i*n + j
					storeFloat64(out, d.Output.DType, outFlat, sum)
				}
			}
			incrementIndex(outIdx, outBatch)
		}
	})

	handle, err := b.Allocate(len(out))
	if err != nil {
		return nil, err
	}
	if err := b.Write(handle, out); err != nil {
		return nil, err
	}
	return handle, nil
}

func batchDims(dims []int, is1D bool) []int {
	if is1D {
		return nil
	}
	if len(dims) <= 2 {
		return nil
	}
	return dims[:len(dims)-2]
}

// batchOffset maps outIdx (a multi-index over outBatch, right-aligned) to
// the flat element offset into the buffer described by inStrides (the real
// strides of the input's own batch prefix, already incorporating the
// trailing matrix dims' size). inBatch and outBatch agree value-for-value at
// every position inBatch has (matmul batch dims never broadcast, they only
// differ in how many leading dims are present), so the mapping is a direct
// positional lookup, not a broadcast collapse.
func batchOffset(outIdx, outBatch, inBatch, inStrides []int) int {
	if len(inBatch) == 0 {
		return 0
	}
	offset := len(outBatch) - len(inBatch)
	result := 0
	for i := range inBatch {
		result += outIdx[offset+i] * inStrides[i]
	}
	return result
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
