// Package op implements the uniform operation descriptor that every tensor
// method assembles and a pluggable Backend executes: a tagged record
// carrying the op kind, its computed output storage descriptor, its input
// descriptors, and any op-specific params (axis lists, permutation, slice
// specifiers, reshape targets).
package op

// Tag identifies the kind of operation an OperationDescriptor carries.
type Tag string

const (
	Create     Tag = "create"
	Neg        Tag = "neg"
	Abs        Tag = "abs"
	Sin        Tag = "sin"
	Cos        Tag = "cos"
	Exp        Tag = "exp"
	Log        Tag = "log"
	Sqrt       Tag = "sqrt"
	Square     Tag = "square"
	Add        Tag = "add"
	Sub        Tag = "sub"
	Mul        Tag = "mul"
	Div        Tag = "div"
	Reshape    Tag = "reshape"
	View       Tag = "view"
	Slice      Tag = "slice"
	Transpose  Tag = "transpose"
	Permute    Tag = "permute"
	Matmul     Tag = "matmul"
	Softmax    Tag = "softmax"
	LogSoftmax Tag = "log_softmax"
	Sum        Tag = "sum"
	Mean       Tag = "mean"
	Max        Tag = "max"
	Min        Tag = "min"
)

// Unary is the set of tags taking exactly one input and promoting
// integer/boolean dtypes to float via the to-float helper before execution.
var Unary = map[Tag]bool{
	Sin: true, Cos: true, Exp: true, Log: true, Sqrt: true,
}

// Reduction is the set of tags that reduce over an axis list.
var Reduction = map[Tag]bool{
	Sum: true, Mean: true, Max: true, Min: true,
}

// PreservesDType reports whether tag keeps its input dtype in its output
// (true for Sum/Max/Min; false for Mean and the float-promoting unaries,
// which always promote to float regardless of input dtype).
func PreservesDType(tag Tag) bool {
	switch tag {
	case Sum, Max, Min, Neg, Abs, Square, Add, Sub, Mul, Div,
		Reshape, View, Slice, Transpose, Permute, Create:
		return true
	default:
		return false
	}
}
