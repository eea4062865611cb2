// Package errs implements the typed error taxonomy described in spec §4.H.
// Every typed error raised by this module is an *errs.Error carrying a stable
// Kind, a human-readable message, and a Context map of diagnostic key/value
// pairs; some dtype and atype failures are plain github.com/pkg/errors errors
// instead.
// Errors wrap an underlying github.com/pkg/errors-built error so %+v prints a
// stack trace at the point of failure, matching this module's convention of
// attaching stacks at the error's origin rather than at each propagation
// site.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the named failure categories spec §4.H enumerates.
type Kind string

const (
	UnknownDtype            Kind = "unknown_dtype"
	DtypeValidation         Kind = "dtype_validation"
	BufferAlignment         Kind = "buffer_alignment"
	Bounds                  Kind = "bounds"
	ShapeMismatch           Kind = "shape_mismatch"
	RankExceeded            Kind = "rank_exceeded"
	ReshapeMismatch         Kind = "reshape_mismatch"
	ViewAmbiguous           Kind = "view_ambiguous"
	SliceStepZero           Kind = "slice_step_zero"
	PermutationDuplicate    Kind = "permutation_duplicate"
	ConversionPrecisionLoss Kind = "conversion_precision_loss"
	ConversionOverflow      Kind = "conversion_overflow"
	ConversionSpecialValue  Kind = "conversion_special_value"
	DeviceMismatch          Kind = "device_mismatch"
	UseAfterDispose         Kind = "use_after_dispose"
	BackendError            Kind = "backend_error"
)

// Error is the concrete type every constructor in this package returns.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]any
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying stack-carrying cause to errors.Is/As/Unwrap.
func (e *Error) Unwrap() error { return e.cause }

// Format proxies %+v to the underlying cause so callers get a stack trace at
// the point the error was constructed, and %s/%v to Error().
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %s\n%+v", e.Kind, e.Message, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

func newf(kind Kind, context map[string]any, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Context: context,
		cause:   errors.Errorf(format, args...),
	}
}

// New constructs an *Error of the given kind with a stack trace rooted here.
func New(kind Kind, context map[string]any, format string, args ...any) *Error {
	return newf(kind, context, format, args...)
}

// Wrap attaches kind and context to an existing cause, preserving its stack
// if it already carries one (github.com/pkg/errors.Wrap is a no-op-safe wrap
// even over a plain stdlib error).
func Wrap(kind Kind, cause error, context map[string]any, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Context: context,
		cause:   errors.Wrap(cause, message),
	}
}

func UnknownDtypeErr(context map[string]any, format string, args ...any) *Error {
	return newf(UnknownDtype, context, format, args...)
}

func DtypeValidationErr(context map[string]any, format string, args ...any) *Error {
	return newf(DtypeValidation, context, format, args...)
}

func BufferAlignmentErr(context map[string]any, format string, args ...any) *Error {
	return newf(BufferAlignment, context, format, args...)
}

func BoundsErr(context map[string]any, format string, args ...any) *Error {
	return newf(Bounds, context, format, args...)
}

func ShapeMismatchErr(context map[string]any, format string, args ...any) *Error {
	return newf(ShapeMismatch, context, format, args...)
}

func RankExceededErr(context map[string]any, format string, args ...any) *Error {
	return newf(RankExceeded, context, format, args...)
}

func ReshapeMismatchErr(context map[string]any, format string, args ...any) *Error {
	return newf(ReshapeMismatch, context, format, args...)
}

func ViewAmbiguousErr(context map[string]any, format string, args ...any) *Error {
	return newf(ViewAmbiguous, context, format, args...)
}

func SliceStepZeroErr(context map[string]any, format string, args ...any) *Error {
	return newf(SliceStepZero, context, format, args...)
}

func PermutationDuplicateErr(context map[string]any, format string, args ...any) *Error {
	return newf(PermutationDuplicate, context, format, args...)
}

func ConversionPrecisionLossErr(context map[string]any, format string, args ...any) *Error {
	return newf(ConversionPrecisionLoss, context, format, args...)
}

func ConversionOverflowErr(context map[string]any, format string, args ...any) *Error {
	return newf(ConversionOverflow, context, format, args...)
}

func ConversionSpecialValueErr(context map[string]any, format string, args ...any) *Error {
	return newf(ConversionSpecialValue, context, format, args...)
}

func DeviceMismatchErr(context map[string]any, format string, args ...any) *Error {
	return newf(DeviceMismatch, context, format, args...)
}

func UseAfterDisposeErr(context map[string]any, format string, args ...any) *Error {
	return newf(UseAfterDispose, context, format, args...)
}

func BackendErrorErr(context map[string]any, format string, args ...any) *Error {
	return newf(BackendError, context, format, args...)
}

// Is reports whether err is an *Error of kind k, unwrapping as needed.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
