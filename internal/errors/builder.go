package errors

import "fmt"

// ErrorBuilder assembles an InternalError fluently. The chain always ends
// with Mark, which attaches the sentinel and returns the finished error.
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts a builder from a fresh message.
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: &InternalError{message: message}}
}

// NewErrorf starts a builder from a formatted message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts a builder wrapping an existing cause. If the cause is
// already an InternalError its hint, details and mark carry over so
// re-wrapping at a higher layer does not lose classification.
func WithError(err error) *ErrorBuilder {
	if ie, ok := err.(*InternalError); ok {
		clone := *ie
		return &ErrorBuilder{err: &clone}
	}
	return &ErrorBuilder{err: &InternalError{cause: err}}
}

// WithHint sets the user-safe hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithHintf sets a formatted user-safe hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches details that may be returned to callers.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.err.details = details
	return b
}

// Mark attaches the classifying sentinel and finishes the build.
func (b *ErrorBuilder) Mark(mark error) error {
	b.err.mark = mark
	return b.err
}
