package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorBuilder provides a fluent API for constructing enriched errors.
type ErrorBuilder struct {
	err       error
	hints     []string
	context   map[string]any
	exitCode  *int
	sentinels []error
}

// Build creates a new ErrorBuilder from a base error.
// A leaf error (nothing wrapped) is treated as a sentinel and marked so that
// errors.Is keeps matching after enrichment.
func Build(err error) *ErrorBuilder {
	builder := &ErrorBuilder{err: err}
	if err != nil && errors.UnwrapOnce(err) == nil {
		builder.sentinels = append(builder.sentinels, err)
	}
	return builder
}

// WithHint adds a user-facing hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.hints = append(b.hints, hint)
	return b
}

// WithHintf adds a formatted user-facing hint.
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.hints = append(b.hints, fmt.Sprintf(format, args...))
	return b
}

// WithCause wraps the builder's error around a lower-level cause, keeping the
// cause's message in the final error text.
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	if cause == nil {
		return b
	}
	// The message of b.err survives the wrap but its identity does not.
	if !b.hasSentinel(b.err) {
		b.sentinels = append(b.sentinels, b.err)
	}
	b.err = errors.Wrapf(cause, "%s", b.err.Error())
	return b
}

func (b *ErrorBuilder) hasSentinel(err error) bool {
	for _, s := range b.sentinels {
		if s == err {
			return true
		}
	}
	return false
}

// WithExplanation adds a detail shown in verbose mode.
func (b *ErrorBuilder) WithExplanation(explanation string) *ErrorBuilder {
	b.err = errors.WithDetail(b.err, explanation)
	return b
}

// WithExplanationf adds a formatted detail shown in verbose mode.
func (b *ErrorBuilder) WithExplanationf(format string, args ...any) *ErrorBuilder {
	return b.WithExplanation(fmt.Sprintf(format, args...))
}

// WithContext adds structured key/value context, rendered in verbose mode.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	if b.context == nil {
		b.context = make(map[string]any)
	}
	b.context[key] = value
	return b
}

// WithExitCode attaches an exit code to the error.
func (b *ErrorBuilder) WithExitCode(code int) *ErrorBuilder {
	b.exitCode = &code
	return b
}

// WithSentinel marks the error with a sentinel for errors.Is checks.
func (b *ErrorBuilder) WithSentinel(sentinel error) *ErrorBuilder {
	b.sentinels = append(b.sentinels, sentinel)
	return b
}

// Err finalizes and returns the enriched error.
func (b *ErrorBuilder) Err() error {
	if b.err == nil {
		return nil
	}

	err := b.err

	for _, hint := range b.hints {
		err = errors.WithHint(err, hint)
	}

	if len(b.context) > 0 {
		keys := make([]string, 0, len(b.context))
		for k := range b.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		formatParts := make([]string, 0, len(keys))
		safeValues := make([]any, 0, len(keys))
		for _, key := range keys {
			formatParts = append(formatParts, key+"=%s")
			safeValues = append(safeValues, errors.Safe(b.context[key]))
		}
		err = errors.WithSafeDetails(err, strings.Join(formatParts, " "), safeValues...)
	}

	// Sentinels go on last so they sit at the top of the chain.
	for _, sentinel := range b.sentinels {
		err = errors.Mark(err, sentinel)
	}
	if len(b.sentinels) > 0 {
		err = &markedError{cause: err, sentinels: b.sentinels}
	}

	if b.exitCode != nil {
		err = WithExitCode(err, *b.exitCode)
	}

	return err
}

// markedError exposes the builder's sentinels to errors.Is from the standard
// library, which does not see cockroachdb marks.
type markedError struct {
	cause     error
	sentinels []error
}

func (e *markedError) Error() string { return e.cause.Error() }

func (e *markedError) Cause() error { return e.cause }

func (e *markedError) Unwrap() error { return e.cause }

func (e *markedError) Is(target error) bool {
	for _, s := range e.sentinels {
		if s == target {
			return true
		}
	}
	return false
}
