// Package errors provides error constructors and helpers used across the
// project instead of the standard library directly, so wrapping and prefixing
// conventions stay in one place.
package errors

import (
	"errors"
	"fmt"
)

func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats an error, "%w" wrapping is supported.
func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

// PrefixError wraps the error with a prefix, the original error is preserved
// for Is/As checks.
func PrefixError(err error, prefix string) error {
	return fmt.Errorf("%s: %w", prefix, err)
}

// PrefixErrorf wraps the error with a formatted prefix.
func PrefixErrorf(err error, format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), err)
}
