package store

import (
	"fmt"

	"github.com/c2h5oh/datasize"
)

// ValidationError covers rejected arguments, including a target host that is
// not a live cluster member.
type ValidationError struct {
	err error
}

func NewValidationError(err error) ValidationError {
	return ValidationError{err: err}
}

func (ValidationError) ErrorName() string {
	return "validation"
}

func (e ValidationError) Unwrap() error {
	return e.err
}

func (e ValidationError) Error() string {
	return e.err.Error()
}

// AlreadyExistsError is returned by a create on an occupied path.
// The conflicting stored content is included for diagnosis.
type AlreadyExistsError struct {
	key     string
	content string
}

func NewAlreadyExistsError(key, content string) AlreadyExistsError {
	return AlreadyExistsError{key: key, content: content}
}

func (AlreadyExistsError) ErrorName() string {
	return "datastreamAlreadyExists"
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf(`datastream already exists: path=%s, content=%s`, e.key, e.content)
}

// NotFoundError is returned by an update on an absent record.
type NotFoundError struct {
	key string
}

func NewNotFoundError(key string) NotFoundError {
	return NotFoundError{key: key}
}

func (NotFoundError) ErrorName() string {
	return "datastreamNotFound"
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf(`datastream "%s" does not exist`, e.key)
}

// SizeLimitExceededError is returned when the encoded record exceeds the
// backing store's node value ceiling.
type SizeLimitExceededError struct {
	key    string
	size   datasize.ByteSize
	limit  datasize.ByteSize
	action string
}

func NewSizeLimitExceededError(key string, size, limit datasize.ByteSize, action string) SizeLimitExceededError {
	return SizeLimitExceededError{key: key, size: size, limit: limit, action: action}
}

func (SizeLimitExceededError) ErrorName() string {
	return "sizeLimitExceeded"
}

func (e SizeLimitExceededError) Error() string {
	return fmt.Sprintf(`encoded blob size %s exceeded the node limit %s, datastream "%s" cannot be %s`,
		e.size.HumanReadable(), e.limit.HumanReadable(), e.key, e.action)
}
