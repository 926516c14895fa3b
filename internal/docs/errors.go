package docs

import (
	"errors"
	"fmt"
)

// InputError indicates the input document file is missing or contains
// malformed JSON. It is fatal: the run fails and the nightly automation
// retries on the next trigger.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("docs: read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OutputError indicates a destination path could not be written.
// Like InputError it is fatal and unrecovered locally.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("docs: write %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsInputError checks if the error is an input file failure.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// IsOutputError checks if the error is an output write failure.
func IsOutputError(err error) bool {
	var outputErr *OutputError
	return errors.As(err, &outputErr)
}
