package domain

import "errors"

// ErrorKind separates broken environment contracts from failed operations.
type ErrorKind int

const (
	// KindRuntime marks an operation that failed, such as a process that could not be spawned.
	// It is always reported as an ordinary error value.
	KindRuntime ErrorKind = iota
	// KindPrecondition marks a violated environment precondition: an incompatible build tool
	// or an unusable scratch directory. Callers may treat it as unrecoverable.
	KindPrecondition
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	if k == KindPrecondition {
		return "precondition"
	}
	return "runtime"
}

// BatchError is a failure that affects the whole session: capture or setup.
type BatchError struct {
	Kind   ErrorKind
	Reason error
	Err    error
}

// NewBatchError classifies err as a batch-level failure caused by reason.
func NewBatchError(kind ErrorKind, reason, err error) *BatchError {
	return &BatchError{Kind: kind, Reason: reason, Err: err}
}

func (e *BatchError) Error() string {
	return failureMessage(e.Reason, e.Err)
}

// Message returns the reason without the underlying cause.
func (e *BatchError) Message() string {
	return failureMessage(e.Reason, nil)
}

// Cause returns the underlying cause, if any.
func (e *BatchError) Cause() error {
	return e.Err
}

// Unwrap exposes both the reason sentinel and the underlying cause.
func (e *BatchError) Unwrap() []error {
	return failureChain(e.Reason, e.Err)
}

// EntryError is a failure confined to one entry's build or run.
// It never aborts a batch on its own.
type EntryError struct {
	Kind   ErrorKind
	Entry  string
	Reason error
	Err    error
}

// NewEntryError classifies err as an entry-level failure caused by reason.
func NewEntryError(entry string, reason, err error) *EntryError {
	return &EntryError{Kind: KindRuntime, Entry: entry, Reason: reason, Err: err}
}

func (e *EntryError) Error() string {
	return e.prefixed(failureMessage(e.Reason, e.Err))
}

// Message returns the entry name and reason without the underlying cause.
func (e *EntryError) Message() string {
	return e.prefixed(failureMessage(e.Reason, nil))
}

// Cause returns the underlying cause, if any.
func (e *EntryError) Cause() error {
	return e.Err
}

func (e *EntryError) prefixed(msg string) string {
	if e.Entry == "" {
		return msg
	}
	return e.Entry + ": " + msg
}

// Unwrap exposes both the reason sentinel and the underlying cause.
func (e *EntryError) Unwrap() []error {
	return failureChain(e.Reason, e.Err)
}

// IsPrecondition reports whether err carries a violated environment precondition.
func IsPrecondition(err error) bool {
	var batchErr *BatchError
	if errors.As(err, &batchErr) && batchErr.Kind == KindPrecondition {
		return true
	}
	var entryErr *EntryError
	return errors.As(err, &entryErr) && entryErr.Kind == KindPrecondition
}

func failureMessage(reason, err error) string {
	switch {
	case reason == nil && err == nil:
		return "unknown failure"
	case reason == nil:
		return err.Error()
	case err == nil:
		return reason.Error()
	default:
		return reason.Error() + ": " + err.Error()
	}
}

func failureChain(reason, err error) []error {
	chain := make([]error, 0, 2)
	if reason != nil {
		chain = append(chain, reason)
	}
	if err != nil {
		chain = append(chain, err)
	}
	return chain
}
