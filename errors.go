package gref

import (
	"github.com/grailbio/base/errors"
)

// Error kinds mirror the taxonomy every lifecycle operation is specified
// against: a rejected configuration, an operation invoked in the wrong
// lifecycle state, an allocation failure, or a failure propagated from the
// sort collaborator. Every failing constructor or transition returns a nil
// handle alongside one of these; there is no partially-built state left
// behind (see teardown in pool.go, link.go, index.go).
var (
	errBadParam     = errors.Invalid
	errInvalidState = errors.Precondition
	errOOM          = errors.ResourceExhausted
	errSortFailure  = errors.Other
	errNotSupported = errors.NotSupported
)

func badParam(args ...interface{}) error {
	return errors.E(errBadParam, args...)
}

func notSupported(args ...interface{}) error {
	return errors.E(errNotSupported, args...)
}

func invalidState(op string, got, want State) error {
	return errors.E(errInvalidState, op, "requires state", want, "but graph is", got)
}

func outOfMemory(args ...interface{}) error {
	return errors.E(errOOM, args...)
}

func sortFailure(err error) error {
	return errors.E(errSortFailure, "sortByKey failed", err)
}
