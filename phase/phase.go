package phase

import "errors"

var ErrUnknownFailure = errors.New("unknown failure")

type Kind uint8

const (
	KindEmpty Kind = iota
	KindSuccess
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Phase is the state of something loaded asynchronously: nothing yet, a
// value, or the error that prevented it. The zero value is Empty.
type Phase[T any] struct {
	kind  Kind
	value T
	err   error
}

func Empty[T any]() Phase[T] {
	return Phase[T]{}
}

func Success[T any](v T) Phase[T] {
	return Phase[T]{
		kind:  KindSuccess,
		value: v,
	}
}

// Failure wraps err; a nil err becomes ErrUnknownFailure.
func Failure[T any](err error) Phase[T] {
	if err == nil {
		err = ErrUnknownFailure
	}

	return Phase[T]{
		kind: KindFailure,
		err:  err,
	}
}

func (p Phase[T]) Kind() Kind {
	return p.kind
}

func (p Phase[T]) Value() (v T, ok bool) {
	if p.kind != KindSuccess {
		return
	}

	return p.value, true
}

func (p Phase[T]) Err() error {
	return p.err
}

// Match calls exactly one of the three handlers for p and returns its result.
func Match[T, R any](p Phase[T], empty func() R, success func(T) R, failure func(error) R) R {
	switch p.kind {
	case KindSuccess:
		return success(p.value)
	case KindFailure:
		return failure(p.err)
	default:
		return empty()
	}
}
