package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request"
	KindUpstream       ErrorKind = "upstream"
	KindInternal       ErrorKind = "internal"
)

// InsightError is the failure half of an insights call. Only its message
// reaches the client.
type InsightError struct {
	Kind ErrorKind
	Err  error
}

func (e *InsightError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *InsightError) Unwrap() error {
	return e.Err
}

func NewInsightError(kind ErrorKind, format string, args ...any) *InsightError {
	return &InsightError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var ie *InsightError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindInternal
}
