package controller

import (
	"errors"
	"fmt"
)

// ErrFetchFailed covers every network, status or decode failure on either
// endpoint. Callers match it with errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

var errEmptyDetail = errors.New("empty detail payload")

// FetchError records which fetch failed.
type FetchError struct {
	Op  string // "list" or "detail"
	ID  int    // recipe id for detail fetches
	Err error
}

func (e *FetchError) Error() string {
	if e.Op == opDetail {
		return fmt.Sprintf("%v: %s recipe %d: %v", ErrFetchFailed, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrFetchFailed, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
