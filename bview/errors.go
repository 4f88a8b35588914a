package bview

import (
	"errors"
	"strconv"

	"github.com/Countermatt/Brahms/bview/bident"
)

// ErrEmptyView is returned from [*Store.RandomElement]
// when the requested view has no entries.
var ErrEmptyView = errors.New("view is empty")

// ErrIndexOutOfRange is matched, through errors.Is,
// by every [IndexOutOfRangeError].
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrHashUnavailable is returned from [*Store.HashIdentifier]
// when a pseudonym could not be derived.
var ErrHashUnavailable = bident.ErrHashUnavailable

// IndexOutOfRangeError is returned from the sampler removal methods
// when an index does not address an entry in the sampler view.
type IndexOutOfRangeError struct {
	Index, Len int
}

func (e IndexOutOfRangeError) Error() string {
	return "index " + strconv.Itoa(e.Index) +
		" out of range for view of length " + strconv.Itoa(e.Len)
}

func (e IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
