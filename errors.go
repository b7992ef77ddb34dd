package hashmap

import "errors"

var (
	// ErrInvalidArgument reports a nil or destroyed table, or a non-positive
	// size passed to New.
	ErrInvalidArgument = errors.New("hashmap: invalid argument")

	// ErrKeyNotFound reports a Get or Delete miss.
	ErrKeyNotFound = errors.New("hashmap: key not found")

	// ErrRehashFailed reports that a Put succeeded but the automatic grow it
	// triggered did not. The entry is stored; only the resize failed.
	ErrRehashFailed = errors.New("hashmap: rehash failed")

	// ErrSizeLimitExceeded reports that doubling the bucket array would
	// overflow its length representation.
	ErrSizeLimitExceeded = errors.New("hashmap: size limit exceeded")

	// ErrClearFailed reports a Clear on a nil or destroyed table.
	ErrClearFailed = errors.New("hashmap: clear failed")
)
