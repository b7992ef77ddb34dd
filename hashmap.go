// Package hashmap implements a string-to-int associative container using
// separate chaining and automatic doubling growth. A Table keeps its
// count/size ratio at or below MaxLoadFactor after every successful Put, so
// lookups stay amortized O(1).
//
// A Table is not safe for concurrent use. Callers sharing one across
// goroutines must provide their own locking; a sync.RWMutex permitting
// concurrent Get/ContainsKey but exclusive Put/Delete/Resize/Clear/Destroy
// is sufficient.
package hashmap

import (
	"fmt"
	"math"
)

// MaxLoadFactor is the count/size ratio above which Put grows the table.
const MaxLoadFactor = 0.75

type entry struct {
	key   string
	value int
	next  *entry
}

// Table is a separate-chaining hash table. The zero value is not usable;
// construct with New.
type Table struct {
	buckets []*entry
	count   int
}

// New returns a table with size buckets. size must be positive.
func New(size int) (*Table, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, size)
	}
	return &Table{buckets: make([]*entry, size)}, nil
}

func (t *Table) bucketIndex(key string) int {
	return int(Hash(key) % uint64(len(t.buckets)))
}

// Put stores value under key. If key is already present its value is
// overwritten in place and nothing else changes. A new key is inserted at
// the head of its chain; if that pushes the load factor above MaxLoadFactor
// the table grows immediately. When that grow fails, Put returns
// ErrRehashFailed wrapping the cause: the entry is stored and retrievable,
// only the growth failed.
func (t *Table) Put(key string, value int) error {
	if t == nil || t.buckets == nil {
		return ErrInvalidArgument
	}

	idx := t.bucketIndex(key)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			e.value = value
			return nil
		}
	}

	t.buckets[idx] = &entry{key: key, value: value, next: t.buckets[idx]}
	t.count++

	if float64(t.count)/float64(len(t.buckets)) > MaxLoadFactor {
		if err := t.Resize(); err != nil {
			return fmt.Errorf("%w: %w", ErrRehashFailed, err)
		}
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (t *Table) Get(key string) (int, error) {
	if t == nil || t.buckets == nil {
		return 0, ErrInvalidArgument
	}
	for e := t.buckets[t.bucketIndex(key)]; e != nil; e = e.next {
		if e.key == key {
			return e.value, nil
		}
	}
	return 0, ErrKeyNotFound
}

// ContainsKey reports whether key is present. A nil or destroyed table
// reports false rather than an error.
func (t *Table) ContainsKey(key string) bool {
	if t == nil || t.buckets == nil {
		return false
	}
	for e := t.buckets[t.bucketIndex(key)]; e != nil; e = e.next {
		if e.key == key {
			return true
		}
	}
	return false
}

// Delete removes key, or returns ErrKeyNotFound. The table never shrinks.
func (t *Table) Delete(key string) error {
	if t == nil || t.buckets == nil {
		return ErrInvalidArgument
	}

	idx := t.bucketIndex(key)
	var prev *entry
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			if prev != nil {
				prev.next = e.next
			} else {
				t.buckets[idx] = e.next
			}
			e.next = nil
			t.count--
			return nil
		}
		prev = e
	}
	return ErrKeyNotFound
}

// Resize doubles the bucket array and redistributes every entry under the
// new size. If doubling would overflow the array's length representation,
// Resize returns ErrSizeLimitExceeded before touching the table. Entries
// are relinked, never reallocated; chain order is not preserved.
func (t *Table) Resize() error {
	if t == nil || t.buckets == nil {
		return ErrInvalidArgument
	}

	oldSize := len(t.buckets)
	if oldSize > math.MaxInt/2 {
		return fmt.Errorf("%w: cannot double %d buckets", ErrSizeLimitExceeded, oldSize)
	}

	old := t.buckets
	t.buckets = make([]*entry, oldSize*2)
	t.count = 0
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := t.bucketIndex(e.key)
			e.next = t.buckets[idx]
			t.buckets[idx] = e
			t.count++
			e = next
		}
	}
	return nil
}

// Clear removes every entry, keeping the bucket array at its current size.
// It fails with ErrClearFailed only on a nil or destroyed table.
func (t *Table) Clear() error {
	if t == nil || t.buckets == nil {
		return ErrClearFailed
	}
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.count = 0
	return nil
}

// Destroy releases the table's contents for collection. It is idempotent
// and safe on a nil table. Afterwards Put, Get, Delete and Resize report
// ErrInvalidArgument, Clear reports ErrClearFailed, and ContainsKey
// reports false.
func (t *Table) Destroy() {
	if t == nil {
		return
	}
	t.buckets = nil
	t.count = 0
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Size returns the bucket-array length.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.buckets)
}

// LoadFactor returns count divided by size, or 0 for a nil or destroyed
// table.
func (t *Table) LoadFactor() float64 {
	if t == nil || len(t.buckets) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.buckets))
}

// Range calls fn for every entry, in bucket-index order and then chain
// order within a bucket, visiting each live entry exactly once. It stops
// early if fn returns false. fn must not mutate the table.
func (t *Table) Range(fn func(key string, value int) bool) {
	if t == nil {
		return
	}
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns every stored key in Range order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.Range(func(key string, _ int) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns every stored value in Range order.
func (t *Table) Values() []int {
	values := make([]int, 0, t.Len())
	t.Range(func(_ string, value int) bool {
		values = append(values, value)
		return true
	})
	return values
}
