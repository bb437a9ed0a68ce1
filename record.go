package lark

import "unsafe"

// Record is a single binding: a symbol, the value currently bound to it,
// and the flags that govern how set/export treat it. Records are owned
// exclusively by the Table that created them and never outlive it.
type Record struct {
	symbol   *Symbol
	binding  Value
	constant bool
	exported bool
	next     *Record
}

// Symbol returns the record's key.
func (r *Record) Symbol() *Symbol { return r.symbol }

// Binding returns the record's current value.
func (r *Record) Binding() Value { return r.binding }

// Constant reports whether the binding has been made immutable.
func (r *Record) Constant() bool { return r.constant }

// Exported reports whether the binding is part of its structure's
// interface.
func (r *Record) Exported() bool { return r.exported }

const (
	minBuckets    = 8
	maxMultiplier = 2 // table doubles once bindings > buckets*maxMultiplier
)

// Table is the per-structure open-chained hash map from symbol identity to
// Record, grounded on structures.c's lookup/lookup_or_add (MIN_BUCKETS 8,
// MAX_MULTIPLIER 2). Bucket count is always 0 or a power of two >= 8.
type Table struct {
	buckets []*Record
	count   int
}

// identityHash returns a hash of sym's pointer identity, per spec.md §3's
// "hash(sym, n) = fn(identity(sym)) mod n". No third-party hashing library
// is grounded for pointer-identity hashing in the example pack (see
// DESIGN.md); this is the one-line stdlib equivalent.
func identityHash(sym *Symbol) uintptr {
	h := uintptr(unsafe.Pointer(sym))
	// Spread low bits: *Symbol allocations are word-aligned, so raw
	// addresses cluster in the low bucket indices without this.
	h ^= h >> 15
	h *= 0x9e3779b97f4a7c15
	h ^= h >> 13
	return h
}

func (t *Table) bucketIndex(sym *Symbol) int {
	n := len(t.buckets)
	if n == 0 {
		return 0
	}
	return int(identityHash(sym)) & (n - 1)
}

// Lookup returns the record for sym, or nil if none exists. Identity
// comparison; O(1) expected.
func (t *Table) Lookup(sym *Symbol) *Record {
	if len(t.buckets) == 0 {
		return nil
	}
	for r := t.buckets[t.bucketIndex(sym)]; r != nil; r = r.next {
		if r.symbol == sym {
			return r
		}
	}
	return nil
}

// LookupOrAdd returns the existing record for sym, or creates one with
// binding = Void, constant = false, exported = exportAll. If owner is
// non-nil and sym is currently in owner's inherited interface, the symbol
// migrates out of that interface and the new record is marked exported
// (spec.md §4.1, invariant 4 in §8).
func (t *Table) LookupOrAdd(sym *Symbol, exportAll bool, owner *Structure) *Record {
	if r := t.Lookup(sym); r != nil {
		return r
	}
	t.grow()
	r := &Record{symbol: sym, binding: Void, exported: exportAll}
	if owner != nil && owner.removeFromInterface(sym) {
		r.exported = true
	}
	idx := t.bucketIndex(sym)
	r.next = t.buckets[idx]
	t.buckets[idx] = r
	t.count++
	return r
}

// grow ensures capacity for one more binding, doubling (or performing the
// initial allocation at minBuckets) whenever the load factor would exceed
// maxMultiplier.
func (t *Table) grow() {
	if len(t.buckets) == 0 {
		t.buckets = make([]*Record, minBuckets)
		return
	}
	if t.count+1 <= len(t.buckets)*maxMultiplier {
		return
	}
	old := t.buckets
	t.buckets = make([]*Record, len(old)*2)
	for _, head := range old {
		for r := head; r != nil; {
			next := r.next
			idx := t.bucketIndex(r.symbol)
			r.next = t.buckets[idx]
			t.buckets[idx] = r
			r = next
		}
	}
}

// Walk calls f once for every record in the table, in unspecified order.
// Stops early if f returns false.
func (t *Table) Walk(f func(*Record) bool) {
	for _, head := range t.buckets {
		for r := head; r != nil; r = r.next {
			if !f(r) {
				return
			}
		}
	}
}

// Len returns the number of live bindings.
func (t *Table) Len() int { return t.count }

// Buckets returns the current bucket count (0 before first insert).
func (t *Table) Buckets() int { return len(t.buckets) }
