package lark

// cacheSets is the fixed slot count of the direct-mapped lookup cache,
// grounded on structures.c's SINGLE_DM_CACHE block (CACHE_SETS 256).
const cacheSets = 256

type cacheSlot struct {
	structure *Structure
	record    *Record
	valid     bool
}

// CacheStats mirrors structures.c's DEBUG-gated cache counters, carried
// forward unconditionally per SPEC_FULL §12.
type CacheStats struct {
	Hits       int
	Misses     int
	Collisions int // a probe found a slot occupied by a different key
	Conflicts  int // an enter() overwrote a still-valid, different entry
}

// lookupCache is the process-wide, direct-mapped cache of (structure,
// symbol) -> Record (spec.md §4.5). It is purely an optimization: every
// slot must be treated as potentially stale, never used to extend an
// object's lifetime, and invalidated rather than traced by the collector
// (spec.md §9 "Process-wide cache").
type lookupCache struct {
	slots [cacheSets]cacheSlot
	stats CacheStats
}

func cacheIndex(sym *Symbol) int {
	return int(identityHash(sym)) & (cacheSets - 1)
}

// get returns the cached record for (s, sym), or nil on a miss.
func (c *lookupCache) get(s *Structure, sym *Symbol) *Record {
	slot := &c.slots[cacheIndex(sym)]
	if slot.valid && slot.structure == s && slot.record.symbol == sym {
		c.stats.Hits++
		return slot.record
	}
	c.stats.Misses++
	if slot.valid {
		c.stats.Collisions++
	}
	return nil
}

// enter records that (s, sym) resolves to rec.
func (c *lookupCache) enter(s *Structure, sym *Symbol, rec *Record) {
	slot := &c.slots[cacheIndex(sym)]
	if slot.valid && (slot.structure != s || slot.record.symbol != sym) {
		c.stats.Conflicts++
	}
	slot.structure = s
	slot.record = rec
	slot.valid = true
}

// invalidateSymbol clears every slot whose cached record's symbol is sym
// (spec.md §4.5: lookup_or_add materializing a new binding for sym).
func (c *lookupCache) invalidateSymbol(sym *Symbol) {
	for i := range c.slots {
		if c.slots[i].valid && c.slots[i].record.symbol == sym {
			c.slots[i] = cacheSlot{}
		}
	}
}

// invalidateStructure clears every slot referencing s (spec.md §4.5:
// structure freed by GC sweep).
func (c *lookupCache) invalidateStructure(s *Structure) {
	for i := range c.slots {
		if c.slots[i].valid && c.slots[i].structure == s {
			c.slots[i] = cacheSlot{}
		}
	}
}

// flush clears the entire cache (spec.md §4.5: set_interface, open,
// access, name_structure, and bulk structural changes).
func (c *lookupCache) flush() {
	for i := range c.slots {
		c.slots[i] = cacheSlot{}
	}
}

// Stats returns a snapshot of the cache's hit/miss/collision/conflict
// counters.
func (c *lookupCache) Stats() CacheStats { return c.stats }
