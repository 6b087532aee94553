package simulator

// CacheBlock is one cached sector. Data is a placeholder: the model never
// materializes sector contents, only their residency.
type CacheBlock struct {
	Sector int
	Data   []byte
	Dirty  bool
	Hot    bool // false = cold segment (single reference), true = hot segment
}

// EvictedBlock describes a block pushed out by an insert
type EvictedBlock struct {
	Sector  int
	FromHot bool
	Dirty   bool
}

// BufferCache is a two-segment LRU cache over sector addresses. Blocks enter
// the cold segment on first reference and move to the hot segment on a repeat
// reference, so a burst of one-shot accesses cannot flush out the blocks that
// are actually being reused. Eviction always drains the cold segment before
// touching hot.
//
// The hot segment is capped at maxHot entries; promoting into a full hot
// segment demotes its least-recently-used block back to the cold side.
type BufferCache struct {
	capacity int
	maxHot   int
	blocks   map[int]*CacheBlock
	cold     []int // Sector keys, most-recently-used first
	hot      []int // Sector keys, most-recently-used first
}

// NewBufferCache creates an empty cache. A maxHot at or above capacity is
// clamped so the cold segment always has at least one slot.
func NewBufferCache(capacity, maxHot int) *BufferCache {
	if maxHot >= capacity {
		maxHot = capacity - 1
	}
	return &BufferCache{
		capacity: capacity,
		maxHot:   maxHot,
		blocks:   make(map[int]*CacheBlock),
	}
}

// Lookup checks residency of a sector. On a hit the block is promoted to the
// hot segment (or refreshed to its most-recently-used position if already
// hot) and returned. On a miss it returns nil; the caller inserts the block
// once the disk read resolving the miss completes.
func (c *BufferCache) Lookup(sector int) (*CacheBlock, bool) {
	block, ok := c.blocks[sector]
	if !ok {
		return nil, false
	}

	if block.Hot {
		c.hot = removeKey(c.hot, sector)
	} else {
		c.cold = removeKey(c.cold, sector)
		block.Hot = true
	}
	c.pushHot(sector)
	return block, true
}

// Insert adds a sector after its miss has been resolved by a disk read.
// New blocks always enter the cold segment as most-recently-used. When the
// cache is full the cold LRU block is evicted, or the hot LRU block if the
// cold segment is empty. Dirty blocks are dropped without a flush; writes in
// this model always succeed immediately.
func (c *BufferCache) Insert(sector int, dirty bool) (EvictedBlock, bool) {
	var evicted EvictedBlock
	var didEvict bool

	if _, ok := c.blocks[sector]; ok {
		// Already resident (a concurrent request for the same sector
		// resolved first). Just record the dirty bit.
		if dirty {
			c.blocks[sector].Dirty = true
		}
		return evicted, false
	}

	if len(c.blocks) >= c.capacity {
		if len(c.cold) > 0 {
			victim := c.cold[len(c.cold)-1]
			c.cold = c.cold[:len(c.cold)-1]
			evicted = EvictedBlock{Sector: victim, FromHot: false, Dirty: c.blocks[victim].Dirty}
		} else {
			victim := c.hot[len(c.hot)-1]
			c.hot = c.hot[:len(c.hot)-1]
			evicted = EvictedBlock{Sector: victim, FromHot: true, Dirty: c.blocks[victim].Dirty}
		}
		delete(c.blocks, evicted.Sector)
		didEvict = true
	}

	c.blocks[sector] = &CacheBlock{Sector: sector, Dirty: dirty}
	c.cold = append([]int{sector}, c.cold...)
	return evicted, didEvict
}

// pushHot places a key at the hot segment's MRU position, demoting the hot
// LRU block to the cold MRU position if the segment is at its cap
func (c *BufferCache) pushHot(sector int) {
	if len(c.hot) > 0 && len(c.hot) >= c.maxHot {
		demoted := c.hot[len(c.hot)-1]
		c.hot = c.hot[:len(c.hot)-1]
		c.blocks[demoted].Hot = false
		c.cold = append([]int{demoted}, c.cold...)
	}
	c.hot = append([]int{sector}, c.hot...)
}

// Len returns current occupancy
func (c *BufferCache) Len() int { return len(c.blocks) }

// Capacity returns the configured buffer count
func (c *BufferCache) Capacity() int { return c.capacity }

// ColdLen returns the number of blocks in the cold segment
func (c *BufferCache) ColdLen() int { return len(c.cold) }

// HotLen returns the number of blocks in the hot segment
func (c *BufferCache) HotLen() int { return len(c.hot) }

// Contains reports residency without touching recency state
func (c *BufferCache) Contains(sector int) bool {
	_, ok := c.blocks[sector]
	return ok
}

func removeKey(keys []int, sector int) []int {
	for i, k := range keys {
		if k == sector {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}
	return keys
}
