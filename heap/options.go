package heap

// Options selects which allocator behaviors are active. Different presets
// reproduce the historical behavior levels; the zero value is the most
// restricted configuration (grow-only, no reuse).
type Options struct {
	// Name for this configuration (reports and benchmarks).
	Name string

	// Recycle lets Malloc satisfy requests from freed blocks at all.
	// When false every allocation grows the break.
	Recycle bool

	// Bins indexes free break-chain blocks by kilobyte size class for
	// best-fit lookup. When false (and Recycle is set) the allocator
	// falls back to linear first-fit over the break chain.
	Bins bool

	// Split carves the unused remainder of an oversized winner into a new
	// free block when it would be viable.
	Split bool

	// Coalesce merges free blocks with free address neighbors on Free and
	// enables the neighbor-absorbing realloc branches.
	Coalesce bool

	// MapLarge serves requests at or above LargeThreshold from anonymous
	// mappings instead of the break.
	MapLarge bool

	// AlignSizes rounds request sizes up to the pointer width, keeping
	// every returned payload pointer aligned.
	AlignSizes bool

	// TailExtend grows the last break-chain block in place when it is
	// free instead of appending a fresh block.
	TailExtend bool
}

// Predefined behavior levels.
var (
	// Level1: bump-the-break only. Free marks blocks free for the
	// counters but nothing is ever reused.
	Level1 = Options{Name: "Level1"}

	// Level2: linear first-fit reuse over the break chain, whole blocks
	// only. No splitting, no coalescing, no mapping.
	Level2 = Options{
		Name:    "Level2",
		Recycle: true,
	}

	// Level3: binned best-fit with splitting, coalescing, large-request
	// mapping and tail extension, but no size alignment.
	Level3 = Options{
		Name:       "Level3",
		Recycle:    true,
		Bins:       true,
		Split:      true,
		Coalesce:   true,
		MapLarge:   true,
		TailExtend: true,
	}

	// Level4: everything Level3 does plus pointer-width size alignment.
	Level4 = Options{
		Name:       "Level4",
		Recycle:    true,
		Bins:       true,
		Split:      true,
		Coalesce:   true,
		MapLarge:   true,
		AlignSizes: true,
		TailExtend: true,
	}

	// DefaultOptions is used when New receives nil options.
	DefaultOptions = Level4
)
