package internal

// heightHeap orders pending recomputations by their height in the dependency
// graph, so a function runs only after everything it depends on has settled.
type heightHeap struct {
	levels [][]*Function
	max    int
}

func newHeightHeap() *heightHeap {
	return &heightHeap{levels: make([][]*Function, 8)}
}

func (h *heightHeap) insert(f *Function) {
	if f.has(flagInHeap) {
		return
	}
	f.set(flagInHeap)

	height := f.height
	for height >= len(h.levels) {
		h.levels = append(h.levels, nil)
	}
	h.levels[height] = append(h.levels[height], f)

	if height > h.max {
		h.max = height
	}
}

// drain processes every entry in height order, leaving the heap empty.
// Entries inserted while draining land at a greater height than the one
// being processed and are picked up in the same pass.
func (h *heightHeap) drain(process func(*Function)) {
	for lvl := 0; lvl <= h.max; lvl++ {
		level := h.levels[lvl]
		for i := 0; i < len(level); i++ {
			f := level[i]
			f.clear(flagInHeap)
			process(f)
			level = h.levels[lvl]
		}
		h.levels[lvl] = level[:0]
	}
	h.max = 0
}
