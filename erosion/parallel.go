package erosion

import "sync"

// forEachRow calls fn once for every row of the grid, splitting the rows
// into contiguous bands when more than one worker is configured. It returns
// after every band is done.
func (t *CPUEroder) forEachRow(fn func(y int)) {
	var length = t.grid.length
	if t.workers <= 1 || length < 2 {
		for y := 0; y < length; y++ {
			fn(y)
		}
		return
	}

	var band = (length + t.workers - 1) / t.workers
	var wg sync.WaitGroup
	for start := 0; start < length; start += band {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for y := start; y < end; y++ {
				fn(y)
			}
		}(start, min(start+band, length))
	}
	wg.Wait()
}
