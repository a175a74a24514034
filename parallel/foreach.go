// Package parallel contains the bounded ForEach used by the split search.
package parallel

import "sync"
import "sync/atomic"

// ForEach calls body for every integer from 0 to length-1 using at most limit goroutines.
// It returns after every call has returned.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return // No iterations to perform
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > length {
		limit = length
	}
	if limit == 1 {
		for i := 0; i < length; i++ {
			body(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(limit)
	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= length {
					return
				}
				body(i)
			}
		}()
	}
	wg.Wait()
}
