// Package parallel runs independent work, like linting many pages,
// on a bounded number of goroutines.
package parallel

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
)

var ErrInvalidParallelism = errors.New("degree of parallelism must be > 0")

type Processor func(idx int) error

// ForEach calls process for every index in [0, total), at most n at a time.
// Errors are coalesced into a *multierror.Error, in index order.
//
// If callers need process to return actual data,
// they should allocate a slice of the data they need,
// and assign to the slice index while processing. Map does this.
func ForEach(total int, n int, process Processor) error {
	if n <= 0 {
		return ErrInvalidParallelism
	}
	if n > total {
		n = total
	}
	errs := make([]error, total)
	indices := make(chan int)
	wg := sync.WaitGroup{}
	wg.Add(n)
	for w := 0; w < n; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				errs[i] = process(i)
			}
		}()
	}
	for i := 0; i < total; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()
	return multierror.Append(nil, errs...).ErrorOrNil()
}

// Map applies f to every item, at most n at a time,
// and returns the results in the order of items.
// Results for items whose f errored are still set.
func Map[T, R any](items []T, n int, f func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := ForEach(len(items), n, func(i int) error {
		r, err := f(items[i])
		results[i] = r
		return err
	})
	return results, err
}
