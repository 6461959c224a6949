package kdindex

import (
	"runtime"
	"sync/atomic"
)

type forkQueueTask[T any] struct {
	Started int32
	F       func() T
	Result  chan T
}

// A forkQueue runs recursive tasks on a fixed number of Goroutines.
//
// Run() starts the root task, and tasks may call Fork() to run two
// sub-tasks which may end up on separate Goroutines. Fork() returns once both
// sub-tasks are done.
//
// A nil *forkQueue runs everything on the calling Goroutine.
type forkQueue[T any] struct {
	queue chan *forkQueueTask[T]
}

// newForkQueue creates a queue with numWorkers Goroutines.
// If numWorkers is negative, GOMAXPROCS is used. If numWorkers is 0 or 1, nil
// is returned.
func newForkQueue[T any](numWorkers int) *forkQueue[T] {
	if numWorkers < 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers <= 1 {
		return nil
	}
	res := &forkQueue[T]{
		queue: make(chan *forkQueueTask[T], numWorkers*64),
	}
	for i := 0; i < numWorkers; i++ {
		go res.worker()
	}
	return res
}

func (f *forkQueue[T]) Run(fn func() T) T {
	if f == nil {
		return fn()
	}
	defer close(f.queue)
	task := &forkQueueTask[T]{F: fn, Result: make(chan T, 1)}
	f.queue <- task
	return <-task.Result
}

func (f *forkQueue[T]) Fork(fn1, fn2 func() T) (T, T) {
	if f == nil {
		return fn1(), fn2()
	}
	task := &forkQueueTask[T]{F: fn2, Result: make(chan T, 1)}
	select {
	case f.queue <- task:
	default:
		// The queue is saturated, so the caller will run fn2 itself below.
	}
	result1 := fn1()
	var result2 T
	if atomic.SwapInt32(&task.Started, 1) == 0 {
		result2 = fn2()
	} else {
		result2 = <-task.Result
	}
	return result1, result2
}

func (f *forkQueue[T]) worker() {
	for task := range f.queue {
		if atomic.SwapInt32(&task.Started, 1) != 0 {
			// Claimed by the forking Goroutine.
			continue
		}
		task.Result <- task.F()
	}
}
