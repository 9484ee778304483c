package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Submit once Quit has been called
var ErrPoolClosed = errors.New("worker pool is closed")

type job struct {
	ctx    context.Context
	task   func(ctx context.Context) error
	result chan error
}

// WorkerPool runs submitted tasks on a fixed number of workers. A pool with a single worker
// executes tasks strictly one after another in submission order.
type WorkerPool struct {
	maxWorker   int
	queuedTaskC chan job
	quitChan    chan struct{}
	done        chan struct{}
	waitGroup   sync.WaitGroup
	quitOnce    sync.Once
}

// New will create an instance of WorkerPool.
func New(workers, size int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{
		maxWorker:   workers,
		queuedTaskC: make(chan job, size),
		quitChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Run starts the workers. Tasks are executed until Quit is called
func (wp *WorkerPool) Run() {
	for i := 0; i < wp.maxWorker; i++ {
		wp.waitGroup.Add(1)
		go wp.worker()
	}
}

// Submit queues a task and blocks until it has been executed or ctx is done.
// A task whose context expired while it was queued is skipped.
func (wp *WorkerPool) Submit(ctx context.Context, task func(ctx context.Context) error) error {
	j := job{ctx: ctx, task: task, result: make(chan error, 1)}

	select {
	case <-wp.quitChan:
		return ErrPoolClosed
	default:
	}

	select {
	case wp.queuedTaskC <- j:
	case <-wp.quitChan:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.quitChan:
		// a running task still delivers its own result
		select {
		case err := <-j.result:
			return err
		case <-wp.done:
			select {
			case err := <-j.result:
				return err
			default:
				return ErrPoolClosed
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// TotalQueuedTask returns the total tasks left in the queue
func (wp *WorkerPool) TotalQueuedTask() int {
	return len(wp.queuedTaskC)
}

// Quit stops all workers and waits for the running tasks to finish. Queued
// tasks are dropped and their submitters get ErrPoolClosed.
func (wp *WorkerPool) Quit() {
	wp.quitOnce.Do(func() {
		close(wp.quitChan)
		wp.waitGroup.Wait()
		for {
			select {
			case j := <-wp.queuedTaskC:
				j.result <- ErrPoolClosed
			default:
				close(wp.done)
				return
			}
		}
	})
	<-wp.done
}

func (wp *WorkerPool) worker() {
	defer wp.waitGroup.Done()
	for {
		select {
		case j := <-wp.queuedTaskC:
			if err := j.ctx.Err(); err != nil {
				j.result <- err
				continue
			}
			j.result <- j.task(j.ctx)
		case <-wp.quitChan:
			return
		}
	}
}
