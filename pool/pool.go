package pool

import (
	"sync"
)

// Pool is a set of long lived workers. Each worker has a stable id so callers
// can own one aggregation context per worker and reduce them after a barrier.
type Pool struct {
	workers []*worker
	wg      sync.WaitGroup
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		workers: make([]*worker, 0, n),
	}
	for i := 0; i < n; i++ {
		w := &worker{
			in: make(chan func()),
			wg: &p.wg,
		}
		p.wg.Add(1)
		go w.work()
		p.workers = append(p.workers, w)
	}
	return p
}

func (p *Pool) Size() int {
	return len(p.workers)
}

func (p *Pool) Stop() {
	workers := p.workers
	p.workers = nil
	for _, wrkr := range workers {
		close(wrkr.in)
	}
	p.wg.Wait()
}

// Each invokes f once for every i in [0, n), unordered and possibly
// concurrently. The first argument to f is the id of the worker running the
// call. Each blocks until every invocation has returned.
func (p *Pool) Each(n int, f func(wid, i int)) {
	if n <= 0 {
		return
	}
	var done sync.WaitGroup
	chunk := n / len(p.workers)
	if n%len(p.workers) != 0 {
		chunk++
	}
	for wid := range p.workers {
		start := wid * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wid := wid
		done.Add(1)
		p.workers[wid].in <- func() {
			defer done.Done()
			for i := start; i < end; i++ {
				f(wid, i)
			}
		}
	}
	done.Wait()
}

type worker struct {
	in chan func()
	wg *sync.WaitGroup
}

func (w *worker) work() {
	defer w.wg.Done()
	for f := range w.in {
		f()
	}
}
