// Package frame provides the frame-scheduling primitive used by the animation
// engines: "run this callback once before the next frame", with cancellation
// by handle.
//
// The application drives a Loop from ebiten's Update, one Flush per tick.
// Tests drive the same Loop by calling Flush directly, which makes every
// engine step deterministic.
package frame

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Scheduler is the capability the engines depend on.
type Scheduler interface {
	// Request schedules fn to run once on the next frame.
	Request(fn func()) Handle
	// Cancel drops a pending request. Unknown or already-run handles are ignored.
	Cancel(h Handle)
}

type request struct {
	handle Handle
	fn     func()
}

// Loop is a single-goroutine Scheduler flushed once per frame.
type Loop struct {
	nextHandle Handle
	queue      []request
	live       map[Handle]struct{}
	frames     uint64
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	return &Loop{
		nextHandle: 1, // 0 保留为无效句柄
		queue:      make([]request, 0, 8),
		live:       make(map[Handle]struct{}),
	}
}

// Request implements Scheduler.
func (l *Loop) Request(fn func()) Handle {
	h := l.nextHandle
	l.nextHandle++
	l.queue = append(l.queue, request{handle: h, fn: fn})
	l.live[h] = struct{}{}
	return h
}

// Cancel implements Scheduler. A request cancelled during a Flush that has
// not run yet is skipped.
func (l *Loop) Cancel(h Handle) {
	delete(l.live, h)
}

// Flush runs every callback requested before this call, in request order.
// Callbacks requested while flushing are deferred to the next Flush, so a
// callback that re-requests itself runs exactly once per frame.
func (l *Loop) Flush() {
	l.frames++
	if len(l.queue) == 0 {
		return
	}

	batch := l.queue
	l.queue = make([]request, 0, len(batch))

	for _, r := range batch {
		if _, ok := l.live[r.handle]; !ok {
			continue
		}
		delete(l.live, r.handle)
		r.fn()
	}
}

// Pending returns the number of live requests waiting for the next Flush.
func (l *Loop) Pending() int {
	return len(l.live)
}

// Frames returns how many times Flush has been called.
func (l *Loop) Frames() uint64 {
	return l.frames
}
