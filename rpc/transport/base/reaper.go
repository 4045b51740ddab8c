package base

import (
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"sync"
)

// reaper reclaims finished connection contexts in the background.
//
// Finishing connections post a notification. Notifications coalesce (the signal
// channel holds at most one), so a single notification may stand for many finished
// connections. Every pass therefore sweeps the whole registry and reclaims all
// closed contexts. The pass never blocks, the accept loop is never involved.
type reaper struct {
	contexts *xsync.MapOf[uuid.UUID, *connContext]
	onReap   func(cc *connContext)

	signal   chan struct{}
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newReaper(contexts *xsync.MapOf[uuid.UUID, *connContext], onReap func(cc *connContext)) *reaper {
	return &reaper{
		contexts: contexts,
		onReap:   onReap,
		signal:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// notify signals that at least one context has finished
//
// Thread-safety: This method is thread-safe and never blocks.
func (r *reaper) notify() {
	select {
	case r.signal <- struct{}{}:
	default:
		// a pass is already pending and will see this context as well
	}
}

// run processes notifications until stop is called
func (r *reaper) run() {
	defer close(r.done)
	for {
		select {
		case <-r.signal:
			r.reapAll()
		case <-r.stopCh:
			r.reapAll()
			return
		}
	}
}

// stop ends the reaper after a final pass and waits for it
func (r *reaper) stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
	<-r.done
}

// reapAll removes every closed context from the registry and returns how many were removed
func (r *reaper) reapAll() int {
	n := 0
	r.contexts.Range(func(id uuid.UUID, cc *connContext) bool {
		if cc.State() == StateClosed {
			r.contexts.Delete(id)
			if r.onReap != nil {
				r.onReap(cc)
			}
			n++
		}
		return true
	})
	return n
}
