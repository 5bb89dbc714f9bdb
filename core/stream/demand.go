package stream

import (
	"math"
	"sync/atomic"
)

// Unbounded is the demand value that disables backpressure for a
// subscription: once outstanding demand reaches Unbounded the Publisher may
// emit freely and Claim no longer decrements.
const Unbounded int64 = math.MaxInt64

// Demand tracks the outstanding request count of a subscription. It is safe
// for concurrent use and is the accounting primitive behind every
// Subscription implementation in this module.
//
// The zero value is ready to use and carries no demand.
type Demand struct {
	n atomic.Int64
}

// Add increases the outstanding demand by n and returns the new value.
// The sum saturates at Unbounded instead of overflowing, after which the
// demand is permanently unbounded. Callers are expected to validate that n is
// positive before calling Add.
func (d *Demand) Add(n int64) int64 {
	for {
		cur := d.n.Load()
		if cur == Unbounded {
			return Unbounded
		}
		next := cur + n
		if next < cur || next > Unbounded-1 {
			next = Unbounded
		}
		if d.n.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// Claim consumes one unit of demand. It returns false when no demand is
// outstanding, in which case the caller must pause emission until the next
// Request. Unbounded demand is never decremented.
func (d *Demand) Claim() bool {
	for {
		cur := d.n.Load()
		switch {
		case cur == 0:
			return false
		case cur == Unbounded:
			return true
		}
		if d.n.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Value reports the current outstanding demand. It is a snapshot and may be
// stale by the time the caller acts on it; use it for introspection and
// stats, not for emission decisions.
func (d *Demand) Value() int64 {
	return d.n.Load()
}
