package engine

import (
	"context"
	"time"

	. "github.com/walleye-chess/walleye/pkg/common"
)

const (
	nodePollMask     = 4095
	timeSafeguard    = 100 * time.Millisecond
	defaultMovesToGo = 30
	timeUsageFactor  = 0.8
)

// timeManager allocates the time slice for one search and answers the
// node-polled abort check. Cancellation is cooperative: the flag is read
// by the search loop and set here on deadline or context cancel.
type timeManager struct {
	start     time.Time
	deadline  time.Duration
	nodeLimit int64
	ctx       context.Context
	aborted   bool
}

func newTimeManager(ctx context.Context, limits LimitsType, whiteMove bool) *timeManager {
	var tm = &timeManager{
		start: time.Now(),
		ctx:   ctx,
	}
	tm.deadline = allocateTime(limits, whiteMove)
	if limits.Nodes > 0 {
		tm.nodeLimit = int64(limits.Nodes)
	}
	return tm
}

// allocateTime follows the classic clock split: spend a fixed fraction
// of the remaining clock per move, assuming movestogo moves left, with a
// safeguard so the flag never falls on engine overhead. Zero means no
// deadline (depth or infinite search).
func allocateTime(limits LimitsType, whiteMove bool) time.Duration {
	if limits.MoveTime > 0 {
		return time.Duration(limits.MoveTime) * time.Millisecond
	}
	if limits.Infinite {
		return 0
	}
	var clock, increment int
	if whiteMove {
		clock, increment = limits.WhiteTime, limits.WhiteIncrement
	} else {
		clock, increment = limits.BlackTime, limits.BlackIncrement
	}
	if clock == 0 && increment == 0 {
		return 0
	}
	var movesToGo = limits.MovesToGo
	if movesToGo == 0 {
		movesToGo = defaultMovesToGo
	}
	var base = time.Duration(clock)*time.Millisecond - timeSafeguard
	if base <= 0 {
		if increment > 0 {
			return time.Duration(float64(increment) * timeUsageFactor * float64(time.Millisecond))
		}
		return time.Millisecond
	}
	return time.Duration(float64(base) * timeUsageFactor / float64(movesToGo))
}

func (tm *timeManager) Elapsed() time.Duration {
	return time.Since(tm.start)
}

// isHardTimeout is called once per node; the expensive checks run every
// nodePollMask+1 nodes. Once set, the abort flag is sticky.
func (tm *timeManager) isHardTimeout(nodes int64) bool {
	if tm.aborted {
		return true
	}
	if tm.nodeLimit > 0 && nodes >= tm.nodeLimit {
		tm.aborted = true
		return true
	}
	if nodes&nodePollMask != 0 {
		return false
	}
	if tm.ctx.Err() != nil {
		tm.aborted = true
		return true
	}
	if tm.deadline > 0 && time.Since(tm.start) >= tm.deadline {
		tm.aborted = true
		return true
	}
	return false
}

// isSoftTimeout reports whether starting another iteration is pointless.
func (tm *timeManager) isSoftTimeout() bool {
	return tm.deadline > 0 && time.Since(tm.start) >= tm.deadline/2
}
