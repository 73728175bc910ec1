package main

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/walleye-chess/walleye/pkg/common"
)

// runPerft prints node counts and timings for each depth up to the
// requested one.
func runPerft(fen string, depth int) error {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	fmt.Println(p.String())
	for d := 1; d <= depth; d++ {
		var start = time.Now()
		var nodes = parallelPerft(&p, d)
		var elapsed = time.Since(start)
		fmt.Printf("perft %v nodes %v time %v\n", d, nodes, elapsed.Round(time.Millisecond))
	}
	return nil
}

// parallelPerft splits the count across root moves. Position is a value
// type, so every worker walks its own copy.
func parallelPerft(p *common.Position, depth int) int64 {
	if depth <= 1 {
		return common.Perft(p, depth)
	}
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	var total int64
	var u common.Undo
	for _, move := range common.GenerateLegalMoves(p) {
		var child = *p
		child.MakeMove(move, &u)
		g.Go(func() error {
			atomic.AddInt64(&total, common.Perft(&child, depth-1))
			return nil
		})
	}
	g.Wait()
	return total
}
