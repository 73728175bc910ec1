package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/walleye-chess/walleye/internal/console"
	"github.com/walleye-chess/walleye/pkg/common"
	"github.com/walleye-chess/walleye/pkg/engine"
)

// runSelfPlay plays the engine against itself from the given position,
// printing the board each ply until the game ends.
func runSelfPlay(debug *log.Logger, fen string, depth int) error {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine()
	var positions = []common.Position{p}

	for ply := 0; ; ply++ {
		var current = &positions[len(positions)-1]
		console.PrintPosition(os.Stdout, current)

		if len(common.GenerateLegalMoves(current)) == 0 {
			if current.IsCheck() {
				fmt.Println("checkmate")
			} else {
				fmt.Println("stalemate")
			}
			return nil
		}
		if isGameDrawn(positions) {
			fmt.Println("draw")
			return nil
		}

		var si = eng.Search(context.Background(), common.SearchParams{
			Positions: positions,
			Limits:    common.LimitsType{Depth: depth},
		})
		if len(si.MainLine) == 0 {
			return fmt.Errorf("no move found for %v", current.String())
		}
		var move = si.MainLine[0]
		debug.Println("selfplay", ply, move, si.Score, si.Nodes)
		fmt.Printf("%v plays %v\n", let(current.WhiteMove, "white", "black"), move)

		var next, ok = current.MakeMoveLAN(move.String())
		if !ok {
			return fmt.Errorf("engine returned illegal move %v", move)
		}
		positions = append(positions, next)
	}
}

func isGameDrawn(positions []common.Position) bool {
	var current = &positions[len(positions)-1]
	if current.Rule50 >= 100 {
		return true
	}
	var repetitions = 0
	for i := range positions {
		if positions[i].Key == current.Key {
			repetitions++
		}
	}
	return repetitions >= 3
}

func let(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
