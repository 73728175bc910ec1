package engine

import (
	. "github.com/walleye-chess/walleye/pkg/common"
)

const (
	stackSize     = 64
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
	valueCancel   = -valueMate * 2
)

func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func isCancelValue(v int) bool {
	return v == valueCancel || v == -valueCancel
}

func newUciScore(v int) UciScore {
	if v >= valueWin {
		return UciScore{Mate: (valueMate - v + 1) / 2}
	} else if v <= valueLoss {
		return UciScore{Mate: (-valueMate - v) / 2}
	}
	return UciScore{Centipawns: v}
}

func min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

// PositionsToHistoryKeys collapses the game history to the zobrist keys
// since the last irreversible move; earlier positions cannot repeat.
func PositionsToHistoryKeys(positions []Position) []uint64 {
	var result []uint64
	for i := range positions {
		if positions[i].Rule50 == 0 {
			result = result[:0]
		}
		result = append(result, positions[i].Key)
	}
	return result
}
