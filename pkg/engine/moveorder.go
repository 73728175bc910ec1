package engine

import (
	. "github.com/walleye-chess/walleye/pkg/common"
)

type orderedMove struct {
	move Move
	key  int
}

const (
	scorePvMove  = 1 << 30
	scoreCapture = 1 << 20
	scoreKiller1 = 1 << 19
	scoreKiller2 = scoreKiller1 - 1
)

// mvvLva ranks captures most-valuable-victim first, least-valuable
// attacker second. Promotions count their promotion piece as victim so a
// queening pawn sorts with the heavy captures.
func mvvLva(move Move) int {
	var score = 10 * pieceValues[move.CapturedPiece()]
	if promotion := move.Promotion(); promotion != Empty {
		score += 10 * (pieceValues[promotion] - PawnValue)
	}
	return score - pieceValues[move.MovingPiece()]
}

// scoreMoves assigns sort keys: principal-variation move, then captures
// and promotions by MVV-LVA, then the two killers, then quiets in
// generation order.
func scoreMoves(ml []orderedMove, pvMove Move, killer1, killer2 Move) {
	for i := range ml {
		var move = ml[i].move
		var key int
		switch {
		case move == pvMove:
			key = scorePvMove
		case IsCaptureOrPromotion(move):
			key = scoreCapture + mvvLva(move)
		case move == killer1:
			key = scoreKiller1
		case move == killer2:
			key = scoreKiller2
		default:
			key = 0
		}
		ml[i].key = key
	}
}

// sortMoves is a stable insertion sort by descending key; equal keys keep
// generation order so the search stays deterministic.
func sortMoves(ml []orderedMove) {
	for i := 1; i < len(ml); i++ {
		var item = ml[i]
		var j = i - 1
		for ; j >= 0 && ml[j].key < item.key; j-- {
			ml[j+1] = ml[j]
		}
		ml[j+1] = item
	}
}
