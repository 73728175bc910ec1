package engine

import (
	. "github.com/walleye-chess/walleye/pkg/common"
)

// Piece-square tables from the simplified evaluation function
// (https://www.chessprogramming.org/Simplified_Evaluation_Function).
// Tables are written rank 8 first, so a white piece on square sq reads
// entry FlipSquare(sq) and a black piece reads entry sq.

var pieceValues = [7]int{0, 100, 320, 330, 500, 900, 20000}

const PawnValue = 100

var pawnPst = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPst = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPst = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPst = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPst = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddlePst = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndPst = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var piecePst = [7]*[64]int{nil, &pawnPst, &knightPst, &bishopPst, &rookPst, &queenPst, nil}

// Evaluate returns the static score in centipawns from the perspective
// of the side to move: material plus piece-square bonus for every piece,
// with the king table picked by game phase.
func Evaluate(p *Position) int {
	var score = 0
	var whiteKingSq, blackKingSq = SquareNone, SquareNone
	var queens, rooks, minors [2]int

	for sq := 0; sq < 64; sq++ {
		var pieceType, side = p.PieceAndSide(sq)
		if pieceType == Empty {
			continue
		}
		if pieceType == King {
			if side {
				whiteKingSq = sq
			} else {
				blackKingSq = sq
			}
			continue
		}

		var colorIndex = let(side, 0, 1)
		switch pieceType {
		case Queen:
			queens[colorIndex]++
		case Rook:
			rooks[colorIndex]++
		case Knight, Bishop:
			minors[colorIndex]++
		}

		var value = pieceValues[pieceType] + piecePst[pieceType][pstIndex(sq, side)]
		if side {
			score += value
		} else {
			score -= value
		}
	}

	var kingPst = &kingMiddlePst
	if isEndgame(queens, rooks, minors) {
		kingPst = &kingEndPst
	}
	score += pieceValues[King] + kingPst[pstIndex(whiteKingSq, true)]
	score -= pieceValues[King] + kingPst[pstIndex(blackKingSq, false)]

	if !p.WhiteMove {
		score = -score
	}
	return score
}

// isEndgame: both sides queenless, or both sides reduced to at most one
// rook and one minor piece besides.
func isEndgame(queens, rooks, minors [2]int) bool {
	if queens[0] == 0 && queens[1] == 0 {
		return true
	}
	return rooks[0] <= 1 && minors[0] <= 1 &&
		rooks[1] <= 1 && minors[1] <= 1
}

func pstIndex(sq int, side bool) int {
	if side {
		return FlipSquare(sq)
	}
	return sq
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}
