package common

import (
	"strings"
	"unicode"
)

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

func FlipSquare(sq int) int {
	return sq ^ 56
}

func File(sq int) int {
	return sq & 7
}

func Rank(sq int) int {
	return sq >> 3
}

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func MakeSquare(file, rank int) int {
	return (rank << 3) | file
}

// boardIndex maps an 8x8 square to its cell in the 12x12 mailbox.
func boardIndex(sq int) int {
	return (Rank(sq)+2)*boardWidth + File(sq) + 2
}

// squareFromIndex is the inverse of boardIndex for cells inside the
// playing area.
func squareFromIndex(index int) int {
	return MakeSquare(index%boardWidth-2, index/boardWidth-2)
}

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

func SquareName(sq int) string {
	var file = fileNames[File(sq)]
	var rank = rankNames[Rank(sq)]
	return string(file) + string(rank)
}

func ParseSquare(s string) int {
	if len(s) != 2 {
		return SquareNone
	}
	var file = strings.Index(fileNames, s[0:1])
	var rank = strings.Index(rankNames, s[1:2])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}

// MakePiece folds a piece type and a side into a single board cell value.
// White pieces are 1..6, black pieces 8..13.
func MakePiece(pieceType int, side bool) int8 {
	if side {
		return int8(pieceType)
	}
	return int8(pieceType + 7)
}

func GetPieceTypeAndSide(piece int8) (pieceType int, side bool) {
	if piece < 7 {
		return int(piece), true
	}
	return int(piece) - 7, false
}

func parsePiece(ch rune) (pieceType int, side bool, ok bool) {
	var pieceSide = unicode.IsUpper(ch)
	var i = strings.IndexRune("pnbrqk", unicode.ToLower(ch))
	if i < 0 {
		return Empty, false, false
	}
	return i + Pawn, pieceSide, true
}

func pieceToChar(pieceType int, side bool) string {
	var result = string("pnbrqk"[pieceType-Pawn])
	if side {
		result = strings.ToUpper(result)
	}
	return result
}
