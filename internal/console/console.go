// Package console renders positions for the terminal, for the self-play
// driver.
package console

import (
	"fmt"
	"io"

	"github.com/walleye-chess/walleye/pkg/common"
)

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

func PrintPosition(w io.Writer, p *common.Position) {
	for i := 0; i < 64; i++ {
		var sq = common.FlipSquare(i)
		var piece, side = p.PieceAndSide(sq)
		if side {
			fmt.Fprint(w, chessSymbols[0][piece])
		} else {
			fmt.Fprint(w, chessSymbols[1][piece])
		}
		fmt.Fprint(w, " ")
		if common.File(sq) == common.FileH {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, p.String())
}
