package common

import (
	"math/rand"
)

// Position is a value type: arrays and scalars only, so two positions
// compare with ==. The mailbox holds offBoard on the sentinel ring,
// emptyCell inside, and MakePiece codes for occupied squares.
type Position struct {
	board        [boardSize]int8
	WhiteMove    bool
	CastleRights int
	EpSquare     int
	Rule50       int
	FullMove     int
	Key          uint64
	whiteKing    int
	blackKing    int
}

// Undo carries what MakeMove cannot recompute: the captured cell and the
// irreversible counters of the pre-move position.
type Undo struct {
	captured     int8
	castleRights int
	epSquare     int
	rule50       int
	key          uint64
}

var castleMask [64]int

// Mailbox step tables. Ranks grow by +boardWidth, files by +1.
var (
	knightDeltas = [8]int{-2*boardWidth - 1, -2*boardWidth + 1, -boardWidth - 2, -boardWidth + 2,
		boardWidth - 2, boardWidth + 2, 2*boardWidth - 1, 2*boardWidth + 1}
	kingDeltas  = [8]int{-boardWidth - 1, -boardWidth, -boardWidth + 1, -1, 1, boardWidth - 1, boardWidth, boardWidth + 1}
	bishopDirs  = [4]int{-boardWidth - 1, -boardWidth + 1, boardWidth - 1, boardWidth + 1}
	rookDirs    = [4]int{-boardWidth, -1, 1, boardWidth}
)

func (p *Position) cell(sq int) int8 {
	return p.board[boardIndex(sq)]
}

func (p *Position) WhatPiece(sq int) int {
	var piece = p.cell(sq)
	if piece == emptyCell {
		return Empty
	}
	var pieceType, _ = GetPieceTypeAndSide(piece)
	return pieceType
}

func (p *Position) PieceAndSide(sq int) (pieceType int, side bool) {
	var piece = p.cell(sq)
	if piece == emptyCell {
		return Empty, false
	}
	return GetPieceTypeAndSide(piece)
}

func (p *Position) KingSquare(side bool) int {
	if side {
		return p.whiteKing
	}
	return p.blackKing
}

func (p *Position) IsCheck() bool {
	return p.isAttackedBySide(p.KingSquare(p.WhiteMove), !p.WhiteMove)
}

// isAttackedBySide reports whether any piece of the given side attacks
// the square. Attackers are enumerated from the target outward; the
// sentinel ring terminates every walk.
func (p *Position) isAttackedBySide(sq int, side bool) bool {
	var index = boardIndex(sq)

	if side {
		if p.board[index-boardWidth-1] == MakePiece(Pawn, true) ||
			p.board[index-boardWidth+1] == MakePiece(Pawn, true) {
			return true
		}
	} else {
		if p.board[index+boardWidth-1] == MakePiece(Pawn, false) ||
			p.board[index+boardWidth+1] == MakePiece(Pawn, false) {
			return true
		}
	}

	var knight = MakePiece(Knight, side)
	for _, d := range knightDeltas {
		if p.board[index+d] == knight {
			return true
		}
	}

	var king = MakePiece(King, side)
	for _, d := range kingDeltas {
		if p.board[index+d] == king {
			return true
		}
	}

	var bishop = MakePiece(Bishop, side)
	var queen = MakePiece(Queen, side)
	for _, dir := range bishopDirs {
		for cur := index + dir; ; cur += dir {
			var piece = p.board[cur]
			if piece == emptyCell {
				continue
			}
			if piece == bishop || piece == queen {
				return true
			}
			break
		}
	}

	var rook = MakePiece(Rook, side)
	for _, dir := range rookDirs {
		for cur := index + dir; ; cur += dir {
			var piece = p.board[cur]
			if piece == emptyCell {
				continue
			}
			if piece == rook || piece == queen {
				return true
			}
			break
		}
	}

	return false
}

func (p *Position) putPiece(pieceType int, side bool, sq int) {
	p.board[boardIndex(sq)] = MakePiece(pieceType, side)
	p.Key ^= PieceSquareKey(pieceType, side, sq)
}

func (p *Position) removePiece(pieceType int, side bool, sq int) {
	p.board[boardIndex(sq)] = emptyCell
	p.Key ^= PieceSquareKey(pieceType, side, sq)
}

func (p *Position) setKing(side bool, sq int) {
	if side {
		p.whiteKing = sq
	} else {
		p.blackKing = sq
	}
}

// MakeMove mutates the position in place. When the move would leave the
// mover's king attacked the position is restored and false returned.
// After MakeMove(m, &u) followed by UnmakeMove(m, &u) the position is
// bit-identical to its pre-make state.
func (p *Position) MakeMove(move Move, u *Undo) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var mover = p.WhiteMove

	u.captured = emptyCell
	u.castleRights = p.CastleRights
	u.epSquare = p.EpSquare
	u.rule50 = p.Rule50
	u.key = p.Key

	p.Key ^= sideKey
	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
	}
	p.EpSquare = SquareNone

	var newRights = u.castleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[u.castleRights^newRights]
	p.CastleRights = newRights

	if movingPiece == Pawn || capturedPiece != Empty {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}
	if !mover {
		p.FullMove++
	}

	switch move.Kind() {
	case KindCapture, KindCapturePromotion:
		u.captured = p.cell(to)
		p.removePiece(capturedPiece, !mover, to)
	case KindEnPassant:
		var victimSq = to + let(mover, -8, 8)
		u.captured = p.cell(victimSq)
		p.removePiece(Pawn, !mover, victimSq)
	case KindDoublePush:
		p.EpSquare = (from + to) / 2
		p.Key ^= enpassantKey[File(p.EpSquare)]
	case KindCastleKingSide:
		p.removePiece(Rook, mover, to+1)
		p.putPiece(Rook, mover, to-1)
	case KindCastleQueenSide:
		p.removePiece(Rook, mover, to-2)
		p.putPiece(Rook, mover, to+1)
	}

	p.removePiece(movingPiece, mover, from)
	if promotion := move.Promotion(); promotion != Empty {
		p.putPiece(promotion, mover, to)
	} else {
		p.putPiece(movingPiece, mover, to)
	}

	if movingPiece == King {
		p.setKing(mover, to)
	}

	p.WhiteMove = !mover

	if p.isAttackedBySide(p.KingSquare(mover), !mover) {
		p.UnmakeMove(move, u)
		return false
	}
	return true
}

// UnmakeMove restores the exact pre-make state recorded in u.
func (p *Position) UnmakeMove(move Move, u *Undo) {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var mover = !p.WhiteMove

	p.board[boardIndex(to)] = emptyCell
	p.board[boardIndex(from)] = MakePiece(movingPiece, mover)

	switch move.Kind() {
	case KindCapture, KindCapturePromotion:
		p.board[boardIndex(to)] = u.captured
	case KindEnPassant:
		p.board[boardIndex(to+let(mover, -8, 8))] = u.captured
	case KindCastleKingSide:
		p.board[boardIndex(to-1)] = emptyCell
		p.board[boardIndex(to+1)] = MakePiece(Rook, mover)
	case KindCastleQueenSide:
		p.board[boardIndex(to+1)] = emptyCell
		p.board[boardIndex(to-2)] = MakePiece(Rook, mover)
	}

	if movingPiece == King {
		p.setKing(mover, from)
	}

	if !mover {
		p.FullMove--
	}
	p.WhiteMove = mover
	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Key = u.key
}

// createPosition assembles a position from a 64-square piece list and
// rejects boards the engine cannot represent: wrong king counts or a
// side not to move already in check.
func createPosition(board [64]int8, wtm bool, castleRights, ep, fifty, fullmove int) (Position, bool) {
	var p = Position{
		WhiteMove:    wtm,
		CastleRights: castleRights,
		EpSquare:     ep,
		Rule50:       fifty,
		FullMove:     fullmove,
		whiteKing:    SquareNone,
		blackKing:    SquareNone,
	}
	for i := range p.board {
		p.board[i] = offBoard
	}
	for sq := 0; sq < 64; sq++ {
		p.board[boardIndex(sq)] = emptyCell
	}

	var whiteKings, blackKings int
	for sq := 0; sq < 64; sq++ {
		if board[sq] == emptyCell {
			continue
		}
		var pieceType, side = GetPieceTypeAndSide(board[sq])
		p.board[boardIndex(sq)] = board[sq]
		if pieceType == King {
			p.setKing(side, sq)
			if side {
				whiteKings++
			} else {
				blackKings++
			}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return Position{}, false
	}

	p.Key = p.computeKey()

	if p.isAttackedBySide(p.KingSquare(!p.WhiteMove), p.WhiteMove) {
		return Position{}, false
	}
	return p, true
}

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [7 * 2 * 64]uint64
)

func PieceSquareKey(pieceType int, side bool, square int) uint64 {
	return pieceSquareKey[int(MakePiece(pieceType, side))*64+square]
}

func (p *Position) computeKey() uint64 {
	var result = uint64(0)
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for sq := 0; sq < 64; sq++ {
		if piece := p.cell(sq); piece != emptyCell {
			var pieceType, side = GetPieceTypeAndSide(piece)
			result ^= PieceSquareKey(pieceType, side, sq)
		}
	}
	return result
}

func initKeys() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for i := range pieceSquareKey {
		pieceSquareKey[i] = r.Uint64()
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}
	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

// MirrorPosition swaps colors and flips ranks; used by the evaluation
// symmetry test.
func MirrorPosition(p *Position) Position {
	var board [64]int8
	for sq := 0; sq < 64; sq++ {
		if piece := p.cell(sq); piece != emptyCell {
			var pieceType, side = GetPieceTypeAndSide(piece)
			board[FlipSquare(sq)] = MakePiece(pieceType, !side)
		}
	}
	var cr = (p.CastleRights >> 2) | ((p.CastleRights & 3) << 2)
	var ep = SquareNone
	if p.EpSquare != SquareNone {
		ep = FlipSquare(p.EpSquare)
	}
	var pos, _ = createPosition(board, !p.WhiteMove, cr, ep, p.Rule50, p.FullMove)
	return pos
}

func init() {
	initKeys()
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}
