package common

import "strings"

// Move packs origin, destination, moving piece, captured piece type,
// promotion piece type and a classification tag into one int32.
type Move int32

const MoveEmpty = Move(0)

// Move classification tags.
const (
	KindQuiet = iota
	KindCapture
	KindDoublePush
	KindEnPassant
	KindCastleKingSide
	KindCastleQueenSide
	KindPromotion
	KindCapturePromotion
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	var kind = KindQuiet
	if capturedPiece != Empty {
		kind = KindCapture
	}
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15) ^ (kind << 21))
}

func makeDoublePush(from, to int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (KindDoublePush << 21))
}

func makeEnPassant(from, to int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (Pawn << 15) ^ (KindEnPassant << 21))
}

func makeCastle(from, to int, kingSide bool) Move {
	var kind = let(kingSide, KindCastleKingSide, KindCastleQueenSide)
	return Move(from ^ (to << 6) ^ (King << 12) ^ (kind << 21))
}

func makePromotion(from, to, capturedPiece, promotion int) Move {
	var kind = let(capturedPiece == Empty, KindPromotion, KindCapturePromotion)
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18) ^ (kind << 21))
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) Kind() int {
	return int((m >> 21) & 7)
}

func IsCaptureOrPromotion(move Move) bool {
	return move.CapturedPiece() != Empty ||
		move.Promotion() != Empty
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// MakeMoveLAN applies a move given in long algebraic notation, returning
// the resulting position. Fails on illegal or unparseable moves.
func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	var buffer [MaxMoves]Move
	var child = *p
	for _, mv := range GenerateMoves(buffer[:], p) {
		if strings.EqualFold(mv.String(), lan) {
			var u Undo
			if child.MakeMove(mv, &u) {
				return child, true
			}
			return Position{}, false
		}
	}
	return Position{}, false
}
