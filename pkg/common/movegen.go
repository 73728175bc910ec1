package common

var pawnCaptureDeltas = [2]int{-1, 1}

func addPromotions(ml []Move, from, to, capturedPiece int) (count int) {
	ml[0] = makePromotion(from, to, capturedPiece, Queen)
	ml[1] = makePromotion(from, to, capturedPiece, Rook)
	ml[2] = makePromotion(from, to, capturedPiece, Bishop)
	ml[3] = makePromotion(from, to, capturedPiece, Knight)
	return 4
}

// GenerateMoves fills ml with the pseudo-legal moves of the side to move.
// Moves that leave the own king attacked are filtered by MakeMove.
func GenerateMoves(ml []Move, p *Position) []Move {
	var count = 0
	var mover = p.WhiteMove
	var up = let(mover, boardWidth, -boardWidth)
	var up64 = let(mover, 8, -8)
	var promoRank = let(mover, Rank8, Rank1)
	var startRank = let(mover, Rank2, Rank7)

	for from := 0; from < 64; from++ {
		var piece = p.cell(from)
		if piece == emptyCell {
			continue
		}
		var pieceType, side = GetPieceTypeAndSide(piece)
		if side != mover {
			continue
		}
		var fromIndex = boardIndex(from)

		switch pieceType {
		case Pawn:
			if p.board[fromIndex+up] == emptyCell {
				var to = from + up64
				if Rank(to) == promoRank {
					count += addPromotions(ml[count:], from, to, Empty)
				} else {
					ml[count] = makeMove(from, to, Pawn, Empty)
					count++
					if Rank(from) == startRank && p.board[fromIndex+2*up] == emptyCell {
						ml[count] = makeDoublePush(from, to+up64)
						count++
					}
				}
			}
			for _, dc := range pawnCaptureDeltas {
				var targetCell = p.board[fromIndex+up+dc]
				if targetCell == offBoard {
					continue
				}
				var to = from + up64 + dc
				if targetCell == emptyCell {
					if to == p.EpSquare {
						ml[count] = makeEnPassant(from, to)
						count++
					}
					continue
				}
				var targetType, targetSide = GetPieceTypeAndSide(targetCell)
				if targetSide == mover {
					continue
				}
				if Rank(to) == promoRank {
					count += addPromotions(ml[count:], from, to, targetType)
				} else {
					ml[count] = makeMove(from, to, Pawn, targetType)
					count++
				}
			}

		case Knight:
			count += stepMoves(ml[count:], p, from, fromIndex, Knight, knightDeltas[:], mover, false)

		case Bishop:
			count += rayMoves(ml[count:], p, from, fromIndex, Bishop, bishopDirs[:], mover, false)

		case Rook:
			count += rayMoves(ml[count:], p, from, fromIndex, Rook, rookDirs[:], mover, false)

		case Queen:
			count += rayMoves(ml[count:], p, from, fromIndex, Queen, kingDeltas[:], mover, false)

		case King:
			count += stepMoves(ml[count:], p, from, fromIndex, King, kingDeltas[:], mover, false)
			count += castleMoves(ml[count:], p, from, mover)
		}
	}

	return ml[:count]
}

func stepMoves(ml []Move, p *Position, from, fromIndex, pieceType int, deltas []int, mover, capturesOnly bool) (count int) {
	for _, d := range deltas {
		var targetCell = p.board[fromIndex+d]
		if targetCell == offBoard {
			continue
		}
		var to = squareFromIndex(fromIndex + d)
		if targetCell == emptyCell {
			if !capturesOnly {
				ml[count] = makeMove(from, to, pieceType, Empty)
				count++
			}
			continue
		}
		var targetType, targetSide = GetPieceTypeAndSide(targetCell)
		if targetSide != mover {
			ml[count] = makeMove(from, to, pieceType, targetType)
			count++
		}
	}
	return count
}

func rayMoves(ml []Move, p *Position, from, fromIndex, pieceType int, dirs []int, mover, capturesOnly bool) (count int) {
	for _, dir := range dirs {
		for cur := fromIndex + dir; ; cur += dir {
			var targetCell = p.board[cur]
			if targetCell == offBoard {
				break
			}
			if targetCell == emptyCell {
				if !capturesOnly {
					ml[count] = makeMove(from, squareFromIndex(cur), pieceType, Empty)
					count++
				}
				continue
			}
			var targetType, targetSide = GetPieceTypeAndSide(targetCell)
			if targetSide != mover {
				ml[count] = makeMove(from, squareFromIndex(cur), pieceType, targetType)
				count++
			}
			break
		}
	}
	return count
}

// castleMoves re-checks the full preconditions: the right is live, king
// and rook stand on their home squares, the path is clear, and neither
// the king square nor the square it passes through is attacked. The
// destination square is covered by the legality filter.
func castleMoves(ml []Move, p *Position, from int, mover bool) (count int) {
	if mover {
		if from != SquareE1 {
			return 0
		}
		if (p.CastleRights&WhiteKingSide) != 0 &&
			p.cell(SquareF1) == emptyCell &&
			p.cell(SquareG1) == emptyCell &&
			p.cell(SquareH1) == MakePiece(Rook, true) &&
			!p.isAttackedBySide(SquareE1, false) &&
			!p.isAttackedBySide(SquareF1, false) {
			ml[count] = makeCastle(SquareE1, SquareG1, true)
			count++
		}
		if (p.CastleRights&WhiteQueenSide) != 0 &&
			p.cell(SquareB1) == emptyCell &&
			p.cell(SquareC1) == emptyCell &&
			p.cell(SquareD1) == emptyCell &&
			p.cell(SquareA1) == MakePiece(Rook, true) &&
			!p.isAttackedBySide(SquareE1, false) &&
			!p.isAttackedBySide(SquareD1, false) {
			ml[count] = makeCastle(SquareE1, SquareC1, false)
			count++
		}
	} else {
		if from != SquareE8 {
			return 0
		}
		if (p.CastleRights&BlackKingSide) != 0 &&
			p.cell(SquareF8) == emptyCell &&
			p.cell(SquareG8) == emptyCell &&
			p.cell(SquareH8) == MakePiece(Rook, false) &&
			!p.isAttackedBySide(SquareE8, true) &&
			!p.isAttackedBySide(SquareF8, true) {
			ml[count] = makeCastle(SquareE8, SquareG8, true)
			count++
		}
		if (p.CastleRights&BlackQueenSide) != 0 &&
			p.cell(SquareB8) == emptyCell &&
			p.cell(SquareC8) == emptyCell &&
			p.cell(SquareD8) == emptyCell &&
			p.cell(SquareA8) == MakePiece(Rook, false) &&
			!p.isAttackedBySide(SquareE8, true) &&
			!p.isAttackedBySide(SquareD8, true) {
			ml[count] = makeCastle(SquareE8, SquareC8, false)
			count++
		}
	}
	return count
}

// GenerateCaptures fills ml with pseudo-legal captures, en-passant
// captures and queen promotions, for the quiescence search.
func GenerateCaptures(ml []Move, p *Position) []Move {
	var count = 0
	var mover = p.WhiteMove
	var up = let(mover, boardWidth, -boardWidth)
	var up64 = let(mover, 8, -8)
	var promoRank = let(mover, Rank8, Rank1)

	for from := 0; from < 64; from++ {
		var piece = p.cell(from)
		if piece == emptyCell {
			continue
		}
		var pieceType, side = GetPieceTypeAndSide(piece)
		if side != mover {
			continue
		}
		var fromIndex = boardIndex(from)

		switch pieceType {
		case Pawn:
			if Rank(from+up64) == promoRank && p.board[fromIndex+up] == emptyCell {
				ml[count] = makePromotion(from, from+up64, Empty, Queen)
				count++
			}
			for _, dc := range pawnCaptureDeltas {
				var targetCell = p.board[fromIndex+up+dc]
				if targetCell == offBoard {
					continue
				}
				var to = from + up64 + dc
				if targetCell == emptyCell {
					if to == p.EpSquare {
						ml[count] = makeEnPassant(from, to)
						count++
					}
					continue
				}
				var targetType, targetSide = GetPieceTypeAndSide(targetCell)
				if targetSide == mover {
					continue
				}
				if Rank(to) == promoRank {
					ml[count] = makePromotion(from, to, targetType, Queen)
				} else {
					ml[count] = makeMove(from, to, Pawn, targetType)
				}
				count++
			}

		case Knight:
			count += stepMoves(ml[count:], p, from, fromIndex, Knight, knightDeltas[:], mover, true)

		case Bishop:
			count += rayMoves(ml[count:], p, from, fromIndex, Bishop, bishopDirs[:], mover, true)

		case Rook:
			count += rayMoves(ml[count:], p, from, fromIndex, Rook, rookDirs[:], mover, true)

		case Queen:
			count += rayMoves(ml[count:], p, from, fromIndex, Queen, kingDeltas[:], mover, true)

		case King:
			count += stepMoves(ml[count:], p, from, fromIndex, King, kingDeltas[:], mover, true)
		}
	}

	return ml[:count]
}

// GenerateLegalMoves applies the make/test/unmake legality filter.
func GenerateLegalMoves(p *Position) (result []Move) {
	var buffer [MaxMoves]Move
	var u Undo
	for _, move := range GenerateMoves(buffer[:], p) {
		if p.MakeMove(move, &u) {
			p.UnmakeMove(move, &u)
			result = append(result, move)
		}
	}
	return result
}
