package common

import (
	"errors"
	"testing"
)

// Canonical FENs must round-trip exactly.
func TestFenRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		if p.String() != fen {
			t.Error(fen, "round-tripped to", p.String())
		}
	}
}

func TestFenErrors(t *testing.T) {
	var tests = []struct {
		fen string
		err error
	}{
		{"", ErrFenFieldCount},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", ErrFenFieldCount},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", ErrFenBoard},
		{"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenBoard},
		{"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenBoard},
		{"rnbqkbnr/ppppppxp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenBoard},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrFenSideToMove},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1", ErrFenCastlingRights},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1", ErrFenCastlingRights},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", ErrFenEnPassant},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", ErrFenEnPassant},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq e6 0 1", ErrFenEnPassant},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", ErrFenMoveCounters},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", ErrFenMoveCounters},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1", ErrFenKingCount},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNK w KQkq - 0 1", ErrFenKingCount},
		// white to move with the black king already attacked
		{"4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", ErrFenIllegalPosition},
	}
	for _, test := range tests {
		var _, err = NewPositionFromFEN(test.fen)
		if err == nil {
			t.Error(test.fen, "accepted")
			continue
		}
		if !errors.Is(err, test.err) {
			t.Error(test.fen, "got", err, "want", test.err)
		}
	}
}

func TestInitialPosition(t *testing.T) {
	var p = NewInitialPosition()
	if p.String() != InitialPositionFen {
		t.Error(p.String())
	}
	if !p.WhiteMove || p.Rule50 != 0 || p.FullMove != 1 {
		t.Error("initial position fields")
	}
	if p.CastleRights != WhiteKingSide|WhiteQueenSide|BlackKingSide|BlackQueenSide {
		t.Error("initial castle rights")
	}
}

func TestParseSquare(t *testing.T) {
	if ParseSquare("a1") != SquareA1 ||
		ParseSquare("h8") != SquareH8 ||
		ParseSquare("e4") != MakeSquare(FileE, Rank4) {
		t.Error("square parsing")
	}
	if ParseSquare("i1") != SquareNone || ParseSquare("a9") != SquareNone {
		t.Error("off-board squares accepted")
	}
}
