package common

import (
	"sort"
	"strings"
	"testing"

	notnil "github.com/notnil/chess"
)

// Cross-check the generator against an independent implementation: the
// legal move set must match notnil/chess exactly, both on the position
// itself and one ply deeper.
func TestGenerateLegalMovesCrossCheck(t *testing.T) {
	var fens = []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
		"8/p1P5/P7/3p4/5p1p/3p1P1P/K2p2pp/3R2nk w - - 0 1",
		"rnb1kbnr/pp1ppppp/8/1q6/2PpP3/5N2/PP3PPP/RNBQ1K1R b kq c3 0 6",
		"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
		"r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1",
	}
	for _, fen := range fens {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		compareLegalMoves(t, &p, fen, 1)
	}
}

func compareLegalMoves(t *testing.T, p *Position, fen string, depth int) {
	var got = legalMoveNames(p)
	var want = referenceMoveNames(t, p.String())
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("%v (from %v)\n got %v\nwant %v", p.String(), fen, got, want)
		return
	}
	if depth == 0 {
		return
	}
	var u Undo
	for _, move := range GenerateLegalMoves(p) {
		p.MakeMove(move, &u)
		compareLegalMoves(t, p, fen, depth-1)
		p.UnmakeMove(move, &u)
	}
}

func legalMoveNames(p *Position) []string {
	var result []string
	for _, move := range GenerateLegalMoves(p) {
		result = append(result, move.String())
	}
	sort.Strings(result)
	return result
}

func referenceMoveNames(t *testing.T, fen string) []string {
	var fenOption, err = notnil.FEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	var game = notnil.NewGame(fenOption)
	var notation = notnil.UCINotation{}
	var result []string
	for _, move := range game.ValidMoves() {
		result = append(result, notation.Encode(game.Position(), move))
	}
	sort.Strings(result)
	return result
}

func TestMoveClassification(t *testing.T) {
	var p = NewInitialPosition()
	var seenQuiet, seenDouble bool
	for _, move := range GenerateLegalMoves(&p) {
		switch move.Kind() {
		case KindQuiet:
			seenQuiet = true
		case KindDoublePush:
			seenDouble = true
			if AbsDelta(move.From(), move.To()) != 16 {
				t.Error("double push span", move.String())
			}
		default:
			t.Error("unexpected kind in initial position", move.String())
		}
	}
	if !seenQuiet || !seenDouble {
		t.Error("expected quiet and double pushes from the start position")
	}

	var kiwipete, _ = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var kinds = make(map[int]bool)
	for _, move := range GenerateLegalMoves(&kiwipete) {
		kinds[move.Kind()] = true
	}
	if !kinds[KindCapture] || !kinds[KindCastleKingSide] || !kinds[KindCastleQueenSide] {
		t.Error("kiwipete should offer captures and both castles")
	}
}

// En-passant capture must be refused when it uncovers a rank attack on
// the own king.
func TestEnPassantPin(t *testing.T) {
	var p, err = NewPositionFromFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	for _, move := range GenerateLegalMoves(&p) {
		if move.Kind() == KindEnPassant {
			t.Error("en passant allowed under rank pin:", move.String())
		}
	}
}

func TestPromotionMoves(t *testing.T) {
	var p, err = NewPositionFromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var promotions = 0
	for _, move := range GenerateLegalMoves(&p) {
		if move.Promotion() != Empty {
			promotions++
			if move.Kind() != KindPromotion {
				t.Error("promotion kind", move.String())
			}
		}
	}
	if promotions != 4 {
		t.Error("want 4 promotion pieces, got", promotions)
	}
}
