package engine

import (
	"testing"

	. "github.com/walleye-chess/walleye/pkg/common"
)

var evalFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"6k1/5ppp/3r4/8/3R2b1/8/5PPP/R3qB1K b - - 0 1",
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	"8/8/3p4/4r3/2RKP3/5k2/8/8 b - - 0 1",
	"r2qk2r/pppb1ppp/2np4/1Bb5/4n3/5N2/PPP2PPP/RNBQR1K1 b kq - 1 1",
	"8/K5p1/1P1k1p1p/5P1P/2R3P1/8/8/8 b - - 0 78",
	"4k3/p1P3p1/2q1np1p/3N4/8/1Q3PP1/6KP/8 w - - 0 1",
	"8/5r1p/5k2/4R3/p1p1KP2/P7/1P1p3P/8 w - - 2 2",
	"8/8/8/3k4/8/4P3/2P5/4K3 w - - 0 1",
	"4k3/2p5/4p3/8/3K4/8/8/8 b - - 0 1",
	"7k/8/8/8/1RRNN3/1BBQQ3/1KQQQ3/1QQQQ3 b - - 0 1",
}

// Mirroring a position (swap colors, flip ranks, flip the side to move)
// must leave the score unchanged from the mover's perspective.
func TestEvalSymmetry(t *testing.T) {
	for _, fen := range evalFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var mirrored = MirrorPosition(&p)
		var score1 = Evaluate(&p)
		var score2 = Evaluate(&mirrored)
		if score1 != score2 {
			t.Error(fen, mirrored.String(), score1, score2)
		}
	}
}

func TestEvalInitialPositionBalanced(t *testing.T) {
	var p = NewInitialPosition()
	if score := Evaluate(&p); score != 0 {
		t.Error("initial position evaluates to", score)
	}
}

// An extra queen must dominate any positional bonus.
func TestEvalMaterialDominates(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(&p); score < 800 {
		t.Error("queen up scores only", score)
	}
	var flipped, err2 = NewPositionFromFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if err2 != nil {
		t.Fatal(err2)
	}
	if score := Evaluate(&flipped); score > -800 {
		t.Error("queen down scores", score)
	}
}

func TestKingTablePhase(t *testing.T) {
	// Queens and two rooks a side: the centralized king is penalized.
	var middle, _ = NewPositionFromFEN("r2qk2r/8/8/8/4K3/8/8/R2Q3R w - - 0 1")
	// Queenless: the centralized king is rewarded.
	var end, _ = NewPositionFromFEN("4k3/8/8/8/4K3/8/8/8 w - - 0 1")
	var middleScore = Evaluate(&middle)
	var endScore = Evaluate(&end)
	if middleScore >= endScore {
		t.Error("king centralization should pay only in the endgame", middleScore, endScore)
	}
}
