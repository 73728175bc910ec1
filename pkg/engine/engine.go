package engine

import (
	"context"

	. "github.com/walleye-chess/walleye/pkg/common"
)

// Engine owns the per-game search state: the killer table survives
// between searches and is reset by ucinewgame via Clear.
type Engine struct {
	killers  [stackSize][2]Move
	evaluate func(*Position) int
	searcher *searcher
}

func NewEngine() *Engine {
	var e = &Engine{
		evaluate: Evaluate,
	}
	e.searcher = newSearcher(e)
	return e
}

func (e *Engine) Prepare() {}

func (e *Engine) Clear() {
	for i := range e.killers {
		e.killers[i][0] = MoveEmpty
		e.killers[i][1] = MoveEmpty
	}
}

func (e *Engine) noteKiller(height int, move Move) {
	if e.killers[height][0] != move {
		e.killers[height][1] = e.killers[height][0]
		e.killers[height][0] = move
	}
}

// Search runs an iterative-deepening search over the last position in
// the params history. The position is copied, so the caller's state is
// untouched; earlier positions feed repetition detection.
func (e *Engine) Search(ctx context.Context, params SearchParams) SearchInfo {
	var s = e.searcher
	s.rootPos = params.Positions[len(params.Positions)-1]
	s.position = &s.rootPos
	s.tm = newTimeManager(ctx, params.Limits, s.rootPos.WhiteMove)
	s.nodes = 0
	s.historyKeys = PositionsToHistoryKeys(params.Positions)
	s.prevLine = s.prevLine[:0]
	return s.iterateSearch(params.Limits, params.Progress)
}
