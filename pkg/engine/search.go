package engine

import (
	. "github.com/walleye-chess/walleye/pkg/common"
)

type searchEntry struct {
	buffer [MaxMoves]Move
	moves  [MaxMoves]orderedMove
	pv     []Move
}

// searcher runs one search over a single owned position; make, recurse,
// unmake are strictly sequential on one stack.
type searcher struct {
	engine      *Engine
	rootPos     Position
	position    *Position
	tm          *timeManager
	nodes       int64
	historyKeys []uint64
	prevLine    []Move
	stack       [stackSize]searchEntry
	lineKeys    [stackSize]uint64
}

func newSearcher(engine *Engine) *searcher {
	var s = &searcher{engine: engine}
	for i := range s.stack {
		s.stack[i].pv = make([]Move, 0, stackSize)
	}
	s.prevLine = make([]Move, 0, stackSize)
	return s
}

func (s *searcher) composePV(height int, move Move) {
	var child []Move
	if height+1 < len(s.stack) {
		child = s.stack[height+1].pv
	}
	s.stack[height].pv = append(append(s.stack[height].pv[:0], move), child...)
}

// iterateSearch deepens until the depth limit, a forced mate, or the
// time budget. A cancelled iteration is discarded: the previous
// iteration's result stands.
func (s *searcher) iterateSearch(limits LimitsType, progress func(SearchInfo)) (result SearchInfo) {
	var rootMoves = GenerateLegalMoves(s.position)
	if len(rootMoves) == 0 {
		return
	}
	result.MainLine = []Move{rootMoves[0]}

	var maxDepth = maxHeight
	if limits.Depth > 0 {
		maxDepth = min(limits.Depth, maxDepth)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		var score, completed = s.searchRoot(rootMoves, depth)
		if !completed {
			break
		}
		result = SearchInfo{
			Depth:    depth,
			Score:    newUciScore(score),
			Nodes:    s.nodes,
			Time:     s.tm.Elapsed(),
			MainLine: append([]Move(nil), s.stack[0].pv...),
		}
		s.prevLine = append(s.prevLine[:0], s.stack[0].pv...)
		if progress != nil {
			progress(result)
		}
		if score >= winIn(depth) || score <= lossIn(depth) {
			break
		}
		if s.tm.isSoftTimeout() {
			break
		}
	}

	result.Nodes = s.nodes
	result.Time = s.tm.Elapsed()
	return result
}

// searchRoot searches every root move with a PVS window and keeps the
// best in front so the next iteration starts from the previous principal
// variation.
func (s *searcher) searchRoot(rootMoves []Move, depth int) (int, bool) {
	var p = s.position
	s.lineKeys[0] = p.Key
	s.stack[0].pv = s.stack[0].pv[:0]

	var alpha = -valueInfinity
	const beta = valueInfinity
	var bestIndex = 0
	var u Undo

	for i, move := range rootMoves {
		if !p.MakeMove(move, &u) {
			continue
		}
		s.nodes++
		var score int
		if i == 0 {
			score = -s.alphaBeta(-beta, -alpha, depth-1, 1, true)
		} else {
			score = -s.alphaBeta(-(alpha + 1), -alpha, depth-1, 1, false)
			if !isCancelValue(score) && score > alpha {
				score = -s.alphaBeta(-beta, -alpha, depth-1, 1, false)
			}
		}
		p.UnmakeMove(move, &u)
		if isCancelValue(score) {
			return 0, false
		}
		if i == 0 || score > alpha {
			alpha = score
			s.composePV(0, move)
			bestIndex = i
		}
	}

	if bestIndex > 0 {
		var best = rootMoves[bestIndex]
		copy(rootMoves[1:bestIndex+1], rootMoves[:bestIndex])
		rootMoves[0] = best
	}
	return alpha, true
}

// alphaBeta is a fail-soft negamax with principal variation search: the
// first move gets the full window, the rest a zero-width scout that is
// re-searched on a fail-high inside the window.
func (s *searcher) alphaBeta(alpha, beta, depth, height int, pvNode bool) int {
	var p = s.position
	var entry = &s.stack[height]
	entry.pv = entry.pv[:0]
	s.lineKeys[height] = p.Key

	if height >= maxHeight {
		return s.engine.evaluate(p)
	}
	if s.isDraw(height) {
		return valueDraw
	}
	if depth <= 0 {
		return s.quiescence(alpha, beta, height)
	}
	if s.tm.isHardTimeout(s.nodes) {
		return valueCancel
	}

	beta = min(beta, winIn(height+1))
	if alpha >= beta {
		return alpha
	}

	var pvMove = MoveEmpty
	if pvNode && height < len(s.prevLine) {
		pvMove = s.prevLine[height]
	}

	var ml = GenerateMoves(entry.buffer[:], p)
	var oml = entry.moves[:len(ml)]
	for i := range ml {
		oml[i].move = ml[i]
	}
	scoreMoves(oml, pvMove, s.engine.killers[height][0], s.engine.killers[height][1])
	sortMoves(oml)

	var best = -valueInfinity
	var moveCount = 0
	var u Undo

	for i := range oml {
		var move = oml[i].move
		if !p.MakeMove(move, &u) {
			continue
		}
		s.nodes++
		moveCount++

		var score int
		if moveCount == 1 {
			score = -s.alphaBeta(-beta, -alpha, depth-1, height+1, pvNode)
		} else {
			score = -s.alphaBeta(-(alpha + 1), -alpha, depth-1, height+1, false)
			if !isCancelValue(score) && score > alpha && score < beta {
				score = -s.alphaBeta(-beta, -alpha, depth-1, height+1, false)
			}
		}
		p.UnmakeMove(move, &u)
		if isCancelValue(score) {
			return valueCancel
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			s.composePV(height, move)
			if alpha >= beta {
				if !IsCaptureOrPromotion(move) {
					s.engine.noteKiller(height, move)
				}
				break
			}
		}
	}

	if moveCount == 0 {
		if p.IsCheck() {
			return lossIn(height)
		}
		return valueDraw
	}
	return best
}

// quiescence resolves the horizon: the static evaluation stands pat as a
// lower bound, then captures and promotions are searched by MVV-LVA.
// In check all evasions are generated and there is no stand pat.
func (s *searcher) quiescence(alpha, beta, height int) int {
	var p = s.position
	var entry = &s.stack[height]
	entry.pv = entry.pv[:0]

	if s.tm.isHardTimeout(s.nodes) {
		return valueCancel
	}
	if height >= maxHeight {
		return s.engine.evaluate(p)
	}

	var isCheck = p.IsCheck()
	var best = -valueInfinity
	if !isCheck {
		var eval = s.engine.evaluate(p)
		if eval >= beta {
			return eval
		}
		if eval > alpha {
			alpha = eval
		}
		best = eval
	}

	var ml []Move
	if isCheck {
		ml = GenerateMoves(entry.buffer[:], p)
	} else {
		ml = GenerateCaptures(entry.buffer[:], p)
	}
	var oml = entry.moves[:len(ml)]
	for i := range ml {
		oml[i].move = ml[i]
	}
	scoreMoves(oml, MoveEmpty, MoveEmpty, MoveEmpty)
	sortMoves(oml)

	var moveCount = 0
	var u Undo
	for i := range oml {
		var move = oml[i].move
		if !p.MakeMove(move, &u) {
			continue
		}
		s.nodes++
		moveCount++
		var score = -s.quiescence(-beta, -alpha, height+1)
		p.UnmakeMove(move, &u)
		if isCancelValue(score) {
			return valueCancel
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			s.composePV(height, move)
			if alpha >= beta {
				break
			}
		}
	}

	if isCheck && moveCount == 0 {
		return lossIn(height)
	}
	return best
}

func (s *searcher) isDraw(height int) bool {
	var p = s.position
	if p.Rule50 >= 100 {
		return true
	}
	var key = p.Key
	for i := height - 1; i >= 0; i-- {
		if s.lineKeys[i] == key {
			return true
		}
	}
	for i := len(s.historyKeys) - 1; i >= 0; i-- {
		if s.historyKeys[i] == key {
			return true
		}
	}
	return false
}
