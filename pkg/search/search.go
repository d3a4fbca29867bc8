// Package search implements the negamax search core, transposition table and
// move ordering used to pick a move from a position.
package search

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
)

// ErrHalted is returned by a Search call that was aborted mid-flight by
// context cancellation. The caller falls back to the best PV found so far.
var ErrHalted = errors.New("search halted")

// PV is the result of one completed iterative-deepening iteration.
type PV struct {
	Depth    int
	SelDepth int
	Index    int // 1-based MultiPV rank
	Nodes    uint64
	Score    eval.CP
	Moves    []board.Move
	Time     time.Duration
	Hash     float64 // TT fill fraction, [0;1]
}

// Context carries the state that is shared across an entire search call
// (one depth of iterative deepening, or one MultiPV sub-search): the
// aspiration window, the transposition table, the evaluator, and move
// ordering memory (killers/history) that should persist across plies and
// across iterations of the same search.
type Context struct {
	Alpha, Beta eval.CP
	TT          TranspositionTable
	Eval        eval.Evaluator
	Ord         *Ordering
	Exclude     map[board.Move]bool // root moves excluded for MultiPV
	Contempt    eval.CP             // drawn-position penalty, from the side to move's perspective
}

// Search runs a fixed-depth search from the current position of b.
type Search interface {
	// Search returns the number of nodes visited, the deepest ply reached by
	// quiescence search, the score and principal variation found, from the
	// perspective of the side to move at b.
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (nodes uint64, selDepth int, score eval.CP, moves []board.Move, err error)
}

// Pruning margins and thresholds, in centipawns unless noted otherwise.
const (
	nullMoveReduction    = 3
	futilityMargin       = 165
	futilityMaxDepth     = 3
	lmrMinDepth          = 3
	lmrMinMoveNumber     = 4
	lmpMaxDepth          = 8
	probCutMinDepth      = 4
	probCutMargin        = 191
	probCutImprovingStep = 54
	probCutReduction     = 4
	passedPawnRank7      = 6 // 0-indexed rank, relative to the mover
	checkPollInterval    = 2047 // nodes, power-of-two minus one
)

// Negamax is the default Search implementation: alpha-beta negamax with
// mate-distance pruning, null-move pruning, razoring, futility pruning,
// late move reductions/pruning, check extensions and quiescence search at
// the leaves.
type Negamax struct {
	ord *Ordering
}

func NewNegamax() *Negamax {
	return &Negamax{ord: NewOrdering()}
}

func (n *Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, int, eval.CP, []board.Move, error) {
	if depth <= 1 || n.ord == nil {
		n.ord = NewOrdering() // fresh killers/history for a new root search
	}
	if sctx.Ord == nil {
		sctx.Ord = n.ord
	}

	s := &searcher{sctx: sctx, extBudget: depth}
	var pv board.Line

	score, err := s.negamax(ctx, b, depth, 0, sctx.Alpha, sctx.Beta, &pv, true)
	if err != nil {
		return s.nodes, s.selDepth, 0, nil, err
	}
	return s.nodes, s.selDepth, score, pv.Slice(), nil
}

// searcher holds per-call mutable state: node/seldepth counters, a per-ply
// static eval history (used to derive the "improving" flag), a shared
// extension budget and a reference to the shared Context.
type searcher struct {
	sctx      *Context
	nodes     uint64
	selDepth  int
	extBudget int

	staticEvals [board.MaxPly]eval.CP
	staticValid [board.MaxPly]bool
}

func (s *searcher) aborted(ctx context.Context) bool {
	s.nodes++
	if s.nodes&checkPollInterval != 0 {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// negamax searches the subtree rooted at b to the given depth, returning a
// score from the perspective of the side to move. pv is populated with the
// best line found at this node on an exact or improving result.
func (s *searcher) negamax(ctx context.Context, b *board.Board, depth, ply int, alpha, beta eval.CP, pv *board.Line, isPV bool) (eval.CP, error) {
	pv.Clear()

	if ply > s.selDepth {
		s.selDepth = ply
	}
	if s.aborted(ctx) {
		return 0, ErrHalted
	}

	if ply > 0 {
		if r := b.Result(); r.Outcome == board.Draw {
			return eval.Draw - s.sctx.Contempt, nil
		}
		// Mate distance pruning: a mate closer than what alpha/beta already
		// guarantee cannot improve the result, so narrow the window early.
		alpha = eval.Max(alpha, eval.Mated(ply))
		beta = eval.Min(beta, eval.Mate(ply+1))
		if alpha >= beta {
			return alpha, nil
		}
	}

	inCheck := b.InCheck(b.SideToMove())

	if depth <= 0 {
		return s.quiescence(ctx, b, ply, alpha, beta, inCheck, isPV)
	}

	origAlpha := alpha
	var ttMove board.Move
	var ttBound Bound
	var ttScore eval.CP
	ttHit := false

	if s.sctx.TT != nil {
		if bound, ttDepth, score, _, move, ok := s.sctx.TT.Read(b.Hash(), ply); ok {
			ttMove, ttBound, ttScore, ttHit = move, bound, score, true
			if ttDepth >= depth && !isPV {
				cut := false
				switch bound {
				case ExactBound:
					cut = true
				case LowerBound:
					cut = score >= beta
				case UpperBound:
					cut = score <= alpha
				}
				if cut {
					if score >= beta {
						s.sctx.Ord.RecordKiller(ply, move)
						s.sctx.Ord.RecordHistory(move, depth)
					}
					return score, nil
				}
			}
		}
	}

	staticEval := eval.Zero
	if !inCheck {
		staticEval = s.sctx.Eval.Evaluate(ctx, b)
	}
	s.staticEvals[ply] = staticEval
	s.staticValid[ply] = !inCheck

	// Corrected eval: a TT score aligned with its bound is a better estimate
	// than the raw static eval.
	ce := staticEval
	if ttHit && !inCheck {
		if (ttBound == LowerBound && ttScore > ce) || (ttBound == UpperBound && ttScore < ce) {
			ce = ttScore
		}
	}

	// Improving: static eval got better since our own last move (two plies
	// back), so pruning margins can be tighter.
	improving := !inCheck && ply >= 2 && s.staticValid[ply-2] && staticEval > s.staticEvals[ply-2]

	// Razoring: hopelessly behind static eval collapses straight to
	// quiescence rather than spending a full-width node on it.
	if ply > 0 && !inCheck && depth <= 3 && ce+eval.NominalValue(board.Pawn) < beta {
		qscore, err := s.quiescence(ctx, b, ply, alpha, beta, false, isPV)
		if err != nil {
			return 0, err
		}
		floor := qscore
		if v := ce + eval.NominalValue(board.Pawn); v > floor {
			floor = v
		}
		if depth == 1 || qscore < beta {
			return floor, nil
		}
	}

	// Futility pruning: near the leaves, a big enough static eval margin
	// means no quiet move here can plausibly raise alpha.
	futile := ply > 0 && !inCheck && depth <= futilityMaxDepth
	if futile {
		margin := depth
		if improving {
			margin--
		}
		futile = ce+eval.CP(futilityMargin*margin) <= alpha
	}

	// Null-move pruning: if we can skip a move entirely and still fail high,
	// the position is so good a real move will too (zugzwang positions are
	// excluded by requiring some non-pawn material).
	if ply > 0 && !inCheck && depth > 2 && ce >= beta && hasNonPawnMaterial(b, b.SideToMove()) {
		prevEP, prevHash := b.MakeNull()
		var childPV board.Line
		score, err := s.negamax(ctx, b, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, &childPV, false)
		b.UnmakeNull(prevEP, prevHash)
		if err != nil {
			return 0, err
		}
		score = -score
		if score >= beta {
			if eval.IsMateScore(score) {
				score = beta
			}
			return score, nil
		}
	}

	// ProbCut: a shallow-window qsearch probe on captures, verified at
	// reduced depth, proves a cutoff cheaper than a full-width search would.
	if ply > 0 && depth > probCutMinDepth && !eval.IsMateScore(beta) {
		probBeta := beta + probCutMargin
		if improving {
			probBeta -= probCutImprovingStep
		}

		captures := captureMoves(b)
		OrderCaptures(captures)

		for _, m := range captures {
			made := b.Make(m)
			childInCheck := b.InCheck(b.SideToMove())

			qscore, err := s.quiescence(ctx, b, ply+1, -probBeta, -probBeta+1, childInCheck, false)
			if err != nil {
				b.Unmake(made)
				return 0, err
			}
			qscore = -qscore

			if qscore < probBeta {
				b.Unmake(made)
				continue
			}

			var childPV board.Line
			score, err := s.negamax(ctx, b, depth-probCutReduction, ply+1, -probBeta, -probBeta+1, &childPV, false)
			b.Unmake(made)
			if err != nil {
				return 0, err
			}
			score = -score

			if score >= probBeta {
				if s.sctx.TT != nil {
					s.sctx.TT.Write(b.Hash(), LowerBound, ply, depth-3, score, staticEval, m)
				}
				return score, nil
			}
		}
	}

	// Internal iterative deepening: no TT move to try first at a PV node
	// with real depth left means a shallower search is worth it just to
	// seed move ordering.
	if ttMove.IsZero() && isPV && depth >= 5 {
		var iidPV board.Line
		if _, err := s.negamax(ctx, b, depth-2, ply, alpha, beta, &iidPV, true); err != nil {
			return 0, err
		}
		if iidPV.Len > 0 {
			ttMove = iidPV.Moves[0]
		}
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return eval.Mated(ply), nil
		}
		return eval.Draw - s.sctx.Contempt, nil
	}

	s.sctx.Ord.Order(moves, ttMove, ply)

	var best eval.CP = -eval.Inf
	var bestMove board.Move
	moveCount := 0

	for _, m := range moves {
		if s.sctx.Exclude != nil && ply == 0 && s.sctx.Exclude[m] {
			continue
		}
		moveCount++

		if futile && moveCount > 1 && !m.IsCapture() && !m.IsPromotion() {
			continue
		}
		lmpEligible := ply > 0 && depth < lmpMaxDepth && moveCount > (3+depth*depth)/2 && !m.IsCapture() && !m.IsPromotion() && !inCheck
		if lmpEligible {
			continue
		}

		mover := b.SideToMove()
		made := b.Make(m)
		givesCheck := b.InCheck(b.SideToMove())

		childDepth := depth - 1
		if s.extBudget > 0 {
			switch {
			case inCheck || givesCheck:
				childDepth++
				s.extBudget--
			case isPassedPawnPushTo7th(b, mover, m):
				childDepth++
				s.extBudget--
			}
		}

		var childPV board.Line
		var score eval.CP
		var err error

		if moveCount == 1 {
			score, err = s.negamax(ctx, b, childDepth, ply+1, -beta, -alpha, &childPV, isPV)
			score = -score
		} else {
			reduction := 0
			if depth >= lmrMinDepth && moveCount >= lmrMinMoveNumber && !inCheck && !givesCheck &&
				!s.sctx.Ord.IsKiller(ply, m) && !m.IsCapture() && !m.IsPromotion() {
				d, i := depth, moveCount
				if d > 63 {
					d = 63
				}
				if i > 63 {
					i = 63
				}
				reduction = int(math.Round(math.Log(float64(d))*math.Log(float64(i))/2)) - 1
				if reduction < 0 {
					reduction = 0
				}
			}

			score, err = s.negamax(ctx, b, childDepth-reduction, ply+1, -alpha-1, -alpha, &childPV, false)
			score = -score
			if err == nil && score > alpha && (reduction > 0 || score < beta) {
				score, err = s.negamax(ctx, b, childDepth, ply+1, -beta, -alpha, &childPV, isPV)
				score = -score
			}
		}
		b.Unmake(made)

		if err != nil {
			return 0, err
		}

		if score > best {
			best = score
			bestMove = m
			pv.Set(m, childPV)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.sctx.Ord.RecordKiller(ply, m)
			s.sctx.Ord.RecordHistory(m, depth)
			break
		}
	}

	if s.sctx.TT != nil {
		bound := ExactBound
		switch {
		case best <= origAlpha:
			bound = UpperBound
		case best >= beta:
			bound = LowerBound
		}
		s.sctx.TT.Write(b.Hash(), bound, ply, depth, best, staticEval, bestMove)
	}

	return best, nil
}

func hasNonPawnMaterial(b *board.Board, c board.Color) bool {
	return b.Pieces(c, board.Knight)|b.Pieces(c, board.Bishop)|b.Pieces(c, board.Rook)|b.Pieces(c, board.Queen) != 0
}

// isPassedPawnPushTo7th reports whether m pushes a pawn belonging to mover to
// its 7th rank (one step from promotion) on a file that is passed, the
// condition for the passed-pawn extension.
func isPassedPawnPushTo7th(b *board.Board, mover board.Color, m board.Move) bool {
	if m.Piece != board.Pawn {
		return false
	}
	rank := m.To.Rank()
	if mover == board.Black {
		rank = 7 - rank
	}
	if rank != passedPawnRank7 {
		return false
	}
	return eval.IsPassedPawn(b, mover, m.To)
}
