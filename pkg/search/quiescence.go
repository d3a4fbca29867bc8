package search

import (
	"context"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
)

// deltaMargin is the material cushion added to a capture's nominal gain
// before it is allowed to be pruned for having no hope of raising alpha.
const deltaMargin = 200

// quiescence extends the search along capturing/check-resolving lines until
// the position is quiet, avoiding the horizon effect of cutting a search off
// mid-exchange. In check, it searches every legal reply rather than just
// captures, since a king in check has no "quiet" moves to stand pat on.
func (s *searcher) quiescence(ctx context.Context, b *board.Board, ply int, alpha, beta eval.CP, inCheck, isPV bool) (eval.CP, error) {
	if s.aborted(ctx) {
		return 0, ErrHalted
	}
	if ply > s.selDepth {
		s.selDepth = ply
	}
	if ply >= board.MaxPly-1 {
		return s.sctx.Eval.Evaluate(ctx, b), nil
	}

	origAlpha := alpha

	var ttBound Bound
	var ttScore eval.CP
	ttHit := false

	if s.sctx.TT != nil {
		if bound, _, score, _, _, ok := s.sctx.TT.Read(b.Hash(), ply); ok {
			ttBound, ttScore, ttHit = bound, score, true
			if bound == ExactBound {
				return score, nil
			}
			if !isPV {
				if bound == LowerBound && score >= beta {
					return score, nil
				}
				if bound == UpperBound && score <= alpha {
					return score, nil
				}
			}
		}
	}

	var moves []board.Move
	standPat := -eval.Inf

	if inCheck {
		moves = b.LegalMoves()
		if len(moves) == 0 {
			return eval.Mated(ply), nil
		}
	} else {
		standPat = s.sctx.Eval.Evaluate(ctx, b)
		if ttHit && ((ttBound == LowerBound && ttScore > standPat) || (ttBound == UpperBound && ttScore < standPat)) {
			standPat = ttScore
		}
		if standPat >= beta {
			return standPat, nil
		}
		if standPat > alpha {
			alpha = standPat
		}

		moves = captureMoves(b)
		OrderCaptures(moves)
	}

	best := standPat
	var bestMove board.Move

	for _, m := range moves {
		if !inCheck {
			if eval.NominalValue(m.Piece)+eval.NominalValueGain(m)+deltaMargin < alpha {
				continue // delta pruning: even the best case can't raise alpha
			}
			if m.IsCapture() && !m.IsPromotion() && eval.SEE(b, m.To) < 0 {
				continue // losing capture, not worth extending into
			}
		}

		made := b.Make(m)
		childInCheck := b.InCheck(b.SideToMove())
		score, err := s.quiescence(ctx, b, ply+1, -beta, -alpha, childInCheck, false)
		b.Unmake(made)
		score = -score

		if err != nil {
			return 0, err
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if s.sctx.TT != nil {
				s.sctx.TT.Write(b.Hash(), LowerBound, ply, 0, beta, standPat, m)
			}
			return beta, nil
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
		s.sctx.TT.Write(b.Hash(), bound, ply, 0, best, standPat, bestMove)
	}

	return best, nil
}

// captureMoves filters a legal move list down to captures and promotions,
// the only moves quiescence search considers outside of check.
func captureMoves(b *board.Board) []board.Move {
	all := b.LegalMoves()
	out := make([]board.Move, 0, len(all))
	for _, m := range all {
		if m.IsCapture() || m.IsPromotion() {
			out = append(out, m)
		}
	}
	return out
}
