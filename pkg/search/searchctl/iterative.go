package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// aspirationWindow is the initial +/- margin around the previous iteration's
// score that a re-search starts from; it widens on each fail high/low.
const aspirationWindow = eval.CP(25)

// Iterative is a search harness that repeatedly calls Root at increasing
// depths until a time, depth or mate-distance stopping condition is hit,
// publishing one PV per completed depth (or per MultiPV line per depth).
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, contempt eval.CP, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, noise, contempt, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, noise eval.Random, contempt eval.CP, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	lines := 1
	if v, ok := opt.MultiPV.V(); ok && v > 1 {
		lines = int(v)
	}

	evaluator := eval.Classical{Noise: noise}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	prevScore := make([]eval.CP, lines)
	for i := range prevScore {
		prevScore[i] = eval.Zero
	}

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()
		exclude := make(map[board.Move]bool, lines)

		var primary search.PV
		halted := false

		for line := 0; line < lines; line++ {
			sctx := &search.Context{TT: tt, Eval: evaluator, Exclude: exclude, Contempt: contempt}

			nodes, selDepth, score, moves, err := h.searchWithAspiration(wctx, root, sctx, b, depth, prevScore[line])
			if err != nil {
				if err == search.ErrHalted {
					halted = true
					break
				}
				logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
				return
			}
			if len(moves) == 0 {
				halted = true
				break
			}

			prevScore[line] = score
			exclude[moves[0]] = true

			pv := search.PV{
				Depth:    depth,
				SelDepth: selDepth,
				Index:    line + 1,
				Nodes:    nodes,
				Score:    score,
				Moves:    moves,
				Time:     time.Since(start),
			}
			if tt != nil {
				pv.Hash = tt.Used()
			}
			if line == 0 {
				primary = pv
			}

			logw.Debugf(ctx, "Searched %v [%v/%v]: %v", b, line+1, lines, pv)

			select {
			case <-out:
			default:
			}
			out <- pv
		}

		if halted {
			return
		}

		h.mu.Lock()
		h.pv = primary
		h.mu.Unlock()

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if md, ok := primary.Score.MateDistance(); ok && md <= depth {
			return // halt: forced mate found within full width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

// searchWithAspiration runs root.Search at depth, starting from a narrow
// window around prev and re-searching with a widened window on a fail
// high/low, until the result lands strictly inside the window (or the
// window has widened to the full score range).
func (h *handle) searchWithAspiration(ctx context.Context, root search.Search, sctx *search.Context, b *board.Board, depth int, prev eval.CP) (uint64, int, eval.CP, []board.Move, error) {
	if depth < 4 {
		sctx.Alpha, sctx.Beta = -eval.Inf, eval.Inf
		return root.Search(ctx, sctx, b, depth)
	}

	window := aspirationWindow
	alpha, beta := prev-window, prev+window

	for {
		sctx.Alpha, sctx.Beta = alpha, beta
		nodes, selDepth, score, moves, err := root.Search(ctx, sctx, b, depth)
		if err != nil {
			return nodes, selDepth, score, moves, err
		}

		if score <= alpha {
			window *= 2
			alpha = score - window
			if alpha < -eval.Inf {
				alpha = -eval.Inf
			}
			continue
		}
		if score >= beta {
			window *= 2
			beta = score + window
			if beta > eval.Inf {
				beta = eval.Inf
			}
			continue
		}
		return nodes, selDepth, score, moves, nil
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
