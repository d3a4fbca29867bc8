package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/seekerror/logw"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable represents a transposition table to speed up search performance.
// Caveat: evaluation heuristics that depend on the game history (notably, hasCastled or
// last move) may be unsuitable for position-keyed caching. If the recent history is short,
// then the table may only be used for depth greater than some limit. Must be thread-safe.
type TranspositionTable interface {
	// Read returns the bound, depth, score, static eval and best move for the given position
	// hash, if present. The score is re-biased for the probing ply, reversing the
	// mate-distance normalization applied on Write.
	Read(hash board.ZobristHash, ply int) (Bound, int, eval.CP, eval.CP, board.Move, bool)
	// Write stores the entry into the table, depending on table semantics and replacement
	// policy. The score is normalized to be independent of ply before storage.
	Write(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// toTT normalizes a mate score found ply plies into the search to be
// root-relative, since the same position may be reached at a different ply
// by a later probe.
func toTT(score eval.CP, ply int) eval.CP {
	if !eval.IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score + eval.CP(ply)
	}
	return score - eval.CP(ply)
}

// fromTT reverses toTT for a probe happening at ply.
func fromTT(score eval.CP, ply int) eval.CP {
	if !eval.IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score - eval.CP(ply)
	}
	return score + eval.CP(ply)
}

// metadata captures node metadata, notably precision and best move.
type metadata struct {
	bound      Bound
	from, to   board.Square
	promotion  board.Piece
	piece      board.Piece
	ply, depth uint16
}

// node represents a search result.
type node struct {
	hash  board.ZobristHash
	score eval.CP
	seval eval.CP
	md    metadata
}

// table is a transposition table.
type table struct {
	table []*node
	mask  uint64
	used  uint64
}

func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 5 - bits.LeadingZeros64(size)))

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &table{
		table: make([]*node, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.table)) << 5
}

func (t *table) Used() float64 {
	used := t.used
	return float64(used) / float64(len(t.table))
}

func (t *table) Read(hash board.ZobristHash, ply int) (Bound, int, eval.CP, eval.CP, board.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && hash == ptr.hash {
		bestmove := board.Move{From: ptr.md.from, To: ptr.md.to, Promotion: ptr.md.promotion, Piece: ptr.md.piece}
		return ptr.md.bound, int(ptr.md.depth), fromTT(ptr.score, ply), ptr.seval, bestmove, true
	}
	return 0, 0, 0, 0, board.Move{}, false
}

func (t *table) Write(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool {
	if move.IsZero() && bound != UpperBound {
		return false
	}
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	fresh := &node{
		hash:  hash,
		score: toTT(score, ply),
		seval: staticEval,
		md: metadata{
			bound:     bound,
			from:      move.From,
			to:        move.To,
			promotion: move.Promotion,
			piece:     move.Piece,
			ply:       uint16(ply),
			depth:     uint16(depth),
		},
	}

	ptr := (*node)(atomic.LoadPointer(addr))
	for {
		if val(ptr) > val(fresh) {
			return false // skip: higher value existing node
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true // ok: overwrite value
		}
		ptr = (*node)(atomic.LoadPointer(addr))
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// val defines node value towards replacement logic.
func val(n *node) uint16 {
	if n == nil {
		return 0
	}
	return n.md.ply + (n.md.depth << 1)
}

// WriteFilter is a predicate on the Write operation.
type WriteFilter func(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool

// WriteLimited is a TranspositionTable wrapper that ignores certain writes, such as
// less than a given minimum depth. Useful if evaluation uses recent move history.
type WriteLimited struct {
	Filter WriteFilter
	TT     TranspositionTable
}

func (w WriteLimited) Read(hash board.ZobristHash, ply int) (Bound, int, eval.CP, eval.CP, board.Move, bool) {
	return w.TT.Read(hash, ply)
}

func (w WriteLimited) Write(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool {
	if w.Filter(hash, bound, ply, depth, score, staticEval, move) {
		return false
	}
	return w.TT.Write(hash, bound, ply, depth, score, staticEval, move)
}

func (w WriteLimited) Size() uint64 {
	return w.TT.Size()
}

func (w WriteLimited) Used() float64 {
	return w.TT.Used()
}

// NewMinDepthTranspositionTable creates depth-limited TranspositionTables.
func NewMinDepthTranspositionTable(min int) TranspositionTableFactory {
	return func(ctx context.Context, size uint64) TranspositionTable {
		return WriteLimited{
			Filter: func(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool {
				return depth < min
			},
			TT: NewTranspositionTable(ctx, size),
		}
	}
}

// NoTranspositionTable is a Nop implementation.
type NoTranspositionTable struct{}

func (n NoTranspositionTable) Read(hash board.ZobristHash, ply int) (Bound, int, eval.CP, eval.CP, board.Move, bool) {
	return 0, 0, 0, 0, board.Move{}, false
}

func (n NoTranspositionTable) Write(hash board.ZobristHash, bound Bound, ply, depth int, score, staticEval eval.CP, move board.Move) bool {
	return false
}

func (n NoTranspositionTable) Size() uint64 {
	return 0
}

func (n NoTranspositionTable) Used() float64 {
	return 0
}
