package search

import (
	"sort"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
)

// killerSlot holds the (up to) two quiet moves that most recently caused a
// beta cutoff at a given ply, tried early at sibling nodes of the same ply
// since a refutation at one branch is often a refutation at another.
type killerSlot [2]board.Move

// historyKey indexes the history heuristic table by the moving piece and
// destination square, the cheapest signature that still captures "this kind
// of quiet move has been good lately".
type historyKey struct {
	Piece board.Piece
	To    board.Square
}

// Ordering carries the move-ordering state that persists across an entire
// iterative-deepening search (killers indexed by ply, history indexed by
// piece/destination), reset at the start of every new root search.
type Ordering struct {
	killers [board.MaxPly]killerSlot
	history map[historyKey]int32
}

func NewOrdering() *Ordering {
	return &Ordering{history: make(map[historyKey]int32)}
}

// Killers returns the killer moves recorded for ply.
func (o *Ordering) Killers(ply int) killerSlot {
	if ply < 0 || ply >= board.MaxPly {
		return killerSlot{}
	}
	return o.killers[ply]
}

// IsKiller reports whether m is one of the two killer moves recorded at ply.
func (o *Ordering) IsKiller(ply int, m board.Move) bool {
	k := o.Killers(ply)
	return k[0].Equals(m) || k[1].Equals(m)
}

// RecordKiller records a quiet move that caused a beta cutoff at ply.
func (o *Ordering) RecordKiller(ply int, m board.Move) {
	if ply < 0 || ply >= board.MaxPly || m.IsCapture() {
		return
	}
	slot := &o.killers[ply]
	if slot[0].Equals(m) {
		return
	}
	slot[1] = slot[0]
	slot[0] = m
}

// RecordHistory bumps the history score of a quiet move that caused a beta
// cutoff, weighted by the remaining depth (deeper cutoffs are stronger
// signal).
func (o *Ordering) RecordHistory(m board.Move, depth int) {
	if m.IsCapture() {
		return
	}
	k := historyKey{Piece: m.Piece, To: m.To}
	o.history[k] += int32(depth * depth)
}

func (o *Ordering) historyScore(m board.Move) int32 {
	return o.history[historyKey{Piece: m.Piece, To: m.To}]
}

// Order sorts moves best-guess-first: the TT move, then captures by MVV-LVA
// (highest victim/attacker differential first), then killers for this ply,
// then quiet moves by history score.
func (o *Ordering) Order(moves []board.Move, ttMove board.Move, ply int) {
	killers := o.Killers(ply)

	score := func(m board.Move) int64 {
		switch {
		case ttMove.Equals(m) && !ttMove.IsZero():
			return 1 << 32
		case m.IsCapture():
			return 1<<31 + int64(eval.NominalValueGain(m))*64 - int64(eval.NominalValue(m.Piece))
		case killers[0].Equals(m):
			return 1 << 20
		case killers[1].Equals(m):
			return 1 << 19
		default:
			return int64(o.historyScore(m))
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return score(moves[i]) > score(moves[j])
	})
}

// OrderCaptures sorts a quiescence-search candidate list by nominal value
// gain, most valuable victim first; the capturing piece's value is not
// considered.
func OrderCaptures(moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return eval.NominalValueGain(moves[i]) > eval.NominalValueGain(moves[j])
	})
}
