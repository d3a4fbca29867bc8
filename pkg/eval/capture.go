package eval

import (
	"sort"

	"github.com/herohde/lunarr/pkg/board"
)

// attackerValue orders pieces by nominal value, least-valuable first, for
// static-exchange-evaluation's "always recapture with the cheapest attacker"
// rule.
func attackerValue(p board.Piece) int32 {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 20000
	}
}

// FindCapture returns the squares of every piece of the given color that
// directly attacks sq under occupancy occ.
func FindCapture(b *board.Board, side board.Color, sq board.Square, occ board.Bitboard) []board.Square {
	var ret []board.Square

	add := func(bb board.Bitboard) {
		bb &= occ
		for bb != 0 {
			ret = append(ret, bb.PopLSB())
		}
	}
	add(board.KnightAttackboard(sq) & b.Pieces(side, board.Knight))
	add(board.KingAttackboard(sq) & b.Pieces(side, board.King))
	add(board.RookAttackboard(sq, occ) & (b.Pieces(side, board.Rook) | b.Pieces(side, board.Queen)))
	add(board.BishopAttackboard(sq, occ) & (b.Pieces(side, board.Bishop) | b.Pieces(side, board.Queen)))
	add(board.PawnCaptureboard(side.Opponent(), board.BitMask(sq)) & b.Pieces(side, board.Pawn))

	return ret
}

// SortByNominalValue orders squares by the nominal value of the occupying
// piece, lowest to highest.
func SortByNominalValue(b *board.Board, side board.Color, squares []board.Square) []board.Square {
	sort.SliceStable(squares, func(i, j int) bool {
		return attackerValue(pieceOn(b, side, squares[i])) < attackerValue(pieceOn(b, side, squares[j]))
	})
	return squares
}

func pieceOn(b *board.Board, c board.Color, sq board.Square) board.Piece {
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		if b.Pieces(c, p)&board.BitMask(sq) != 0 {
			return p
		}
	}
	return board.NumPieces
}

// SEE runs a static exchange evaluation of a capture on sq by the side to
// move, returning the material balance (in centipawns, from the mover's
// perspective) if both sides always recapture with their cheapest attacker
// and stop when further recapture would lose material.
func SEE(b *board.Board, sq board.Square) int32 {
	side := b.SideToMove()
	target, targetOK := firstPiece(b, sq)
	if !targetOK {
		return 0
	}

	occ := b.OccupiedAll()
	gain := make([]int32, 0, 32)
	gain = append(gain, attackerValue(target))

	attackerSq, fromPiece, ok := leastValuableAttacker(b, side, sq, occ)
	depth := 0
	for ok {
		depth++
		gain = append(gain, attackerValue(fromPiece)-gain[depth-1])
		occ &^= board.BitMask(attackerSq)
		side = side.Opponent()
		attackerSq, fromPiece, ok = leastValuableAttacker(b, side, sq, occ)
	}

	// The last entry assumes a recapture that no attacker is left to make,
	// so the minimax pass starts one entry before it.
	for i := len(gain) - 3; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

func firstPiece(b *board.Board, sq board.Square) (board.Piece, bool) {
	c, p, ok := b.PieceAt(sq)
	_ = c
	return p, ok
}

func leastValuableAttacker(b *board.Board, side board.Color, sq board.Square, occ board.Bitboard) (board.Square, board.Piece, bool) {
	candidates := FindCapture(b, side, sq, occ)
	if len(candidates) == 0 {
		return 0, 0, false
	}
	candidates = SortByNominalValue(b, side, candidates)
	best := candidates[0]
	return best, pieceOn(b, side, best), true
}
