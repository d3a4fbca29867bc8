package eval

import "github.com/herohde/lunarr/pkg/board"

// mobilityWeight scales the number of safe destination squares a piece
// attacks into a tapered bonus, per piece kind.
var mobilityWeight = [board.NumPieces]Tapered{
	board.Knight: T(4, 4),
	board.Bishop: T(4, 3),
	board.Rook:   T(2, 4),
	board.Queen:  T(1, 2),
}

// Mobility scores the safe mobility of color c's knights, bishops, rooks and
// queens: squares they attack that are not occupied by their own pieces and
// not defended by an enemy pawn.
func Mobility(b *board.Board, c board.Color) Tapered {
	them := c.Opponent()
	pawnDefended := enemyPawnAttacks(b, them)
	mask := ^b.Occupied(c) &^ pawnDefended

	var score Tapered
	for _, p := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		w := mobilityWeight[p]
		for bb := b.Pieces(c, p); bb != 0; {
			sq := bb.PopLSB()
			n := (board.Attackboard(p, sq, b.OccupiedAll()) & mask).PopCount()
			score = score.Add(w.Mul(int32(n)))
		}
	}
	return score
}

// enemyPawnAttacks returns every square attacked by color c's pawns.
func enemyPawnAttacks(b *board.Board, c board.Color) board.Bitboard {
	return board.PawnCaptureboard(c, b.Pieces(c, board.Pawn))
}
