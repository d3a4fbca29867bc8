package eval

import "github.com/herohde/lunarr/pkg/board"

var outpostBonus = T(18, 8)

// Outposts scores color c's knights and bishops standing on outpost
// squares: protected by a friendly pawn, and unreachable by any enemy pawn
// ever advancing to challenge them.
func Outposts(b *board.Board, c board.Color) Tapered {
	them := c.Opponent()
	ownPawns := b.Pieces(c, board.Pawn)
	enemyPawns := b.Pieces(them, board.Pawn)
	defended := board.PawnCaptureboard(c, ownPawns)

	var score Tapered
	for _, p := range []board.Piece{board.Knight, board.Bishop} {
		for bb := b.Pieces(c, p); bb != 0; {
			sq := bb.PopLSB()
			if defended&board.BitMask(sq) == 0 {
				continue
			}
			if frontSpan(c, sq)&enemyPawns&adjacentFiles(sq.File()) != 0 {
				continue
			}
			score = score.Add(outpostBonus)
		}
	}
	return score
}
