package eval

import "github.com/herohde/lunarr/pkg/board"

var (
	pawnShieldBonus  = T(9, 0)
	openFilePenalty  = T(-22, -5)
	semiOpenPenalty  = T(-11, -2)
	attackZoneWeight = T(-4, 0)
)

// kingShieldFiles returns the three files spanned by the king's shelter
// (its own file and both neighbors), clamped to the board edge.
func kingShieldFiles(sq board.Square) board.Bitboard {
	f := sq.File()
	files := board.BitFile(f)
	if f > board.FileA {
		files |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		files |= board.BitFile(f + 1)
	}
	return files
}

// KingSafety scores color c's king shelter: on the king's file and the files
// beside it, a shield bonus where c has a pawn anywhere on the file and an
// open or semi-open file penalty where it has none, plus the density of
// enemy pieces attacking the squares immediately around the king.
func KingSafety(b *board.Board, c board.Color) Tapered {
	them := c.Opponent()
	sq := b.KingSquare(c)
	files := kingShieldFiles(sq)

	ownPawns := b.Pieces(c, board.Pawn)
	enemyPawns := b.Pieces(them, board.Pawn)

	var score Tapered
	for f := board.FileA; f <= board.FileH; f++ {
		if files&board.BitFile(f) == 0 {
			continue
		}
		fileMask := board.BitFile(f)
		hasOwn := ownPawns&fileMask != 0
		hasEnemy := enemyPawns&fileMask != 0

		switch {
		case !hasOwn && !hasEnemy:
			score = score.Add(openFilePenalty)
		case !hasOwn && hasEnemy:
			score = score.Add(semiOpenPenalty)
		default:
			score = score.Add(pawnShieldBonus)
		}
	}

	ring := board.KingAttackboard(sq)
	var attackers int
	for bb := ring; bb != 0; {
		dst := bb.PopLSB()
		attackers += b.AttackersTo(dst, them, b.OccupiedAll()).PopCount()
	}
	score = score.Add(attackZoneWeight.Mul(int32(attackers)))

	return score
}
