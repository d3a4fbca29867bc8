package eval

import "github.com/herohde/lunarr/pkg/board"

var (
	doubledPenalty  = T(-11, -26)
	isolatedPenalty = T(-5, -15)
	backwardPenalty = T(-9, -24)

	passedBonus = [8]Tapered{
		T(0, 0), T(5, 18), T(12, 23), T(10, 35),
		T(30, 55), T(60, 85), T(95, 135), T(0, 0),
	}
)

// adjacentFiles returns the file mask of the files directly beside f
// (used for isolation/backwardness checks).
func adjacentFiles(f board.File) board.Bitboard {
	var m board.Bitboard
	if f > board.FileA {
		m |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		m |= board.BitFile(f + 1)
	}
	return m
}

// frontSpan returns every square strictly ahead of sq (exclusive) on its
// file and the two adjacent files, from color c's perspective; the zone a
// passed pawn must be clear of enemy pawns in.
func frontSpan(c board.Color, sq board.Square) board.Bitboard {
	files := board.BitFile(sq.File()) | adjacentFiles(sq.File())
	var ranks board.Bitboard
	if c == board.White {
		for r := sq.Rank() + 1; r <= board.Rank8; r++ {
			ranks |= board.BitRank(r)
			if r == board.Rank8 {
				break
			}
		}
	} else {
		for r := int(sq.Rank()) - 1; r >= int(board.Rank1); r-- {
			ranks |= board.BitRank(board.Rank(r))
		}
	}
	return files & ranks
}

// PawnStructure scores doubled, isolated, backward and passed pawns for
// color c, positive for c (the caller subtracts Black's score from White's).
func PawnStructure(b *board.Board, c board.Color) Tapered {
	pawns := b.Pieces(c, board.Pawn)

	var score Tapered
	for bb := pawns; bb != 0; {
		sq := bb.PopLSB()
		file := sq.File()

		if (pawns & board.BitFile(file) &^ board.BitMask(sq)) != 0 {
			score = score.Add(doubledPenalty)
		}

		if pawns&adjacentFiles(file) == 0 {
			score = score.Add(isolatedPenalty)
		} else if isBackward(b, c, sq) {
			score = score.Add(backwardPenalty)
		}

		if IsPassedPawn(b, c, sq) {
			rank := sq.Rank()
			if c == board.Black {
				rank = 7 - rank
			}
			score = score.Add(passedBonus[rank])
		}
	}
	return score
}

// IsPassedPawn reports whether the pawn of color c on sq has no enemy pawn
// able to stop, capture or block its advance: its own file and both
// adjacent files are clear of enemy pawns from sq to the far edge of the
// board.
func IsPassedPawn(b *board.Board, c board.Color, sq board.Square) bool {
	return frontSpan(c, sq)&b.Pieces(c.Opponent(), board.Pawn) == 0
}

// isBackward reports whether the pawn on sq has no friendly pawn able to
// defend its advance square and that square is covered by an enemy pawn.
func isBackward(b *board.Board, c board.Color, sq board.Square) bool {
	pawns := b.Pieces(c, board.Pawn)
	var advance board.Square
	if c == board.White {
		advance = sq + 8
	} else {
		advance = sq - 8
	}
	if !advance.IsValid() {
		return false
	}
	supporters := board.PawnCaptureboard(c.Opponent(), board.BitMask(advance)) & pawns
	if supporters != 0 {
		return false
	}
	return board.PawnCaptureboard(c, board.BitMask(advance))&b.Pieces(c.Opponent(), board.Pawn) != 0
}
