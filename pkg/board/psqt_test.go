package board_test

import (
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recomputeMaterial rescans every bitboard from scratch, independent of the
// running sums Board.Make/Unmake maintain incrementally.
func recomputeMaterial(b *board.Board, c board.Color) board.Tapered {
	var score board.Tapered
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		for bb := b.Pieces(c, p); bb != 0; {
			sq := bb.PopLSB()
			score = score.Add(board.PieceValue[p]).Add(board.PSQT(c, p, sq))
		}
	}
	if b.Pieces(c, board.Bishop).PopCount() >= 2 {
		score = score.Add(board.T(30, 40))
	}
	return score
}

func recomputePhase(b *board.Board) int32 {
	var p int32
	for c := board.White; c <= board.Black; c++ {
		for _, pc := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
			p += board.PhaseWeight(pc) * int32(b.Pieces(c, pc).PopCount())
		}
	}
	return p
}

func assertMaterialConsistent(t *testing.T, b *board.Board, msg string) {
	t.Helper()
	assert.Equal(t, recomputeMaterial(b, board.White), b.Material(board.White), "%v: white material", msg)
	assert.Equal(t, recomputeMaterial(b, board.Black), b.Material(board.Black), "%v: black material", msg)
	assert.Equal(t, recomputePhase(b), b.Phase(), "%v: phase", msg)
}

func TestMaterialMatchesRecomputeFromScratch(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assertMaterialConsistent(t, b, "initial decode")

	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		for _, m := range b.LegalMoves() {
			done := b.Make(m)
			assertMaterialConsistent(t, b, "after "+m.String())
			walk(depth - 1)
			b.Unmake(done)
			assertMaterialConsistent(t, b, "after unmake "+m.String())
		}
	}
	walk(3)
}
