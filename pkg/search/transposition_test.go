package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// (1) Test that we use MSB for size only.

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, tt.Size(), uint64(0x1000))
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, tt2.Size(), uint64(0x1000))

	// (2) Test read/write.

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, _, notok := tt.Read(a, 0)
	assert.False(t, notok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen, Piece: board.Pawn}
	s := eval.CP(200)
	se := eval.CP(150)
	_ = tt.Write(a, search.ExactBound, 5, 2, s, se, m)

	bound, depth, score, seval, move, ok := tt.Read(a, 5)
	assert.True(t, ok)
	assert.Equal(t, bound, search.ExactBound)
	assert.Equal(t, depth, 2)
	assert.Equal(t, score, s)
	assert.Equal(t, seval, se)
	assert.Equal(t, move, m)

	_, _, _, _, _, notok = tt.Read(a^0xff0000, 0)
	assert.False(t, notok)

	// (3) Test replacement.

	norepl := tt.Write(a, search.ExactBound, 2, 3, eval.CP(500), se, m)
	assert.False(t, norepl)

	repl := tt.Write(a, search.ExactBound, 4, 3, eval.CP(500), se, m)
	assert.True(t, repl)
}

func TestMateDistanceNormalization(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.E1, To: board.E2, Piece: board.King}

	// A mate found 3 plies into the search from the root is stored
	// root-relative and must decode back to the same score when probed at
	// the same ply it was stored at.
	mateIn3 := eval.Mate(3)
	tt.Write(a, search.ExactBound, 3, 10, mateIn3, eval.Zero, m)

	_, _, score, _, _, ok := tt.Read(a, 3)
	assert.True(t, ok)
	assert.Equal(t, mateIn3, score)
}
