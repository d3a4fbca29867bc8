package search_test

import (
	"context"
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchContext() *search.Context {
	return &search.Context{
		Alpha: -eval.Inf,
		Beta:  eval.Inf,
		TT:    search.NoTranspositionTable{},
		Eval:  eval.Classical{},
	}
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	zt := board.NewZobristTable(0)
	// Back-rank mate: Ra1-a8#.
	b, err := fen.Decode(zt, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	n := search.NewNegamax()
	_, _, score, moves, err := n.Search(context.Background(), newSearchContext(), b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.Equal(t, board.A1, moves[0].From)
	assert.Equal(t, board.A8, moves[0].To)

	plies, ok := score.MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 1, plies)
}

func TestNegamaxFindsMateInTwo(t *testing.T) {
	zt := board.NewZobristTable(0)
	// Smothered mate: 1.Qg8+ Rxg8 (forced; Kxg8 is illegal, since the Nh6 guards g8) 2.Nf7#.
	// The quiet mating move sits two plies below a queen sacrifice, so at
	// shallow depths razoring drops that node into quiescence and misses it.
	b, err := fen.Decode(zt, "5r1k/6pp/4Q2N/8/8/8/8/6K1 w - - 0 1")
	require.NoError(t, err)

	n := search.NewNegamax()
	_, _, score, moves, err := n.Search(context.Background(), newSearchContext(), b, 9)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	plies, ok := score.MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 3, plies)
}

func TestNegamaxStalemateIsDraw(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	require.Empty(t, b.LegalMoves())

	n := search.NewNegamax()
	_, _, score, moves, err := n.Search(context.Background(), newSearchContext(), b, 2)
	require.NoError(t, err)
	assert.Empty(t, moves)
	assert.Equal(t, eval.Draw, score)
}

func TestNegamaxRespectsMultiPVExclusion(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "6k1/6pp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	n := search.NewNegamax()
	sctx := newSearchContext()
	sctx.Exclude = map[board.Move]bool{}

	_, _, _, moves, err := n.Search(context.Background(), sctx, b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	sctx.Exclude[moves[0]] = true
	_, _, _, moves2, err := n.Search(context.Background(), sctx, b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, moves2)
	assert.NotEqual(t, moves[0], moves2[0])
}
