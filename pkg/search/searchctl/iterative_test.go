package searchctl_test

import (
	"context"
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/herohde/lunarr/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeLaunchReachesDepthLimit(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	it := &searchctl.Iterative{Root: search.NewNegamax()}
	opt := searchctl.Options{DepthLimit: lang.Some(uint(3))}

	h, out := it.Launch(ctx, b, search.NoTranspositionTable{}, eval.Random{}, eval.Zero, opt)

	var last search.PV
	maxDepth := 0
	for pv := range out {
		last = pv
		if pv.Depth > maxDepth {
			maxDepth = pv.Depth
		}
	}

	assert.Equal(t, 3, maxDepth)
	assert.NotEmpty(t, last.Moves)

	final := h.Halt()
	assert.Equal(t, last.Moves, final.Moves)
}

func TestIterativeLaunchMultiPV(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	it := &searchctl.Iterative{Root: search.NewNegamax()}
	opt := searchctl.Options{DepthLimit: lang.Some(uint(2)), MultiPV: lang.Some(uint(2))}

	_, out := it.Launch(ctx, b, search.NoTranspositionTable{}, eval.Random{}, eval.Zero, opt)

	seen := map[int]bool{}
	for pv := range out {
		if pv.Depth == 2 {
			seen[pv.Index] = true
		}
	}

	assert.True(t, seen[1])
	assert.True(t, seen[2])
}
