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

// TestQuiescenceResolvesHangingCapture checks that a depth-0 search (which
// drops straight into quiescence) looks past an apparently bad static
// evaluation to find a free recapture sequence that swings material back.
func TestQuiescenceResolvesHangingCapture(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)

	// White Rd1 can play Rxd8+, winning the undefended black queen and
	// leaving white a rook up.
	b, err := fen.Decode(zt, "3q3k/8/8/8/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)

	classical := eval.Classical{}
	standPat := classical.Evaluate(ctx, b)

	n := search.NewNegamax()
	sctx := &search.Context{Alpha: -eval.Inf, Beta: eval.Inf, TT: search.NoTranspositionTable{}, Eval: classical}
	_, _, score, _, err := n.Search(ctx, sctx, b, 0)
	require.NoError(t, err)

	assert.Greater(t, score, standPat)
	assert.Greater(t, score, eval.Zero)
}

// TestQuiescenceStandPatWhenQuiet checks that with no captures available,
// quiescence returns exactly the static evaluation (the "stand pat" score).
func TestQuiescenceStandPatWhenQuiet(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)

	b, err := fen.Decode(zt, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	classical := eval.Classical{}
	standPat := classical.Evaluate(ctx, b)

	n := search.NewNegamax()
	sctx := &search.Context{Alpha: -eval.Inf, Beta: eval.Inf, TT: search.NoTranspositionTable{}, Eval: classical}
	_, _, score, _, err := n.Search(ctx, sctx, b, 0)
	require.NoError(t, err)

	assert.Equal(t, standPat, score)
}
