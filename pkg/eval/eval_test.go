package eval_test

import (
	"context"
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominalValue(t *testing.T) {
	assert.Equal(t, eval.CP(100), eval.NominalValue(board.Pawn))
	assert.Equal(t, eval.CP(300), eval.NominalValue(board.Knight))
	assert.Equal(t, eval.CP(300), eval.NominalValue(board.Bishop))
	assert.Equal(t, eval.CP(500), eval.NominalValue(board.Rook))
	assert.Equal(t, eval.CP(900), eval.NominalValue(board.Queen))
}

func TestNominalValueGain(t *testing.T) {
	quiet := board.Move{Type: board.Normal, Piece: board.Knight}
	assert.Equal(t, eval.Zero, eval.NominalValueGain(quiet))

	capture := board.Move{Type: board.Capture, Piece: board.Knight, Capture: board.Queen}
	assert.Equal(t, eval.CP(900), eval.NominalValueGain(capture))

	promo := board.Move{Type: board.Promotion, Piece: board.Pawn, Promotion: board.Queen}
	assert.Equal(t, eval.CP(800), eval.NominalValueGain(promo))

	capturePromo := board.Move{Type: board.CapturePromotion, Piece: board.Pawn, Capture: board.Rook, Promotion: board.Queen}
	assert.Equal(t, eval.CP(1300), eval.NominalValueGain(capturePromo))
}

func TestClassicalEvaluateSymmetric(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	c := eval.Classical{}
	assert.Equal(t, eval.Zero, c.Evaluate(ctx, b))
}

func TestClassicalEvaluateMaterialAdvantage(t *testing.T) {
	ctx := context.Background()
	zt := board.NewZobristTable(0)

	// White is up a rook.
	b, err := fen.Decode(zt, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	c := eval.Classical{}
	assert.Greater(t, c.Evaluate(ctx, b), eval.Zero)
}

func TestClassicalEvaluateSideToMovePerspective(t *testing.T) {
	ctx := context.Background()
	zt1, zt2 := board.NewZobristTable(0), board.NewZobristTable(0)

	white, err := fen.Decode(zt1, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	black, err := fen.Decode(zt2, "4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	require.NoError(t, err)

	c := eval.Classical{}
	assert.Equal(t, c.Evaluate(ctx, white), -c.Evaluate(ctx, black))
}
