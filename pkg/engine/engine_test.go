package engine_test

import (
	"context"
	"testing"

	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/engine"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/herohde/lunarr/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(ctx context.Context) *engine.Engine {
	return engine.New(ctx, "test", "tester", search.NewNegamax())
}

func TestEngineResetAndPosition(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())

	require.NoError(t, e.Reset(ctx, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", e.Position())

	assert.Error(t, e.Reset(ctx, "not-a-fen"))
}

func TestEngineMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	assert.Error(t, e.Move(ctx, "e2e4")) // no longer legal; pawn already moved

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())

	assert.Error(t, e.TakeBack(ctx)) // nothing left to undo
}

func TestEngineAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(4))}

	out, err := e.Analyze(ctx, opt)
	require.NoError(t, err)

	_, err = e.Analyze(ctx, opt)
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
	for range out {
	}
}

func TestEngineOptions(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	e.SetDepth(5)
	e.SetHash(16)
	e.SetNoise(10)

	opt := e.Options()
	assert.Equal(t, uint(5), opt.Depth)
	assert.Equal(t, uint(16), opt.Hash)
	assert.Equal(t, uint(10), opt.Noise)
}
