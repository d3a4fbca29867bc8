package searchctl_test

import (
	"testing"
	"time"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPly(t *testing.T) {
	zt := board.NewZobristTable(0)

	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, 0, searchctl.Ply(b))

	b, err = fen.Decode(zt, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)
	assert.Equal(t, 1, searchctl.Ply(b))

	b, err = fen.Decode(zt, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	assert.Equal(t, 2, searchctl.Ply(b))
}

func TestTimeControlLimitsSoftBeforeHard(t *testing.T) {
	tc := searchctl.TimeControl{White: 60 * time.Second, Black: 60 * time.Second}

	soft, hard := tc.Limits(board.White, 0)
	assert.Greater(t, soft, time.Duration(0))
	assert.GreaterOrEqual(t, hard, soft)
	assert.LessOrEqual(t, hard, tc.White)
}

func TestTimeControlLimitsNeverExceedRemaining(t *testing.T) {
	tc := searchctl.TimeControl{White: 5 * time.Second, Black: 5 * time.Second, Moves: 1}

	_, hard := tc.Limits(board.White, 40)
	assert.LessOrEqual(t, hard, tc.White)
}

func TestTimeControlLimitsZeroTime(t *testing.T) {
	tc := searchctl.TimeControl{}

	soft, hard := tc.Limits(board.White, 0)
	assert.Equal(t, time.Duration(0), soft)
	assert.Equal(t, time.Duration(0), hard)
}

func TestOptionsString(t *testing.T) {
	var o searchctl.Options
	assert.Equal(t, "[]", o.String())
}
