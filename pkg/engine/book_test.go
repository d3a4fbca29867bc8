package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	})
	require.NoError(t, err)

	tests := []struct {
		pos   string
		moves string
	}{
		{fen.Initial, "d2d4 e2e4"},
		{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", "d7d6"},
	}

	for _, tt := range tests {
		list, err := book.Find(ctx, tt.pos)
		assert.NoError(t, err)
		assert.Equal(t, tt.moves, printMoves(list))
	}
}

func TestBookUnknownPosition(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{{"e2e4", "d7d5"}})
	require.NoError(t, err)

	list, err := book.Find(ctx, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookInvalidLine(t *testing.T) {
	_, err := engine.NewBook([]engine.Line{{"e2e5"}})
	assert.Error(t, err)
}

func printMoves(moves []board.Move) string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return strings.Join(out, " ")
}
